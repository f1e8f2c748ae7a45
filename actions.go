// This file defines most actions available in the game.

package main

import (
	"cmp"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/ui"
)

// Action represents types that describe and handle a game action, often the
// last UI Action performed.
type Action interface {
	// Handle processes an action and returns possibly an effect along with
	// a boolean that reports whether the action ends the player's game
	// turn.
	Handle(*model) (gruid.Effect, bool)
}

// ActionDesc is a named action with a description.
type ActionDesc interface {
	Action
	String() string
	Desc() string
}

// updateActionDesc updates the description label for the given described action.
func (md *model) updateActionDesc(a ActionDesc) {
	l := md.desc
	stt := ui.StyledText{}.WithMarkups(Markups)
	l.Box = &ui.Box{Title: ui.Text(a.String())}
	l.Content = stt.WithText(a.Desc()).Format(UIWidth/2 - 2)
}

// ActionNone does nothing.
type ActionNone struct{}

func (a ActionNone) Handle(md *model) (gruid.Effect, bool) {
	return nil, false
}

// ActionWait waits for a turn.
type ActionWait struct{}

func (a ActionWait) Handle(md *model) (gruid.Effect, bool) {
	return nil, true
}

func (a ActionWait) String() string {
	return "Wait a turn"
}

// dirName returns the compass name for a unit movement delta.
func dirName(delta gruid.Point) string {
	switch delta {
	case gruid.Point{X: -1, Y: 0}:
		return "west"
	case gruid.Point{X: 1, Y: 0}:
		return "east"
	case gruid.Point{X: 0, Y: -1}:
		return "north"
	case gruid.Point{X: 0, Y: 1}:
		return "south"
	case gruid.Point{X: -1, Y: -1}:
		return "north-west"
	case gruid.Point{X: 1, Y: -1}:
		return "north-east"
	case gruid.Point{X: -1, Y: 1}:
		return "south-west"
	case gruid.Point{X: 1, Y: 1}:
		return "south-east"
	}
	return ""
}

// ActionBump moves the player to a given position and updates FOV information,
// or attacks if there is a monster.
type ActionBump struct {
	Delta gruid.Point
}

func (a ActionBump) Handle(md *model) (eff gruid.Effect, done bool) {
	return nil, md.g.PlayerBump(a.Delta)
}

func (a ActionBump) String() string {
	return "Move " + dirName(a.Delta)
}

// ActionRun performs automatic movement in a given direction.
type ActionRun struct {
	Delta gruid.Point
}

func (a ActionRun) Handle(md *model) (gruid.Effect, bool) {
	g := md.g
	if g.DangerInFOV() {
		g.Log("You cannot run: danger in view!")
		return nil, false
	}
	p := g.PP().Add(a.Delta)
	if !g.PlayerPassable(p) {
		g.Log("You cannot run in that direction.")
		return nil, false
	}
	bump := ActionBump(a)
	eff, done := bump.Handle(md)
	if !done {
		return eff, false
	}
	md.UpdateRun(a.Delta)
	md.targ.CancelExamine()
	return md.UpdateAutoMode(eff, autoRun), true
}

func (a ActionRun) String() string {
	return "Run " + dirName(a.Delta)
}

// ActionTravel starts travelling to the currently examined target.
type ActionTravel struct{}

func (a ActionTravel) Handle(md *model) (gruid.Effect, bool) {
	tp := md.targ.p
	if tp == InvalidPos {
		return nil, false
	}
	g := md.g
	pp := g.PP()
	if tp == pp {
		// wait a turn
		return nil, true
	}
	path := md.auto.path
	if len(path) <= 1 || path[len(path)-1] != tp || path[0] != pp {
		path = g.PlayerPath(pp, tp)
	}
	if len(path) <= 1 {
		return nil, false
	}
	fif := g.DangerInFOV()
	next := path[1]
	bump := ActionBump{Delta: next.Sub(pp)}
	eff, done := bump.Handle(md)
	if !done {
		return eff, false
	}
	if g.PP() == next {
		md.auto.path = path[1:]
	}
	if fif {
		// do not start auto-travel if there was a foe in view.
		return eff, true
	}
	md.targ.CancelExamine()
	return md.UpdateAutoMode(eff, autoTravel), true
}

func (a ActionTravel) String() string {
	return "Travel to target"
}

// ActionAutoExplore starts automatic exploration.
type ActionAutoExplore struct{}

func (a ActionAutoExplore) Handle(md *model) (gruid.Effect, bool) {
	g := md.g
	if g.DangerInFOV() {
		g.Log("You cannot auto-explore: danger in view!")
		return nil, false
	}
	md.auto.aemRebuild = true
	n, ok := md.UpdateAutoExplore()
	if !ok {
		return nil, false
	}
	bump := ActionBump{Delta: n.Sub(g.PP())}
	eff, done := bump.Handle(md)
	if !done {
		return eff, false
	}
	md.targ.CancelExamine()
	return md.UpdateAutoMode(eff, autoExplore), true
}

func (a ActionAutoExplore) String() string {
	return "Auto-explore"
}

// ActionCursorBump moves the cursor.
type ActionCursorBump struct {
	Delta gruid.Point
}

func (a ActionCursorBump) Handle(md *model) (gruid.Effect, bool) {
	np := md.targ.p.Add(a.Delta)
	md.Examine(np)
	return nil, false
}

func (a ActionCursorBump) String() string {
	return "Move cursor " + dirName(a.Delta)
}

// ActionCursorRun moves the cursor (fast).
type ActionCursorRun struct {
	Delta gruid.Point
}

func (a ActionCursorRun) Handle(md *model) (gruid.Effect, bool) {
	np := md.targ.p.Add(a.Delta.Mul(4))
	if np.X < 0 {
		np.X = 0
	}
	if np.X >= MapWidth {
		np.X = MapWidth - 1
	}
	if np.Y < 0 {
		np.Y = 0
	}
	if np.Y >= MapHeight {
		np.Y = MapHeight - 1
	}
	md.Examine(np)
	return nil, false
}

func (a ActionCursorRun) String() string {
	return "Move cursor fast " + dirName(a.Delta)
}

// ActionNextMonster examines next monster (sorted by distance to player).
type ActionNextMonster struct{}

func (a ActionNextMonster) Handle(md *model) (gruid.Effect, bool) {
	g := md.g
	me := g.getMonsterTargIDs()
	if len(me) == 0 {
		return nil, false
	}
	g.sortEntityTargIDs(me)
	i := g.getMonsterTargIDIndex(me)
	i = (i + 1) % len(me)
	md.targ.kb = true
	md.Examine(g.Entity(me[i]).KnownP)
	return nil, false
}

// getMonsterTargIDs returns the ids of monsters that can be examined.
func (g *Game) getMonsterTargIDs() []ID {
	var me []ID
	for i, ei := range g.NPMapEntities() {
		ai, ok := ei.Role.(*Actor)
		if !ok {
			continue
		}
		if ei.KnownP != InvalidPos && !ai.KnownDead {
			me = append(me, i)
		}
	}
	return me
}

// sortEntityTargIDs sorts the ids of entities that can be examined by
// distance to the player.
func (g *Game) sortEntityTargIDs(me []ID) {
	pp := g.PP()
	slices.SortFunc(me, func(i, j ID) int {
		pi, pj := g.Entity(i).KnownP, g.Entity(j).KnownP
		return cmp.Compare(paths.DistanceManhattan(pp, pi), paths.DistanceManhattan(pp, pj))
	})
}

// getMonsterTargIDIndex returns the index of any monster currently being
// examined, or -1 if none.
func (g *Game) getMonsterTargIDIndex(me []ID) int {
	if id, _ := g.KnownActorAt(g.md.targ.p); id >= 0 {
		return slices.Index(me, id)
	}
	return -1
}

func (a ActionNextMonster) String() string {
	return "Examine next monster"
}

// ActionPreviousMonster examines previous monster (sorted by distance to
// player).
type ActionPreviousMonster struct{}

func (a ActionPreviousMonster) Handle(md *model) (gruid.Effect, bool) {
	g := md.g
	me := g.getMonsterTargIDs()
	if len(me) == 0 {
		return nil, false
	}
	g.sortEntityTargIDs(me)
	i := g.getMonsterTargIDIndex(me)
	if i == -1 {
		i = 0
	}
	i--
	if i < 0 {
		i += len(me)
	}
	md.targ.kb = true
	md.Examine(g.Entity(me[i]).KnownP)
	return nil, false
}

func (a ActionPreviousMonster) String() string {
	return "Examine previous monster"
}

// ActionNextItem examines the next known item (sorted by distance to player).
type ActionNextItem struct{}

func (a ActionNextItem) Handle(md *model) (gruid.Effect, bool) {
	g := md.g
	items := g.getItemTargIDs()
	if len(items) == 0 {
		return nil, false
	}
	g.sortEntityTargIDs(items)
	i := g.getItemTargIDIndex(items)
	i = (i + 1) % len(items)
	p := g.Entity(items[i]).KnownP
	if p == InvalidPos {
		return nil, false
	}
	md.targ.kb = true
	md.Examine(p)
	return nil, false
}

// getItemTargIDs returns the ids of items that can be examined.
func (g *Game) getItemTargIDs() []ID {
	var items []ID
	for i := range g.ItemEntities() {
		if g.Entity(i).KnownP != InvalidPos {
			items = append(items, i)
		}
	}
	return items
}

// getItemTargIDIndex returns the index of any item currently being examined,
// or -1 if none.
func (g *Game) getItemTargIDIndex(items []ID) int {
	if id, _ := g.KnownItemAt(g.md.targ.p); id >= 0 {
		return slices.Index(items, id)
	}
	return -1
}

func (a ActionNextItem) String() string {
	return "Examine next known item"
}

// ActionExamine examines a target screen position (relative position ignoring
// log at the top, so starting at the map).
type ActionExamine struct {
	Target gruid.Point
}

func (a ActionExamine) Handle(md *model) (gruid.Effect, bool) {
	p := a.Target
	if inMap(p) {
		md.Examine(p)
	} else {
		md.targ.CancelExamine()
	}
	return nil, false
}

// ActionExamineModeToggle enters keyboard targeting mode.
type ActionExamineModeToggle struct{}

func (a ActionExamineModeToggle) Handle(md *model) (gruid.Effect, bool) {
	if !md.targ.kb {
		md.targ.kb = true
		md.Examine(md.g.PP())
		return nil, false
	}
	md.targ.CancelExamine()
	return nil, false
}

func (a ActionExamineModeToggle) String() string {
	return "Examine (keyboard mode)"
}

// ActionScroll represents a vertical scrolling action (only usable for target
// examination currently).
type ActionScroll struct {
	Delta gruid.Point
}

func (a ActionScroll) Handle(md *model) (gruid.Effect, bool) {
	switch a.Delta {
	case gruid.Point{X: 0, Y: 1}:
		if md.targ.p != InvalidPos {
			md.targ.scroll = false
		}
	case gruid.Point{X: 0, Y: -1}:
		if md.targ.p != InvalidPos {
			md.targ.scroll = true
		}
	}
	return nil, false
}

// ActionInteract interacts with any item on the current cell.
type ActionInteract struct{}

func (a ActionInteract) Handle(md *model) (gruid.Effect, bool) {
	g := md.g
	md.mode = modeNormal
	if i, it := g.ItemAt(g.PP()); i >= 0 {
		return nil, it.Use(g, i)
	}
	g.Log("Nothing to interact with.")
	return nil, false
}

func (a ActionInteract) String() string {
	return "Interact (pry/drink)"
}

func (a ActionInteract) Desc() string {
	return "Interacts with whatever lies under you: pry the Heartstone loose, or drink a potion straight off the floor."
}

// ActionDescend descends the stairs when standing on them.
type ActionDescend struct{}

func (a ActionDescend) Handle(md *model) (gruid.Effect, bool) {
	return nil, md.g.Descend()
}

func (a ActionDescend) String() string {
	return "Descend stairs"
}

func (a ActionDescend) Desc() string {
	return "Takes the stairs down to the next level. The descent is one way: there is no coming back up."
}

// ActionInventory opens the inventory menu for using an item.
type ActionInventory struct{}

func (a ActionInventory) Handle(md *model) (gruid.Effect, bool) {
	return md.openInventory(false)
}

func (a ActionInventory) String() string {
	return "Use inventory item"
}

func (a ActionInventory) Desc() string {
	return "Shows your pack. Selecting a potion makes you drink it."
}

// ActionDrop opens the inventory menu for dropping an item.
type ActionDrop struct{}

func (a ActionDrop) Handle(md *model) (gruid.Effect, bool) {
	return md.openInventory(true)
}

func (a ActionDrop) String() string {
	return "Drop inventory item"
}

func (a ActionDrop) Desc() string {
	return "Shows your pack and drops the selected item at your feet."
}

// openInventory opens the inventory, either for using or dropping an item.
func (md *model) openInventory(drop bool) (gruid.Effect, bool) {
	g := md.g
	if g.PackEmpty() {
		g.Log("Your pack is empty.")
		return nil, false
	}
	entries := []ui.MenuEntry{}
	for i, ei := range g.InventoryItems() {
		r := rune('a' + i - FirstInventoryID)
		var entry ui.MenuEntry
		if ei.IsItem() {
			entry.Text = ui.Textf("%c - %s", r, ei.Text())
			switch r {
			case 'h', 'j', 'k', 'l':
				// Those move around the menu: select with ENTER.
			default:
				entry.Keys = []gruid.Key{gruid.Key(r)}
			}
		} else {
			entry.Text = ui.Textf("%c - %s", r, ei.Name)
			entry.Disabled = true
		}
		entries = append(entries, entry)
	}
	altBgEntries(entries)
	title := "Inventory (use)"
	md.menu.mode = modeInventory
	if drop {
		title = "Inventory (drop)"
		md.menu.mode = modeDrop
	}
	md.menu.main.SetBox(&ui.Box{Title: ui.Text(title).WithStyle(gruid.Style{}.WithFg(ColorYellow))})
	md.menu.main.SetEntries(entries)
	md.mode = modeMenu
	md.menu.main.SetActiveInvokable(0)
	if id := md.inventoryItemID(md.menu.main.ActiveInvokable()); id >= 0 {
		md.updateItemDesc(md.g.Entity(id))
	}
	return nil, false
}

// altBgEntries updates entries to use alternate background color for entries
// of odd index.
func altBgEntries(entries []ui.MenuEntry) {
	for i := range entries {
		if i%2 == 1 {
			st := entries[i].Text.Style()
			entries[i].Text = entries[i].Text.WithStyle(st.WithBg(ColorBackgroundSecondary))
		}
	}
}

// updateItemDesc updates the description label with text for the given entity.
func (md *model) updateItemDesc(e *Entity) {
	l := md.desc
	stt := ui.StyledText{}.WithMarkups(Markups)
	l.Box = &ui.Box{Title: ui.Text(e.Name)}
	if it, ok := e.Role.(Item); ok {
		l.Content = stt.WithText(it.Desc()).Format(UIWidth/2 - 1 - 2)
	} else {
		l.Content = stt.WithText(e.Name).Format(UIWidth/2 - 1 - 2)
	}
}

// ActionUseItem uses an inventory item.
type ActionUseItem struct {
	ID ID
}

func (a ActionUseItem) Handle(md *model) (gruid.Effect, bool) {
	md.mode = modeNormal
	return nil, md.g.UseItem(a.ID)
}

// ActionDropItem drops an inventory item.
type ActionDropItem struct {
	ID ID
}

func (a ActionDropItem) Handle(md *model) (gruid.Effect, bool) {
	md.mode = modeNormal
	return nil, md.g.DropItem(a.ID)
}

// ActionMenu open main game menu.
type ActionMenu struct{}

// menuActions represents the various entries in the main menu: they should
// have a corresponding entry in menuKeys.
var menuActions = []Action{
	ActionInteract{},
	ActionDescend{},
	ActionInventory{},
	ActionDrop{},
	ActionViewMessages{},
	ActionHelp{},
	ActionDump{},
	ActionConfig{},
	ActionSaveQuit{},
	ActionQuit{},
}

var menuKeys = []rune{'e', '>', 'i', 'd', 'm', '?', '#', 'C', 'S', 'Q'}

func init() {
	if len(menuActions) != len(menuKeys) {
		panic("length mismatch between menuActions and menuKeys")
	}
}

func (a ActionMenu) Handle(md *model) (gruid.Effect, bool) {
	md.menuActions = menuActions
	hstyle := gruid.Style{}.WithFg(ColorCyan)
	entries := []ui.MenuEntry{}
	for i, it := range md.menuActions {
		r := menuKeys[i]
		switch r {
		case 'e':
			entries = append(entries, ui.MenuEntry{
				Text:     ui.Text("Gameplay Actions").WithStyle(hstyle),
				Disabled: true,
			})
		case 'm':
			entries = append(entries, ui.MenuEntry{
				Text:     ui.Text("Gameplay Info").WithStyle(hstyle),
				Disabled: true,
			})
		case 'C':
			entries = append(entries, ui.MenuEntry{
				Text:     ui.Text("Other Actions").WithStyle(hstyle),
				Disabled: true,
			})
		}
		disabled := false
		if r == 'e' {
			// The first action (interact) isn't always available.
			if j, _ := md.g.ItemAt(md.g.PP()); j < 0 {
				disabled = true
				md.menuActions = md.menuActions[1:]
			}
		}
		if !disabled {
			entries = append(entries, ui.MenuEntry{
				Text: ui.Textf("%c - %s", r, it),
				Keys: []gruid.Key{gruid.Key(r)},
			})
		}
	}
	altBgEntries(entries)
	md.menu.main.SetBox(&ui.Box{Title: ui.Text("Menu").WithStyle(gruid.Style{}.WithFg(ColorYellow))})
	md.menu.main.SetEntries(entries)
	md.menu.main.SetActiveInvokable(0)
	md.updateMenuActionDesc(0)
	md.mode = modeMenu
	md.menu.mode = modeGameMenu
	return nil, false
}

func (a ActionMenu) String() string {
	return "Menu"
}

// ActionConfig opens settings menu.
type ActionConfig struct{}

var configActions = []Action{
	ActionSetKeys{},
	ActionToggleDarkLight{},
	ActionToggleAdvancedNewGame{},
}

var configKeys = []rune{':', 'c', 'n'}

func (a ActionConfig) Handle(md *model) (gruid.Effect, bool) {
	md.menuActions = configActions
	entries := []ui.MenuEntry{}
	for i, it := range md.menuActions {
		r := configKeys[i]
		entries = append(entries, ui.MenuEntry{
			Text: ui.Textf("%c - %s", r, it),
			Keys: []gruid.Key{gruid.Key(r)},
		})
	}
	altBgEntries(entries)
	md.menu.main.SetBox(&ui.Box{Title: ui.Text("Config").WithStyle(gruid.Style{}.WithFg(ColorYellow))})
	md.menu.main.SetEntries(entries)
	md.menu.main.SetActiveInvokable(0)
	md.updateMenuActionDesc(0)
	md.mode = modeMenu
	md.menu.mode = modeConfigMenu
	return nil, false
}

func (a ActionConfig) String() string {
	return "Configure settings"
}

func (a ActionConfig) Desc() string {
	return "Opens a configuration menu with various options."
}

// ActionToggleDarkLight toggles dark/light mode.
type ActionToggleDarkLight struct{}

func (a ActionToggleDarkLight) Handle(md *model) (gruid.Effect, bool) {
	UIPrefs.DarkColors = !UIPrefs.DarkColors
	if err := SavePrefs(); err != nil {
		md.g.LogfStyled("Error while saving preferences: %v.", logError, err)
	}
	clearCache()
	eff := gruid.Cmd(func() gruid.Msg { return gruid.MsgScreen{} })
	md.mode = modeNormal
	return eff, false
}

func (a ActionToggleDarkLight) String() string {
	if UIPrefs.DarkColors {
		return "Switch to light color theme"
	}
	return "Switch to dark color theme"
}

// ActionToggleAdvancedNewGame enables/disables the mod selection menu on new
// games (by default).
type ActionToggleAdvancedNewGame struct{}

func (a ActionToggleAdvancedNewGame) Handle(md *model) (gruid.Effect, bool) {
	UIPrefs.AdvancedNewGame = !UIPrefs.AdvancedNewGame
	if err := SavePrefs(); err != nil {
		md.g.LogfStyled("Error while saving preferences: %v.", logError, err)
	}
	md.mode = modeNormal
	return nil, false
}

func (a ActionToggleAdvancedNewGame) String() string {
	if UIPrefs.AdvancedNewGame {
		return "Default to classic new game"
	}
	return "Default to advanced new game"
}

func (a ActionToggleAdvancedNewGame) Desc() string {
	if UIPrefs.AdvancedNewGame {
		return "This option skips the mod selection menu on game startup, so new games start with all mods disabled. It only has an effect when starting a new game."
	}
	return "This option shows the mod selection menu on game startup, using any previously enabled mods. It only has an effect when starting a new game."
}

// ActionSetKeys opens the keymap settings.
type ActionSetKeys struct{}

// configurableAction represents actions that may be configurable so need a
// textual representation in the UI.
type configurableAction interface {
	fmt.Stringer
	Action
}

var configurableKeyActions = [...]configurableAction{
	ActionBump{Delta: gruid.Point{X: -1, Y: 0}},
	ActionBump{Delta: gruid.Point{X: 1, Y: 0}},
	ActionBump{Delta: gruid.Point{X: 0, Y: -1}},
	ActionBump{Delta: gruid.Point{X: 0, Y: 1}},
	ActionBump{Delta: gruid.Point{X: -1, Y: -1}},
	ActionBump{Delta: gruid.Point{X: 1, Y: -1}},
	ActionBump{Delta: gruid.Point{X: -1, Y: 1}},
	ActionBump{Delta: gruid.Point{X: 1, Y: 1}},
	ActionRun{Delta: gruid.Point{X: -1, Y: 0}},
	ActionRun{Delta: gruid.Point{X: 1, Y: 0}},
	ActionRun{Delta: gruid.Point{X: 0, Y: -1}},
	ActionRun{Delta: gruid.Point{X: 0, Y: 1}},
	ActionRun{Delta: gruid.Point{X: -1, Y: -1}},
	ActionRun{Delta: gruid.Point{X: 1, Y: -1}},
	ActionRun{Delta: gruid.Point{X: -1, Y: 1}},
	ActionRun{Delta: gruid.Point{X: 1, Y: 1}},
	ActionWait{},
	ActionCursorBump{Delta: gruid.Point{X: -1, Y: 0}},
	ActionCursorBump{Delta: gruid.Point{X: 1, Y: 0}},
	ActionCursorBump{Delta: gruid.Point{X: 0, Y: -1}},
	ActionCursorBump{Delta: gruid.Point{X: 0, Y: 1}},
	ActionCursorRun{Delta: gruid.Point{X: -1, Y: 0}},
	ActionCursorRun{Delta: gruid.Point{X: 1, Y: 0}},
	ActionCursorRun{Delta: gruid.Point{X: 0, Y: -1}},
	ActionCursorRun{Delta: gruid.Point{X: 0, Y: 1}},
	ActionInteract{},
	ActionDescend{},
	ActionInventory{},
	ActionDrop{},
	ActionViewMessages{},
	ActionExamineModeToggle{},
	ActionNextItem{},
	ActionNextMonster{},
	ActionPreviousMonster{},
	ActionTravel{},
	ActionAutoExplore{},
	ActionMenu{},
	ActionHelp{},
	ActionConfig{},
	ActionSaveQuit{},
	ActionQuit{},
}

func (a ActionSetKeys) Handle(md *model) (gruid.Effect, bool) {
	entries := []ui.MenuEntry{}
	for _, it := range configurableKeyActions {
		desc := it.String()
		desc = fmt.Sprintf(" %-36s %s", desc, md.keysForAction(it))
		entries = append(entries, ui.MenuEntry{
			Text: ui.Text(desc),
		})
	}
	altBgEntries(entries)
	md.menu.keys.SetBox(&ui.Box{Title: ui.Text("Key Bindings").WithStyle(gruid.Style{}.WithFg(ColorYellow))})
	md.menu.keys.SetEntries(entries)
	md.menu.main.SetActiveInvokable(0)
	md.mode = modeMenu
	md.menu.mode = modeKeysView
	return nil, false
}

func (md *model) keysForAction(a Action) string {
	keys := []gruid.Key{}
	for k, action := range md.keysNormal {
		if a == action && !k.In(keys) {
			keys = append(keys, k)
		}
	}
	if KbTargetingMode(a) {
		for k, action := range md.keysTarget {
			if a == action && !k.In(keys) {
				keys = append(keys, k)
			}
		}
	}
	ks := make([]string, len(keys))
	for i := range ks {
		ki := string(keys[i])
		if ki == " " {
			ki = "SPACE"
		}
		ks[i] = ki
	}
	slices.Sort(ks)
	return strings.Join(ks, " or ")
}

func (a ActionSetKeys) String() string {
	return "View/Customize keybindings"
}

// ActionViewMessages opens the log message viewer.
type ActionViewMessages struct{}

func (a ActionViewMessages) Handle(md *model) (gruid.Effect, bool) {
	if len(md.pager.lines) > 0 {
		md.pager.lines = md.pager.lines[:len(md.pager.lines)-1]
	}
	for _, e := range md.g.Logs.Entries[len(md.pager.lines):] {
		md.pager.lines = append(md.pager.lines, md.pager.markup.WithText(e.MText))
	}
	md.pager.pg.SetLines(md.pager.lines)
	md.pager.pg.SetCursor(gruid.Point{X: 0, Y: len(md.pager.lines)})
	md.pager.pg.SetBox(&ui.Box{Title: ui.Text("Messages").WithStyle(gruid.Style{}.WithFg(ColorYellow))})
	md.mode = modePager
	md.pager.mode = modeLogs
	return nil, false
}

func (a ActionViewMessages) String() string {
	return "View messages"
}

func (a ActionViewMessages) Desc() string {
	return "Opens a pager with previous message logs. The pager supports page-up/page-down, mouse scrolling, and other basic less-like keybindings."
}

// ActionDump writes a dump with game statistics.
type ActionDump struct{}

func (a ActionDump) Handle(md *model) (gruid.Effect, bool) {
	if msg, err := md.g.WriteDump(); err != nil {
		md.g.LogfStyled("Error: %v.", logError, err)
	} else {
		md.g.Log(msg)
	}
	return nil, false
}

func (a ActionDump) String() string {
	return "Dump game statistics"
}

func (a ActionDump) Desc() string {
	return "Writes game statistics to a dump.txt file in the game’s data directory."
}

// ActionSaveQuit asks for quitting the game after saving.
type ActionSaveQuit struct{}

func (a ActionSaveQuit) Handle(md *model) (gruid.Effect, bool) {
	if err := md.g.Save(); err != nil {
		md.g.LogStyled("Error while saving game.", logError)
		return nil, false
	}
	md.mode = modeQuitting
	return gruid.End(), false
}

func (a ActionSaveQuit) String() string {
	return "Save and Quit"
}

func (a ActionSaveQuit) Desc() string {
	return "Saves current progress and quits the game. The next time you start the game, it will directly resume from here."
}

// ActionQuit asks for quitting the game, without saving.
type ActionQuit struct{}

func (a ActionQuit) Handle(md *model) (gruid.Effect, bool) {
	md.mode = modeQuitConfirmation
	md.g.LogStyled("Do you really want to quit without saving? [y/N]", logConfirm)
	return nil, false
}

func (a ActionQuit) String() string {
	return "Quit (without saving)"
}

func (a ActionQuit) Desc() string {
	return "Deletes any saved progress for current playthrough and quits the game."
}

// ActionQuitConfirm quits the game.
type ActionQuitConfirm struct {
	State confirm
}

func (a ActionQuitConfirm) Handle(md *model) (gruid.Effect, bool) {
	switch a.State {
	case confirmTrue:
		md.mode = modeQuitting
		err := RemoveSaveFile()
		if err != nil {
			log.Printf("Error removing save file: %v", err)
		}
		RemoveReplay()
		return gruid.End(), false
	case confirmFalse:
		md.g.Log("Keep playing, then.")
		md.mode = modeNormal
	}
	return nil, false
}

// actionAuto handles automatic movement of all kinds. It is triggered when
// receiving msgAuto messages. The value of thoses messages is used to ensure
// that we only use it on a specific turn, or discard it, which should be
// normally the case, but better be safe than sorry.
type actionAuto struct {
	msg msgAuto
}

type msgAuto int

func (a actionAuto) Handle(md *model) (gruid.Effect, bool) {
	g := md.g
	if int(a.msg) != g.Turn {
		return nil, false
	}
	switch md.auto.mode {
	case autoRun:
		if !md.KeepRunning() {
			md.auto.mode = noAuto
			return nil, false
		}
		bump := ActionBump{Delta: md.auto.delta}
		eff, done := bump.Handle(md)
		if !done {
			md.auto.mode = noAuto
			return eff, false
		}
		md.UpdateRun(md.auto.delta)
		return md.UpdateAutoMode(eff, autoRun), true
	case autoTravel:
		if !md.KeepTraveling() {
			md.auto.mode = noAuto
			return nil, false
		}
		next := md.auto.path[1]
		bump := ActionBump{Delta: next.Sub(g.PP())}
		eff, done := bump.Handle(md)
		if !done {
			md.auto.mode = noAuto
			return eff, false
		}
		if g.PP() == next {
			md.auto.path = md.auto.path[1:]
		}
		return md.UpdateAutoMode(eff, autoTravel), true
	case autoExplore:
		n, ok := md.UpdateAutoExplore()
		if !ok {
			md.auto.mode = noAuto
			return nil, false
		}
		bump := ActionBump{Delta: n.Sub(g.PP())}
		eff, done := bump.Handle(md)
		if !done {
			md.auto.mode = noAuto
			return eff, false
		}
		return md.UpdateAutoMode(eff, autoExplore), true
	}
	return nil, false
}

func (md *model) autoCmd() gruid.Effect {
	n := md.g.Turn
	return gruid.Cmd(func() gruid.Msg {
		t := time.NewTimer(AnimDurShort)
		<-t.C
		return msgAuto(n + 1)
	})
}

func (a actionAuto) String() string {
	return "action on msgAuto"
}

// KbTargetingMode reports whether the action is used in keyboard targeting mode.
func KbTargetingMode(a Action) bool {
	switch a.(type) {
	case ActionCursorBump, ActionCursorRun, ActionTravel:
		return true
	}
	return false
}

// ActionHelp enters a help menu.
type ActionHelp struct{}

// helpActions represents the various entries in the main help: they should
// have a corresponding entry in helpKeys.
var helpActions = []Action{
	ActionHelpDefaultKeys{},
	ActionHelpCombat{},
	ActionHelpMonsters{},
	ActionHelpItems{},
	ActionHelpTips{},
}

var helpKeys = []rune{'?', 'c', 'b', 'i', 't'}

func init() {
	if len(helpActions) != len(helpKeys) {
		panic("length mismatch between helpActions and helpKeys")
	}
}

func (a ActionHelp) Handle(md *model) (gruid.Effect, bool) {
	md.menuActions = helpActions
	entries := []ui.MenuEntry{}
	for i, it := range md.menuActions {
		r := helpKeys[i]
		entries = append(entries, ui.MenuEntry{
			Text: ui.Textf("%c - %s", r, it),
			Keys: []gruid.Key{gruid.Key(r)},
		})
	}
	altBgEntries(entries)
	md.menu.main.SetBox(&ui.Box{Title: ui.Text("Help Menu").WithStyle(gruid.Style{}.WithFg(ColorYellow))})
	md.menu.main.SetEntries(entries)
	md.menu.main.SetActiveInvokable(0)
	md.updateMenuActionDesc(0)
	md.mode = modeMenu
	md.menu.mode = modeHelpMenu
	return nil, false
}

func (a ActionHelp) String() string {
	return "Help"
}

func (a ActionHelp) Desc() string {
	return "Opens a menu leading to various help topics."
}

// ActionHelpDefaultKeys enters a help menu.
type ActionHelpDefaultKeys struct{}

func (a ActionHelpDefaultKeys) Handle(md *model) (gruid.Effect, bool) {
	md.KeysHelp()
	return nil, false
}

func (a ActionHelpDefaultKeys) String() string {
	return "Keybindings (default values)"
}

func (a ActionHelpDefaultKeys) Desc() string {
	return "Shows a short one-page summary with most default keybindings."
}

func (md *model) updateKeysDescription(title string, actions []string) {
	md.pager.mode = modeHelp
	md.mode = modePager
	if CustomKeys {
		title = fmt.Sprintf(" Default %s ", title)
	} else {
		title = fmt.Sprintf(" %s ", title)
	}
	md.pager.pg.SetBox(&ui.Box{Title: ui.Text(title).WithStyle(gruid.Style{}.WithFg(ColorYellow))})
	lines := []ui.StyledText{}
	for i := 0; i < len(actions)-1; i += 2 {
		stt := ui.StyledText{}
		if actions[i+1] != "" {
			stt = stt.WithTextf(" %-36s %s", actions[i], actions[i+1])
		} else {
			stt = stt.WithTextf(" %s ", actions[i]).WithStyle(gruid.Style{}.WithFg(ColorCyan))
		}
		if i%4 == 2 {
			stt = stt.WithStyle(stt.Style().WithBg(ColorBackgroundSecondary))
		}
		lines = append(lines, stt)
	}
	md.pager.pg.SetLines(lines)
	md.pager.pg.SetCursor(gruid.Point{X: 0, Y: 0})
}

func (md *model) KeysHelp() {
	runKeys := "shift+arrows or HJKL (YUBN diagonals)"
	entries := []string{
		"Basic Game Actions", "",
		"Move or Attack", "arrows or hjkl (yubn diagonals)",
		"Wait a turn", "“.” or ENTER or mouse left on @",
		"Descend stairs", ">",
		"Interact (pry/drink)", "e",
		"Use inventory item", "i",
		"Drop inventory item", "d",
		"Toggle keyboard examine mode", "x",
		"Open menu", "SPACE or mouse right",
		"Close menu, inventory…", "SPACE or ESC or mouse left outside",
		"Advanced Game Actions", "",
		"View previous messages", "m",
		"Examine next known item", "=",
		"Examine previous/next monster", "- +",
		"Run (auto-move in direction)", runKeys,
		"Travel (auto-move to destination)", "“.” or ENTER in keyboard examine mode",
		"Autoexplore (use with caution)", "o",
		"Other Common Actions", "",
		"Save and Quit", "S",
		"Quit (without saving)", "Q",
	}
	md.updateKeysDescription("Keybindings (default values)", entries)
}

// helpTopic opens the pager with the given title and text content.
func (md *model) helpTopic(title, content string) {
	text := ui.Text(content).WithMarkups(Markups).Format(78)
	stts := text.Lines()
	md.pager.pg.SetLines(stts)
	md.pager.pg.SetCursor(gruid.Point{X: 0, Y: 0})
	md.mode = modePager
	md.pager.mode = modeHelp
	md.pager.pg.SetBox(&ui.Box{Title: ui.Text(title).WithStyle(gruid.Style{}.WithFg(ColorYellow))})
}

// ActionHelpCombat opens the combat help topic.
type ActionHelpCombat struct{}

func (a ActionHelpCombat) Handle(md *model) (gruid.Effect, bool) {
	md.helpTopic("Combat (Help)", combatHelpText())
	return nil, false
}

func (a ActionHelpCombat) String() string {
	return "Combat"
}

func (a ActionHelpCombat) Desc() string {
	return "Explains how attack rolls, damage and monster moods work."
}

func combatHelpText() string {
	return strings.TrimSpace(`
@YTURN-BASED SYSTEM@N

Skarn is a turn-based game. Each actor acts once per turn: the player acts first, then the monsters do. Monsters act one after another in a non-predictable order, but you’ll only see the final state and often feel they acted all at once.

@YATTACK ROLLS@N

Bump attacks are resolved with a single twenty-sided die. A natural 20 is a @Ycritical hit@N: it always lands and deals double damage. A natural 1 always misses. Any other roll hits when the roll plus the attacker’s attack (A) reaches 10 plus the defender’s defense (D).

@YDAMAGE@N

Damage on a hit is rolled between 1 and the attacker’s attack value, and doubled on criticals. The defender’s defense is then subtracted from the result, though a landed hit always deals at least 1 damage.

@YMONSTER MOODS@N

Monsters start unaware of you, wandering near their posts in their species’ color. A monster that notices something suspicious nearby turns @Yyellow@N and investigates the spot. One that sees you turns @Rred@N and hunts: it remembers where it last saw you for a few turns even after losing sight of you. Aggressive species never calm down once they’ve seen you.

Badly wounded monsters turn @Ccyan@N and run while you remain in view, though a few stubborn species never do. A monster that loses track of you walks back to its post and calms down.

Keep an eye on colors: catching a monster before it turns red usually means getting the first hit.
`)
}

// ActionHelpMonsters opens the bestiary help topic.
type ActionHelpMonsters struct{}

func (a ActionHelpMonsters) Handle(md *model) (gruid.Effect, bool) {
	md.helpTopic("Monsters (Help)", monstersHelpText())
	return nil, false
}

func (a ActionHelpMonsters) String() string {
	return "Monsters"
}

func (a ActionHelpMonsters) Desc() string {
	return "Lists the dwellers of the dungeon along with their combat statistics."
}

// bestiaryOrder lists the built-in species roughly by the depth at which they
// appear.
var bestiaryOrder = []speciesKind{
	GutterRat,
	CaveSpider,
	Goblin,
	Kobold,
	OrcRookling,
	Zombie,
	Orc,
}

// colorMarkup returns the markup rune for a given palette color.
func colorMarkup(c gruid.Color) rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorYellow:
		return 'Y'
	case ColorBlue:
		return 'B'
	case ColorMagenta:
		return 'M'
	case ColorCyan:
		return 'C'
	case ColorOrange:
		return 'O'
	case ColorViolet:
		return 'V'
	}
	return 'N'
}

func monstersHelpText() string {
	var sb strings.Builder
	sb.WriteString("@YBESTIARY@N\n\n")
	for _, mk := range bestiaryOrder {
		si := mk.Data()
		if si == nil {
			continue
		}
		cr := colorMarkup(si.Color)
		fmt.Fprintf(&sb, "@%c%c@N %s (HP:%d A:%d D:%d XP:%d). %s\n\n",
			cr, si.R, UpperFirst(si.Name), si.HP, si.Attack, si.Defense, si.XP, si.Desc)
	}
	sb.WriteString("Species with clever fingers open closed doors, so shutting one behind you does not always help.")
	return strings.TrimSpace(sb.String())
}

// ActionHelpItems opens the items help topic.
type ActionHelpItems struct{}

func (a ActionHelpItems) Handle(md *model) (gruid.Effect, bool) {
	md.helpTopic("Items (Help)", itemHelpText())
	return nil, false
}

func (a ActionHelpItems) String() string {
	return "Items"
}

func (a ActionHelpItems) Desc() string {
	return "Gives an overview about the various kinds of items found in the game."
}

func itemHelpText() string {
	return strings.TrimSpace(`
@CPotions@N are found in every level and go straight into your pack when you walk over them. Opening the @MInventory@N(i) allows to drink one: minor healing potions restore a little health, major ones quite a lot. When your pack is full, potions stay on the floor — you can still drink them in place with the @MInteract Key@N(e), or drop something first with @Md@N.

@CGold piles@N add to your gold count when stepped on. Gold serves no purpose down here, but it will make a fine story if you ever see daylight again.

The @VHeartstone@N waits embedded in the floor of the deepest level, under heavy guard. Standing over it and pressing the @MInteract Key@N(e) pries it loose and wins the game.
`)
}

// ActionHelpTips opens the tips help topic.
type ActionHelpTips struct{}

func (a ActionHelpTips) Handle(md *model) (gruid.Effect, bool) {
	md.helpTopic("Tips (Help)", tipsHelpText())
	return nil, false
}

func (a ActionHelpTips) String() string {
	return "Tips"
}

func (a ActionHelpTips) Desc() string {
	return "Provides various tips for new players."
}

func tipsHelpText() string {
	return strings.TrimSpace(`
@YGENERAL TIPS@N

Skarn is a @Mturn-based@N game: take your time when in perilous situations!

The stairs only go down. Anything you leave behind — potions, gold, unexplored rooms — is gone for good, so think twice before descending.

Potions are your only source of healing. Don’t hoard them until you’re one hit from death, but don’t waste them on scratches either.

@YCOMBAT TIPS@N

Try to always get the @Mfirst hit@N. Fighting in a doorway or corridor means only one monster can reach you at a time.

Experience levels come from kills, and deeper monsters are worth more. Still, killing everything is not required: a closed door and a brisk walk solve many problems.

Watch monster colors. A @Yyellow@N monster is only suspicious — you can often still slip away before it turns @Rred@N.

Wounded monsters flee. Chasing a fleeing monster into an unexplored room is a classic way to meet its friends.

@YDEEP TIPS@N

The deeper you go, the nastier the spawns: lingering to grind experience also means the dungeon keeps repopulating around you.

The Heartstone’s chamber is guarded by orcs that never run. Arrive healthy, with potions to spare.
`)
}
