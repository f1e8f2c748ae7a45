package main

import (
	"log"
	"slices"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/ui"
)

// menu represents menus used in the game.
type menu struct {
	keys *ui.Menu // key settings menu
	main *ui.Menu // typical main menu (game, settings, inventory)
	mode menuMode
}

// menuMode represents the available menu modes
type menuMode int

const (
	modeInventory menuMode = iota
	modeDrop
	modeConfigMenu
	modeHelpMenu
	modeKeysView
	modeKeysChange
	modeGameMenu
	modeSelection
)

func (md *model) updateMenu(msg gruid.Msg) {
	switch md.menu.mode {
	case modeKeysView:
		md.updateKeysMenu(msg)
	case modeKeysChange:
		md.updateKeysChange(msg)
	default:
		md.updateMainMenu(msg)
	}
}

func (md *model) updateMainMenu(msg gruid.Msg) {
	md.menu.main.Update(msg)
	switch act := md.menu.main.Action(); act {
	case ui.MenuQuit:
		md.mode = modeNormal
	case ui.MenuMove, ui.MenuInvoke:
		idx := md.menu.main.ActiveInvokable()
		if idx < 0 {
			break
		}
		switch md.menu.mode {
		case modeGameMenu, modeConfigMenu, modeHelpMenu:
			md.updateMenuActionDesc(idx)
			if act != ui.MenuInvoke {
				break
			}
			md.action = md.menuActions[idx]
		case modeInventory, modeDrop:
			g := md.g
			id := md.inventoryItemID(idx)
			if id < 0 {
				// Should not happen.
				md.mode = modeNormal
				md.g.LogStyled("No such inventory slot (BUG)", logError)
				md.action = ActionNone{}
				break
			}
			md.updateItemDesc(g.Entity(id))
			if act != ui.MenuInvoke {
				break
			}
			if md.menu.mode == modeDrop {
				md.action = ActionDropItem{ID: id}
			} else {
				md.action = ActionUseItem{ID: id}
			}
		}
	}
}

// updateMenuActionDesc updates the description label for the menu action of
// given index in the current menu.
func (md *model) updateMenuActionDesc(idx int) {
	if idx < 0 || idx >= len(md.menuActions) {
		md.desc.Content = ui.StyledText{}
		return
	}
	a := md.menuActions[idx]
	if ad, ok := a.(ActionDesc); ok {
		md.updateActionDesc(ad)
	} else {
		md.desc.Content = ui.StyledText{}
	}
}

// inventoryItemID returns the entity ID corresponding to the given invokable
// inventory index, or -1 if there is none.
func (md *model) inventoryItemID(idx int) ID {
	n := -1
	for i, e := range md.g.InventoryItems() {
		if e.IsItem() {
			n++
		}
		if n == idx {
			return i
		}
	}
	return -1
}

func (md *model) updateKeysMenu(msg gruid.Msg) {
	md.menu.keys.Update(msg)
	switch act := md.menu.keys.Action(); act {
	case ui.MenuQuit:
		md.mode = modeNormal
	case ui.MenuInvoke:
		md.menu.mode = modeKeysChange
	case ui.MenuPass:
		msg, ok := msg.(gruid.MsgKeyDown)
		if !ok {
			return
		}
		if msg.Key == "R" {
			md.resetKeys()
			md.action = ActionSetKeys{}
		}
	}
}

func (md *model) resetKeys() {
	md.initKeys()
	UIPrefs.NormalModeKeys = md.keysNormal
	UIPrefs.ExamineModeKeys = md.keysTarget
	err := SavePrefs()
	if err != nil {
		log.Printf("error resetting key changes: %v", err)
		md.g.LogStyled("Error while resetting key changes.", logError)
	}
}

func (md *model) updateKeysChange(msg gruid.Msg) {
	mkd, ok := msg.(gruid.MsgKeyDown)
	if !ok {
		return
	}
	key := mkd.Key
	switch key {
	case gruid.KeyEscape, gruid.KeySpace:
		md.action = ActionSetKeys{}
	default:
		action := configurableKeyActions[md.menu.keys.ActiveInvokable()]
		if KbTargetingMode(action) {
			md.keysTarget[key] = action
		} else {
			md.keysNormal[key] = action
		}
		UIPrefs.NormalModeKeys = md.keysNormal
		UIPrefs.ExamineModeKeys = md.keysTarget
		err := SavePrefs()
		if err != nil {
			log.Printf("error saving key changes: %v", err)
			md.g.LogStyled("Error while saving key changes.", logError)
		}
		md.action = ActionSetKeys{}
	}
}

// startNewGame generates the first level and enters normal play.
func (md *model) startNewGame() {
	g := md.g
	g.Init()
	g.InitLevel()
	md.updateStatus()
	md.g.LogStyled("Press SPACE for menu and ? for help. Good luck!", logSpecial)
	md.mode = modeNormal
}

func (md *model) updateModSelectionMenu(msg gruid.Msg) gruid.Effect {
	if msgkey, ok := msg.(gruid.MsgKeyDown); ok {
		switch msgkey.Key {
		case gruid.KeyEscape:
			clear(md.g.Mods)
			md.startNewGame()
			return nil
		}
	}
	md.menu.main.Update(msg)
	switch act := md.menu.main.Action(); act {
	case ui.MenuQuit:
		return gruid.End()
	case ui.MenuMove, ui.MenuInvoke:
		idx := md.menu.main.ActiveInvokable()
		if idx < 0 {
			break
		}
		g := md.g
		if idx == len(g.Mods) {
			l := md.desc
			l.Box = &ui.Box{Title: ui.Text("Save and dive")}
			l.Content = ui.Text("Save mod selection for future games and start playing.").
				Format(UIWidth/2 - 1 - 2)
			if act == ui.MenuInvoke {
				UIPrefs.Mods = slices.Clone(g.Mods)
				if err := SavePrefs(); err != nil {
					md.g.Logf("Error saving mod selection: %v", err)
				}
				md.startNewGame()
			}
			break
		}
		if idx > len(g.Mods) {
			l := md.desc
			l.Box = &ui.Box{Title: ui.Text("Dive without mods")}
			l.Content = ui.Text("Disable any mods and start playing.").
				Format(UIWidth/2 - 1 - 2)
			if act == ui.MenuInvoke {
				clear(md.g.Mods)
				md.startNewGame()
			}
			break
		}
		m := gameMods[idx]
		if act != ui.MenuInvoke {
			md.updateModDesc(m)
			break
		}
		g.Mods[m] = !g.Mods[m]
		md.modSelectionMenu()
		md.menu.main.SetActiveInvokable(idx)
		md.updateModDesc(m)
	}
	return nil
}

// updateModDesc updates the description label with text for the given mod.
func (md *model) updateModDesc(m Mod) {
	l := md.desc
	stt := ui.StyledText{}.WithMarkups(Markups)
	enabled := ""
	if md.g.Mods[m] {
		enabled = "@CEnabled.@N\n"
	}
	l.Box = &ui.Box{Title: ui.Text(m.String())}
	l.Content = stt.WithText(enabled + m.Desc()).Format(UIWidth/2 - 2)
}

func (md *model) modSelectionMenu() {
	hstyle := gruid.Style{}.WithFg(ColorCyan)
	entries := []ui.MenuEntry{}
	title := "New Game (mods)"
	r := 'a'
	for i, m := range gameMods {
		if i == 0 {
			entries = append(entries, ui.MenuEntry{
				Text:     ui.Text("Challenges").WithStyle(hstyle),
				Disabled: true,
			})
		}
		s := "[ ]"
		if md.g.Mods[m] {
			s = "[*]"
		}
		entries = append(entries, ui.MenuEntry{
			Text: ui.Textf("%c - %-30s %s", r, m.String(), s),
			Keys: []gruid.Key{gruid.Key(r)},
		})
		r++
		for {
			switch r {
			case 's', 'q', 'h', 'j', 'k', 'l':
				r++
				continue
			}
			break
		}
	}
	entries = append(entries, ui.MenuEntry{
		Text:     ui.Text("Actions").WithStyle(hstyle),
		Disabled: true,
	})
	entries = append(entries, ui.MenuEntry{
		Text: ui.Text("s - Save and dive"),
		Keys: []gruid.Key{gruid.Key('s'), gruid.Key('S')},
	})
	entries = append(entries, ui.MenuEntry{
		Text: ui.Text("q - Dive without mods"),
		Keys: []gruid.Key{gruid.Key('q'), gruid.Key('Q')},
	})
	altBgEntries(entries)
	md.menu.main.SetBox(&ui.Box{Title: ui.Text(title).WithStyle(gruid.Style{}.WithFg(ColorYellow))})
	md.menu.main.SetEntries(entries)
	md.menu.main.SetActiveInvokable(0)
	md.updateModDesc(gameMods[0])
	md.mode = modeNewGame
	md.menu.mode = modeSelection // not really needed
}
