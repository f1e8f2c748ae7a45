// This file defines the model structure, as well as initialization functions.

package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"slices"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/ui"
)

const (
	UIWidth  = 80 // UI width
	UIHeight = 24 // UI height
)

var (
	DisableAnimations bool = false       // whether to disable animations
	LogGame                = false       // write game logs to file
	ColorMode              = ColorMode16 // default 16-color palette
)

// colorMode represents various color compatibility modes.
type colorMode int

const (
	ColorMode16    colorMode = iota
	ColorMode8               // use 8-color compatibility mode (default for windows)
	ColorMode256             // use solarized 256-color approximation
	ColorMode24bit           // use true color selenized palette
)

// CustomKeys tracks whether we're using custom key bindings.
var CustomKeys bool

// UIPrefs contains the current interface preferences.
var UIPrefs Prefs

// mode represents the main model mode
type mode int

const (
	modeLoadGame         mode = iota // game load screen (load game)
	modeNewGame                      // mod selection (new game)
	modeNormal                       // map game mode
	modeCritical                     // hp critical warning pause
	modePager                        // pager (logs, help, keys)
	modeMenu                         // menu (game menu, inventory, settings)
	modeEnd                          // game end: win or death
	modeQuitConfirmation             // waiting for no-save quit confirmation
	modeQuitting                     // wait until end message
)

// model describes the gruid.Model of the game.
type model struct {
	action      Action     // action to handle
	anims       Animations // animations
	auto        *auto      // auto-travel mode info
	desc        *ui.Label  // description label (for monsters, terrain)
	gameEnded   bool       // whether the game ended
	g           *Game      // game state
	gd          gruid.Grid // drawing grid
	keysNormal  map[gruid.Key]Action
	keysTarget  map[gruid.Key]Action
	log         *ui.Label // game's last log messages
	menu        *menu     // menus (Menu, Settings, Inventory, Keymaps)
	menuActions []Action  // invokable actions in last game/help/config menu
	mode        mode      // main mode
	pager       *pager    // pager (logs and the like)
	status      *gameStatus
	targ        *targeting
}

func (md *model) init() gruid.Effect {
	md.mode = modeLoadGame
	md.initStructures()
	md.initWidgets()
	md.initKeys()
	md.applyKeyConfig()

	g := md.g
	load, err := g.Load()
	md.g.md = md // handy cycle
	if load {
		g.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		// Start a new game: record the seed first, so that dumps can
		// name the run.
		g.Seed = rand.Uint64()
		g.rand = rand.New(rand.NewPCG(g.Seed, g.Seed))
		if UIPrefs.AdvancedNewGame {
			g.Mods = slices.Clone(UIPrefs.Mods)
			md.modSelectionMenu()
		} else {
			g.Mods = make([]bool, NMods)
			md.startNewGame()
		}
	}
	if err != nil {
		g.LogStyled("Warning: could not load old saved game… starting new game.", logError)
		log.Printf("Error: %v", err)
	}
	md.targ.CancelExamine()
	md.InitAnimations()
	return gruid.Sub(subSig)
}

func (md *model) initStructures() {
	md.auto = &auto{}
	md.auto.PRauto = paths.NewPathRange(gruid.NewRange(0, 0, MapWidth, MapHeight))
}

func (md *model) initWidgets() {
	md.log = ui.NewLabel(ui.StyledText{}.WithMarkups(Markups))
	md.desc = ui.NewLabel(ui.StyledText{}.WithMarkups(Markups))
	md.desc.AdjustWidth = false
	md.status = &gameStatus{}
	md.status.desc = ui.NewLabel(ui.StyledText{}.WithMarkups(Markups))
	md.pager = &pager{}
	md.pager.pg = ui.NewPager(ui.PagerConfig{
		Grid: gruid.NewGrid(UIWidth, UIHeight-1),
		Box:  &ui.Box{},
		Keys: ui.PagerKeys{Quit: []gruid.Key{gruid.KeySpace, "x", "X", gruid.KeyEscape}},
	})
	md.pager.markup = ui.StyledText{}.WithMarkups(Markups)
	style := ui.MenuStyle{
		Active: gruid.Style{Fg: ColorYellow},
	}
	md.menu = &menu{}
	md.menu.main = ui.NewMenu(ui.MenuConfig{
		Grid:  gruid.NewGrid(UIWidth/2, UIHeight-1),
		Box:   &ui.Box{},
		Style: style,
		Keys:  ui.MenuKeys{Quit: []gruid.Key{gruid.KeySpace, "x", "X", gruid.KeyEscape}},
	})
	md.menu.keys = ui.NewMenu(ui.MenuConfig{
		Grid:  gruid.NewGrid(UIWidth, UIHeight-1),
		Box:   &ui.Box{},
		Style: style,
		Keys:  ui.MenuKeys{Quit: []gruid.Key{gruid.KeySpace, "x", "X", gruid.KeyEscape}},
	})
	md.status.menu = ui.NewMenu(ui.MenuConfig{
		Grid:  gruid.NewGrid(UIWidth, 1),
		Style: ui.MenuStyle{Layout: gruid.Point{X: 0, Y: 1}, Active: style.Active},
	})
}

func (md *model) initKeys() {
	md.keysNormal = map[gruid.Key]Action{
		gruid.KeyEscape:     ActionNone{},
		gruid.KeyArrowLeft:  ActionBump{Delta: gruid.Point{X: -1, Y: 0}},
		gruid.KeyArrowDown:  ActionBump{Delta: gruid.Point{X: 0, Y: 1}},
		gruid.KeyArrowUp:    ActionBump{Delta: gruid.Point{X: 0, Y: -1}},
		gruid.KeyArrowRight: ActionBump{Delta: gruid.Point{X: 1, Y: 0}},
		"h":                 ActionBump{Delta: gruid.Point{X: -1, Y: 0}},
		"j":                 ActionBump{Delta: gruid.Point{X: 0, Y: 1}},
		"k":                 ActionBump{Delta: gruid.Point{X: 0, Y: -1}},
		"l":                 ActionBump{Delta: gruid.Point{X: 1, Y: 0}},
		"y":                 ActionBump{Delta: gruid.Point{X: -1, Y: -1}},
		"u":                 ActionBump{Delta: gruid.Point{X: 1, Y: -1}},
		"b":                 ActionBump{Delta: gruid.Point{X: -1, Y: 1}},
		"n":                 ActionBump{Delta: gruid.Point{X: 1, Y: 1}},
		"H":                 ActionRun{Delta: gruid.Point{X: -1, Y: 0}},
		"J":                 ActionRun{Delta: gruid.Point{X: 0, Y: 1}},
		"K":                 ActionRun{Delta: gruid.Point{X: 0, Y: -1}},
		"L":                 ActionRun{Delta: gruid.Point{X: 1, Y: 0}},
		"Y":                 ActionRun{Delta: gruid.Point{X: -1, Y: -1}},
		"U":                 ActionRun{Delta: gruid.Point{X: 1, Y: -1}},
		"B":                 ActionRun{Delta: gruid.Point{X: -1, Y: 1}},
		"N":                 ActionRun{Delta: gruid.Point{X: 1, Y: 1}},
		".":                 ActionWait{},
		gruid.KeyEnter:      ActionWait{},
		"o":                 ActionAutoExplore{},
		"+":                 ActionNextMonster{},
		"-":                 ActionPreviousMonster{},
		"=":                 ActionNextItem{},
		"x":                 ActionExamineModeToggle{},
		"e":                 ActionInteract{},
		">":                 ActionDescend{},
		"i":                 ActionInventory{},
		"d":                 ActionDrop{},
		gruid.KeySpace:      ActionMenu{},
		"?":                 ActionHelp{},
		"#":                 ActionDump{},
		"S":                 ActionSaveQuit{},
		"C":                 ActionConfig{},
		":":                 ActionSetKeys{},
		"m":                 ActionViewMessages{},
		"Q":                 ActionQuit{},
		gruid.KeyPageDown:   ActionScroll{Delta: gruid.Point{X: 0, Y: -1}},
		gruid.KeyPageUp:     ActionScroll{Delta: gruid.Point{X: 0, Y: 1}},
	}
	md.keysTarget = map[gruid.Key]Action{
		gruid.KeyArrowLeft:  ActionCursorBump{Delta: gruid.Point{X: -1, Y: 0}},
		gruid.KeyArrowDown:  ActionCursorBump{Delta: gruid.Point{X: 0, Y: 1}},
		gruid.KeyArrowUp:    ActionCursorBump{Delta: gruid.Point{X: 0, Y: -1}},
		gruid.KeyArrowRight: ActionCursorBump{Delta: gruid.Point{X: 1, Y: 0}},
		"h":                 ActionCursorBump{Delta: gruid.Point{X: -1, Y: 0}},
		"j":                 ActionCursorBump{Delta: gruid.Point{X: 0, Y: 1}},
		"k":                 ActionCursorBump{Delta: gruid.Point{X: 0, Y: -1}},
		"l":                 ActionCursorBump{Delta: gruid.Point{X: 1, Y: 0}},
		"y":                 ActionCursorBump{Delta: gruid.Point{X: -1, Y: -1}},
		"u":                 ActionCursorBump{Delta: gruid.Point{X: 1, Y: -1}},
		"b":                 ActionCursorBump{Delta: gruid.Point{X: -1, Y: 1}},
		"n":                 ActionCursorBump{Delta: gruid.Point{X: 1, Y: 1}},
		"H":                 ActionCursorRun{Delta: gruid.Point{X: -1, Y: 0}},
		"J":                 ActionCursorRun{Delta: gruid.Point{X: 0, Y: 1}},
		"K":                 ActionCursorRun{Delta: gruid.Point{X: 0, Y: -1}},
		"L":                 ActionCursorRun{Delta: gruid.Point{X: 1, Y: 0}},
		"Y":                 ActionCursorRun{Delta: gruid.Point{X: -1, Y: -1}},
		"U":                 ActionCursorRun{Delta: gruid.Point{X: 1, Y: -1}},
		"B":                 ActionCursorRun{Delta: gruid.Point{X: -1, Y: 1}},
		"N":                 ActionCursorRun{Delta: gruid.Point{X: 1, Y: 1}},
		gruid.KeyEnter:      ActionTravel{},
		".":                 ActionTravel{},
		gruid.KeyEscape:     ActionExamineModeToggle{},
	}
	CustomKeys = false
}

func (md *model) applyKeyConfig() {
	if UIPrefs.NormalModeKeys != nil {
		md.keysNormal = UIPrefs.NormalModeKeys
		// For ensuring menu access and esc functionality.
		md.keysNormal[gruid.KeySpace] = ActionMenu{}
		md.keysNormal[gruid.KeyEscape] = ActionNone{}
	}
	if UIPrefs.ExamineModeKeys != nil {
		md.keysTarget = UIPrefs.ExamineModeKeys
		// For ensuring back to normal mode.
		md.keysTarget[gruid.KeyEscape] = ActionExamineModeToggle{}
	}
}

// InitPrefs loads saved interface preferences, if any, and initializes
// UIPrefs.
func InitPrefs() error {
	UIPrefs.DarkColors = true // default to dark theme
	UIPrefs.Version = Version
	load, err := LoadPrefs()
	if err != nil {
		err = fmt.Errorf("error loading preferences: %v", err)
		saverr := SavePrefs()
		if saverr != nil {
			log.Printf("error resetting badly loaded preferences: %v", err)
		}
		return err
	}
	if load {
		CustomKeys = true
	}
	return err
}
