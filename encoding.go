package main

import (
	"bytes"
	"compress/zlib"
	"encoding/gob"

	"codeberg.org/anaseto/gruid"
)

func init() {
	// Actions in key-config.
	gob.Register(ActionAutoExplore{})
	gob.Register(ActionBump{})
	gob.Register(ActionConfig{})
	gob.Register(ActionCursorBump{})
	gob.Register(ActionCursorRun{})
	gob.Register(ActionDescend{})
	gob.Register(ActionDrop{})
	gob.Register(ActionDump{})
	gob.Register(ActionExamineModeToggle{})
	gob.Register(ActionHelp{})
	gob.Register(ActionInteract{})
	gob.Register(ActionInventory{})
	gob.Register(ActionMenu{})
	gob.Register(ActionNextItem{})
	gob.Register(ActionNextMonster{})
	gob.Register(ActionNone{})
	gob.Register(ActionPreviousMonster{})
	gob.Register(ActionQuit{})
	gob.Register(ActionRun{})
	gob.Register(ActionSaveQuit{})
	gob.Register(ActionSetKeys{})
	gob.Register(ActionScroll{})
	gob.Register(ActionTravel{})
	gob.Register(ActionViewMessages{})
	gob.Register(ActionWait{})

	// Items.
	gob.Register(&Potion{})
	gob.Register(&GoldPile{})
	gob.Register(&Heartstone{})

	// Other roles.
	gob.Register(&Actor{})
}

// GameSave returns encoded game data for saving.
func (g *Game) GameSave() ([]byte, error) {
	data := bytes.Buffer{}
	enc := gob.NewEncoder(&data)
	err := enc.Encode(g)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data.Bytes())
	err = w.Close()
	return buf.Bytes(), err
}

// Prefs describes available interface preferences.
type Prefs struct {
	AdvancedNewGame bool                 // whether new games open the mod selection menu
	DarkColors      bool                 // whether to use a dark color theme
	ExamineModeKeys map[gruid.Key]Action // custom examine mode keys
	Mods            []bool               // mod selection for new games
	NormalModeKeys  map[gruid.Key]Action // custom normal mode keys
	Version         string               // preferences' game version
}

// PrefsSave returns encoded preferences data for saving.
func (c *Prefs) PrefsSave() ([]byte, error) {
	data := bytes.Buffer{}
	enc := gob.NewEncoder(&data)
	err := enc.Encode(c)
	if err != nil {
		return nil, err
	}
	return data.Bytes(), nil
}

// DecodeGameSave retrieves a *Game object from game data encoded with
// GameSave.
func (g *Game) DecodeGameSave(data []byte) (*Game, error) {
	buf := bytes.NewReader(data)
	r, err := zlib.NewReader(buf)
	if err != nil {
		return nil, err
	}
	dec := gob.NewDecoder(r)
	lg := &Game{}
	err = dec.Decode(lg)
	if err != nil {
		return nil, err
	}
	err = r.Close()
	return lg, err
}

// DecodePrefsSave retrieves a *Prefs object from preferences data encoded
// with PrefsSave.
func DecodePrefsSave(data []byte) (*Prefs, error) {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	c := &Prefs{}
	err := dec.Decode(c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
