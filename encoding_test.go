package main

import (
	"slices"
	"testing"

	"codeberg.org/anaseto/gruid"
)

func TestGameSaveRoundTrip(t *testing.T) {
	g := newTestGame()
	g.Turn = 42
	g.Gold = 17
	// Give one monster a mind worth remembering.
	var mid ID = -1
	for i, a := range g.Monsters() {
		mi := a.mind()
		mi.setState(Hostile)
		mi.LastSeen = g.PP()
		mi.Unseen = 2
		mid = i
		break
	}
	if mid < 0 {
		t.Fatalf("no monster on the generated level")
	}
	data, err := g.GameSave()
	if err != nil {
		t.Fatalf("GameSave: %v", err)
	}
	lg, err := g.DecodeGameSave(data)
	if err != nil {
		t.Fatalf("DecodeGameSave: %v", err)
	}
	if lg.Turn != g.Turn || lg.Gold != g.Gold {
		t.Errorf("turn %d gold %d instead of %d and %d", lg.Turn, lg.Gold, g.Turn, g.Gold)
	}
	if lg.Map.Level != g.Map.Level {
		t.Errorf("level %d instead of %d", lg.Map.Level, g.Map.Level)
	}
	if lg.Version != Version {
		t.Errorf("version %q instead of %q", lg.Version, Version)
	}
	if len(lg.Entities) != len(g.Entities) {
		t.Fatalf("%d entities instead of %d", len(lg.Entities), len(g.Entities))
	}
	if pp := lg.Entity(PlayerID).P; pp != g.PP() {
		t.Errorf("player at %v instead of %v", pp, g.PP())
	}
	la := lg.Entity(mid).Actor()
	if la.Kind != g.Entity(mid).Actor().Kind {
		t.Errorf("monster kind %v changed across the save", la.Kind)
	}
	lmi := la.Mind
	if lmi == nil || lmi.State != Hostile || lmi.LastSeen != g.PP() || lmi.Unseen != 2 {
		t.Errorf("monster mind %+v not preserved", lmi)
	}
	for p, c := range g.Map.Terrain.All() {
		if lc := lg.Map.Terrain.At(p); lc != c {
			t.Fatalf("terrain at %v decoded as %v instead of %v", p, lc, c)
		}
	}
}

func TestPrefsSaveRoundTrip(t *testing.T) {
	prefs := &Prefs{
		AdvancedNewGame: true,
		DarkColors:      true,
		Mods:            []bool{true, false, true},
		NormalModeKeys:  map[gruid.Key]Action{"w": ActionBump{Delta: gruid.Point{X: 0, Y: -1}}},
		Version:         Version,
	}
	data, err := prefs.PrefsSave()
	if err != nil {
		t.Fatalf("PrefsSave: %v", err)
	}
	lp, err := DecodePrefsSave(data)
	if err != nil {
		t.Fatalf("DecodePrefsSave: %v", err)
	}
	if !lp.AdvancedNewGame || !lp.DarkColors || lp.Version != Version {
		t.Errorf("flags not preserved: %+v", lp)
	}
	if !slices.Equal(lp.Mods, prefs.Mods) {
		t.Errorf("mods %v instead of %v", lp.Mods, prefs.Mods)
	}
	if a, ok := lp.NormalModeKeys["w"].(ActionBump); !ok || a.Delta != (gruid.Point{X: 0, Y: -1}) {
		t.Errorf("key binding not preserved: %+v", lp.NormalModeKeys)
	}
}
