package main

import (
	"testing"

	"codeberg.org/anaseto/gruid"
)

func TestNextLevelXP(t *testing.T) {
	want := []int{0, 100, 300, 600, 1000}
	for lvl := 1; lvl <= 4; lvl++ {
		if xp := NextLevelXP(lvl); xp != want[lvl] {
			t.Errorf("NextLevelXP(%d) = %d instead of %d", lvl, xp, want[lvl])
		}
	}
}

func TestXPLevel(t *testing.T) {
	tests := []struct{ xp, lvl int }{
		{0, 1}, {99, 1}, {100, 2}, {299, 2}, {300, 3}, {599, 3}, {600, 4},
	}
	for _, tc := range tests {
		if lvl := XPLevel(tc.xp); lvl != tc.lvl {
			t.Errorf("XPLevel(%d) = %d instead of %d", tc.xp, lvl, tc.lvl)
		}
	}
}

func TestLevelUpGrowth(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 5, Y: 5})
	pa := g.PlayerActor()
	g.GainXP(100)
	if pa.MaxHP != 15 || pa.Attack != 2 || pa.Defense != 0 {
		t.Errorf("level 2 stats %d/%d/%d instead of 15/2/0",
			pa.MaxHP, pa.Attack, pa.Defense)
	}
	if pa.HP != 15 {
		t.Errorf("HP %d: the max HP gain does not heal", pa.HP)
	}
	g.GainXP(200)
	if pa.MaxHP != 20 || pa.Attack != 2 || pa.Defense != 1 {
		t.Errorf("level 3 stats %d/%d/%d instead of 20/2/1",
			pa.MaxHP, pa.Attack, pa.Defense)
	}
	g.GainXP(300)
	if pa.MaxHP != 25 || pa.Attack != 3 || pa.Defense != 1 {
		t.Errorf("level 4 stats %d/%d/%d instead of 25/3/1",
			pa.MaxHP, pa.Attack, pa.Defense)
	}
	if g.Stats.Levels != 3 {
		t.Errorf("%d level-ups recorded instead of 3", g.Stats.Levels)
	}
}

func TestGainXPMultiLevel(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 5, Y: 5})
	pa := g.PlayerActor()
	// A single award crossing several thresholds applies every level-up.
	g.GainXP(600)
	if lvl := XPLevel(pa.XP); lvl != 4 {
		t.Fatalf("level %d instead of 4 after the award", lvl)
	}
	if pa.MaxHP != 25 || pa.Attack != 3 || pa.Defense != 1 {
		t.Errorf("stats %d/%d/%d instead of 25/3/1 after three level-ups",
			pa.MaxHP, pa.Attack, pa.Defense)
	}
}

func TestBrittleBonesLevelUp(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 5, Y: 5})
	g.Mods[ModBrittleBones] = true
	pa := g.PlayerActor()
	g.GainXP(100)
	if pa.MaxHP != 12 {
		t.Errorf("max HP %d instead of 12 with brittle bones", pa.MaxHP)
	}
	if pa.Attack != 2 || pa.Defense != 0 {
		t.Errorf("attack %d defense %d growth changed by brittle bones",
			pa.Attack, pa.Defense)
	}
}

func TestPlayerBump(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 5, Y: 5})
	if !g.PlayerBump(gruid.Point{X: 1, Y: 0}) {
		t.Errorf("bump into free floor did not consume the turn")
	}
	if pp := g.PP(); pp != (gruid.Point{X: 6, Y: 5}) {
		t.Errorf("player at %v instead of moving right", pp)
	}
	movePlayerTo(g, gruid.Point{X: 1, Y: 5})
	if g.PlayerBump(gruid.Point{X: -1, Y: 0}) {
		t.Errorf("bump into a wall consumed the turn")
	}
	if pp := g.PP(); pp != (gruid.Point{X: 1, Y: 5}) {
		t.Errorf("player at %v walked into the wall", pp)
	}
	g.Map.Terrain.Set(gruid.Point{X: 0, Y: 5}, DoorClosed)
	if !g.PlayerBump(gruid.Point{X: -1, Y: 0}) {
		t.Errorf("opening a door did not consume the turn")
	}
	if g.Map.Terrain.At(gruid.Point{X: 0, Y: 5}) != DoorOpen {
		t.Errorf("door not opened by the bump")
	}
	if pp := g.PP(); pp != (gruid.Point{X: 1, Y: 5}) {
		t.Errorf("player at %v moved on the door-opening turn", pp)
	}
}

func TestPlayerBumpAttacks(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 10, Y: 5})
	_, aj := addMonster(t, g, GutterRat, gruid.Point{X: 11, Y: 5})
	pa := g.PlayerActor()
	pa.Attack = 20
	hp := aj.HP
	for n := 0; aj.HP == hp; n++ {
		if n > 50 {
			t.Fatalf("no bump attack landed after %d tries", n)
		}
		if !g.PlayerBump(gruid.Point{X: 1, Y: 0}) {
			t.Fatalf("bump attack did not consume the turn")
		}
	}
	if pp := g.PP(); pp != (gruid.Point{X: 10, Y: 5}) {
		t.Errorf("player at %v moved onto the monster", pp)
	}
}
