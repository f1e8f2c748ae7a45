package main

import (
	"testing"

	"codeberg.org/anaseto/gruid"
)

func TestValidSpawnPoints(t *testing.T) {
	for range 10 {
		g := newTestGame()
		sp := g.Spawner
		pts := sp.ValidSpawnPoints(g)
		if len(pts) == 0 {
			t.Fatalf("no valid spawn points on a fresh level:\n%s", map2String(g.Map.Terrain))
		}
		pp := g.PP()
		for _, p := range pts {
			if !g.Map.Walkable(p) {
				t.Errorf("spawn point %v not walkable", p)
			}
			if g.Map.Terrain.At(p) == Stairs {
				t.Errorf("spawn point %v on the stairs", p)
			}
			if i, _ := g.ActorAt(p); i >= 0 {
				t.Errorf("spawn point %v already occupied", p)
			}
			d := spawnDistance(p, pp)
			if d < sp.MinDist {
				t.Errorf("spawn point %v only %d away from the player", p, d)
			}
			if sp.OutFOV && d <= g.MaxFOVRange() {
				t.Errorf("spawn point %v within sight distance (%d)", p, d)
			}
		}
	}
}

func TestSelectSpeciesDepth(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 5, Y: 5})
	sp := &Spawner{Table: DefaultSpawnTable}
	for range 100 {
		if mk := sp.SelectSpecies(g, 1); mk != GutterRat && mk != CaveSpider {
			t.Fatalf("species %v drawn outside the depth 1 band", mk)
		}
	}
	// Gutter rats stay in the upper levels.
	for range 100 {
		if mk := sp.SelectSpecies(g, 6); mk == GutterRat || mk == "" {
			t.Fatalf("species %v drawn at depth 6", mk)
		}
	}
	seen := map[speciesKind]bool{}
	for range 200 {
		seen[sp.SelectSpecies(g, 5)] = true
	}
	for _, mk := range []speciesKind{GutterRat, CaveSpider, Kobold, OrcRookling, Zombie} {
		if !seen[mk] {
			t.Errorf("species %v never drawn at depth 5", mk)
		}
	}
	if mk := sp.SelectSpecies(g, 0); mk != "" {
		t.Errorf("species %v drawn above the dungeon", mk)
	}
	if mk := sp.SelectSpecies(g, 31); mk != "" {
		t.Errorf("species %v drawn below the deepest band", mk)
	}
}

func TestThreatLevel(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 3})
	sp := &Spawner{Table: DefaultSpawnTable}
	if tl := sp.ThreatLevel(g); tl != 0 {
		t.Fatalf("threat level %d on an empty level", tl)
	}
	addMonster(t, g, GutterRat, gruid.Point{X: 10, Y: 10})
	addMonster(t, g, CaveSpider, gruid.Point{X: 12, Y: 10})
	_, rookling := addMonster(t, g, OrcRookling, gruid.Point{X: 14, Y: 10})
	// Orcs have no spawn table entry: they guard, they do not count.
	addMonster(t, g, Orc, gruid.Point{X: 16, Y: 10})
	if tl := sp.ThreatLevel(g); tl != 6 {
		t.Errorf("threat level %d instead of 6", tl)
	}
	rookling.HP = 0
	if tl := sp.ThreatLevel(g); tl != 3 {
		t.Errorf("threat level %d instead of 3 after a death", tl)
	}
}

func TestSpawnerCadence(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 3})
	sp := &Spawner{Table: DefaultSpawnTable, Rate: 3, Max: 30, MinDist: 5, RoomPct: 0.95}
	sp.Update(g)
	sp.Update(g)
	if n := g.MonsterCount(); n != 0 {
		t.Fatalf("%d monsters spawned before the rate elapsed", n)
	}
	sp.Update(g)
	if n := g.MonsterCount(); n != 1 {
		t.Fatalf("%d monsters instead of 1 after the reinforcement mark", n)
	}
	if sp.Counter != 0 {
		t.Errorf("counter %d not reset after an attempt", sp.Counter)
	}
	for i, a := range g.Monsters() {
		p := g.Entity(i).P
		if d := spawnDistance(p, g.PP()); d < sp.MinDist {
			t.Errorf("reinforcement at %v only %d away from the player", p, d)
		}
		if a.Kind != GutterRat && a.Kind != CaveSpider {
			t.Errorf("species %v spawned at depth 1", a.Kind)
		}
	}
}

func TestTeemingDarkSpawnRate(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 3})
	base := NewSpawner(g)
	g.Mods[ModTeemingDark] = true
	sp := NewSpawner(g)
	if sp.Rate != max(1, base.Rate/2) {
		t.Errorf("teeming dark rate %d instead of half of %d", sp.Rate, base.Rate)
	}
}

func TestSpawnerRespectsCap(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 3, Y: 3})
	sp := &Spawner{Table: DefaultSpawnTable, Rate: 1, Max: 2, MinDist: 5, RoomPct: 0.95}
	for range 10 {
		sp.Update(g)
	}
	if n := g.MonsterCount(); n != 2 {
		t.Errorf("population %d instead of the cap 2", n)
	}
}

func TestSpawnInitial(t *testing.T) {
	for range 10 {
		g := newTestGame()
		n := g.MonsterCount()
		if n == 0 || n > GameConfig.Spawn.Initial {
			t.Fatalf("initial population %d out of range (1..%d):\n%s",
				n, GameConfig.Spawn.Initial, map2String(g.Map.Terrain))
		}
		for i, a := range g.Monsters() {
			p := g.Entity(i).P
			mi := a.mind()
			if r := g.Map.RoomAt(p); (r != nil) != (mi.Room != nil) {
				t.Errorf("monster at %v: home room does not match the terrain", p)
			}
			if mi.Room != nil && !mi.Room.Contains(p) {
				t.Errorf("monster at %v outside its home room", p)
			}
		}
	}
}
