package main

import (
	"math/rand/v2"
	"strings"
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/rl"
)

const rounds = 100

const maxIterations = 10000

func walkableWithDoorsPoint(mt rl.Grid, r *rand.Rand) gruid.Point {
	size := mt.Size()
	for range maxIterations {
		p := gruid.Point{X: r.IntN(size.X), Y: r.IntN(size.Y)}
		if mt.At(p) != Wall {
			return p
		}
	}
	panic("infinite loop")
}

// connex checks that all non-wall cells belong to one connected component.
// Closed doors count as walkable, since bumping into them opens them.
func connex(mt rl.Grid, pr *paths.PathRange, r *rand.Rand) bool {
	pass := func(p gruid.Point) bool {
		return inMap(p) && mt.At(p) != Wall
	}
	pr.CCMap(&MappingPath{passable: pass}, walkableWithDoorsPoint(mt, r))
	for p, t := range mt.All() {
		if t != Wall && pr.CCMapAt(p) == -1 {
			return false
		}
	}
	return true
}

func map2String(mt rl.Grid) string {
	var sb strings.Builder
	for p, t := range mt.All() {
		if p.X%MapWidth == 0 && p.Y > 0 {
			sb.WriteRune('\n')
		}
		switch t {
		case Wall:
			sb.WriteRune('#')
		case Floor:
			sb.WriteRune('.')
		case DoorClosed:
			sb.WriteRune('+')
		case DoorOpen:
			sb.WriteRune('\'')
		case Stairs:
			sb.WriteRune('>')
		}
	}
	return sb.String()
}

func TestGame(t *testing.T) {
	for range rounds {
		testGame(t)
	}
}

func testGame(t *testing.T) {
	gd := gruid.NewGrid(UIWidth, UIHeight)
	md := &model{gd: gd, g: &Game{}, targ: &targeting{}}
	md.initStructures()
	md.initWidgets()
	md.initKeys()
	g := md.g
	g.md = md
	g.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	g.Mods = make([]bool, NMods)
	g.Mods[ModTeemingDark] = true
	g.Init()
	g.InitLevel()
	checkLevel(t, g)
	for range MapLevels - 1 {
		g.NextLevel()
		checkLevel(t, g)
	}
	if g.Map.Level != MapLevels {
		t.Errorf("deepest level not reached: %d", g.Map.Level)
	}
}

func checkLevel(t *testing.T, g *Game) {
	t.Helper()
	if !connex(g.Map.Terrain, g.PR, g.rand) {
		t.Errorf("Not connex map level %d:\n%s\n", g.Map.Level, map2String(g.Map.Terrain))
	}
	switch {
	case g.Map.Level == MapLevels && g.Map.Heartstone == InvalidPos:
		t.Errorf("Missing Heartstone spot:\n%s\n", map2String(g.Map.Terrain))
	case g.Map.Level < MapLevels && g.Map.Stairs == InvalidPos:
		t.Errorf("Missing stairs at level %d:\n%s\n", g.Map.Level, map2String(g.Map.Terrain))
	case g.Map.Level < MapLevels && g.Map.Terrain.At(g.Map.Stairs) != Stairs:
		t.Errorf("Stairs position is not a stairway at level %d:\n%s\n", g.Map.Level, map2String(g.Map.Terrain))
	}
	if g.Map.Level == MapLevels && !hasHeartstoneEntity(g) {
		t.Errorf("Missing Heartstone entity at level %d", g.Map.Level)
	}
	for i := range g.Map.Rooms {
		for j := i + 1; j < len(g.Map.Rooms); j++ {
			if g.Map.Rooms[i].Overlaps(&g.Map.Rooms[j], 0) {
				t.Errorf("Overlapping rooms %v and %v at level %d", g.Map.Rooms[i], g.Map.Rooms[j], g.Map.Level)
			}
		}
	}
	b := map[gruid.Point]bool{}
	for i := range g.ItemEntities() {
		p := g.Entity(i).P
		if b[p] {
			t.Errorf("Two items in same place: %v", p)
		}
		b[p] = true
	}
	clear(b)
	for i := range g.Actors() {
		p := g.Entity(i).P
		if b[p] {
			t.Errorf("Two actors in same place: %v", p)
		}
		if !g.Map.Passable(p) {
			t.Errorf("Actor on unpassable tile: %v", p)
		}
		b[p] = true
	}
}

func hasHeartstoneEntity(g *Game) bool {
	for _, it := range g.ItemEntities() {
		if _, ok := it.(*Heartstone); ok {
			return true
		}
	}
	return false
}
