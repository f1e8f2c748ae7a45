package main

import (
	"slices"
	"testing"

	"codeberg.org/anaseto/gruid"
)

// testGrid is a literal terrain fixture for pathfinding tests: '#' is a
// wall, '+' a closed door, anything else walkable open ground.
type testGrid []string

func (tg testGrid) InBounds(p gruid.Point) bool {
	return p.Y >= 0 && p.Y < len(tg) && p.X >= 0 && p.X < len(tg[p.Y])
}

func (tg testGrid) Walkable(p gruid.Point) bool {
	return tg.InBounds(p) && tg[p.Y][p.X] != '#' && tg[p.Y][p.X] != '+'
}

func (tg testGrid) Transparent(p gruid.Point) bool {
	return tg.Walkable(p)
}

// find returns the position of the first occurrence of a marker rune.
func (tg testGrid) find(r byte) gruid.Point {
	for y := range tg {
		for x := range tg[y] {
			if tg[y][x] == r {
				return gruid.Point{X: x, Y: y}
			}
		}
	}
	return InvalidPos
}

// checkPath verifies the structural properties of a FindPath result: it
// starts next to start, ends at goal, and every step is a single walkable
// move.
func checkPath(t *testing.T, tg testGrid, start, goal gruid.Point, path []gruid.Point, diagonals bool) {
	t.Helper()
	if len(path) == 0 {
		t.Fatalf("no path from %v to %v", start, goal)
	}
	if path[len(path)-1] != goal {
		t.Errorf("path ends at %v instead of goal %v", path[len(path)-1], goal)
	}
	if start != goal && path[0] == start {
		t.Errorf("path includes start %v", start)
	}
	prev := start
	for _, p := range path {
		d := p.Sub(prev)
		if abs(d.X) > 1 || abs(d.Y) > 1 || p == prev {
			t.Errorf("bad step %v -> %v", prev, p)
		}
		if !diagonals && d.X != 0 && d.Y != 0 {
			t.Errorf("diagonal step %v -> %v in cardinal-only path", prev, p)
		}
		if !tg.Walkable(p) {
			t.Errorf("step onto unwalkable tile %v", p)
		}
		prev = p
	}
}

func TestFindPathOpenGround(t *testing.T) {
	tg := testGrid{
		"##########",
		"#a......b#",
		"#........#",
		"#........#",
		"##########",
	}
	a, b := tg.find('a'), tg.find('b')
	path := FindPath(a, b, tg, true)
	checkPath(t, tg, a, b, path, true)
	if len(path) != 7 {
		t.Errorf("open ground path has %d steps instead of 7: %v", len(path), path)
	}
	path = FindPath(a, b, tg, false)
	checkPath(t, tg, a, b, path, false)
	if len(path) != 7 {
		t.Errorf("cardinal path has %d steps instead of 7: %v", len(path), path)
	}
}

func TestFindPathDiagonalShortcut(t *testing.T) {
	tg := testGrid{
		"########",
		"#a.....#",
		"#......#",
		"#......#",
		"#.....b#",
		"########",
	}
	a, b := tg.find('a'), tg.find('b')
	path := FindPath(a, b, tg, true)
	checkPath(t, tg, a, b, path, true)
	// Chebyshev distance: diagonals cover both axes at once.
	if len(path) != 5 {
		t.Errorf("diagonal path has %d steps instead of 5: %v", len(path), path)
	}
	path = FindPath(a, b, tg, false)
	checkPath(t, tg, a, b, path, false)
	// Manhattan distance without diagonal moves.
	if len(path) != 8 {
		t.Errorf("cardinal path has %d steps instead of 8: %v", len(path), path)
	}
}

func TestFindPathAroundWall(t *testing.T) {
	tg := testGrid{
		"#########",
		"#...#...#",
		"#.a.#.b.#",
		"#...#...#",
		"#...#...#",
		"#.......#",
		"#########",
	}
	a, b := tg.find('a'), tg.find('b')
	path := FindPath(a, b, tg, true)
	checkPath(t, tg, a, b, path, true)
	for _, p := range path {
		if p.X == 4 && p.Y != 5 {
			t.Errorf("path crosses the wall at %v", p)
		}
	}
}

func TestFindPathSamePosition(t *testing.T) {
	tg := testGrid{
		"#####",
		"#.a.#",
		"#####",
	}
	a := tg.find('a')
	path := FindPath(a, a, tg, true)
	if len(path) != 1 || path[0] != a {
		t.Errorf("path from a position to itself is %v instead of [%v]", path, a)
	}
}

func TestFindPathUnreachable(t *testing.T) {
	tg := testGrid{
		"#########",
		"#a..#.b.#",
		"#...#...#",
		"#########",
	}
	a, b := tg.find('a'), tg.find('b')
	if path := FindPath(a, b, tg, true); path != nil {
		t.Errorf("found a path through a solid wall: %v", path)
	}
}

func TestFindPathClosedDoor(t *testing.T) {
	tg := testGrid{
		"#########",
		"#a..+.b.#",
		"#########",
	}
	a, b := tg.find('a'), tg.find('b')
	if path := FindPath(a, b, tg, true); path != nil {
		t.Errorf("found a path through a closed door: %v", path)
	}
}

func TestFindPathDeterministic(t *testing.T) {
	tg := testGrid{
		"##########",
		"#a.......#",
		"#.####...#",
		"#........#",
		"#...####.#",
		"#.......b#",
		"##########",
	}
	a, b := tg.find('a'), tg.find('b')
	first := FindPath(a, b, tg, true)
	checkPath(t, tg, a, b, first, true)
	for range 10 {
		if path := FindPath(a, b, tg, true); !slices.Equal(path, first) {
			t.Fatalf("path changed between identical calls: %v then %v", first, path)
		}
	}
}

func TestLineOfSight(t *testing.T) {
	tg := testGrid{
		"###########",
		"#a...#...b#",
		"#.........#",
		"#c.......d#",
		"###########",
	}
	a, b := tg.find('a'), tg.find('b')
	c, d := tg.find('c'), tg.find('d')
	if LineOfSight(a, b, tg) {
		t.Errorf("sight from %v to %v crosses the wall", a, b)
	}
	if !LineOfSight(c, d, tg) {
		t.Errorf("no sight along the clear row from %v to %v", c, d)
	}
	if !LineOfSight(a, c, tg) {
		t.Errorf("no sight along the clear column from %v to %v", a, c)
	}
}

func TestLineOfSightDestinationUnchecked(t *testing.T) {
	tg := testGrid{
		"#######",
		"#a.#..#",
		"#######",
	}
	a := tg.find('a')
	wall := gruid.Point{X: 3, Y: 1}
	if !LineOfSight(a, wall, tg) {
		t.Errorf("target tile at %v should not block sight of itself", wall)
	}
	far := gruid.Point{X: 5, Y: 1}
	if LineOfSight(a, far, tg) {
		t.Errorf("wall at %v should block sight beyond it", wall)
	}
}

func TestDistance(t *testing.T) {
	for _, tc := range []struct {
		a, b gruid.Point
		want float64
	}{
		{gruid.Point{X: 0, Y: 0}, gruid.Point{X: 3, Y: 4}, 5},
		{gruid.Point{X: 2, Y: 2}, gruid.Point{X: 2, Y: 2}, 0},
		{gruid.Point{X: 1, Y: 1}, gruid.Point{X: 1, Y: 5}, 4},
		{gruid.Point{X: -1, Y: 0}, gruid.Point{X: 1, Y: 0}, 2},
	} {
		if d := Distance(tc.a, tc.b); d != tc.want {
			t.Errorf("Distance(%v, %v) = %v instead of %v", tc.a, tc.b, d, tc.want)
		}
	}
}

// TestFindPathGeneratedLevels cross-checks FindPath against connected
// component maps on generated levels: two connected positions must always
// get a valid path.
func TestFindPathGeneratedLevels(t *testing.T) {
	for range 10 {
		g := newTestGame()
		pass := func(p gruid.Point) bool {
			return inMap(p) && g.Map.NoWallAt(p)
		}
		grid := doorOpenGrid{g.Map}
		from := walkableWithDoorsPoint(g.Map.Terrain, g.rand)
		g.PR.CCMap(&MappingPath{passable: pass}, from)
		for range 20 {
			to := walkableWithDoorsPoint(g.Map.Terrain, g.rand)
			path := FindPath(from, to, grid, true)
			if g.PR.CCMapAt(to) == g.PR.CCMapAt(from) {
				if from != to && len(path) == 0 {
					t.Errorf("no path between connected %v and %v:\n%s\n",
						from, to, map2String(g.Map.Terrain))
					continue
				}
				checkGridPath(t, grid, from, to, path)
			} else if path != nil {
				t.Errorf("path between disconnected %v and %v:\n%s\n",
					from, to, map2String(g.Map.Terrain))
			}
		}
	}
}

// checkGridPath is checkPath for arbitrary PathGrid implementations.
func checkGridPath(t *testing.T, grid PathGrid, start, goal gruid.Point, path []gruid.Point) {
	t.Helper()
	if len(path) == 0 {
		t.Fatalf("no path from %v to %v", start, goal)
	}
	if path[len(path)-1] != goal {
		t.Errorf("path ends at %v instead of goal %v", path[len(path)-1], goal)
	}
	prev := start
	for _, p := range path {
		d := p.Sub(prev)
		if abs(d.X) > 1 || abs(d.Y) > 1 || start != goal && p == prev {
			t.Errorf("bad step %v -> %v", prev, p)
		}
		if !grid.Walkable(p) {
			t.Errorf("step onto unwalkable tile %v", p)
		}
		prev = p
	}
}
