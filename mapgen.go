package main

import (
	"math"
	"math/rand/v2"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// NLayouts represents the number of different kinds of map layouts.
const NLayouts = 4

// MapLayout represents the various kinds of room layout profiles.
type MapLayout int

const (
	LayoutStandard MapLayout = iota
	LayoutSparse
	LayoutDense
	LayoutWarren
)

// params returns the room count and room size ranges for the layout,
// starting from the configured ones.
func (ml MapLayout) params(cfg MapGenConfig) (nmin, nmax, smin, smax int) {
	nmin, nmax = cfg.MinRooms, cfg.MaxRooms
	smin, smax = cfg.MinRoomSize, cfg.MaxRoomSize
	switch ml {
	case LayoutSparse:
		nmax = max(nmin, nmax-2)
	case LayoutDense:
		nmin = nmax
	case LayoutWarren:
		nmin = min(nmax, nmin+2)
		smax = max(smin, smax-3)
	}
	return nmin, nmax, smin, smax
}

// MapGen gathers terrain and room information for generating a new map.
type MapGen struct {
	terrain rl.Grid
	rooms   []Room
	rand    *rand.Rand
}

// GenerateMap produces a new map level using the given layout profile. It
// retries until generation produces a single connected walkable component,
// falling back to one large room if that keeps failing.
func (g *Game) GenerateMap(ml MapLayout) {
	const maxAttempts = 20
	for range maxAttempts {
		if g.generateMap(ml) {
			return
		}
	}
	g.generateFallbackMap()
}

// generateMap produces a new map and reports whether its walkable cells
// form a single connected component.
func (g *Game) generateMap(ml MapLayout) bool {
	mt := g.Map.Terrain
	mt.Fill(Wall)
	mg := &MapGen{terrain: mt, rand: g.rand}
	nmin, nmax, smin, smax := ml.params(GameConfig.MapGen)
	n := nmin + mg.rand.IntN(max(1, nmax-nmin+1))
	mg.genRooms(n, smin, smax)
	if len(mg.rooms) < 2 {
		return false
	}
	mg.connectRooms()
	mg.genDoors()
	g.recordRooms(mg)
	return g.connectedFrom(g.Map.Entry)
}

// generateFallbackMap carves one large room. Used when random generation
// keeps producing disconnected maps.
func (g *Game) generateFallbackMap() {
	mt := g.Map.Terrain
	mt.Fill(Wall)
	mg := &MapGen{terrain: mt, rand: g.rand}
	r := Room{X: 2, Y: 2, W: MapWidth - 4, H: MapHeight - 4}
	mg.rooms = append(mg.rooms, r)
	mg.carveRoom(r)
	g.Map.Rooms = mg.rooms
	g.Map.Entry = gruid.Point{X: r.X + 1, Y: r.Y + r.H/2}
	g.placeStairs(gruid.Point{X: r.X + r.W - 2, Y: r.Y + r.H/2})
}

// recordRooms copies the generated room list to the map and chooses the
// entry, stairs and Heartstone positions: the player enters at the first
// room's center, and the way down (or the stone, on the deepest level) lies
// at the last room's center.
func (g *Game) recordRooms(mg *MapGen) {
	g.Map.Rooms = mg.rooms
	g.Map.Entry = mg.rooms[0].Center()
	g.placeStairs(mg.rooms[len(mg.rooms)-1].Center())
}

// placeStairs puts the stairway down at p, or the Heartstone spot on the
// deepest level.
func (g *Game) placeStairs(p gruid.Point) {
	g.Map.Stairs = InvalidPos
	g.Map.Heartstone = InvalidPos
	if g.Map.Level >= MapLevels {
		g.Map.Heartstone = p
		return
	}
	g.Map.Stairs = p
	g.Map.Terrain.Set(p, Stairs)
}

// genRooms places up to n non-overlapping rooms by rejection sampling,
// keeping one tile of padding between rooms and from the map border, and
// carves their floors.
func (mg *MapGen) genRooms(n, smin, smax int) {
	const maxTries = 300
	tries := 0
	for len(mg.rooms) < n && tries < maxTries {
		tries++
		w := min(smin+mg.rand.IntN(max(1, smax-smin+1)), MapWidth-4)
		h := min(smin+mg.rand.IntN(max(1, smax-smin+1)), MapHeight-4)
		r := Room{
			X: 1 + mg.rand.IntN(MapWidth-w-2),
			Y: 1 + mg.rand.IntN(MapHeight-h-2),
			W: w,
			H: h,
		}
		if mg.overlaps(r) {
			continue
		}
		mg.rooms = append(mg.rooms, r)
		mg.carveRoom(r)
	}
}

func (mg *MapGen) overlaps(r Room) bool {
	for i := range mg.rooms {
		if r.Overlaps(&mg.rooms[i], 1) {
			return true
		}
	}
	return false
}

func (mg *MapGen) carveRoom(r Room) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			mg.terrain.Set(gruid.Point{X: x, Y: y}, Floor)
		}
	}
}

// connectRooms carves L-shaped corridors along a minimum spanning tree of
// the room centers (Prim over Euclidean center distance).
func (mg *MapGen) connectRooms() {
	n := len(mg.rooms)
	intree := make([]bool, n)
	dist := make([]float64, n)
	from := make([]int, n)
	intree[0] = true
	for i := 1; i < n; i++ {
		dist[i] = centerDist(mg.rooms[0], mg.rooms[i])
	}
	for range n - 1 {
		best := -1
		for i := range n {
			if !intree[i] && (best < 0 || dist[i] < dist[best]) {
				best = i
			}
		}
		intree[best] = true
		mg.carveCorridor(mg.rooms[from[best]].Center(), mg.rooms[best].Center())
		for i := range n {
			if !intree[i] {
				if d := centerDist(mg.rooms[best], mg.rooms[i]); d < dist[i] {
					dist[i] = d
					from[i] = best
				}
			}
		}
	}
}

func centerDist(r, o Room) float64 {
	p, q := r.Center(), o.Center()
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// carveCorridor digs an L-shaped corridor between two points, with the leg
// order randomized.
func (mg *MapGen) carveCorridor(p, q gruid.Point) {
	mid := gruid.Point{X: q.X, Y: p.Y}
	if mg.rand.IntN(2) == 0 {
		mid = gruid.Point{X: p.X, Y: q.Y}
	}
	mg.carveLine(p, mid)
	mg.carveLine(mid, q)
}

// carveLine digs a straight horizontal or vertical line of floor.
func (mg *MapGen) carveLine(p, q gruid.Point) {
	dir := toDir(q.Sub(p))
	for ; p != q; p = p.Add(dir) {
		mg.terrain.Set(p, Floor)
	}
	mg.terrain.Set(q, Floor)
}

// genDoors places a closed door on each doorway around the rooms: a floor
// tile on the room's outer ring with walls on both opposite sides.
func (mg *MapGen) genDoors() {
	for i := range mg.rooms {
		r := &mg.rooms[i]
		for x := r.X - 1; x <= r.X+r.W; x++ {
			mg.genDoorAt(gruid.Point{X: x, Y: r.Y - 1})
			mg.genDoorAt(gruid.Point{X: x, Y: r.Y + r.H})
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			mg.genDoorAt(gruid.Point{X: r.X - 1, Y: y})
			mg.genDoorAt(gruid.Point{X: r.X + r.W, Y: y})
		}
	}
}

func (mg *MapGen) genDoorAt(p gruid.Point) {
	if !inMap(p) || mg.terrain.At(p) != Floor {
		return
	}
	wallAt := func(q gruid.Point) bool {
		return !inMap(q) || mg.terrain.At(q) == Wall
	}
	ew := wallAt(p.Shift(1, 0)) && wallAt(p.Shift(-1, 0))
	ns := wallAt(p.Shift(0, 1)) && wallAt(p.Shift(0, -1))
	if ew != ns {
		mg.terrain.Set(p, DoorClosed)
	}
}

// connectedFrom reports whether every walkable cell is reachable from p.
// Closed doors count as walkable here, since bumping into them opens them.
func (g *Game) connectedFrom(p gruid.Point) bool {
	pass := func(q gruid.Point) bool {
		return inMap(q) && g.Map.NoWallAt(q)
	}
	ps := g.PR.CCMap(&MapPath{passable: pass}, p)
	ntiles := MapWidth*MapHeight - g.Map.Terrain.Count(Wall)
	return len(ps) == ntiles
}
