// This file implements pathfinding and line of sight queries: a float-cost A*
// used by monster movement, Bresenham rays for perception checks, and pather
// adapters for the library algorithms used in travel and map generation.

package main

import (
	"container/heap"
	"math"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// Dirs8 contains unit offsets for the eight compass directions, in order N,
// NE, E, SE, S, SW, W, NW.
var Dirs8 = [8]gruid.Point{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
}

// Dirs4 contains unit offsets for the four cardinal directions, in order N,
// E, S, W.
var Dirs4 = [4]gruid.Point{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// Distance returns the Euclidean distance between two positions. It ignores
// obstacles.
func Distance(a, b gruid.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// PathGrid is the read-only terrain view consumed by FindPath and
// LineOfSight. Map satisfies it; tests use literal fixture grids.
type PathGrid interface {
	InBounds(p gruid.Point) bool
	Walkable(p gruid.Point) bool
	Transparent(p gruid.Point) bool
}

// InBounds reports whether a position is within map bounds.
func (m *Map) InBounds(p gruid.Point) bool {
	return inMap(p)
}

// Walkable reports whether the given position can be stepped onto.
func (m *Map) Walkable(p gruid.Point) bool {
	return inMap(p) && m.Passable(p)
}

// doorOpenGrid is a grid view for door-opening monsters: closed doors count
// as walkable so their paths can go through them.
type doorOpenGrid struct {
	*Map
}

func (dg doorOpenGrid) Walkable(p gruid.Point) bool {
	return inMap(p) && (dg.Map.Passable(p) || dg.Terrain.At(p) == DoorClosed)
}

// Costs of a single step during path search.
const (
	stepCost     = 1.0
	diagStepCost = 1.41
)

// pathNode is an open-set entry during A* search. The seq field records
// insertion order so that equal-cost nodes pop in push order.
type pathNode struct {
	p   gruid.Point
	g   float64 // cost from start
	f   float64 // g plus heuristic estimate
	seq int
}

type pathQueue []pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq pathQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *pathQueue) Push(x any) { *pq = append(*pq, x.(pathNode)) }

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	x := old[n-1]
	*pq = old[:n-1]
	return x
}

// FindPath searches for a shortest path from start to goal using A* with
// Euclidean heuristic. Cardinal steps cost 1.0 and diagonal steps 1.41 when
// diagonals are allowed. The returned path excludes start: its first element
// is the first step, its last is goal. It returns nil when no path exists,
// and a single-element path when start equals goal. Equal-cost nodes are
// expanded in insertion order, so results are deterministic for a given
// grid.
func FindPath(start, goal gruid.Point, grid PathGrid, diagonals bool) []gruid.Point {
	if start == goal {
		return []gruid.Point{goal}
	}
	gScore := map[gruid.Point]float64{start: 0}
	cameFrom := map[gruid.Point]gruid.Point{}
	pq := pathQueue{{p: start, g: 0, f: Distance(start, goal)}}
	seq := 0
	dirs := Dirs8[:]
	if !diagonals {
		dirs = Dirs4[:]
	}
	for pq.Len() > 0 {
		n := heap.Pop(&pq).(pathNode)
		if n.p == goal {
			return reconstructPath(cameFrom, goal)
		}
		if gs, ok := gScore[n.p]; ok && n.g > gs {
			// Stale entry: the node was reached more cheaply since
			// this one was pushed.
			continue
		}
		for _, d := range dirs {
			q := n.p.Add(d)
			if !grid.InBounds(q) || !grid.Walkable(q) {
				continue
			}
			cost := stepCost
			if q.X != n.p.X && q.Y != n.p.Y {
				cost = diagStepCost
			}
			tg := n.g + cost
			if gs, ok := gScore[q]; !ok || tg < gs {
				gScore[q] = tg
				cameFrom[q] = n.p
				seq++
				heap.Push(&pq, pathNode{p: q, g: tg, f: tg + Distance(q, goal), seq: seq})
			}
		}
	}
	return nil
}

// reconstructPath walks the predecessor links back from goal. The start
// position has no predecessor entry, so the result excludes it.
func reconstructPath(cameFrom map[gruid.Point]gruid.Point, goal gruid.Point) []gruid.Point {
	var path []gruid.Point
	p := goal
	for {
		prev, ok := cameFrom[p]
		if !ok {
			break
		}
		path = append(path, p)
		p = prev
	}
	// The walk collected goal..first-step; reverse in place.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// LineOfSight reports whether a straight Bresenham ray from one position to
// another traverses only in-bounds, vision-transparent tiles. The
// destination tile itself is not checked, so a target standing in a wall
// nook remains visible. The result is not guaranteed to be symmetric:
// integer rounding can differ between the two directions.
func LineOfSight(from, to gruid.Point, grid PathGrid) bool {
	dx := abs(to.X - from.X)
	dy := abs(to.Y - from.Y)
	x, y := from.X, from.Y
	xinc, yinc := 1, 1
	if from.X >= to.X {
		xinc = -1
	}
	if from.Y >= to.Y {
		yinc = -1
	}
	err := dx - dy
	for x != to.X || y != to.Y {
		p := gruid.Point{X: x, Y: y}
		if !grid.InBounds(p) || !grid.Transparent(p) {
			return false
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += xinc
		}
		if e2 < dx {
			err += dx
			y += yinc
		}
	}
	return true
}

// MapPath implements the paths.Pather interface and is used to provide pathing
// information in map generation.
type MapPath struct {
	passable func(gruid.Point) bool
	nbs      paths.Neighbors
}

func (mp *MapPath) Neighbors(p gruid.Point) []gruid.Point {
	return mp.nbs.Cardinal(p, mp.passable)
}

// MappingPath implements the paths.Pather interface and is used to provide
// pathing information for connected components (filling interior walls and
// exploration accounting).
type MappingPath struct {
	passable func(p gruid.Point) bool
	nbs      paths.Neighbors
}

func (mp *MappingPath) Neighbors(p gruid.Point) []gruid.Point {
	if !mp.passable(p) {
		// We don't want to mark interior walls as explored.
		return nil
	}
	return mp.nbs.Cardinal(p, inMap)
}

// PlayerPassable reports whether the player knows the given position to be
// walkable. Closed doors count as walkable because bumping into them opens
// them.
func (g *Game) PlayerPassable(p gruid.Point) bool {
	if !inMap(p) {
		return false
	}
	t := g.Map.KnownTerrain.At(p)
	return IsKnown(t) && (Passable(t) || t == DoorClosed)
}

// PlayerPath returns a player travel path between two map positions. It only
// goes through known terrain.
func (g *Game) PlayerPath(from, to gruid.Point) []gruid.Point {
	return g.PR.JPSPath(nil, from, to, g.PlayerPassable, false)
}
