// This file contains map-related code.

package main

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// These constants represent the different kind of map tiles.
const (
	Wall       rl.Cell = iota // obstructing and blocks vision
	Floor                     // passable ground
	DoorClosed                // obstructing and blocks vision until opened
	DoorOpen                  // passable doorway
	Stairs                    // passable stairway to the next level

	UnknownPassable // cell is known to be passable (for KnownTerrain field of Map)
	Unknown         // cell is unknown (for KnownTerrain field of Map)
)

func TerrainName(t rl.Cell) string {
	switch t {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case DoorClosed:
		return "closed door"
	case DoorOpen:
		return "open door"
	case Stairs:
		return "stairs"
	case UnknownPassable:
		return "passable terrain"
	default:
		return "unknown terrain"
	}
}

func TerrainDesc(t rl.Cell) string {
	switch t {
	case Wall:
		return "A rough-hewn gallery wall that blocks vision."
	case Floor:
		return "Passable plain ground."
	case DoorClosed:
		return "A closed timber door. Walk into it to open it."
	case DoorOpen:
		return "An open timber door."
	case Stairs:
		return "A stairway leading down to the next gallery."
	case UnknownPassable:
		return "Passable terrain of unknown nature."
	default:
		return "Terrain of unknown nature."
	}
}

// IsKnown reports whether the terrain is known.
func IsKnown(t rl.Cell) bool {
	return t != Unknown && t != UnknownPassable
}

// Room represents an axis-aligned rectangular room carved into the map.
type Room struct {
	X, Y, W, H int
}

// Center returns the room's center point.
func (r *Room) Center() gruid.Point {
	return gruid.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether a position lies within the room.
func (r *Room) Contains(p gruid.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Overlaps reports whether two rooms overlap after growing both by pad tiles
// on every side. Rooms merely touching at edges do not overlap at pad 0.
func (r *Room) Overlaps(o *Room, pad int) bool {
	if r.X-pad > o.X+o.W-1+pad || o.X-pad > r.X+r.W-1+pad {
		return false
	}
	if r.Y-pad > o.Y+o.H-1+pad || o.Y-pad > r.Y+r.H-1+pad {
		return false
	}
	return true
}

// Map represents the rectangular map of the game's level.
type Map struct {
	Terrain      rl.Grid       // terrain
	KnownTerrain rl.Grid       // player's terrain knowledge
	FOV          *rl.FOV       // player's field of view
	FOVPts       []gruid.Point // points in ssc field of view
	Level        int           // current map level
	Rooms        []Room        // rooms carved during generation
	Entry        gruid.Point   // player's arrival position
	Stairs       gruid.Point   // position of the stairway down (if any)

	ActorCache CacheGrid[ID] // for caching actor positions

	Heartstone gruid.Point // position of the Heartstone (deepest level only)
}

// NewMap returns a new map object ready for use.
func NewMap() *Map {
	m := &Map{
		Terrain:      rl.NewGrid(MapWidth, MapHeight),
		KnownTerrain: rl.NewGrid(MapWidth, MapHeight),
		FOV:          rl.NewFOV(gruid.NewRange(-MaxFOVRange, -MaxFOVRange, MaxFOVRange+1, MaxFOVRange+1)),
		Entry:        InvalidPos,
		Stairs:       InvalidPos,
		Heartstone:   InvalidPos,
	}
	return m
}

// inMap reports whether a position is within map bounds (assumming they're
// relative to the upper-left map's corner).
func inMap(p gruid.Point) bool {
	return p.X >= 0 && p.X < MapWidth && p.Y >= 0 && p.Y < MapHeight
}

// Passable reports whether the given position is passable. In other words,
// that it's not an obstacle.
func (m *Map) Passable(p gruid.Point) bool {
	// Cells outside the map are considered as walls, so not walkable.
	return Passable(m.Terrain.At(p))
}

// Transparent reports whether the given position does not block vision.
func (m *Map) Transparent(p gruid.Point) bool {
	return Transparent(m.Terrain.At(p))
}

// NoWallAt reports whether the given position is not a (regular) wall.
func (m *Map) NoWallAt(p gruid.Point) bool {
	// Cells outside the map are considered as walls, so not walkable.
	return m.Terrain.At(p) != Wall
}

// Passable reports whether a given terrain type is Passable.
func Passable(t rl.Cell) bool {
	return t != Wall && t != DoorClosed
}

// Transparent reports whether a given terrain type lets vision through.
func Transparent(t rl.Cell) bool {
	return t != Wall && t != DoorClosed
}

// OnStairs reports whether the given position is a stairway tile.
func (m *Map) OnStairs(p gruid.Point) bool {
	return m.Terrain.At(p) == Stairs
}

// RoomAt returns the room covering a given position, or nil if the position
// belongs to a corridor or wall.
func (m *Map) RoomAt(p gruid.Point) *Room {
	for i := range m.Rooms {
		if m.Rooms[i].Contains(p) {
			return &m.Rooms[i]
		}
	}
	return nil
}

// OpenDoor replaces a closed door with an open one at the given position. It
// reports whether there was a door to open.
func (m *Map) OpenDoor(p gruid.Point) bool {
	if m.Terrain.At(p) != DoorClosed {
		return false
	}
	m.Terrain.Set(p, DoorOpen)
	return true
}

// MapRune returns the character rune representing a given terrain.
func MapRune(t rl.Cell) (r rune) {
	switch t {
	case Wall:
		r = '#'
	case Floor:
		r = '.'
	case DoorClosed:
		r = '+'
	case DoorOpen:
		r = '\''
	case Stairs:
		r = '>'
	case UnknownPassable:
		r = '♫'
	default:
		r = '?'
	}
	return r
}

// RuneAt returns the character rune at a given position.
func (m *Map) RuneAt(p gruid.Point) rune {
	t := m.KnownTerrain.At(p)
	if t != Unknown {
		return MapRune(t)
	}
	for q := range m.PassableNeighbors(p) {
		if tq := m.KnownTerrain.At(q); IsKnown(tq) && Passable(tq) {
			return '¤'
		}
	}
	return ' '
}

// CacheGrid represents a map-sized grid of any type.
type CacheGrid[T any] []T

// At returns the value in the grid at a given position.
func (bs CacheGrid[T]) At(p gruid.Point) T {
	var zero T
	i := p.Y*MapWidth + p.X
	if i >= 0 && i < len(bs) && p.X >= 0 && p.X < MapWidth {
		return bs[i]
	}
	return zero
}

// AtU returns the value in the grid at a given position. It doesn't check
// boundaries.
func (bs CacheGrid[T]) AtU(p gruid.Point) T {
	i := p.Y*MapWidth + p.X
	return bs[i]
}

// Set puts a value at the given position in the grid.
func (bs CacheGrid[T]) Set(p gruid.Point, v T) {
	i := p.Y*MapWidth + p.X
	if i < 0 || i > len(bs) || p.X < 0 || p.X >= MapWidth {
		return
	}
	bs[i] = v
}

// SetU puts a value at the given position in the grid. It doesn't check
// boundaries.
func (bs CacheGrid[T]) SetU(p gruid.Point, v T) {
	i := p.Y*MapWidth + p.X
	bs[i] = v
}

// New prepares a map-sized grid of zero values. It uses bs if already
// initialized.
func (bs CacheGrid[T]) New() CacheGrid[T] {
	if bs == nil {
		return make(CacheGrid[T], MapWidth*MapHeight)
	}
	clear(bs)
	return bs
}
