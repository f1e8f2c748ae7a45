package main

import (
	"math/rand/v2"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// Version is the game's version string of the last release.
const Version = "v0.3.0-dev"

// InvalidPos is a special variable containing an invalid position.
var InvalidPos = gruid.Point{X: -1, Y: -1}

// ID represents an entity identifier. Valid identifiers start from 0.
// Negative may indicate that the entity no longer exists or never
// existed. The first IDs get some special use, see FirstMapID.
type ID int32

// FirstInventoryID is the ID of the first slot in the inventory.
const FirstInventoryID ID = 0

// InventorySize defines the size of the inventory: one slot per letter from
// a to z.
const InventorySize = 26

// FirstMapID gives the first identifier that corresponds to a non-inventory
// entity. All the IDs preceding FirstMapID are reserved for inventory items.
// The zero ID always denotes an inventory slot, so position caches can use 0
// to mean "no actor here".
const FirstMapID ID = InventorySize + FirstInventoryID

// PlayerID is the player's entity index in game.Entities. This convention is
// enforced for convenience.
const PlayerID ID = FirstMapID

// Game represents information relevant to the current Game's state. It
// contains all the information to map entities, as well as other relevant
// informations, such as statistics.
type Game struct {
	Entities []*Entity        // entity ID index: entity components
	Map      *Map             // current level's map
	PR       *paths.PathRange // path range for library pathfinding (travel, autoexplore)

	Turn int         // current game's turn
	Gold int         // gold collected so far
	Dir  gruid.Point // direction of the last attack or movement

	Logs      *Logs     // game log
	Mods      []bool    // active game mods
	ProcInfo  *ProcInfo // information for procedural generation
	Spawner   *Spawner  // monster spawn manager for the current level
	Stats     *Stats    // game statistics
	Version   string    // game's version
	Seed      uint64    // new-game RNG seed (identifies the run in dumps)
	FOVRadius int       // effective sight radius (after mods)

	win  bool       // whether we just won the game
	rand *rand.Rand // random number generator
	md   *model     // reference to the UI model
}

// These constants define the common width and height of all game maps.
const (
	MapWidth  = 80
	MapHeight = 21
)

// Init initializes main game structures related to map and entities.
// It performs only general initialization not specific to a particular map.
func (g *Game) Init() {
	g.Version = Version
	g.FOVRadius = GameConfig.FOVRadius
	if g.Mod(ModDimSight) {
		g.FOVRadius = 6
	}
	g.InitProcInfo()
	g.Stats = newStats()
	g.Logs = &Logs{}
	g.Entities = make([]*Entity, InventorySize+1)
	g.Map = NewMap() // initialize empty map object
	g.PR = paths.NewPathRange(gruid.NewRange(0, 0, MapWidth, MapHeight))
	g.InitPlayer()
	g.Dir = gruid.Point{X: 1, Y: 0}
}

// InitLevel generates a new map level and populates it with monsters and
// items. Descent is one-way, so entities from the previous level are
// discarded first.
func (g *Game) InitLevel() {
	g.Map.Level++
	g.GenerateMap(g.ProcInfo.Layouts[g.Map.Level-1])
	g.PopulateLevel()
	g.ResetKnowledge()
	g.UpdateFOV()
	g.UpdateKnowledge()
}

// EndTurn processes everything that happens between the end of last player's
// turn and the beginning of the next turn.
func (g *Game) EndTurn() {
	pa := g.PlayerActor()
	// We collect actor ids and shuffle monster ones so that we process
	// monster turns in a non-predictable order. Otherwise monsters spawned
	// earlier would always get first pick of the tiles around the player.
	ids := g.AllActorIDs()
	mids := ids[1:] // monster ids (excluding player)
	g.rand.Shuffle(len(mids), func(i, j int) { mids[i], mids[j] = mids[j], mids[i] })
	for _, i := range mids {
		if pa.IsDead() {
			// If player is dead, make remaining monsters skip
			// their turn.
			break
		}
		ai := g.Entity(i).Actor()
		if ai.IsDead() {
			continue
		}
		g.HandleMonsterTurn(i, ai)
	}
	if pa.IsDead() {
		// The player died before turn ended.
		return
	}
	g.Spawner.Update(g)
	// We update FOV again after all monsters moved and new ones spawned.
	g.UpdateFOV()
	g.UpdateKnowledge()
	g.IncrTurn()
}

// IncrTurn increments the turn count.
func (g *Game) IncrTurn() {
	g.Turn++
	g.Stats.MapTurns[g.Map.Level-1]++
}

// Depth returns the current dungeon depth, for spawn table filtering and
// display.
func (g *Game) Depth() int {
	return g.Map.Level
}

// Mod reports whether a given mod is enabled.
func (g *Game) Mod(m Mod) bool {
	return HasMod(g.Mods, m)
}

// HasMod reports whether the given mod is enabled.
func HasMod(mods []bool, m Mod) bool {
	if int(m) >= len(mods) {
		return false
	}
	return mods[m]
}
