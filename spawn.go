package main

import (
	"math"

	"codeberg.org/anaseto/gruid"
)

// SpawnEntry is one row of the spawn table: the depth band a species appears
// in, its selection weight, and its contribution to the threat level.
type SpawnEntry struct {
	Species  speciesKind `yaml:"species"`
	MinDepth int         `yaml:"min_depth"`
	MaxDepth int         `yaml:"max_depth"`
	Weight   float64     `yaml:"weight"`
	Threat   int         `yaml:"threat"`
}

// DefaultSpawnTable is the built-in spawn table.
var DefaultSpawnTable = []SpawnEntry{
	{GutterRat, 1, 5, 1.0, 1},
	{CaveSpider, 1, 10, 0.8, 2},
	{Kobold, 2, 15, 0.7, 2},
	{OrcRookling, 3, 20, 0.6, 3},
	{Zombie, 5, 30, 0.5, 4},
}

// Spawner controls the monster population of a level: initial placement,
// slow reinforcement during play, and the aggregate threat report.
type Spawner struct {
	Table   []SpawnEntry // static spawn table
	Rate    int          // turns between reinforcement attempts
	Max     int          // live monster cap
	Initial int          // initial population target
	MinDist int          // minimum spawn distance from the player
	OutFOV  bool         // keep spawns outside the player's sight
	RoomPct float64      // share of spawns placed inside rooms
	Counter int          // turns since the last reinforcement attempt
}

// NewSpawner returns a spawner configured from the game configuration and
// the active mods.
func NewSpawner(g *Game) *Spawner {
	c := GameConfig.Spawn
	sp := &Spawner{
		Table:   DefaultSpawnTable,
		Rate:    c.Rate,
		Max:     c.Max,
		Initial: c.Initial,
		MinDist: c.MinDist,
		OutFOV:  c.OutsideFOV,
		RoomPct: c.RoomPct,
	}
	if len(c.Table) > 0 {
		sp.Table = c.Table
	}
	if g.Mod(ModTeemingDark) {
		sp.Rate = max(1, sp.Rate/2)
	}
	return sp
}

// spawnDistance is the integer-truncated Euclidean distance used by the
// placement rules.
func spawnDistance(p, q gruid.Point) int {
	d := q.Sub(p)
	return int(math.Sqrt(float64(d.X*d.X + d.Y*d.Y)))
}

// validAt reports whether p can receive a spawn: walkable and free, not the
// stairway, far enough from the player, and out of sight when required.
func (sp *Spawner) validAt(g *Game, p gruid.Point) bool {
	if !g.Map.Walkable(p) || g.Map.Terrain.At(p) == Stairs {
		return false
	}
	if i, _ := g.ActorAt(p); i >= 0 {
		return false
	}
	d := spawnDistance(p, g.PP())
	if d < sp.MinDist {
		return false
	}
	// Flat distance stands in for the field of view here.
	if sp.OutFOV && d <= g.MaxFOVRange() {
		return false
	}
	return true
}

// SpawnPoints classifies the map interior into candidate spawn points,
// split into room-covered and corridor subsets.
func (sp *Spawner) SpawnPoints(g *Game) (room, corridor []gruid.Point) {
	for y := 1; y < MapHeight-1; y++ {
		for x := 1; x < MapWidth-1; x++ {
			p := gruid.Point{X: x, Y: y}
			if !sp.validAt(g, p) {
				continue
			}
			if g.Map.RoomAt(p) != nil {
				room = append(room, p)
			} else {
				corridor = append(corridor, p)
			}
		}
	}
	return room, corridor
}

// ValidSpawnPoints returns every candidate spawn point on the level.
func (sp *Spawner) ValidSpawnPoints(g *Game) []gruid.Point {
	room, corridor := sp.SpawnPoints(g)
	return append(room, corridor...)
}

// SelectSpecies draws a species appropriate for the given depth from the
// table, weighted by entry weight. It returns the empty kind when no table
// entry covers the depth.
func (sp *Spawner) SelectSpecies(g *Game, depth int) speciesKind {
	var cands []SpawnEntry
	total := 0.0
	for _, e := range sp.Table {
		if depth >= e.MinDepth && depth <= e.MaxDepth {
			cands = append(cands, e)
			total += e.Weight
		}
	}
	if len(cands) == 0 {
		return ""
	}
	roll := total * g.rand.Float64()
	sum := 0.0
	for _, e := range cands {
		sum += e.Weight
		if roll <= sum {
			return e.Species
		}
	}
	return cands[0].Species
}

// SpawnInitial populates a freshly generated level. Room points receive
// their share of the population first and get the containing room as home
// territory; corridors take the remainder, spilling back into unused room
// points when they run short.
func (sp *Spawner) SpawnInitial(g *Game) {
	room, corridor := sp.SpawnPoints(g)
	g.rand.Shuffle(len(room), func(i, j int) { room[i], room[j] = room[j], room[i] })
	g.rand.Shuffle(len(corridor), func(i, j int) { corridor[i], corridor[j] = corridor[j], corridor[i] })
	nroom := int(float64(sp.Initial) * sp.RoomPct)
	spawned := 0
	ri := 0
	for ; ri < len(room) && spawned < nroom; ri++ {
		if sp.trySpawnAt(g, room[ri]) {
			spawned++
		}
	}
	for ci := 0; ci < len(corridor) && spawned < sp.Initial; ci++ {
		if sp.trySpawnAt(g, corridor[ci]) {
			spawned++
		}
	}
	for ; ri < len(room) && spawned < sp.Initial; ri++ {
		if sp.trySpawnAt(g, room[ri]) {
			spawned++
		}
	}
}

// Update advances the reinforcement clock. Once every Rate turns it resets
// the clock and attempts a single spawn, skipped when the live population
// is at the cap.
func (sp *Spawner) Update(g *Game) {
	sp.Counter++
	if sp.Counter < sp.Rate {
		return
	}
	sp.Counter = 0
	if g.MonsterCount() >= sp.Max {
		return
	}
	room, corridor := sp.SpawnPoints(g)
	pool := corridor
	if g.rand.Float64() < sp.RoomPct {
		pool = room
		if len(pool) == 0 {
			pool = corridor
		}
	} else if len(pool) == 0 {
		pool = room
	}
	if len(pool) == 0 {
		return
	}
	sp.trySpawnAt(g, pool[g.IntN(len(pool))])
}

func (sp *Spawner) trySpawnAt(g *Game, p gruid.Point) bool {
	mk := sp.SelectSpecies(g, g.Map.Level)
	if mk == "" {
		return false
	}
	return sp.spawnAt(g, mk, p)
}

// spawnAt places a new monster of the given species at p, assigning the
// containing room, if any, as its home territory. Species without a
// template are skipped.
func (sp *Spawner) spawnAt(g *Game, mk speciesKind, p gruid.Point) bool {
	e, err := NewMonster(mk)
	if err != nil {
		return false
	}
	e.P = p
	i := g.AddEntity(e)
	g.Map.ActorCache.SetU(p, i)
	if r := g.Map.RoomAt(p); r != nil {
		e.Actor().AssignRoom(r)
	}
	return true
}

// ThreatLevel sums the spawn-table threat of every live monster. It
// recomputes from scratch so deaths are reflected immediately.
func (sp *Spawner) ThreatLevel(g *Game) int {
	total := 0
	for _, a := range g.Monsters() {
		if e := sp.entry(a.Kind); e != nil {
			total += e.Threat
		}
	}
	return total
}

func (sp *Spawner) entry(mk speciesKind) *SpawnEntry {
	for i := range sp.Table {
		if sp.Table[i].Species == mk {
			return &sp.Table[i]
		}
	}
	return nil
}
