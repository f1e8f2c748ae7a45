// This file handles generation of entities on new levels.

package main

import (
	"codeberg.org/anaseto/gruid"
)

// InitPlayer initializes the player entity for the rest of the game.
func (g *Game) InitPlayer() {
	g.Entities[PlayerID] = &Entity{
		Name: "You",
		Rune: '@',
		Role: NewActor(1, 0, 10, Player),
	}
	for i := FirstInventoryID; i < FirstMapID; i++ {
		g.Entities[i] = emptySlot()
	}
}

func emptySlot() *Entity {
	return &Entity{Name: "(empty slot)", P: InvalidPos, Seen: true}
}

// PopulateLevel generates the entities for a new level, placing them on the
// map.
func (g *Game) PopulateLevel() {
	// Reset non-player actors.
	g.CleanEntities()
	g.Map.ActorCache = g.Map.ActorCache.New()
	g.placePlayerOnNewLevel()
	g.Spawner = NewSpawner(g)
	g.Spawner.SpawnInitial(g)
	g.GenItems()
	switch g.Map.Level {
	case g.ProcInfo.GuardLevel:
		g.genGuardPost()
	case MapLevels:
		g.genHeartstone()
	}
}

// placePlayerOnNewLevel puts the player at the level's entry point.
func (g *Game) placePlayerOnNewLevel() {
	pl := g.PlayerEntity()
	pl.P = g.Map.Entry
	if pl.P == InvalidPos {
		panic("invalid player position")
	}
	pl.KnownP = pl.P
	g.Map.ActorCache.SetU(pl.P, PlayerID)
}

// GenItems scatters this level's potions and gold piles over free room
// tiles.
func (g *Game) GenItems() {
	gpi := g.ProcInfo
	for range gpi.NPotions[g.Map.Level-1] {
		p := g.randomItemFloor()
		if p == InvalidPos {
			continue
		}
		kind := g.NextPotionKind()
		g.AddEntity(&Entity{
			Name:   kind.String(),
			Rune:   '!',
			P:      p,
			KnownP: InvalidPos,
			Role:   &Potion{Kind: kind},
		})
	}
	for range gpi.NGold[g.Map.Level-1] {
		p := g.randomItemFloor()
		if p == InvalidPos {
			continue
		}
		g.AddEntity(goldPileEntity(p, 5+g.IntN(10*g.Map.Level)))
	}
}

func goldPileEntity(p gruid.Point, amount int) *Entity {
	return &Entity{
		Name:   "pile of gold",
		Rune:   '$',
		P:      p,
		KnownP: InvalidPos,
		Role:   &GoldPile{Amount: amount},
	}
}

// randomItemFloor returns a free room tile with no item nor actor on it, or
// InvalidPos if none could be found.
func (g *Game) randomItemFloor() gruid.Point {
	for range 200 {
		p := g.RandomPassable()
		if g.Map.RoomAt(p) == nil || p == g.Map.Stairs || p == g.Map.Heartstone {
			continue
		}
		if i, _ := g.ActorAt(p); i >= 0 {
			continue
		}
		if j, _ := g.ItemAt(p); j >= 0 {
			continue
		}
		return p
	}
	return InvalidPos
}

// genGuardPost places a band of goblins watching over a treasure room on the
// level chosen at procgen time.
func (g *Game) genGuardPost() {
	rooms := g.Map.Rooms
	pp := g.PP()
	var best *Room
	for i := range rooms {
		r := &rooms[i]
		if r.Contains(pp) || r.Contains(g.Map.Stairs) {
			continue
		}
		if best == nil || Distance(r.Center(), pp) > Distance(best.Center(), pp) {
			best = r
		}
	}
	if best == nil {
		return
	}
	c := best.Center()
	if j, _ := g.ItemAt(c); j < 0 && g.Map.Passable(c) {
		g.AddEntity(goldPileEntity(c, 25+g.IntNBiasedUp(25)))
	}
	g.genGuards(Goblin, c, 2+g.IntN(2))
}

// genHeartstone embeds the Heartstone in the deepest level, watched over by
// a band of orcs.
func (g *Game) genHeartstone() {
	p := g.Map.Heartstone
	if p == InvalidPos {
		// Should not happen: the last level always gets a stone spot.
		p = g.RandomPassable()
		g.Map.Heartstone = p
	}
	g.AddEntity(&Entity{
		Name:   "Heartstone",
		Rune:   '*',
		P:      p,
		KnownP: InvalidPos,
		Role:   &Heartstone{},
	})
	g.genGuards(Orc, p, 3)
}

// genGuards places up to n guards of the given species on free tiles around
// p.
func (g *Game) genGuards(mk speciesKind, p gruid.Point, n int) {
	var cands []gruid.Point
	for y := p.Y - 2; y <= p.Y+2; y++ {
		for x := p.X - 2; x <= p.X+2; x++ {
			q := gruid.Point{X: x, Y: y}
			if q != p && inMap(q) && g.IsFree(q) && q != g.Map.Stairs {
				cands = append(cands, q)
			}
		}
	}
	g.rand.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
	for i := 0; i < n && i < len(cands); i++ {
		g.Spawner.spawnAt(g, mk, cands[i])
	}
}
