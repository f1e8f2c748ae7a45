package main

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// MaxFOVRange is the maximum distance in player's field of view.
const MaxFOVRange = 10

// UpdateFOV updates the field of view. It has to be called each time the
// player moves or some terrain change impacts vision.
func (g *Game) UpdateFOV() {
	pp := g.PP()
	rg := gruid.NewRange(-MaxFOVRange, -MaxFOVRange, MaxFOVRange+1, MaxFOVRange+1)
	g.Map.FOV.SetRange(rg.Add(pp).Intersect(g.Map.Terrain.Range()))
	lt := &lighter{g: g}
	g.Map.FOV.VisionMap(lt, pp)
	g.Map.FOVPts = g.Map.FOV.SSCVisionMap(pp, g.MaxFOVRange(), g.Map.Transparent, false)
}

// MaxFOVRange returns the field of view range in use, adjusted for game mods.
func (g *Game) MaxFOVRange() int {
	return min(g.FOVRadius, MaxFOVRange)
}

// UpdateKnowledge updates player's knowledge based on FOV. It has to be called at
// the end of each turn.
func (g *Game) UpdateKnowledge() {
	pp := g.PP()
	maxRange := g.MaxFOVRange()
	for _, p := range g.Map.FOVPts {
		if paths.DistanceManhattan(p, pp) > maxRange {
			continue
		}
		cost, ok := g.Map.FOV.At(p)
		if !ok || cost > maxRange {
			continue
		}
		g.SeeTerrain(p)
	}
	g.SeeEntities()
}

// SeeTerrain handles knowledge changes about a given position during a FOV
// update.
func (g *Game) SeeTerrain(p gruid.Point) {
	t := g.Map.Terrain.At(p)
	if g.Map.KnownTerrain.At(p) != t {
		g.md.auto.aemRebuild = true
		g.Map.KnownTerrain.Set(p, t)
	}
}

// SensePassable handles knowledge changes about an unknown terrain's
// passability.
func (g *Game) SensePassable(p gruid.Point) {
	if g.Map.KnownTerrain.At(p) == Unknown {
		g.md.auto.aemRebuild = true
		g.Map.KnownTerrain.Set(p, UnknownPassable)
	}
}

// SeeEntities handles knowledge changes about the last known position of
// map entities that are in the field of view.
func (g *Game) SeeEntities() {
	for i, e := range g.NPMapEntities() {
		if g.InFOV(e.P) {
			g.SenseEntity(i, "see")
		} else if g.InFOV(e.KnownP) {
			e.KnownP = InvalidPos
		}
	}
}

// SenseEntity updates known position of an entity to its real one. The given
// verb is used in the log message (one of "see", "notice").
func (g *Game) SenseEntity(i ID, verb string) {
	ei := g.Entity(i)
	if ei.Role == nil {
		return
	}
	if !ei.Seen {
		ei.Seen = true
		g.SensePassable(ei.P)
		g.md.auto.mode = noAuto
		switch ri := ei.Role.(type) {
		case *Actor:
			if !ri.IsAlive() {
				break
			}
			g.Logf("You %s %s.", verb, One(ei.Name))
		case *Heartstone:
			g.LogfStyled("You %s the Heartstone!", logNotable, verb)
			g.StoryLogf("Found the Heartstone (distance: %d)", g.ppDist(ei.P))
		default:
			g.LogfStyled("You %s %s.", logNotable, verb, One(ei.Name))
			g.StoryLogf("Spotted %s (distance: %d)", One(ei.Name), g.ppDist(ei.P))
		}
	}
	ei.KnownP = ei.P
	if r, ok := ei.Role.(*Actor); ok {
		r.KnownDead = r.IsDead()
	}
}

func (g *Game) ppDist(p gruid.Point) int {
	return paths.DistanceManhattan(g.PP(), p)
}

// ResetKnowledge initializes player's knowledge of map terrain.
func (g *Game) ResetKnowledge() {
	g.Map.KnownTerrain.Fill(Unknown)
	for _, e := range g.NPMapEntities() {
		e.KnownP = InvalidPos
	}
}

// InFOV reports whether p is in the player's field of view.
func (g *Game) InFOV(p gruid.Point) bool {
	cost, ok := g.Map.FOV.At(p)
	return ok && cost <= g.MaxFOVRange() && g.Map.FOV.Visible(p)
}

// DangerInFOV reports whether there is a foe in the player's field of view.
func (g *Game) DangerInFOV() bool {
	for i, ai := range g.Monsters() {
		if ai.IsAlive() && g.InFOV(g.Entity(i).P) {
			return true
		}
	}
	return false
}

// lighter implements rl.Lighter
type lighter struct {
	g *Game
}

func (lt *lighter) MaxCost(src gruid.Point) int {
	return lt.g.MaxFOVRange() + 1
}

func (lt *lighter) Cost(src, from, to gruid.Point) int {
	// No terrain cost on the origin, so vision works from inside a
	// doorway.
	if src != from && !lt.g.Map.Transparent(from) {
		return lt.MaxCost(src)
	}
	return paths.DistanceManhattan(to, from)
}
