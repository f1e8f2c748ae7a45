package main

import (
	"codeberg.org/anaseto/gruid"
)

// Monster perception and memory parameters. Gameplay balance assumes these,
// so they are constants rather than configuration.
const (
	VisionRange  = 8  // how far monsters see
	HostileRange = 8  // sighting distance that triggers a chase
	AlertRange   = 10 // sighting distance that raises attention
	MemoryTurns  = 5  // updates before a chasing monster gives up
	FleeMemory   = 3  // updates before a fleeing monster calms down
)

// HandleMonsterTurn handles AI for a monster actor with given ID. The ID
// should correspond to a non-player actor.
func (g *Game) HandleMonsterTurn(i ID, ai *Actor) {
	g.UpdateMind(i, ai)
	to := g.NextMove(i, ai)
	ei := g.Entity(i)
	if to == ei.P {
		return
	}
	if j, aj := g.ActorAt(to); j >= 0 {
		if j == PlayerID {
			g.BumpAttack(i, j, ai, aj)
		}
		// Attacking and bumping into another monster both consume the
		// turn without moving: the cached step stays pending.
		ai.Mind.rewindPath(to)
		return
	}
	if g.Map.Terrain.At(to) == DoorClosed {
		// Only door-opening monsters get routes through closed doors.
		g.Map.OpenDoor(to)
		if g.InFOV(to) {
			g.Logf("The %s opens the door.", ei.Name)
		}
		ai.Mind.rewindPath(to)
		return
	}
	g.MoveActor(i, ai, to)
}

// UpdateMind updates the monster's perception of the player and applies the
// mindstate transition rules. It is called once per turn, before moving.
func (g *Game) UpdateMind(i ID, ai *Actor) {
	mi := ai.mind()
	p := g.Entity(i).P
	pp := g.PP()
	if g.MonsterSees(p, pp) {
		mi.LastSeen = pp
		mi.Unseen = 0
		switch {
		case ai.shouldFlee():
			g.setMindState(i, ai, Fleeing)
		case Distance(p, pp) <= HostileRange:
			g.setMindState(i, ai, Hostile)
		case Distance(p, pp) <= AlertRange:
			g.setMindState(i, ai, Alert)
		}
		return
	}
	mi.Unseen++
	switch mi.State {
	case Fleeing:
		if mi.Unseen > FleeMemory {
			g.setMindState(i, ai, Idle)
		}
	case Hostile, Alert:
		if mi.Unseen <= MemoryTurns {
			break
		}
		if mi.Room != nil && !mi.Room.Contains(p) {
			g.setMindState(i, ai, Returning)
		} else {
			g.setMindState(i, ai, Idle)
		}
	case Returning:
		if mi.Room != nil && mi.Room.Contains(p) {
			g.setMindState(i, ai, Idle)
		}
	}
}

// MonsterSees reports whether a monster at p sees the player position pp:
// within vision range with an unobstructed line of sight.
func (g *Game) MonsterSees(p, pp gruid.Point) bool {
	return Distance(p, pp) <= VisionRange && LineOfSight(p, pp, g.Map)
}

// shouldFlee reports whether the monster would rather run: below a quarter
// of its maximum health. Orcs never flee, whatever their wounds.
func (a *Actor) shouldFlee() bool {
	if a.Kind == Orc {
		return false
	}
	return 4*a.HP < a.MaxHP
}

// setMindState switches a monster to a new mindstate, logging noteworthy
// changes that happen in view.
func (g *Game) setMindState(i ID, ai *Actor, st Mindstate) {
	mi := ai.Mind
	if mi.State == st {
		return
	}
	mi.setState(st)
	ei := g.Entity(i)
	if !g.InFOV(ei.P) {
		return
	}
	switch st {
	case Hostile:
		if ai.DoesAny(Aggressive) {
			g.Logf("The %s charges!", ei.Name)
		} else {
			g.Logf("The %s notices you.", ei.Name)
		}
	case Fleeing:
		g.LogfStyled("The %s turns to flee!", logSpecial, ei.Name)
	}
}

// NextMove decides the monster's next position according to its mindstate.
// Returning the current position means holding still for the turn.
func (g *Game) NextMove(i ID, ai *Actor) gruid.Point {
	mi := ai.mind()
	switch mi.State {
	case Alert:
		if mi.LastSeen == InvalidPos {
			// On alert but with nothing to go on.
			return g.Entity(i).P
		}
		return g.chaseMove(i, ai)
	case Hostile:
		return g.chaseMove(i, ai)
	case Fleeing:
		return g.fleeMove(ai, g.Entity(i).P)
	case Returning:
		return g.returnMove(i, ai)
	default:
		return g.wanderMove(i, ai)
	}
}

// monsterGrid returns the pathing view of the map for the given monster:
// door-opening monsters treat closed doors as walkable.
func (g *Game) monsterGrid(ai *Actor) PathGrid {
	if ai.DoesAny(OpensDoors) {
		return doorOpenGrid{g.Map}
	}
	return g.Map
}

// chaseMove moves toward the player, or toward their last seen position when
// out of sight. The path is cached and recomputed only once consumed, so a
// chasing monster may follow a slightly stale route for a few turns.
func (g *Game) chaseMove(i ID, ai *Actor) gruid.Point {
	mi := ai.Mind
	p := g.Entity(i).P
	target := g.PP()
	if mi.Unseen > 0 && mi.LastSeen != InvalidPos {
		target = mi.LastSeen
	}
	if mi.Cursor >= len(mi.Path) {
		mi.Path = FindPath(p, target, g.monsterGrid(ai), true)
		mi.Cursor = 0
	}
	if mi.Cursor < len(mi.Path) {
		to := mi.Path[mi.Cursor]
		mi.Cursor++
		return to
	}
	// No path: close in greedily.
	return g.greedyApproach(ai, p, target)
}

// greedyApproach returns the walkable neighbor closest to target, keeping
// the current position when no neighbor improves on it.
func (g *Game) greedyApproach(ai *Actor, from, target gruid.Point) gruid.Point {
	grid := g.monsterGrid(ai)
	best := Distance(from, target)
	to := from
	for _, d := range Dirs8 {
		q := from.Add(d)
		if !grid.InBounds(q) || !grid.Walkable(q) {
			continue
		}
		if dist := Distance(q, target); dist < best {
			best, to = dist, q
		}
	}
	return to
}

// fleeMove picks the neighbor strictly maximizing distance from the player,
// staying put when none is farther than the current position. Flight is
// recomputed fresh each turn, with no path cache.
func (g *Game) fleeMove(ai *Actor, from gruid.Point) gruid.Point {
	grid := g.monsterGrid(ai)
	pp := g.PP()
	best := Distance(from, pp)
	to := from
	for _, d := range Dirs8 {
		q := from.Add(d)
		if !grid.InBounds(q) || !grid.Walkable(q) {
			continue
		}
		if dist := Distance(q, pp); dist > best {
			best, to = dist, q
		}
	}
	return to
}

// returnMove heads back to the home room's center, with the same path
// caching as chaseMove. Monsters without a home have nowhere to return to
// and hold still.
func (g *Game) returnMove(i ID, ai *Actor) gruid.Point {
	mi := ai.Mind
	if mi.Room == nil || mi.Home == InvalidPos {
		return g.Entity(i).P
	}
	p := g.Entity(i).P
	if mi.Cursor >= len(mi.Path) {
		mi.Path = FindPath(p, mi.Home, g.monsterGrid(ai), true)
		mi.Cursor = 0
	}
	if mi.Cursor < len(mi.Path) {
		to := mi.Path[mi.Cursor]
		mi.Cursor++
		return to
	}
	return p
}

// wanderMove takes an aimless step every third update, bound to the home
// room when one is assigned.
func (g *Game) wanderMove(i ID, ai *Actor) gruid.Point {
	mi := ai.Mind
	p := g.Entity(i).P
	mi.Wander++
	if mi.Wander < 3 {
		return p
	}
	mi.Wander = 0
	var cands []gruid.Point
	for _, d := range Dirs8 {
		q := p.Add(d)
		if !g.Map.Walkable(q) {
			continue
		}
		if mi.Room != nil && !mi.Room.Contains(q) {
			continue
		}
		cands = append(cands, q)
	}
	if len(cands) == 0 {
		return p
	}
	return cands[g.IntN(len(cands))]
}
