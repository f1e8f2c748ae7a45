// This file defines functions for basic handling of entities.

package main

import (
	"fmt"
	"iter"

	"codeberg.org/anaseto/gruid"
)

// Entity represents various kinds of map or inventory entities. It gathers
// common components in various fields and uses the Role field for any extra
// ones.
type Entity struct {
	Name   string      // name
	Rune   rune        // default rune (for display)
	P      gruid.Point // map position (InvalidPos if none)
	KnownP gruid.Point // last known position
	Seen   bool        // whether we already saw it once
	Role   any         // non-common role(s) for the entity
}

// String returns the name of the entity.
func (e *Entity) String() string {
	return e.Name
}

// Color returns the color of an entity. Monsters are colored by their
// current disposition, so a glance at the map reads as a threat report.
func (e *Entity) Color() (fg gruid.Color) {
	switch r := e.Role.(type) {
	case *Actor:
		if r.IsPlayer() {
			return ColorBlue
		}
		fg = ColorForeground
		if si := r.Kind.Data(); si != nil {
			fg = si.Color
		}
		if r.Mind == nil {
			return fg
		}
		switch r.Mind.State {
		case Hostile:
			fg = ColorRed
		case Alert:
			fg = ColorYellow
		case Fleeing:
			fg = ColorCyan
		}
	case *Potion:
		fg = ColorYellow
	case *GoldPile:
		fg = ColorYellow
	case *Heartstone:
		fg = ColorViolet
	}
	return fg
}

// IsActor reports whether e has an Actor component.
func (e *Entity) IsActor() bool {
	_, ok := e.Role.(*Actor)
	return ok
}

// Actor returns the underlying role actor, assuming IsActor.
func (e *Entity) Actor() *Actor {
	return e.Role.(*Actor)
}

// IsAlive reports whether e has an Actor component, and is alive.
func (e *Entity) IsAlive() bool {
	a, ok := e.Role.(*Actor)
	return ok && a.HP > 0
}

// IsItem reports whether e has an Item component.
func (e *Entity) IsItem() bool {
	_, ok := e.Role.(Item)
	return ok
}

// Item returns the underlying Item role, assuming IsItem.
func (e *Entity) Item() Item {
	return e.Role.(Item)
}

// Text returns short text for the entity, for one-line display purposes.
func (e *Entity) Text() string {
	switch r := e.Role.(type) {
	case *GoldPile:
		return fmt.Sprintf("%s (%d gold)", e.Name, r.Amount)
	default:
		return e.Name
	}
}

// MoveActor moves an actor to the given position, assumed free of other
// actors, and updates the actor position cache.
func (g *Game) MoveActor(i ID, ai *Actor, to gruid.Point) {
	ei := g.Entity(i)
	if ei.P == to {
		return
	}
	g.Map.ActorCache.SetU(ei.P, 0)
	ei.P = to
	g.Map.ActorCache.SetU(to, i)
	if ai.IsPlayer() {
		ei.KnownP = ei.P
		if j, _ := g.ItemAt(to); j >= 0 {
			g.PickUp(j)
		}
		return
	}
	if g.InFOV(ei.P) {
		g.SenseEntity(i, "see")
	}
}

// Entity returns the common components for an entity with a given
// identifier.
func (g *Game) Entity(i ID) *Entity {
	return g.Entities[i]
}

// AddEntity adds a new entity and returns its index/id.
func (g *Game) AddEntity(e *Entity) ID {
	g.Entities = append(g.Entities, e)
	return ID(len(g.Entities) - 1)
}

// CleanEntities removes all the entities that are specific to the current
// map. It keeps the player and the items in the inventory.
func (g *Game) CleanEntities() {
	clear(g.Entities[FirstMapID+1:])
	g.Entities = g.Entities[:FirstMapID+1]
}

// SwapEntities exchanges the identifiers of two entities.
func (g *Game) SwapEntities(i, j ID) {
	g.Entities[i], g.Entities[j] = g.Entities[j], g.Entities[i]
}

// Player returns player's entity and actor.
func (g *Game) Player() (*Entity, *Actor) {
	pl := g.Entities[PlayerID]
	return pl, pl.Role.(*Actor)
}

// PlayerEntity returns the player entity.
func (g *Game) PlayerEntity() *Entity {
	return g.Entities[PlayerID]
}

// PlayerActor returns player's actor role.
func (g *Game) PlayerActor() *Actor {
	return g.Entities[PlayerID].Role.(*Actor)
}

// PP is a shortcut function that returns the player's position.
func (g *Game) PP() gruid.Point {
	return g.PlayerEntity().P
}

// ActorAt returns the id of the Actor alive at p, if any. It returns
// (-1, nil) if there was none.
func (g *Game) ActorAt(p gruid.Point) (ID, *Actor) {
	if i := g.Map.ActorCache.At(p); i > 0 {
		if a, ok := g.Entity(i).Role.(*Actor); ok && a.IsAlive() {
			return i, a
		}
	}
	return -1, nil
}

// IsFree returns whether the given position is both passable and not
// occupied by any actor.
func (g *Game) IsFree(p gruid.Point) bool {
	if !g.Map.Passable(p) {
		return false
	}
	i, _ := g.ActorAt(p)
	return i < 0
}

// KnownActorAt returns the id of any seen Actor at p. It returns (-1, nil)
// if there was none.
func (g *Game) KnownActorAt(p gruid.Point) (ID, *Actor) {
	for i, e := range g.Entities[FirstMapID:] {
		if e.KnownP != p {
			continue
		}
		if a, ok := e.Role.(*Actor); ok && !a.KnownDead {
			return ID(i) + FirstMapID, a
		}
	}
	return -1, nil
}

// ItemAt returns the id of the Item at p, if any. It returns (-1, nil) if
// there is none.
func (g *Game) ItemAt(p gruid.Point) (ID, Item) {
	for i, e := range g.Entities[FirstMapID+1:] {
		if e.P != p {
			continue
		}
		if it, ok := e.Role.(Item); ok {
			return ID(i) + FirstMapID + 1, it
		}
	}
	return -1, nil
}

// KnownItemAt returns the id of any seen Item at p. It returns (-1, nil) if
// there is none.
func (g *Game) KnownItemAt(p gruid.Point) (ID, Item) {
	for i, e := range g.Entities[FirstMapID+1:] {
		if e.KnownP != p {
			continue
		}
		if it, ok := e.Role.(Item); ok {
			return ID(i) + FirstMapID + 1, it
		}
	}
	return -1, nil
}

// Actors returns an iterator over alive actor map entities.
func (g *Game) Actors() iter.Seq2[ID, *Actor] {
	return func(yield func(ID, *Actor) bool) {
		for i, e := range g.Entities[FirstMapID:] {
			if a, ok := e.Role.(*Actor); ok && a.IsAlive() {
				if !yield(ID(i)+FirstMapID, a) {
					return
				}
			}
		}
	}
}

// AllActorIDs returns a slice of actor map IDs, including dead ones. The
// player comes first.
func (g *Game) AllActorIDs() []ID {
	var ids []ID
	for id, e := range g.MapEntities() {
		if e.IsActor() {
			ids = append(ids, id)
		}
	}
	return ids
}

// NPMapEntities returns an iterator over all non-player map entities.
func (g *Game) NPMapEntities() iter.Seq2[ID, *Entity] {
	return func(yield func(ID, *Entity) bool) {
		for i, e := range g.Entities[FirstMapID+1:] {
			if !yield(ID(i)+FirstMapID+1, e) {
				return
			}
		}
	}
}

// MapEntities returns an iterator over all map entities, including the
// player.
func (g *Game) MapEntities() iter.Seq2[ID, *Entity] {
	return func(yield func(ID, *Entity) bool) {
		for i, e := range g.Entities[FirstMapID:] {
			if !yield(ID(i)+FirstMapID, e) {
				return
			}
		}
	}
}

// Monsters returns an iterator over alive non-player actor map entities.
func (g *Game) Monsters() iter.Seq2[ID, *Actor] {
	return func(yield func(ID, *Actor) bool) {
		for id, e := range g.NPMapEntities() {
			if a, ok := e.Role.(*Actor); ok && a.IsAlive() {
				if !yield(id, a) {
					return
				}
			}
		}
	}
}

// MonsterCount returns the number of live monsters on the map.
func (g *Game) MonsterCount() int {
	n := 0
	for range g.Monsters() {
		n++
	}
	return n
}

// ItemEntities returns an iterator over item map entities.
func (g *Game) ItemEntities() iter.Seq2[ID, Item] {
	return func(yield func(ID, Item) bool) {
		for id, e := range g.NPMapEntities() {
			if it, ok := e.Role.(Item); ok {
				if !yield(id, it) {
					return
				}
			}
		}
	}
}

// InventoryItems returns an iterator over the player's inventory slots,
// including empty ones.
func (g *Game) InventoryItems() iter.Seq2[ID, *Entity] {
	return func(yield func(ID, *Entity) bool) {
		for i, e := range g.Entities[FirstInventoryID:FirstMapID] {
			if !yield(ID(i)+FirstInventoryID, e) {
				return
			}
		}
	}
}
