package main

import (
	"strings"

	"codeberg.org/anaseto/gruid"
)

// Actor holds data relevant to any kind of actor (player or monster).
type Actor struct {
	HP        int         // health points
	MaxHP     int         // maximum health points
	Attack    int         // attack bonus for hit rolls (and damage die size)
	Defense   int         // defense (makes hits rarer and soaks damage)
	Speed     int         // action speed (stat carried from species data)
	XP        int         // experience awarded to the killer (monsters only)
	Kind      speciesKind // monster species (empty for the player)
	KnownDead bool        // whether it's a monster known to be dead
	Traits    Traits      // passive traits
	Mind      *Mind       // AI memory (monsters only)
}

// NewActor returns a new actor with the given combat stats and traits.
func NewActor(attack, defense, hp int, t Traits) *Actor {
	return &Actor{
		Attack:  attack,
		Defense: defense,
		HP:      hp,
		MaxHP:   hp,
		Traits:  t,
	}
}

// IsPlayer reports whether the actor has the Player trait.
func (a *Actor) IsPlayer() bool {
	return a.DoesAny(Player)
}

// DoesAny reports whether the actor has any of the traits in t.
func (a *Actor) DoesAny(t Traits) bool {
	return a.Traits.Any(t)
}

// DoesAll reports whether the actor has all the traits in t.
func (a *Actor) DoesAll(t Traits) bool {
	return a.Traits.All(t)
}

// IsMonster reports whether the actor is a monster of the given species.
func (a *Actor) IsMonster(mk speciesKind) bool {
	return a.Kind == mk
}

// IsAlive reports whether the actor is still alive.
func (a *Actor) IsAlive() bool {
	return a.HP > 0
}

// IsDead reports whether the actor is dead.
func (a *Actor) IsDead() bool {
	return a.HP <= 0
}

// GetAttack returns the bonus added to the actor's hit rolls.
func (a *Actor) GetAttack() int {
	return a.Attack
}

// GetDefense returns the actor's defense.
func (a *Actor) GetDefense() int {
	return a.Defense
}

// GetDamage returns the actor's damage die size. It derives from Attack: a
// more accurate hitter also hits harder.
func (a *Actor) GetDamage() int {
	return a.Attack
}

// GetHP returns the actor's current health points.
func (a *Actor) GetHP() int {
	return a.HP
}

// GetMaxHP returns the actor's maximum health points.
func (a *Actor) GetMaxHP() int {
	return a.MaxHP
}

// SetHP sets the actor's current health points.
func (a *Actor) SetHP(hp int) {
	a.HP = hp
}

// CombatName returns the name used in combat messages: "you" for the player,
// the species name for monsters.
func (a *Actor) CombatName() string {
	if a.IsPlayer() {
		return "you"
	}
	return a.Kind.Name()
}

// AdjustHP heals an actor by a given amount (or hurts if negative). The
// result is clamped to [min(1,a.HP), a.MaxHP]: adjustments never kill.
func (g *Game) AdjustHP(i ID, ai *Actor, amount int) {
	if ai.IsDead() {
		// Should not happen: dead monsters remain dead.
		return
	}
	hp := ai.HP
	ai.HP = min(ai.MaxHP, max(min(1, hp), hp+amount))
	if ai.IsPlayer() {
		if ai.HP > hp {
			g.Logf("You feel better (+%d HP).", ai.HP-hp)
		} else if ai.HP < hp {
			g.Logf("You feel weaker (-%d HP).", hp-ai.HP)
		} else if amount >= 0 {
			g.Log("You feel no change (+0 HP).")
		}
	}
}

// Traits represents special characteristics of an actor as a bitset.
type Traits uint64

// Any reports whether any of the traits is in the set.
func (t Traits) Any(of Traits) bool {
	return t&of != 0
}

// All reports whether all of the traits are in the set.
func (t Traits) All(of Traits) bool {
	return t&of == of
}

// Traits.
const (
	Player Traits = 1 << iota

	Aggressive    // charges on sight rather than merely taking notice
	OpensDoors    // opens closed doors instead of being blocked by them
	SeesInvisible // unused by current mechanics, carried from species data
)

// String returns a comma-separated list of traits for examine descriptions.
func (t Traits) String() string {
	traits := []string{}
	if t.Any(Aggressive) {
		traits = append(traits, "aggressive")
	}
	if t.Any(OpensDoors) {
		traits = append(traits, "opens doors")
	}
	if t.Any(SeesInvisible) {
		traits = append(traits, "keen-eyed")
	}
	if len(traits) == 0 {
		return "none"
	}
	return strings.Join(traits, ", ")
}

// Mind holds what a monster knows and wants: its behavioral state, its home
// territory, and its memory of the player.
type Mind struct {
	State    Mindstate     // current behavioral state
	Home     gruid.Point   // assigned room center (InvalidPos if none)
	Room     *Room         // assigned home room (nil if none)
	LastSeen gruid.Point   // last seen player position (InvalidPos if never)
	Unseen   int           // updates since the player was last seen
	Wander   int           // idle updates since the last wander step
	Path     []gruid.Point // cached path toward the current destination
	Cursor   int           // index of the next unconsumed path step
}

// Mindstate represents the kind of monster behavioral states.
type Mindstate int

// Those constants represent all the possible monster mindstates.
const (
	Idle      Mindstate = iota // wander around, bound to the home room
	Alert                      // investigate a remembered position
	Hostile                    // chase and attack the player
	Fleeing                    // run away from the player
	Returning                  // head back to the home room
)

// mind returns the actor's Mind, creating it first if necessary.
func (a *Actor) mind() *Mind {
	if a.Mind == nil {
		a.Mind = &Mind{Home: InvalidPos, LastSeen: InvalidPos}
	}
	return a.Mind
}

// AssignRoom gives the monster a home room: idle wandering stays inside it
// and the Returning state leads back to its center.
func (a *Actor) AssignRoom(r *Room) {
	mi := a.mind()
	mi.Room = r
	mi.Home = r.Center()
}

// setState switches to a new state, discarding any cached path so that a
// stale route is never replayed in another state.
func (mi *Mind) setState(st Mindstate) {
	if mi.State == st {
		return
	}
	mi.State = st
	mi.Path = nil
	mi.Cursor = 0
}

// rewindPath un-consumes the last cached path step, so that a move that did
// not happen (a blocked step, or a turn spent attacking or opening a door)
// is retried instead of skipped.
func (mi *Mind) rewindPath(to gruid.Point) {
	if mi.Cursor > 0 && mi.Cursor <= len(mi.Path) && mi.Path[mi.Cursor-1] == to {
		mi.Cursor--
	}
}

// MindStateString returns a text describing a monster's main state.
func (a *Actor) MindStateString() string {
	if a.Mind == nil {
		return ""
	}
	switch a.Mind.State {
	case Alert:
		return "alert"
	case Hostile:
		return "hostile"
	case Fleeing:
		return "fleeing"
	case Returning:
		return "returning home"
	default:
		if a.Mind.Room != nil {
			return "idle (territorial)"
		}
		return "idle"
	}
}
