package main

import (
	"log"
)

// Item holds an item that can be picked up or interacted with on the floor.
type Item interface {
	// Desc returns a description of the item.
	Desc() string
	// Use takes a game state and the item's id and reports whether a
	// turn-taking action was performed.
	Use(*Game, ID) bool
}

// potionKind represents the different kinds of healing potions.
type potionKind int

const (
	MinorHealing potionKind = iota
	MajorHealing
)

func (pk potionKind) String() string {
	switch pk {
	case MajorHealing:
		return "major healing potion"
	default:
		return "minor healing potion"
	}
}

// Heal returns the amount of healing provided by a potion of this kind,
// using the given dice roller: 2d4+2 for minor potions, 4d4+4 for major
// ones.
func (pk potionKind) Heal(rng Roller) int {
	dice := 2
	if pk == MajorHealing {
		dice = 4
	}
	heal := dice
	for range dice {
		heal += 1 + rng.IntN(4)
	}
	return heal
}

// Potion represents a quaffable healing potion.
type Potion struct {
	Kind potionKind
}

func (pt *Potion) Desc() string {
	switch pt.Kind {
	case MajorHealing:
		return "A glass vial of thick crimson liquid. Drinking it restores a good deal of health (4d4+4 HP)."
	default:
		return "A glass vial of watery red liquid. Drinking it restores some health (2d4+2 HP)."
	}
}

func (pt *Potion) Use(g *Game, i ID) bool {
	pa := g.PlayerActor()
	if pa.HP >= pa.GetMaxHP() {
		g.Log("You are already at full health.")
		return false
	}
	g.AdjustHP(PlayerID, pa, pt.Kind.Heal(g.rand))
	g.Stats.Potions++
	g.StoryLogf("Drank %s (HP: %d/%d)", One(g.Entity(i).Name), pa.HP, pa.GetMaxHP())
	g.Entities[i] = emptySlot()
	return true
}

// GoldPile represents a pile of gold pieces lying on the floor. It goes to
// the gold count on pickup instead of using an inventory slot.
type GoldPile struct {
	Amount int
}

func (gp *GoldPile) Desc() string {
	return "A small pile of gold pieces. Walking over it adds it to your total."
}

func (gp *GoldPile) Use(g *Game, i ID) bool {
	// Gold is picked up automatically when stepped on.
	return false
}

// Heartstone represents the stone you came down for, embedded in the floor
// of the deepest level.
type Heartstone struct{}

func (h *Heartstone) Desc() string {
	return "A fist-sized crystal pulsing with a slow inner light, embedded in the floor. Prying it loose is the reason you came down here."
}

func (h *Heartstone) Use(g *Game, i ID) bool {
	if g.PP() != g.Entity(i).P {
		g.Log("You need to stand over the Heartstone to pry it loose.")
		return false
	}
	g.LogStyled("You pry the Heartstone loose… You win!", logSpecial)
	g.StoryLog("Pried the Heartstone loose!")
	g.md.HeartstoneAnimation()
	g.LevelStats()
	g.md.logConfirmContinue()
	g.IncrTurn()
	g.win = true
	g.md.mode = modeEnd
	return false
}

// PickUp handles the player walking over the map item with the given id:
// gold goes to the gold count, the Heartstone stays put, and anything else
// goes to a free inventory slot.
func (g *Game) PickUp(j ID) {
	ej := g.Entity(j)
	switch r := ej.Role.(type) {
	case *GoldPile:
		g.Gold += r.Amount
		g.Stats.MapGold[g.Map.Level-1] += r.Amount
		g.Logf("You pick up %d gold pieces.", r.Amount)
		ej.P = InvalidPos
		ej.KnownP = InvalidPos
	case *Heartstone:
		g.Log("You stand over the Heartstone. Pry it loose to win.")
	case Item:
		i := g.emptySlotID()
		if i < 0 {
			g.Logf("You step over %s, but your pack is full.", One(ej.Name))
			return
		}
		g.Logf("You pick up %s.", One(ej.Name))
		g.StoryLogf("Picked up %s", One(ej.Name))
		ej.P = InvalidPos
		g.SwapEntities(i, j)
	}
}

// emptySlotID returns the id of the first empty inventory slot, or -1 if
// the pack is full.
func (g *Game) emptySlotID() ID {
	for i, e := range g.InventoryItems() {
		if e.Role == nil {
			return i
		}
	}
	return -1
}

// PackEmpty reports whether the inventory holds no items at all.
func (g *Game) PackEmpty() bool {
	for _, e := range g.InventoryItems() {
		if e.IsItem() {
			return false
		}
	}
	return true
}

// UseItem uses the inventory item with the given id and reports whether a
// turn-taking action was performed.
func (g *Game) UseItem(i ID) bool {
	ei := g.Entity(i)
	it, ok := ei.Role.(Item)
	if !ok {
		// Should not happen: the inventory menu only offers slots with
		// items.
		log.Printf("BUG: use of empty slot %d", i)
		return false
	}
	return it.Use(g, i)
}

// DropItem drops the inventory item with the given id at the player's feet,
// if the tile is item-free. It reports whether a turn-taking action was
// performed.
func (g *Game) DropItem(i ID) bool {
	ei := g.Entity(i)
	if ei.Role == nil {
		g.Log("There is nothing in that slot.")
		return false
	}
	pp := g.PP()
	if j, _ := g.ItemAt(pp); j >= 0 {
		g.Log("There is already an item here.")
		return false
	}
	g.Logf("You drop %s.", One(ei.Name))
	g.StoryLogf("Dropped %s", One(ei.Name))
	ei.P = pp
	ei.KnownP = pp
	g.AddEntity(ei)
	g.Entities[i] = emptySlot()
	return true
}

// NextLevel proceeds to the next level (assuming we're not at the last one).
func (g *Game) NextLevel() {
	// We don't end the turn after generating a new level. We still
	// upgrade the turn counter, as it wouldn't be intuitive otherwise.
	g.IncrTurn()   // call before InitLevel
	g.LevelStats() // call before InitLevel
	g.InitLevel()
	g.Logs.NextTick = g.Logs.Index
	g.md.targ.CancelExamine()
}
