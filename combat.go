package main

import (
	"fmt"
	"strings"
)

const (
	// HPCritical represents the critical HP threshold.
	HPCritical = 3

	// HitThreshold is the base difficulty of a melee attack: a d20 roll
	// plus the attacker's attack must reach this plus the defender's
	// defense, except on a natural 20 (automatic hit) or 1 (automatic
	// miss).
	HitThreshold = 10
)

// Roller is the source of combat dice. The game's *rand.Rand satisfies it;
// tests plug in scripted rollers for deterministic outcomes.
type Roller interface {
	IntN(n int) int
}

// Combatant provides the capabilities needed to take part in a melee
// exchange. *Actor implements it.
type Combatant interface {
	GetAttack() int     // bonus added to the d20 hit roll
	GetDefense() int    // raises the hit threshold and soaks damage
	GetDamage() int     // damage die size
	GetHP() int         // current health
	SetHP(hp int)       // update health after damage
	IsPlayer() bool     // whether this is the player
	CombatName() string // bare display name, without article
}

// Outcome describes one resolved melee attack.
type Outcome struct {
	Hit      bool // the attack connected
	Critical bool // natural 20: always hits and doubles damage
	Fatal    bool // the defender was left dead
	Damage   int  // rolled damage before the defender's soak (0 on a miss)

	// Narration lines, in the order they are shown.
	AttackText string // "You hit the kobold."
	DamageText string // "The kobold takes 3 damage." (hits only)
	ResultText string // "The kobold dies!" (fatal blows only)
}

// ResolveAttack resolves a melee attack from att against def and applies the
// damage. A single d20 decides the attack. On a hit, a single damage draw in
// [1, max(1, damage die)] follows, doubled on a critical; the defender soaks
// defense points of it but a landed hit never deals less than 1. HP is
// floored at zero.
func ResolveAttack(rng Roller, att, def Combatant) Outcome {
	var out Outcome
	roll := 1 + rng.IntN(20)
	switch roll {
	case 20:
		out.Critical = true
		out.Hit = true
	case 1:
		// Automatic miss, regardless of bonuses.
	default:
		out.Hit = roll+att.GetAttack() >= HitThreshold+def.GetDefense()
	}
	out.AttackText = attackText(att, def, out)
	if !out.Hit {
		return out
	}
	out.Damage = 1 + rng.IntN(max(1, att.GetDamage()))
	if out.Critical {
		out.Damage *= 2
	}
	hp := max(0, def.GetHP()-max(1, out.Damage-def.GetDefense()))
	def.SetHP(hp)
	out.Fatal = hp == 0
	out.DamageText = damageText(def, out)
	if out.Fatal {
		out.ResultText = resultText(def)
	}
	return out
}

// combatSubject names a combatant in subject position, at sentence start.
func combatSubject(c Combatant) string {
	if c.IsPlayer() {
		return "You"
	}
	return "The " + c.CombatName()
}

// combatObject names a combatant in object position.
func combatObject(c Combatant) string {
	if c.IsPlayer() {
		return "you"
	}
	return "the " + c.CombatName()
}

// verb conjugates a present-tense verb for a third-person subject.
func verb(v string, third bool) string {
	if !third {
		return v
	}
	if strings.HasSuffix(v, "s") {
		return v + "es"
	}
	return v + "s"
}

func attackText(att, def Combatant, out Outcome) string {
	sub, obj := combatSubject(att), combatObject(def)
	third := !att.IsPlayer()
	switch {
	case out.Critical:
		return fmt.Sprintf("%s critically %s %s!", sub, verb("hit", third), obj)
	case out.Hit:
		return fmt.Sprintf("%s %s %s.", sub, verb("hit", third), obj)
	default:
		return fmt.Sprintf("%s %s %s.", sub, verb("miss", third), obj)
	}
}

func damageText(def Combatant, out Outcome) string {
	sub := combatSubject(def)
	third := !def.IsPlayer()
	if out.Fatal {
		return fmt.Sprintf("%s %s %d damage and %s!",
			sub, verb("take", third), out.Damage, verb("die", third))
	}
	return fmt.Sprintf("%s %s %d damage.", sub, verb("take", third), out.Damage)
}

func resultText(def Combatant) string {
	if def.IsPlayer() {
		return "You die!"
	}
	return fmt.Sprintf("%s dies!", combatSubject(def))
}

// BumpAttack resolves a melee bump of actor i against actor j, narrates the
// exchange and handles statistics, experience and death.
func (g *Game) BumpAttack(i, j ID, ai, aj *Actor) {
	hp := aj.HP
	out := ResolveAttack(g.rand, ai, aj)
	g.logAttack(j, out)
	switch {
	case i == PlayerID:
		if out.Hit {
			g.Stats.Hits++
		} else {
			g.Stats.Misses++
		}
		if out.Critical {
			g.Stats.Crits++
		}
	case j == PlayerID:
		if !out.Hit {
			break
		}
		lost := hp - aj.HP
		g.Stats.Hurt++
		g.Stats.Damage += lost
		g.Stats.MapDamage[g.Map.Level-1] += lost
		g.StoryLogf("Hit by %s for %d dmg (HP: %d/%d)",
			g.Entity(i).Name, lost, aj.HP, aj.GetMaxHP())
		g.md.WoundedAnimation()
		if hp > HPCritical && aj.HP <= HPCritical && aj.IsAlive() {
			g.md.mode = modeCritical
		}
		g.md.auto.mode = noAuto
	}
	if out.Fatal && j != PlayerID {
		g.monsterDeath(i, j, aj)
	}
}

// logAttack narrates an attack outcome: the attack line first, then the
// damage line on a hit, then a death line when the blow was fatal.
func (g *Game) logAttack(j ID, out Outcome) {
	hurt := logHurtMons
	if j == PlayerID {
		hurt = logHurtPlayer
	}
	if out.Critical {
		g.LogStyled(out.AttackText, logSpecial)
	} else {
		g.Log(out.AttackText)
	}
	if out.Hit {
		g.LogStyled(out.DamageText, hurt)
	}
	if out.Fatal {
		g.LogStyled(out.ResultText, hurt)
	}
}

// monsterDeath handles bookkeeping for a monster death: statistics, player
// experience for kills of the player's making, and corpse knowledge.
func (g *Game) monsterDeath(i, j ID, aj *Actor) {
	ej := g.Entity(j)
	g.Stats.Death(ej.Name)
	g.md.DeathAnimation(ej.P)
	if g.InFOV(ej.P) {
		aj.KnownDead = true
	}
	if i == PlayerID {
		g.GainXP(aj.XP)
	}
}
