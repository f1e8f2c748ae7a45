package main

import (
	"fmt"
	"testing"

	"codeberg.org/anaseto/gruid"
)

// scriptedRoller feeds predetermined draws to attack resolution, making
// outcomes deterministic. It panics on a draw it has no script for.
type scriptedRoller struct {
	rolls []int
	i     int
}

func (r *scriptedRoller) IntN(n int) int {
	if r.i >= len(r.rolls) {
		panic("scripted roller ran out of rolls")
	}
	v := r.rolls[r.i]
	r.i++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted roll %d out of range for IntN(%d)", v, n))
	}
	return v
}

// drained checks that resolution consumed exactly the scripted draws: one for
// the attack, plus one for damage on hits.
func (r *scriptedRoller) drained(t *testing.T) {
	t.Helper()
	if r.i != len(r.rolls) {
		t.Errorf("resolution used %d of %d scripted rolls", r.i, len(r.rolls))
	}
}

// fighter is a bare combatant for attack resolution tests.
type fighter struct {
	name    string
	player  bool
	attack  int
	defense int
	damage  int
	hp      int
}

func (f *fighter) GetAttack() int     { return f.attack }
func (f *fighter) GetDefense() int    { return f.defense }
func (f *fighter) GetDamage() int     { return f.damage }
func (f *fighter) GetHP() int         { return f.hp }
func (f *fighter) SetHP(hp int)       { f.hp = hp }
func (f *fighter) IsPlayer() bool     { return f.player }
func (f *fighter) CombatName() string { return f.name }

func TestCriticalHit(t *testing.T) {
	att := &fighter{player: true, attack: 2, damage: 4}
	def := &fighter{name: "kobold", defense: 1, hp: 20}
	r := &scriptedRoller{rolls: []int{19, 2}}
	out := ResolveAttack(r, att, def)
	r.drained(t)
	if !out.Hit || !out.Critical {
		t.Fatalf("natural 20 not a critical hit: %+v", out)
	}
	if out.Damage != 6 {
		t.Errorf("critical damage %d instead of doubled 6", out.Damage)
	}
	if def.hp != 15 {
		t.Errorf("defender HP %d instead of 15 after soaking 1", def.hp)
	}
	if out.Fatal {
		t.Errorf("fatal outcome with %d HP left", def.hp)
	}
	if out.AttackText != "You critically hit the kobold!" {
		t.Errorf("attack text %q", out.AttackText)
	}
}

func TestCriticalMiss(t *testing.T) {
	att := &fighter{player: true, attack: 100, damage: 4}
	def := &fighter{name: "kobold", hp: 20}
	r := &scriptedRoller{rolls: []int{0}}
	out := ResolveAttack(r, att, def)
	r.drained(t)
	if out.Hit {
		t.Fatalf("natural 1 hit despite attack bonus: %+v", out)
	}
	if out.Damage != 0 || def.hp != 20 {
		t.Errorf("miss dealt damage: %d (defender HP %d)", out.Damage, def.hp)
	}
}

func TestHitThresholdBoundary(t *testing.T) {
	// Attack 2 against defense 3: a total of 13 is needed, so a roll of
	// 11 is the lowest that connects.
	att := &fighter{player: true, attack: 2, damage: 1}
	def := &fighter{name: "kobold", defense: 3, hp: 10}
	r := &scriptedRoller{rolls: []int{10, 0}}
	out := ResolveAttack(r, att, def)
	r.drained(t)
	if !out.Hit {
		t.Errorf("roll meeting the threshold missed: %+v", out)
	}
	if def.hp != 9 {
		t.Errorf("defender HP %d instead of 9 after a minimal hit", def.hp)
	}
	r = &scriptedRoller{rolls: []int{9}}
	out = ResolveAttack(r, att, def)
	r.drained(t)
	if out.Hit {
		t.Errorf("roll below the threshold hit: %+v", out)
	}
}

func TestMinimumDamage(t *testing.T) {
	// A landed hit always costs at least 1 HP, however high the defense.
	att := &fighter{player: true, damage: 1}
	def := &fighter{name: "zombie", defense: 50, hp: 10}
	r := &scriptedRoller{rolls: []int{19, 0}}
	out := ResolveAttack(r, att, def)
	r.drained(t)
	if out.Damage != 2 {
		t.Errorf("critical damage %d instead of 2", out.Damage)
	}
	if def.hp != 9 {
		t.Errorf("defender HP %d instead of 9: soak swallowed the hit", def.hp)
	}
}

func TestFatalBlow(t *testing.T) {
	att := &fighter{player: true, attack: 2, damage: 2}
	def := &fighter{name: "kobold", defense: 1, hp: 1}
	r := &scriptedRoller{rolls: []int{15, 1}}
	out := ResolveAttack(r, att, def)
	r.drained(t)
	if !out.Hit || !out.Fatal {
		t.Fatalf("killing blow not fatal: %+v", out)
	}
	if def.hp != 0 {
		t.Errorf("defender HP %d instead of 0", def.hp)
	}
	if out.ResultText != "The kobold dies!" {
		t.Errorf("result text %q", out.ResultText)
	}
}

func TestAttackMessages(t *testing.T) {
	tests := []struct {
		name   string
		att    *fighter
		def    *fighter
		rolls  []int
		attack string
		damage string
		result string
	}{
		{
			name:   "player hits monster",
			att:    &fighter{player: true, attack: 2, damage: 1},
			def:    &fighter{name: "kobold", hp: 5},
			rolls:  []int{10, 0},
			attack: "You hit the kobold.",
			damage: "The kobold takes 1 damage.",
		},
		{
			name:   "player critically kills monster",
			att:    &fighter{player: true, attack: 2, damage: 2},
			def:    &fighter{name: "kobold", hp: 1},
			rolls:  []int{19, 0},
			attack: "You critically hit the kobold!",
			damage: "The kobold takes 2 damage and dies!",
			result: "The kobold dies!",
		},
		{
			name:   "monster kills player",
			att:    &fighter{name: "kobold", attack: 2, damage: 1},
			def:    &fighter{player: true, hp: 1},
			rolls:  []int{15, 0},
			attack: "The kobold hits you.",
			damage: "You take 1 damage and die!",
			result: "You die!",
		},
		{
			name:   "monster misses player",
			att:    &fighter{name: "kobold", attack: 2, damage: 1},
			def:    &fighter{player: true, hp: 5},
			rolls:  []int{3},
			attack: "The kobold misses you.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := &scriptedRoller{rolls: tc.rolls}
			out := ResolveAttack(r, tc.att, tc.def)
			r.drained(t)
			if out.AttackText != tc.attack {
				t.Errorf("attack text %q instead of %q", out.AttackText, tc.attack)
			}
			if out.DamageText != tc.damage {
				t.Errorf("damage text %q instead of %q", out.DamageText, tc.damage)
			}
			if out.ResultText != tc.result {
				t.Errorf("result text %q instead of %q", out.ResultText, tc.result)
			}
		})
	}
}

func TestBumpAttackKill(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 10, Y: 7})
	pa := g.PlayerActor()
	pa.Attack = 20 // hits on anything but a natural 1
	j, aj := addMonster(t, g, GutterRat, gruid.Point{X: 11, Y: 7})
	for n := 0; aj.HP > 0; n++ {
		if n > 50 {
			t.Fatalf("gutter rat still alive after %d bump attacks", n)
		}
		g.BumpAttack(PlayerID, j, pa, aj)
	}
	if pa.XP != 2 {
		t.Errorf("player experience %d instead of 2 after the kill", pa.XP)
	}
	if g.Stats.Hits == 0 {
		t.Errorf("no hit recorded in statistics")
	}
	if g.Stats.NDeaths != 1 || g.Stats.Deaths["gutter rat"] != 1 {
		t.Errorf("death statistics %d %v", g.Stats.NDeaths, g.Stats.Deaths)
	}
	if i, _ := g.ActorAt(gruid.Point{X: 11, Y: 7}); i >= 0 {
		t.Errorf("dead rat still occupies its tile")
	}
}

func TestBumpAttackOnPlayer(t *testing.T) {
	g := newBoxGame(gruid.Point{X: 10, Y: 7})
	pa := g.PlayerActor()
	j, aj := addMonster(t, g, Zombie, gruid.Point{X: 11, Y: 7})
	aj.Attack = 20
	hp := pa.HP
	for n := 0; pa.HP == hp; n++ {
		if n > 50 {
			t.Fatalf("zombie landed no hit after %d bump attacks", n)
		}
		g.BumpAttack(j, PlayerID, aj, pa)
	}
	if g.Stats.Hurt == 0 || g.Stats.Damage == 0 {
		t.Errorf("endured damage statistics not recorded: hurt=%d damage=%d",
			g.Stats.Hurt, g.Stats.Damage)
	}
	if g.Stats.MapDamage[0] != g.Stats.Damage {
		t.Errorf("per-level damage %d differs from total %d",
			g.Stats.MapDamage[0], g.Stats.Damage)
	}
}
