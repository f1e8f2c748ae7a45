package main

import (
	"log"

	"codeberg.org/anaseto/gruid"
)

// PlayerBump performs a player bump action in the given direction. It returns
// true if the turn was consumed.
func (g *Game) PlayerBump(dir gruid.Point) bool {
	pl, pa := g.Player()
	to := pl.P.Add(dir)
	if !inMap(to) {
		g.Log("You cannot walk out of the map.")
		return false
	}
	if j, aj := g.ActorAt(to); j >= 0 {
		g.Dir = dir
		g.BumpAttack(PlayerID, j, pa, aj)
		return true
	}
	t := g.Map.Terrain.At(to)
	if t == DoorClosed {
		g.Dir = dir
		g.Map.OpenDoor(to)
		g.Log("You open the door.")
		return true
	}
	if !Passable(t) {
		g.Logf("You cannot walk into the %s.", TerrainName(t))
		return false
	}
	g.Dir = dir
	g.MoveActor(PlayerID, pa, to)
	return true
}

// Descend moves the player one level down, generating the next level. The
// descent is one way: the old level is gone for good. It returns true if the
// turn was consumed.
func (g *Game) Descend() bool {
	if g.PP() != g.Map.Stairs {
		g.Log("There are no stairs here.")
		return false
	}
	if err := g.Save(); err != nil {
		log.Printf("saving game before new level: %v", err)
	}
	g.StoryLogf("Descended to level %d", g.Map.Level+1)
	g.LogStyled("You descend the stairs deeper into the dungeon.", logNotable)
	g.NextLevel()
	return false
}

// GainXP grants experience points to the player, handling any level ups.
func (g *Game) GainXP(xp int) {
	pa := g.PlayerActor()
	before := XPLevel(pa.XP)
	pa.XP += xp
	for lvl := before + 1; lvl <= XPLevel(pa.XP); lvl++ {
		g.LevelUp(lvl)
	}
}

// XPLevel returns the experience level corresponding to the given amount of
// experience points.
func XPLevel(xp int) int {
	lvl := 1
	for xp >= NextLevelXP(lvl) {
		lvl++
	}
	return lvl
}

// NextLevelXP returns the total amount of experience points needed to level
// up from the given level. Each threshold grows by level×100: 100, 300,
// 600, and so on.
func NextLevelXP(lvl int) int {
	return 100 * lvl * (lvl + 1) / 2
}

// LevelUp applies the stat growth for reaching the given experience level:
// more max HP (with the gain healed), attack every 2nd level, defense every
// 3rd.
func (g *Game) LevelUp(lvl int) {
	pa := g.PlayerActor()
	gain := 5
	if g.Mod(ModBrittleBones) {
		gain = 2
	}
	pa.MaxHP += gain
	pa.HP += gain
	if lvl%2 == 0 {
		pa.Attack++
	}
	if lvl%3 == 0 {
		pa.Defense++
	}
	g.Stats.Levels++
	g.LogfStyled("Welcome to experience level %d!", logSpecial, lvl)
	g.StoryLogf("Reached level %d (turn %d)", lvl, g.Turn)
}
