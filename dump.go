package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"runtime/debug"
)

// Stats gathers various game statistics from a run.
type Stats struct {
	NDeaths        int            // number of monster deaths
	Deaths         map[string]int // monster deaths by name
	Hits           int            // number of times you hit with a bump-attack
	Misses         int            // number of times you missed a bump-attack
	Crits          int            // number of critical hits you landed
	Hurt           int            // number of times you got hurt
	Damage         int            // total damage you got
	Levels         int            // number of experience levels gained
	Potions        int            // number of quaffed potions
	MapTurns       [MapLevels]int // number of turns per level
	MapExplorePerc [MapLevels]int // exploration percent per level
	MapDeathPerc   [MapLevels]int // monster death percent per level
	MapDamage      [MapLevels]int // endured damage per level
	MapGold        [MapLevels]int // gold picked up per level
}

// newStats returns newly initialized structure for statistics.
func newStats() *Stats {
	return &Stats{
		Deaths: map[string]int{},
	}
}

// Death registers the death of a monster with given name.
func (gs *Stats) Death(name string) {
	gs.NDeaths++
	gs.Deaths[name]++
}

// LevelStats collects stats about current level (just before leaving).
func (g *Game) LevelStats() {
	gs := g.Stats
	// Explored percentage.
	n, total := 0, 0
	for p, t := range g.Map.KnownTerrain.All() {
		if !g.Map.Passable(p) && !g.Map.PassableNeighbor(p) {
			continue
		}
		total++
		if IsKnown(t) {
			n++
		}
	}
	gs.MapExplorePerc[g.Map.Level-1] = int(100 * float64(n) / float64(max(1, total)))
	// Death percentage.
	n, total = 0, 0
	for _, e := range g.NPMapEntities() {
		if a, ok := e.Role.(*Actor); ok {
			total++
			if a.IsDead() {
				n++
			}
		}
	}
	gs.MapDeathPerc[g.Map.Level-1] = int(100 * float64(n) / float64(max(1, total)))
}

// DumpSummary produces the game statistics short summary displayed at the end
// of the game.
func (g *Game) DumpSummary() string {
	var sb strings.Builder
	var version string
	info, ok := debug.ReadBuildInfo()
	if ok {
		version = info.Main.Version
	} else {
		version = Version
	}
	fmt.Fprintf(&sb, " ♦ Game Summary — Skarn %s ♦\n\n", version)
	pa := g.PlayerActor()
	if g.win {
		fmt.Fprintf(&sb, "You pried the Heartstone loose from the deep!\n")
	} else if pa.IsDead() {
		fmt.Fprintf(&sb, "You died while exploring level %d of the dungeon.\n", g.Map.Level)
	} else {
		fmt.Fprintf(&sb, "You are exploring level %d of the dungeon.\n", g.Map.Level)
	}
	fmt.Fprintf(&sb, "You spent %d turns in the dungeon.\n", g.Turn)
	fmt.Fprintf(&sb, "Your adventure resulted in %d monster %s.\n",
		g.Stats.NDeaths, Countable("death", g.Stats.NDeaths))
	fmt.Fprintf(&sb, "Dungeon seed: %d.\n", g.Seed)
	return sb.String()
}

// Dump produces the game statistics full summary.
func (g *Game) Dump() string {
	var sb strings.Builder
	summary := g.DumpSummary()
	sb.WriteString(summary)
	g.dumpPlayer(&sb)
	sb.WriteString("\nLast messages:\n")
	for _, e := range g.Logs.Entries[max(0, len(g.Logs.Entries)-20):] {
		fmt.Fprintf(&sb, "%s\n", e.dumpString())
	}
	sb.WriteString("\nMap:\n")
	g.dumpDungeon(&sb)
	if g.Stats.NDeaths > 0 {
		sb.WriteString("\nMonster deaths:\n")
		g.dumpKilledMonsters(&sb)
	}
	sb.WriteString("\nStatistics:\n")
	g.dumpStatistics(&sb)
	sb.WriteString("\nTimeline:\n")
	for _, s := range g.Logs.Story {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Game) dumpPlayer(sb *strings.Builder) {
	pa := g.PlayerActor()
	fmt.Fprintf(sb, "\nHP:%d/%d A:%d D:%d Experience level %d (%d XP) Gold:%d\n",
		pa.HP, pa.GetMaxHP(), pa.GetAttack(), pa.GetDefense(),
		XPLevel(pa.XP), pa.XP, g.Gold)
	sb.WriteString("\nPack:\n")
	for i, e := range g.InventoryItems() {
		if e.Role == nil {
			continue
		}
		fmt.Fprintf(sb, "- %c: %s\n", rune('a'+i-FirstInventoryID), e.Text())
	}
}

func (g *Game) dumpDungeon(sb *strings.Builder) {
	// Entities (with rendering order, so that actors win over items).
	var ids CacheGrid[ID]
	ids = ids.New()
	for _, i := range g.sortedIDsByRenderOrder() {
		ei := g.Entity(i)
		if a, ok := ei.Role.(*Actor); ok && i != PlayerID && a.IsDead() {
			continue
		}
		ids.Set(ei.P, i)
	}
	// Draw map.
	for p := range g.Map.KnownTerrain.Points() {
		if p.X%MapWidth == 0 {
			if p.Y == 0 {
				sb.WriteRune('|')
			} else {
				sb.WriteString("|\n|")
			}
		}
		r := g.Map.RuneAt(p)
		if g.InFOV(p) {
			if i := ids.AtU(p); i > 0 {
				r = g.Entity(i).Rune
			}
		}
		sb.WriteRune(r)
	}
	sb.WriteString("|\n")
}

func (g *Game) dumpKilledMonsters(sb *strings.Builder) {
	monsters := slices.Sorted(maps.Keys(g.Stats.Deaths))
	for _, mons := range monsters {
		fmt.Fprintf(sb, "- %s: %d\n", mons, g.Stats.Deaths[mons])
	}
}

func (g *Game) dumpStatistics(sb *strings.Builder) {
	timesPer100 := func(n int) string {
		return fmt.Sprintf("%d %s (%.1f per 100 turns)",
			n, times(n), float64(n)*100/float64(max(1, g.Turn)))
	}
	fmt.Fprintf(sb, "You hit foes %s, including %d critical %s.\n",
		timesPer100(g.Stats.Hits), g.Stats.Crits, Countable("hit", g.Stats.Crits))
	fmt.Fprintf(sb, "You missed foes %s.\n", timesPer100(g.Stats.Misses))
	fmt.Fprintf(sb, "You got hurt %d %s and endured %d damage.\n",
		g.Stats.Hurt, times(g.Stats.Hurt), g.Stats.Damage)
	fmt.Fprintf(sb, "You drank %d %s and gained %d experience %s.\n",
		g.Stats.Potions, Countable("potion", g.Stats.Potions),
		g.Stats.Levels, Countable("level", g.Stats.Levels))
	// Statistics per map level.
	levels := g.Map.Level - 1
	if g.win || g.PlayerActor().IsDead() {
		levels++
	}
	if levels == 0 {
		return
	}
	sb.WriteByte('\n')
	hfmt := "%-20s"
	fmt.Fprintf(sb, hfmt, "Quantity/Level")
	for i := range levels {
		fmt.Fprintf(sb, " %4d", i+1)
	}
	sb.WriteByte('\n')
	perLevel := func(title string, x []int) {
		fmt.Fprintf(sb, hfmt, title)
		for _, n := range x {
			fmt.Fprintf(sb, " %4d", n)
		}
		sb.WriteByte('\n')
	}
	perLevel("Turns", g.Stats.MapTurns[:levels])
	perLevel("Explored (%)", g.Stats.MapExplorePerc[:levels])
	perLevel("Dead monsters (%)", g.Stats.MapDeathPerc[:levels])
	perLevel("Endured damage", g.Stats.MapDamage[:levels])
	perLevel("Gold found", g.Stats.MapGold[:levels])
}

func times(n int) string {
	if n == 1 {
		return "time"
	}
	return "times"
}
