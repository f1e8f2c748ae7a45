package main

// MapLevels is the total number of map levels in the dungeon.
const MapLevels = 12

// ProcInfo contains information for procedural generation, like which items
// were already generated, and so on. Note that slices indexed by map level
// start from zero (for map level 1).
type ProcInfo struct {
	Layouts    []MapLayout // map layouts
	NPotions   []int       // number of potions per level
	NGold      []int       // number of gold piles per level
	GuardLevel int         // early level with a goblin guard post (0 if none)
	Potions    []int       // potion-generation data
	PotionIdx  int         // current index in Potions
}

// InitProcInfo initializes procedural generation starting information.
func (g *Game) InitProcInfo() {
	g.ProcInfo = &ProcInfo{}
	g.layoutsProcGen()
	g.potionsProcGen()
	g.goldProcGen()
	g.flavoursProcGen()
}

func (g *Game) layoutsProcGen() {
	layouts := []MapLayout{
		LayoutSparse, LayoutStandard, LayoutStandard,
		LayoutStandard, LayoutDense, LayoutStandard,
		LayoutWarren, LayoutStandard, LayoutDense,
		LayoutStandard, LayoutWarren, LayoutDense,
	}
	if g.IntN(2) == 0 {
		layouts[1] = LayoutSparse
	}
	if g.IntN(2) == 0 {
		layouts[5] = LayoutWarren
	}
	if g.IntN(3) == 0 {
		layouts[7] = LayoutDense
	}
	// Shuffle the middle of the dungeon, keeping the first levels simple
	// and the last one dense.
	mids := layouts[2 : MapLevels-1]
	g.rand.Shuffle(len(mids), func(i, j int) {
		mids[i], mids[j] = mids[j], mids[i]
	})
	g.ProcInfo.Layouts = layouts
}

func (g *Game) potionsProcGen() {
	g.ProcInfo.NPotions = []int{
		2, 1, 2, 2, 1, 2,
		2, 1, 2, 2, 1, 2,
	}
	g.ProcInfo.NPotions[g.IntN(4)]++
	g.ProcInfo.NPotions[4+g.IntN(4)]++
	g.ProcInfo.NPotions[8+g.IntN(4)]++
	g.ProcInfo.NPotions[1+g.IntN(MapLevels-1)]--
	for i, n := range g.ProcInfo.NPotions {
		// Always between 1 and 3 potions on a given level.
		g.ProcInfo.NPotions[i] = max(1, min(3, n))
	}
}

func (g *Game) goldProcGen() {
	ngold := make([]int, MapLevels)
	for i := range ngold {
		ngold[i] = g.IntN(3)
	}
	if ngold[0] == 0 {
		// A little seed money on the first level.
		ngold[0] = 1
	}
	g.ProcInfo.NGold = ngold
}

func (g *Game) flavoursProcGen() {
	gpi := g.ProcInfo
	// Early level where goblins guard a small treasure room.
	gpi.GuardLevel = 2 + g.IntN(3)
	if g.IntN(6) == 0 {
		// No guard post this game, for some extra unpredictability.
		gpi.GuardLevel = 0
	}
}

// potionsSeqProcGen creates a random sequence of potion kinds with a bias
// towards minor ones, that still ensures major potions appear once in a
// while.
func (g *Game) potionsSeqProcGen() {
	seq := []int{
		int(MinorHealing), int(MinorHealing), int(MinorHealing),
		int(MinorHealing), int(MajorHealing), int(MajorHealing),
	}
	g.rand.Shuffle(len(seq), func(i, j int) {
		seq[i], seq[j] = seq[j], seq[i]
	})
	g.ProcInfo.Potions = seq
}

// NextPotionKind returns the next potion kind to be generated.
func (g *Game) NextPotionKind() potionKind {
	gpi := g.ProcInfo
	if gpi.PotionIdx >= len(gpi.Potions) {
		gpi.PotionIdx = 0
		g.potionsSeqProcGen()
	}
	i := gpi.Potions[gpi.PotionIdx]
	gpi.PotionIdx++
	return potionKind(i)
}
