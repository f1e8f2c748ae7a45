package main

// Mod represents the various kinds of optional mods for the game.
type Mod int

// Those constants describe the available mods.
const (
	ModTeemingDark  Mod = iota // mod with twice as frequent monster spawns
	ModDimSight                // mod with reduced sight radius
	ModBrittleBones            // mod with smaller max HP gains on level-up

	modCount // dummy mod (for NMods)
)

// Number of mods.
const NMods = int(modCount)

var gameMods = []Mod{
	ModTeemingDark,
	ModDimSight,
	ModBrittleBones,
}

func (m Mod) String() string {
	switch m {
	case ModTeemingDark:
		return "Teeming Dark"
	case ModDimSight:
		return "Dim Sight"
	case ModBrittleBones:
		return "Brittle Bones"
	default:
		return "(unknown mod)"
	}
}

func (m Mod) Desc() string {
	switch m {
	case ModTeemingDark:
		return "The warrens never empty: reinforcements arrive twice as often.\n\nExpect the threat level to climb if you linger."
	case ModDimSight:
		return "Your light reaches 6 tiles instead of 10.\n\nMonsters notice you from as far as ever."
	case ModBrittleBones:
		return "Leveling up grants only 2 max HP instead of 5.\n\nAttack and defense growth is unchanged. Choose your fights."
	default:
		return "(unknown mod)"
	}
}
