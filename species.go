package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"codeberg.org/anaseto/gruid"
	"gopkg.in/yaml.v3"
)

// speciesKind identifies a monster species. Kinds are strings so that data
// file overrides and saved games keep their meaning across versions.
type speciesKind string

// Those are the built-in species.
const (
	GutterRat   speciesKind = "gutter_rat"
	CaveSpider  speciesKind = "cave_spider"
	Kobold      speciesKind = "kobold"
	OrcRookling speciesKind = "orc_rookling"
	Zombie      speciesKind = "zombie"
	Goblin      speciesKind = "goblin"
	Orc         speciesKind = "orc"
)

// SpeciesInfo provides information about a monster species.
type SpeciesInfo struct {
	Name    string      // display name (lowercase, without article)
	R       rune        // rune (for display)
	Color   gruid.Color // base display color
	HP      int         // actor's max HP
	Attack  int         // actor's attack
	Defense int         // actor's defense
	Speed   int         // actor's action speed
	XP      int         // experience awarded to the killer
	Traits  Traits      // actor's traits
	Desc    string      // short description for examining
}

// SpeciesData provides the templates for the various species. Entries may be
// replaced wholesale by a species data file.
var SpeciesData = map[speciesKind]*SpeciesInfo{
	//           {name, rune, color, hp, attack, defense, speed, xp, traits, desc}
	GutterRat:   {"gutter rat", 'r', ColorOrange, 3, 1, 0, 110, 2, 0, "A mangy rodent grown bold on refuse. It keeps to its corner unless cornered."},
	CaveSpider:  {"cave spider", 's', ColorViolet, 4, 2, 0, 115, 4, SeesInvisible, "It feels the web of the world tremble. Hiding will not help you."},
	Kobold:      {"kobold", 'k', ColorGreen, 6, 2, 1, 105, 8, OpensDoors, "A small scaled scavenger with clever fingers. Doors do not stop it."},
	OrcRookling: {"orc rookling", 'o', ColorOrange, 8, 3, 1, 100, 12, Aggressive | OpensDoors, "A young orc eager to prove itself. It attacks on sight."},
	Zombie:      {"zombie", 'z', ColorMagenta, 12, 3, 2, 80, 18, Aggressive, "Slow, rotting and utterly relentless."},
	Goblin:      {"goblin", 'g', ColorGreen, 5, 2, 1, 105, 6, OpensDoors, "A wiry sneak that slips through the dark after easy prey."},
	Orc:         {"orc", 'O', ColorMagenta, 15, 4, 2, 95, 30, Aggressive | OpensDoors, "A seasoned warrior of the deep warrens. It never runs from a fight."},
}

// Name returns the species display name. Kinds without a template fall back
// to the raw id.
func (mk speciesKind) Name() string {
	if si, ok := SpeciesData[mk]; ok {
		return si.Name
	}
	return string(mk)
}

// Data returns the species template, or nil for kinds without one.
func (mk speciesKind) Data() *SpeciesInfo {
	return SpeciesData[mk]
}

// ErrUnknownSpecies reports a species id that has no registered template.
var ErrUnknownSpecies = errors.New("unknown species")

// NewMonster builds a new monster entity of the given species from its
// template. The entity gets no position: placement belongs to the caller.
func NewMonster(mk speciesKind) (*Entity, error) {
	si, ok := SpeciesData[mk]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, mk)
	}
	a := NewActor(si.Attack, si.Defense, si.HP, si.Traits)
	a.Kind = mk
	a.Speed = si.Speed
	a.XP = si.XP
	a.Mind = &Mind{Home: InvalidPos, LastSeen: InvalidPos}
	return &Entity{
		Name:   si.Name,
		Rune:   si.R,
		KnownP: InvalidPos,
		Role:   a,
	}, nil
}

// speciesOverride is the file shape of one species template.
type speciesOverride struct {
	Name          string `yaml:"name"`
	Rune          string `yaml:"rune"`
	Color         string `yaml:"color"`
	HP            int    `yaml:"hp"`
	Attack        int    `yaml:"attack"`
	Defense       int    `yaml:"defense"`
	Speed         int    `yaml:"speed"`
	XP            int    `yaml:"xp"`
	Description   string `yaml:"description"`
	Aggressive    bool   `yaml:"aggressive"`
	OpensDoors    bool   `yaml:"opens_doors"`
	SeesInvisible bool   `yaml:"sees_invisible"`
}

// colorNames maps data file color names to palette colors.
var colorNames = map[string]gruid.Color{
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"orange":  ColorOrange,
	"violet":  ColorViolet,
}

func (ov *speciesOverride) info() (*SpeciesInfo, error) {
	if ov.Name == "" {
		return nil, errors.New("missing name")
	}
	rs := []rune(ov.Rune)
	if len(rs) != 1 {
		return nil, fmt.Errorf("bad rune %q", ov.Rune)
	}
	color, ok := colorNames[ov.Color]
	if !ok {
		return nil, fmt.Errorf("bad color %q", ov.Color)
	}
	if ov.HP <= 0 {
		return nil, fmt.Errorf("bad hp %d", ov.HP)
	}
	var t Traits
	if ov.Aggressive {
		t |= Aggressive
	}
	if ov.OpensDoors {
		t |= OpensDoors
	}
	if ov.SeesInvisible {
		t |= SeesInvisible
	}
	return &SpeciesInfo{
		Name:    ov.Name,
		R:       rs[0],
		Color:   color,
		HP:      ov.HP,
		Attack:  ov.Attack,
		Defense: ov.Defense,
		Speed:   ov.Speed,
		XP:      ov.XP,
		Traits:  t,
		Desc:    ov.Description,
	}, nil
}

// LoadSpeciesFile replaces built-in species templates with the ones found in
// the given YAML file, keyed by species id. A missing file leaves the
// built-ins untouched; a malformed one is an error.
func LoadSpeciesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	var raw map[string]speciesOverride
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	for id, ov := range raw {
		si, err := ov.info()
		if err != nil {
			return fmt.Errorf("%s: species %q: %v", path, id, err)
		}
		SpeciesData[speciesKind(id)] = si
	}
	return nil
}
