package main

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"testing"
)

func TestNewMonsterUnknown(t *testing.T) {
	e, err := NewMonster("gibbering_mouther")
	if !errors.Is(err, ErrUnknownSpecies) {
		t.Errorf("error %v instead of ErrUnknownSpecies", err)
	}
	if e != nil {
		t.Errorf("entity %+v returned along with the error", e)
	}
}

func TestNewMonsterTemplate(t *testing.T) {
	e, err := NewMonster(Kobold)
	if err != nil {
		t.Fatalf("NewMonster(Kobold): %v", err)
	}
	if e.Name != "kobold" || e.Rune != 'k' {
		t.Errorf("display %q %q does not match the template", e.Name, e.Rune)
	}
	if e.KnownP != InvalidPos {
		t.Errorf("fresh monster already has a known position %v", e.KnownP)
	}
	a := e.Actor()
	if a.HP != 6 || a.MaxHP != 6 {
		t.Errorf("HP %d/%d instead of 6/6", a.HP, a.MaxHP)
	}
	if a.Attack != 2 || a.Defense != 1 {
		t.Errorf("attack %d defense %d instead of 2 and 1", a.Attack, a.Defense)
	}
	if a.Speed != 105 || a.XP != 8 {
		t.Errorf("speed %d xp %d instead of 105 and 8", a.Speed, a.XP)
	}
	if a.Kind != Kobold {
		t.Errorf("kind %v instead of Kobold", a.Kind)
	}
	if !a.DoesAny(OpensDoors) || a.DoesAny(Aggressive|Player) {
		t.Errorf("traits %v instead of just OpensDoors", a.Traits)
	}
	mi := a.Mind
	if mi == nil {
		t.Fatalf("monster without a mind")
	}
	if mi.Home != InvalidPos || mi.LastSeen != InvalidPos {
		t.Errorf("fresh mind with home %v and sighting %v", mi.Home, mi.LastSeen)
	}
}

func TestLoadSpeciesFileMissing(t *testing.T) {
	if err := LoadSpeciesFile(filepath.Join(t.TempDir(), "species.yaml")); err != nil {
		t.Errorf("missing data file reported an error: %v", err)
	}
}

func TestLoadSpeciesFileOverride(t *testing.T) {
	orig := maps.Clone(SpeciesData)
	defer func() { SpeciesData = orig }()
	path := filepath.Join(t.TempDir(), "species.yaml")
	data := `
gutter_rat:
  name: sewer rat
  rune: R
  color: red
  hp: 5
  attack: 2
  defense: 1
  speed: 120
  xp: 3
  aggressive: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing data file: %v", err)
	}
	if err := LoadSpeciesFile(path); err != nil {
		t.Fatalf("LoadSpeciesFile: %v", err)
	}
	si := SpeciesData[GutterRat]
	if si.Name != "sewer rat" || si.R != 'R' || si.Color != ColorRed {
		t.Errorf("display override not applied: %+v", si)
	}
	if si.HP != 5 || si.Attack != 2 || si.Defense != 1 || si.Speed != 120 || si.XP != 3 {
		t.Errorf("stat override not applied: %+v", si)
	}
	if !si.Traits.Any(Aggressive) || si.Traits.Any(OpensDoors) {
		t.Errorf("trait override not applied: %v", si.Traits)
	}
	// Untouched species keep their built-in template.
	if SpeciesData[Kobold].Name != "kobold" {
		t.Errorf("kobold template clobbered by the override file")
	}
}

func TestLoadSpeciesFileBad(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "gutter_rat: [not a map"},
		{"missing name", "gutter_rat: {rune: r, color: red, hp: 3}"},
		{"bad rune", "gutter_rat: {name: rat, rune: rr, color: red, hp: 3}"},
		{"bad color", "gutter_rat: {name: rat, rune: r, color: plaid, hp: 3}"},
		{"bad hp", "gutter_rat: {name: rat, rune: r, color: red, hp: 0}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "species.yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatalf("writing data file: %v", err)
			}
			if err := LoadSpeciesFile(path); err == nil {
				t.Errorf("no error for %s", tc.name)
			}
		})
	}
}
