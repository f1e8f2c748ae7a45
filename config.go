package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the gameplay tuning knobs. An optional config.yml under the
// data directory overrides the defaults field by field. AI perception
// ranges are deliberately not configurable.
type Config struct {
	FOVRadius int          `yaml:"fov_radius"` // player sight radius
	LogLines  int          `yaml:"log_lines"`  // retained message log entries
	Spawn     SpawnConfig  `yaml:"spawn"`
	MapGen    MapGenConfig `yaml:"mapgen"`
}

// SpawnConfig tunes the spawn manager.
type SpawnConfig struct {
	Rate       int          `yaml:"rate"`         // turns between reinforcement attempts
	Max        int          `yaml:"max_monsters"` // live monster cap per level
	Initial    int          `yaml:"initial"`      // initial population target
	MinDist    int          `yaml:"min_distance"` // minimum spawn distance from the player
	OutsideFOV bool         `yaml:"outside_fov"`  // keep spawns outside the player's sight
	RoomPct    float64      `yaml:"room_pct"`     // share of spawns placed inside rooms
	Table      []SpawnEntry `yaml:"table"`        // spawn table replacement
}

// MapGenConfig tunes level generation.
type MapGenConfig struct {
	MinRooms    int `yaml:"min_rooms"`
	MaxRooms    int `yaml:"max_rooms"`
	MinRoomSize int `yaml:"min_room_size"`
	MaxRoomSize int `yaml:"max_room_size"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		FOVRadius: 10,
		LogLines:  1000,
		Spawn: SpawnConfig{
			Rate:       100,
			Max:        30,
			Initial:    10,
			MinDist:    5,
			OutsideFOV: true,
			RoomPct:    0.95,
		},
		MapGen: MapGenConfig{
			MinRooms:    5,
			MaxRooms:    9,
			MinRoomSize: 3,
			MaxRoomSize: 8,
		},
	}
}

// GameConfig contains the current gameplay configuration.
var GameConfig = DefaultConfig()

// LoadConfigFile merges the YAML file at path over the built-in defaults.
// A missing file keeps the defaults; a malformed one is an error naming the
// file.
func LoadConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	GameConfig = c
	return nil
}
