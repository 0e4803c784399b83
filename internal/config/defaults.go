package config

import (
	_ "embed"
)

//go:embed defaults/race.yaml
var defaultRaceYAML []byte

// defaultColors is the palette order handed to players 1..4.
var defaultColors = []int{0, 2, 1, 3}

// DefaultRaceConfig returns the default race configuration.
func DefaultRaceConfig() RaceConfig {
	return RaceConfig{
		Grid: GridConfig{
			Width:  32,
			Height: 24,
		},
		Players: PlayersConfig{
			Count:  2,
			Colors: append([]int(nil), defaultColors...),
		},
		Rules: RulesConfig{
			Respawn:        true,
			RespawnSeconds: 3,
		},
		Display: DisplayConfig{
			ShowWalls:    true,
			Trails:       true,
			VelocityHint: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRaceYAML
}
