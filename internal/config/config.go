// Package config provides YAML-based race configuration loading and
// rule presets.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/racetrack/internal/core"
)

// Player count limits.
const (
	MinPlayers = 1
	MaxPlayers = 4
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// RaceConfig contains all configuration for a race.
type RaceConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Players PlayersConfig `yaml:"players"`
	Rules   RulesConfig   `yaml:"rules"`
	Display DisplayConfig `yaml:"display"`
}

// GridConfig is the board size used when a track does not set one.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayersConfig sets up the cars.
type PlayersConfig struct {
	Count  int   `yaml:"count"`
	Colors []int `yaml:"colors"` // Palette index per player
}

// RulesConfig defines crash and race-end rules.
type RulesConfig struct {
	Respawn        bool    `yaml:"respawn"`         // false: a crash eliminates the car
	RespawnSeconds float64 `yaml:"respawn_seconds"` // Delay before a crashed car returns to its start
	MaxTurns       int     `yaml:"max_turns"`       // 0 = unlimited
}

// DisplayConfig controls what the board shows.
type DisplayConfig struct {
	ShowWalls    bool `yaml:"show_walls"`
	Trails       bool `yaml:"trails"`
	VelocityHint bool `yaml:"velocity_hint"`
}

// Validate checks the config and returns an error describing the first
// problem found.
func (c RaceConfig) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid %dx%d: %w", c.Grid.Width, c.Grid.Height, ErrInvalidConfig)
	}
	if c.Players.Count < MinPlayers || c.Players.Count > MaxPlayers {
		return fmt.Errorf("config: players %d not in [%d, %d]: %w", c.Players.Count, MinPlayers, MaxPlayers, ErrInvalidConfig)
	}
	if c.Rules.RespawnSeconds < 0 {
		return fmt.Errorf("config: respawn_seconds %v: %w", c.Rules.RespawnSeconds, ErrInvalidConfig)
	}
	if c.Rules.MaxTurns < 0 {
		return fmt.Errorf("config: max_turns %d: %w", c.Rules.MaxTurns, ErrInvalidConfig)
	}
	return nil
}

// Color returns the palette index for player i. Missing or out-of-palette
// entries fall back to the default order.
func (c RaceConfig) Color(i int) int {
	if i >= 0 && i < len(c.Players.Colors) {
		if idx := c.Players.Colors[i]; idx >= 0 && idx < len(core.CarPalette) {
			return idx
		}
	}
	return defaultColors[i%len(defaultColors)]
}

// CycleColor advances player i to the next palette colour.
func (c *RaceConfig) CycleColor(i int) {
	if i < 0 {
		return
	}
	for len(c.Players.Colors) <= i {
		c.Players.Colors = append(c.Players.Colors, c.Color(len(c.Players.Colors)))
	}
	c.Players.Colors[i] = core.NextPaint(c.Color(i))
}

// SetPlayers changes the player count, clamped to the allowed range.
func (c *RaceConfig) SetPlayers(n int) {
	c.Players.Count = core.Clamp(n, MinPlayers, MaxPlayers)
}

// RespawnTicks converts the respawn delay to ticks at the given rate.
// Returns -1 when crashed cars never come back.
func (c RaceConfig) RespawnTicks(tickRate int) int {
	if !c.Rules.Respawn {
		return -1
	}
	return int(c.Rules.RespawnSeconds * float64(tickRate))
}
