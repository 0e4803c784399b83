package config

import (
	"fmt"
	"strings"
)

// Preset represents a named rule set.
type Preset string

const (
	PresetCasual   Preset = "casual"
	PresetNormal   Preset = "normal"
	PresetHardcore Preset = "hardcore"
)

// Presets lists the presets in menu order.
func Presets() []Preset {
	return []Preset{PresetCasual, PresetNormal, PresetHardcore}
}

// ParsePreset converts a flag value to a Preset.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q (want casual, normal or hardcore)", s)
}

// ApplyPreset modifies the config based on a rule preset.
func ApplyPreset(cfg *RaceConfig, preset Preset) {
	switch preset {
	case PresetCasual:
		cfg.Rules.Respawn = true
		cfg.Rules.RespawnSeconds = 1.5
		cfg.Display.ShowWalls = true
		cfg.Display.VelocityHint = true
	case PresetNormal:
		cfg.Rules.Respawn = true
		cfg.Rules.RespawnSeconds = 3
		cfg.Display.ShowWalls = true
	case PresetHardcore:
		cfg.Rules.Respawn = false
		cfg.Display.ShowWalls = false
		cfg.Display.VelocityHint = false
	}
}
