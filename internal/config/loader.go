package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "race.yaml"

// Load loads the race configuration.
// Search order: customPath -> ~/.racetrack/configs/race.yaml -> ./configs/race.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides
// the keys it sets.
func Load(customPath string) (RaceConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultRaceConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if cfg, ok := tryLoad(path); ok {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultRaceConfig()
	if err := yaml.Unmarshal(defaultRaceYAML, &cfg); err != nil {
		return DefaultRaceConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unparseable and invalid
// files are all ignored.
func tryLoad(path string) (RaceConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RaceConfig{}, false
	}
	cfg := DefaultRaceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RaceConfig{}, false
	}
	if cfg.Validate() != nil {
		return RaceConfig{}, false
	}
	return cfg, true
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg RaceConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns the per-user config file path, or empty if home is
// unavailable.
func UserConfigPath() string {
	return userConfigPath(configFile)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".racetrack", "configs", filename)
}
