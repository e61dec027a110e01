package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "penquin.yaml"

// Load loads the engine configuration.
// Search order: customPath -> ~/.penquin/configs/penquin.yaml -> ./configs/penquin.yaml -> embedded default.
// Every file is decoded on top of the hard-coded defaults, so partial files
// only override the keys they name.
func Load(customPath string) (PenquinConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultPenquinConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultPenquinConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultPenquinYAML)
	if err != nil {
		return DefaultPenquinConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (PenquinConfig, error) {
	cfg := DefaultPenquinConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".penquin", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy slows enemies and shortens the restart wait; hard does the opposite.
func ApplyPreset(cfg *PenquinConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Enemy.Speed *= 0.6
		cfg.Collision.StompMargin = 0
		cfg.Timings.DeathRestartTicks = cfg.Timings.DeathRestartTicks * 2 / 3
	case DifficultyHard:
		cfg.Enemy.Speed *= 1.5
		cfg.Collision.StompMargin *= 2
		cfg.Timings.DeathRestartTicks = cfg.Timings.DeathRestartTicks * 3 / 2
	}
}
