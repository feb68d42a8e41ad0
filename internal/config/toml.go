// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
}

// GameConfig maps game-related settings.
type GameConfig struct {
	Mode       *string `toml:"mode" validate:"omitempty,oneof=timed passage"`
	Difficulty *string `toml:"difficulty" validate:"omitempty,min=1"`
	Passages   *string `toml:"passages"`
	Debug      *bool   `toml:"debug"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return FileConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
