// ==============================================================================================
// FILE: config/config.go
// ==============================================================================================
// PACKAGE: config
// PURPOSE: Optional YAML session configuration: screen geometry, the SAVE/LOAD directory,
//          and log verbosity. Absent a config file, Default() supplies the classic Apple II
//          40x24 text screen.
// ==============================================================================================

package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings a session is launched with.
type Config struct {
	Screen   ScreenConfig `yaml:"screen"`
	SaveDir  string       `yaml:"save_dir"`
	LogLevel string       `yaml:"log_level"`
}

// ScreenConfig describes the text screen's addressable geometry.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the classic Apple II 40-column, 24-row configuration,
// saving programs under ./programs with logging at "info".
func Default() Config {
	return Config{
		Screen:   ScreenConfig{Width: 40, Height: 24},
		SaveDir:  "programs",
		LogLevel: "info",
	}
}

// Load reads a YAML config file, falling back to Default() for any field
// the file leaves zero-valued.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: parse yaml")
	}
	if cfg.Screen.Width <= 0 {
		cfg.Screen.Width = 40
	}
	if cfg.Screen.Height <= 0 {
		cfg.Screen.Height = 24
	}
	if cfg.SaveDir == "" {
		cfg.SaveDir = "programs"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
