package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jfromaniello/planscript/pkg/intent"
)

// Config is the optional per-project solver tuning, read from
// planscript.toml next to the intent. Intent values win over the config,
// the config wins over built-in defaults.
type Config struct {
	Variants      int     `toml:"variants"`
	CorridorWidth float64 `toml:"corridor_width"`
	DoorWidth     float64 `toml:"door_width"`
	WindowWidth   float64 `toml:"window_width"`
}

// loadConfig reads planscript.toml from the project directory. A missing
// file is not an error.
func loadConfig(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, "planscript.toml")
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}

// apply fills intent defaults the intent itself left unset.
func (c *Config) apply(in *intent.Intent) {
	if in.Defaults.Variants == 0 && c.Variants > 0 {
		in.Defaults.Variants = c.Variants
	}
	if in.Defaults.CorridorWidth == 0 && c.CorridorWidth > 0 {
		in.Defaults.CorridorWidth = c.CorridorWidth
	}
	if in.Defaults.DoorWidth == 0 && c.DoorWidth > 0 {
		in.Defaults.DoorWidth = c.DoorWidth
	}
	if in.Defaults.WindowWidth == 0 && c.WindowWidth > 0 {
		in.Defaults.WindowWidth = c.WindowWidth
	}
}
