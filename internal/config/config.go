// Package config loads application settings from a TOML file.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the startup settings. Command-line flags override file values.
type Config struct {
	ImagePath       string `toml:"image_path"`
	Iterations      int    `toml:"iterations"`
	ThumbnailHeight int    `toml:"thumbnail_height"`
	WindowWidth     int    `toml:"window_width"`
	WindowHeight    int    `toml:"window_height"`
	ReducePeriod    bool   `toml:"reduce_period"`
	Debug           bool   `toml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Iterations:      1,
		ThumbnailHeight: 250,
		WindowWidth:     550,
		WindowHeight:    650,
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must be non-negative, got %d", c.Iterations))
	}
	if c.ThumbnailHeight < 1 {
		errs = append(errs, fmt.Errorf("thumbnail_height must be positive, got %d", c.ThumbnailHeight))
	}
	if c.WindowWidth < 1 || c.WindowHeight < 1 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight))
	}
	return errors.Join(errs...)
}
