// Package config loads presenter settings from a TOML file, with defaults
// applied for anything the file leaves unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the presenter settings. Deck frontmatter and command-line
// flags may override individual fields after loading.
type Config struct {
	// Theme is a glamour standard style name ("auto" when empty).
	Theme string `toml:"theme"`
	// SwipeThreshold is the horizontal mouse-drag distance, in cells, that
	// counts as a swipe.
	SwipeThreshold int `toml:"swipe_threshold"`
	// Reveal enables the per-slide entry animation.
	Reveal bool `toml:"reveal"`
	// RevealIntervalMS is the delay between revealed lines.
	RevealIntervalMS int `toml:"reveal_interval_ms"`
	// Menu enables the slide menu overlay.
	Menu bool `toml:"menu"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme:            "auto",
		SwipeThreshold:   50,
		Reveal:           true,
		RevealIntervalMS: 40,
		Menu:             true,
	}
}

// DefaultPath returns the standard config location,
// $XDG_CONFIG_HOME/preso/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "preso", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg.validate(path)
}

func (c Config) validate(path string) (Config, error) {
	if c.SwipeThreshold < 1 {
		return Config{}, fmt.Errorf("load config %s: swipe_threshold must be positive", path)
	}
	if c.RevealIntervalMS < 1 {
		return Config{}, fmt.Errorf("load config %s: reveal_interval_ms must be positive", path)
	}
	return c, nil
}
