// Package config loads parsetrace.toml, the optional rendering settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the settings file looked up from the working directory upwards.
const FileName = "parsetrace.toml"

// Config holds rendering settings.
type Config struct {
	Render  Render  `toml:"render"`
	Palette Palette `toml:"palette"`
}

// Render controls layout of rendered traces.
type Render struct {
	Indent    int  `toml:"indent"`    // spaces per depth level
	Positions bool `toml:"positions"` // append line:col of each span
	MaxWidth  int  `toml:"max_width"` // label display width limit, 0 = unlimited
	Summary   bool `toml:"summary"`   // print status totals after each trace
}

// Palette maps statuses to colour names understood by present.ParseColor.
type Palette struct {
	Opened  string `toml:"opened"`
	Matched string `toml:"matched"`
	Failed  string `toml:"failed"`
}

// Default returns the settings used when no file is found.
func Default() Config {
	return Config{
		Render: Render{Indent: 2},
		Palette: Palette{
			Opened:  "blue",
			Matched: "green",
			Failed:  "red",
		},
	}
}

// Find walks from startDir towards the root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults. Keys absent from the file keep their
// default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the explicit path when given, otherwise the nearest
// FileName above startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Render.Indent < 0 || c.Render.Indent > 16 {
		return fmt.Errorf("render.indent must be between 0 and 16, got %d", c.Render.Indent)
	}
	if c.Render.MaxWidth < 0 {
		return fmt.Errorf("render.max_width must not be negative, got %d", c.Render.MaxWidth)
	}
	return nil
}
