// Package config handles distil.toml run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lollipopkit/distil/binchunk"
	"github.com/lollipopkit/distil/consts"
)

const (
	OverwriteAsk    = "ask"
	OverwriteAlways = "always"
	OverwriteNever  = "never"
)

// Config represents a distil.toml file.
type Config struct {
	Decode binchunk.Config `toml:"decode"`
	Output Output          `toml:"output"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// Output configures how and where trees are written.
type Output struct {
	Format    string `toml:"format"`
	Dir       string `toml:"dir"`
	Pretty    bool   `toml:"pretty"`
	Overwrite string `toml:"overwrite"`
}

func Default() *Config {
	return &Config{
		Output: Output{
			Format:    "json",
			Overwrite: OverwriteAsk,
		},
	}
}

// Load parses the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if _, err := toml.Decode(string(data), c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	c.Path = path

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir looking for distil.toml. Without one
// the defaults are returned.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", startDir, err)
	}

	for {
		path := filepath.Join(dir, consts.ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	switch c.Output.Overwrite {
	case OverwriteAsk, OverwriteAlways, OverwriteNever:
	default:
		return fmt.Errorf("output.overwrite must be ask, always or never, got %q", c.Output.Overwrite)
	}
	if c.Output.Format == "" {
		return errors.New("output.format is empty")
	}
	return nil
}
