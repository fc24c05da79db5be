package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Store backends understood by the launcher.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// StoreConfig selects where the configuration store persists its entries.
type StoreConfig struct {
	// Backend is one of "file" (default), "sqlite" or "memory".
	Backend string `yaml:"backend" toml:"backend"`
	// Path is the store file or database; defaults under the XDG state dir.
	Path string `yaml:"path" toml:"path"`
}

// Config is the launcher runtime configuration read from launcher.yml or
// launcher.toml. It only locates things; user-facing settings live in the
// configuration store.
type Config struct {
	Version  string      `yaml:"version" toml:"version"`
	Store    StoreConfig `yaml:"store" toml:"store"`
	PacksDir string      `yaml:"packs_dir" toml:"packs_dir"`
	IconsDir string      `yaml:"icons_dir" toml:"icons_dir"`
	// Density converts the stored icon size (dp) into pixels.
	Density float64 `yaml:"density" toml:"density"`

	// Extensions captures all other top-level keys (e.g. "logging").
	Extensions map[string]interface{} `yaml:",inline" toml:"-"`
}

// knownKeys are the top-level keys decoded into Config itself.
var knownKeys = map[string]bool{
	"version":   true,
	"store":     true,
	"packs_dir": true,
	"icons_dir": true,
	"density":   true,
}

// UnmarshalExtension decodes a named extension section into target, which
// must be a pointer. A missing section leaves target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
