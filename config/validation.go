package config

import (
	"fmt"
	"strings"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/pkg/paths"
	"github.com/ovehbe/710Launcher-sub000/util/pathutil"
)

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendFile
	}
	if c.Store.Path == "" && c.Store.Backend != BackendMemory {
		c.Store.Path = paths.StorePath()
		if c.Store.Backend == BackendSQLite && c.Store.Path != "" {
			c.Store.Path = strings.TrimSuffix(c.Store.Path, ".yml") + ".db"
		}
	}
	if c.PacksDir == "" {
		c.PacksDir = paths.PacksDir()
	}
	if c.IconsDir == "" {
		c.IconsDir = paths.IconsDir()
	}
	if c.Density <= 0 {
		c.Density = 1.0
	}
}

// ExpandPaths makes the store, packs and icons paths absolute, resolving ~
// and $VAR.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.Store.Path, &c.PacksDir, &c.IconsDir} {
		expanded, err := pathutil.Expand(*p)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to expand path").
				WithDetail("path", *p)
		}
		*p = expanded
	}
	return nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite:
		if c.Store.Path == "" {
			return errors.ConfigInvalid(fmt.Sprintf("store.path is required for the %s backend", c.Store.Backend))
		}
	case BackendMemory:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown store backend '%s'", c.Store.Backend)).
			WithDetail("backend", c.Store.Backend)
	}

	if c.Density <= 0 || c.Density > 8 {
		return errors.ConfigInvalid(fmt.Sprintf("density %.2f out of range (0, 8]", c.Density))
	}

	return nil
}
