package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/ovehbe/710Launcher-sub000/errors"
)

// envOverlay holds LAUNCHER_* variables; set values win over the file.
type envOverlay struct {
	StoreBackend string  `env:"LAUNCHER_STORE_BACKEND"`
	StorePath    string  `env:"LAUNCHER_STORE_PATH"`
	PacksDir     string  `env:"LAUNCHER_PACKS_DIR"`
	IconsDir     string  `env:"LAUNCHER_ICONS_DIR"`
	Density      float64 `env:"LAUNCHER_DENSITY"`
}

func applyEnv(cfg *Config) error {
	var o envOverlay
	if err := env.Parse(&o); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse LAUNCHER_* environment")
	}

	if o.StoreBackend != "" {
		cfg.Store.Backend = o.StoreBackend
	}
	if o.StorePath != "" {
		cfg.Store.Path = o.StorePath
	}
	if o.PacksDir != "" {
		cfg.PacksDir = o.PacksDir
	}
	if o.IconsDir != "" {
		cfg.IconsDir = o.IconsDir
	}
	if o.Density > 0 {
		cfg.Density = o.Density
	}
	return nil
}
