// Package paths provides XDG-compliant path resolution for the launcher.
//
// Resolution order:
// 1. LAUNCHER_HOME (portable root) → $LAUNCHER_HOME/{config,data,state}
// 2. XDG env vars → $XDG_*_HOME/launcher
// 3. Platform defaults → ~/.config/launcher, ~/.local/share/launcher, etc.
package paths

import (
	"os"
	"path/filepath"
)

const appDir = "launcher"

func baseDir(homeSub, xdgVar string, fallback ...string) string {
	if home := os.Getenv("LAUNCHER_HOME"); home != "" {
		return filepath.Join(home, homeSub)
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		parts := append([]string{homeDir}, fallback...)
		return filepath.Join(append(parts, appDir)...)
	}
	return ""
}

// ConfigDir returns the launcher configuration directory (launcher.yml).
func ConfigDir() string {
	return baseDir("config", "XDG_CONFIG_HOME", ".config")
}

// DataDir returns the launcher data directory.
// Installed icon packs and raw application icons live here.
func DataDir() string {
	return baseDir("data", "XDG_DATA_HOME", ".local", "share")
}

// StateDir returns the launcher state directory.
// Used for the configuration store and logs.
func StateDir() string {
	return baseDir("state", "XDG_STATE_HOME", ".local", "state")
}

// PacksDir is the default root of installed icon packs.
func PacksDir() string {
	return joinIfSet(DataDir(), "iconpacks")
}

// IconsDir is the default root of raw application icons.
func IconsDir() string {
	return joinIfSet(DataDir(), "icons")
}

// StorePath is the default location of the file-backed configuration store.
func StorePath() string {
	return joinIfSet(StateDir(), "prefs.yml")
}

func joinIfSet(base, name string) string {
	if base == "" {
		return ""
	}
	return filepath.Join(base, name)
}
