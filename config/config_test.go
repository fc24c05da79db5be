package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	t.Setenv("LAUNCHER_HOME", t.TempDir())
	t.Setenv("PACK_ROOT", "/opt/packs")

	data := `
version: "1.0"
store:
  backend: sqlite
  path: /tmp/prefs.db
packs_dir: ${PACK_ROOT}
icons_dir: ${ICON_ROOT:-/opt/icons}
density: 2.5
logging:
  level: debug
  format:
    preset: json
`
	cfg, err := LoadFromBytes([]byte(data), "yaml")
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/prefs.db", cfg.Store.Path)
	assert.Equal(t, "/opt/packs", cfg.PacksDir)
	assert.Equal(t, "/opt/icons", cfg.IconsDir)
	assert.Equal(t, 2.5, cfg.Density)
	assert.Contains(t, cfg.Extensions, "logging")

	var logCfg struct {
		Level  string `yaml:"level"`
		Format struct {
			Preset string `yaml:"preset"`
		} `yaml:"format"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "json", logCfg.Format.Preset)
}

func TestLoadTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("LAUNCHER_HOME", home)

	dir := t.TempDir()
	path := filepath.Join(dir, "launcher.toml")
	data := `
packs_dir = "/srv/packs"
density = 3

[store]
backend = "memory"

[logging]
level = "warn"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, "/srv/packs", cfg.PacksDir)
	assert.Equal(t, 3.0, cfg.Density)
	assert.Equal(t, filepath.Join(home, "data", "icons"), cfg.IconsDir)

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
}

func TestDefaultsAndEnvOverlay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("LAUNCHER_HOME", home)
	t.Setenv("LAUNCHER_STORE_BACKEND", "sqlite")
	t.Setenv("LAUNCHER_DENSITY", "1.5")

	cfg, err := Defaults()
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, filepath.Join(home, "state", "prefs.db"), cfg.Store.Path)
	assert.Equal(t, 1.5, cfg.Density)
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	t.Setenv("LAUNCHER_HOME", t.TempDir())

	_, err := LoadFromBytes([]byte("store:\n  backend: redis\n"), "yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "launcher.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestFindConfigFileWalksUp(t *testing.T) {
	t.Setenv("LAUNCHER_HOME", t.TempDir())

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "launcher.yaml"), []byte("density: 1\n"), 0644))

	path, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "launcher.yaml"), path)
}

func TestLoadExpandsHome(t *testing.T) {
	t.Setenv("LAUNCHER_HOME", t.TempDir())
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := LoadFromBytes([]byte("packs_dir: ~/launcher/packs\n"), "yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "launcher", "packs"), cfg.PacksDir)
}
