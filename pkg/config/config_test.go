package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Tracker.Player)
	assert.Empty(t, cfg.Targets)
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[tracker]
player = "Azoni Stout"
target = "Korgan"
exact = true
log = "/games/nwn/logs"
window-seconds = 45

[targets]
goblin3 = "General Korgan"
moore1 = "XANASDEM - LEGION CAPTAIN"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Azoni Stout", cfg.Tracker.Player)
	assert.Equal(t, "Korgan", cfg.Tracker.Target)
	assert.True(t, cfg.Tracker.ExactMatch)
	assert.Equal(t, "/games/nwn/logs", cfg.Tracker.LogPath)
	assert.Equal(t, 45, cfg.Tracker.WindowSeconds)
	assert.Equal(t, "General Korgan", cfg.Targets["goblin3"])
}

func TestLoadMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ["), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	assert.Equal(t, filepath.Join("/tmp/xdg-config", "nwn-tracker", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "nwn-tracker", "history.json"), DefaultHistoryPath())
}
