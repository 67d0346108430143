// Package config provides the TOML configuration file and path helpers.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the tracker configuration file.
type Config struct {
	Tracker TrackerConfig     `toml:"tracker"`
	Targets map[string]string `toml:"targets"`
}

// TrackerConfig maps the [tracker] section.
type TrackerConfig struct {
	Player        string `toml:"player"`
	Target        string `toml:"target"`
	ExactMatch    bool   `toml:"exact"`
	LogPath       string `toml:"log"`
	WindowSeconds int    `toml:"window-seconds"`
}

// Load reads a TOML config from the given path. An empty path is
// rejected; a missing file is not an error and defaults apply.
func Load(path string) (Config, error) {
	cfg := Config{Targets: map[string]string{}}
	if path == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func configHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("APPDATA"); v != "" {
			return v
		}
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

func dataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		if v := os.Getenv("APPDATA"); v != "" {
			return v
		}
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config location.
func DefaultConfigPath() string {
	return filepath.Join(configHome(), "nwn-tracker", "config.toml")
}

// DefaultHistoryPath returns the encounter history file location.
func DefaultHistoryPath() string {
	return filepath.Join(dataHome(), "nwn-tracker", "history.json")
}

// DefaultLogDirs lists the usual client log locations, most likely
// first.
func DefaultLogDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}
	return []string{
		filepath.Join(home, "Documents", "Neverwinter Nights", "logs"),
		filepath.Join(home, "OneDrive", "Documents", "Neverwinter Nights", "logs"),
	}
}

// AutoDetectLogDir returns the first default log directory that
// exists, or "".
func AutoDetectLogDir() string {
	for _, dir := range DefaultLogDirs() {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
