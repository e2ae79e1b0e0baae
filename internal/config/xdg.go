package config

import (
	"os"
	"path/filepath"
)

const name = "osuacc"

func xdg(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if nil != err || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func ConfigHome() string { return xdg("XDG_CONFIG_HOME", ".config") }
func DataHome() string   { return xdg("XDG_DATA_HOME", ".local", "share") }
func CacheHome() string  { return xdg("XDG_CACHE_HOME", ".cache") }

func DefaultConfigPath() string {
	return filepath.Join(ConfigHome(), name, "config.toml")
}

func DefaultDatabasePath() string {
	return filepath.Join(DataHome(), name, "osuacc.db")
}

// DefaultCachePath is the pebble directory holding downloaded beatmaps.
func DefaultCachePath() string {
	return filepath.Join(CacheHome(), name, "beatmaps")
}
