// Package config handles tokenfold configuration.
package config

import (
	"os"
	"path/filepath"
)

// Paths provides all tokenfold-related filesystem paths.
type Paths struct {
	ConfigDir  string // ~/.config/tokenfold
	CacheDir   string // ~/.cache/tokenfold
	ConfigFile string // ~/.config/tokenfold/config.yaml
	CacheFile  string // ~/.cache/tokenfold/responses.json
	StatsFile  string // ~/.config/tokenfold/stats.json
}

// NewPaths creates Paths using ~/.config and ~/.cache directories.
// We use these paths explicitly for cross-platform consistency rather than
// platform-specific defaults (like ~/Library/Application Support on macOS).
func NewPaths() *Paths {
	home := os.Getenv("HOME")
	return NewPathsWithOverrides(
		filepath.Join(home, ".config", "tokenfold"),
		filepath.Join(home, ".cache", "tokenfold"),
	)
}

// NewPathsWithOverrides allows overriding directories for testing.
func NewPathsWithOverrides(configDir, cacheDir string) *Paths {
	return &Paths{
		ConfigDir:  configDir,
		CacheDir:   cacheDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		CacheFile:  filepath.Join(cacheDir, "responses.json"),
		StatsFile:  filepath.Join(configDir, "stats.json"),
	}
}
