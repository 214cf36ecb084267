package config

import (
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appDir is the subdirectory used under every XDG base directory.
const appDir = "wavplay"

// XDGDirs provides XDG Base Directory compliant paths for wavplay
type XDGDirs struct{}

// NewXDGDirs creates a new XDG directory manager
func NewXDGDirs() *XDGDirs {
	slog.Debug("creating new XDG directory manager")
	return &XDGDirs{}
}

// GetConfigPaths returns prioritized paths where config files can be found.
// Returns paths in search order: user config dir, then system config dirs.
func (x *XDGDirs) GetConfigPaths(filename string) []string {
	var paths []string

	userConfigPath := filepath.Join(xdg.ConfigHome, appDir)
	if filename != "" {
		userConfigPath = filepath.Join(userConfigPath, filename)
	}
	paths = append(paths, userConfigPath)

	for _, configDir := range xdg.ConfigDirs {
		systemPath := filepath.Join(configDir, appDir)
		if filename != "" {
			systemPath = filepath.Join(systemPath, filename)
		}
		paths = append(paths, systemPath)
	}

	slog.Debug("generated config paths",
		"filename", filename,
		"total_paths", len(paths),
		"user_path", userConfigPath)

	return paths
}

// GetDataPath returns the data directory path for a specific purpose,
// e.g. the playback history database.
func (x *XDGDirs) GetDataPath(purpose string) string {
	baseDir := appDir
	if purpose != "" {
		baseDir = filepath.Join(baseDir, purpose)
	}

	dataPath := filepath.Join(xdg.DataHome, baseDir)

	slog.Debug("generated data path", "purpose", purpose, "data_path", dataPath)
	return dataPath
}

// GetCachePath returns the cache directory path for a specific purpose,
// e.g. rotated log files.
func (x *XDGDirs) GetCachePath(purpose string) string {
	baseDir := appDir
	if purpose != "" {
		baseDir = filepath.Join(baseDir, purpose)
	}

	cachePath := filepath.Join(xdg.CacheHome, baseDir)

	slog.Debug("generated cache path", "purpose", purpose, "cache_path", cachePath)
	return cachePath
}
