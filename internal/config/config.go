package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// HomeEnv overrides the configuration directory
	HomeEnv = "CS2QS_HOME"
)

var (
	// ConfigDir is the global configuration directory (~/.cs2quicksetup)
	ConfigDir string

	// DatabasePath is the SQLite database holding the previous generated document
	DatabasePath string

	// LockPath guards the load-previous / generate / store-previous cycle across processes
	LockPath string

	// SettingsFile is the default settings file
	SettingsFile string
)

// Initialize sets up the configuration directory
// It creates ~/.cs2quicksetup/ (or $CS2QS_HOME) if it doesn't exist
func Initialize() error {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return InitializeAt(expandHome(dir))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".cs2quicksetup"))
}

// InitializeAt sets the global paths below dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "state.db")
	LockPath = filepath.Join(ConfigDir, ".generate.lock")
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// ResolvePath expands a leading ~/ and makes relative paths relative to the config directory
// Empty paths stay empty
func ResolvePath(path string) string {
	if path == "" {
		return ""
	}

	path = expandHome(path)
	if filepath.IsAbs(path) || ConfigDir == "" {
		return path
	}

	// Paths relative to the working directory win when they exist
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return filepath.Join(ConfigDir, path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}
