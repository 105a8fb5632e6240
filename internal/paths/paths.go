// Package paths resolves where cadence keeps its configuration and data.
//
// Both directories follow the same precedence chain: an explicit flag wins,
// then (for data) the config.yaml value, then the environment variable,
// then the fallback. Config falls back to the platform convention; data
// falls back to $(CWD)/.cadence-db so a checkout can carry its own habit
// database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the leaf directory cadence claims under platform
// convention roots.
const appDirName = "cadence"

// DefaultDataDirName is the CWD-relative data directory used when no
// override is active.
const DefaultDataDirName = ".cadence-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CADENCE_CONFIG_DIR"
	EnvDataDir   = "CADENCE_DATA_DIR"
)

// DefaultConfigDir returns the platform-conventional configuration
// directory:
//
//	Linux:   $XDG_CONFIG_HOME/cadence (fallback ~/.config/cadence)
//	macOS:   ~/Library/Application Support/cadence
//	Windows: %APPDATA%/cadence
func DefaultConfigDir() (string, error) {
	return platformDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-conventional data directory:
//
//	Linux:   $XDG_DATA_HOME/cadence (fallback ~/.local/share/cadence)
//	macOS:   ~/Library/Application Support/cadence
//	Windows: %APPDATA%/cadence
func DefaultDataDir() (string, error) {
	return platformDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// platformDir builds <root>/cadence. On Linux the root is the XDG
// environment variable when set, otherwise homeFallback under the home
// directory. Elsewhere os.UserConfigDir supplies the conventional root
// (~/Library/Application Support on macOS, %APPDATA% on Windows).
func platformDir(xdgEnv, homeFallback string) (string, error) {
	if runtime.GOOS != "linux" {
		root, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(root, appDirName), nil
	}

	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeFallback, appDirName), nil
}

// ResolveConfigDir returns the configuration directory: flag >
// CADENCE_CONFIG_DIR > DefaultConfigDir(). Flag and environment values are
// made absolute.
func ResolveConfigDir(flag string) (string, error) {
	for _, candidate := range []string{flag, os.Getenv(EnvConfigDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory: flag > config.yaml data_dir >
// CADENCE_DATA_DIR > $(CWD)/.cadence-db. Every override is made absolute.
func ResolveDataDir(flag, configured string) (string, error) {
	for _, candidate := range []string{flag, configured, os.Getenv(EnvDataDir)} {
		if candidate != "" {
			return filepath.Abs(candidate)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
