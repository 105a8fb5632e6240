// Config loading for the cadence CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyWeekStart      = "week_start"
	cfgKeyTrendThreshold = "trend_threshold"

	// Defaults: sqlite backend, weeks starting Monday, and a five
	// percentage-point dead zone before a trend counts as movement.
	defaultBackend        = "sqlite"
	defaultWeekStart      = 1
	defaultTrendThreshold = 5.0
)

// Config values loaded by PersistentPreRunE for use in subcommands.
var (
	cfgWeekStart      = defaultWeekStart
	cfgTrendThreshold = defaultTrendThreshold
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Cadence CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# ISO weekday the week starts on (1=Monday .. 7=Sunday)
week_start: 1

# Minimum completion-rate change, in percentage points, reported as a trend
trend_threshold: 5.0
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyWeekStart, defaultWeekStart)
	v.SetDefault(cfgKeyTrendThreshold, defaultTrendThreshold)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
