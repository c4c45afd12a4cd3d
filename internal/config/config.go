// Package config loads things-mcp settings from an optional YAML file
// with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Environment overrides.
const (
	// EnvDBPath overrides the Things database location.
	EnvDBPath = "THINGS_DB"
	// EnvXcallPath overrides the xcall helper location.
	EnvXcallPath = "THINGS_XCALL_PATH"
	// EnvTimeoutSec overrides the dispatch timeout in seconds.
	EnvTimeoutSec = "THINGS_URL_TIMEOUT_SEC"
)

// groupContainer is where Things keeps its database on macOS. The data
// directory carries a per-account suffix, hence the glob.
const groupContainer = "Library/Group Containers/JLMPQHK86H.com.culturedcode.ThingsMac"

// Config is the resolved application configuration.
type Config struct {
	// DatabasePath is the Things SQLite database. Empty means locate
	// the conventional path at startup.
	DatabasePath string `mapstructure:"database_path"`

	// XcallPath is the x-callback-url capture helper.
	XcallPath string `mapstructure:"xcall_path"`

	// OpenPath is the fallback dispatch binary.
	OpenPath string `mapstructure:"open_path"`

	// TimeoutSec bounds a single command dispatch.
	TimeoutSec int `mapstructure:"timeout_sec"`
}

// DefaultConfigPath returns the default configuration file location,
// ~/.config/things-mcp/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "things-mcp", "config.yaml")
}

// Load reads configuration from path, applying defaults and environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("database_path", "")
	v.SetDefault("xcall_path", "/Applications/xcall.app/Contents/MacOS/xcall")
	v.SetDefault("open_path", "open")
	v.SetDefault("timeout_sec", 20)

	if err := v.BindEnv("database_path", EnvDBPath); err != nil {
		return nil, fmt.Errorf("binding %s: %w", EnvDBPath, err)
	}
	if err := v.BindEnv("xcall_path", EnvXcallPath); err != nil {
		return nil, fmt.Errorf("binding %s: %w", EnvXcallPath, err)
	}
	if err := v.BindEnv("timeout_sec", EnvTimeoutSec); err != nil {
		return nil, fmt.Errorf("binding %s: %w", EnvTimeoutSec, err)
	}

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ResolveDatabasePath returns the configured database path, or locates
// the conventional Things store under the macOS group container. A path
// that cannot be found is a hard failure whose text explains the
// override.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		if _, err := os.Stat(c.DatabasePath); err != nil {
			return "", fmt.Errorf("things database not found at %s: %w", c.DatabasePath, err)
		}
		return c.DatabasePath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	pattern := filepath.Join(home, groupContainer,
		"ThingsData-*", "Things Database.thingsdatabase", "main.sqlite")
	matches, err := filepath.Glob(pattern)
	if err == nil && len(matches) > 0 {
		return matches[0], nil
	}

	return "", fmt.Errorf(
		"could not locate the Things database under %s; "+
			"set %s to the main.sqlite path to override",
		filepath.Join(home, groupContainer), EnvDBPath)
}
