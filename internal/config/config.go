// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/themestate/internal/probe"
)

// AppName names the config and data directories.
const AppName = "themestate"

// Default configuration values.
const (
	DefaultStateFile    = "preferences.json"
	DefaultProbeTimeout = "500ms"
)

// Config represents the themestate configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Probe   ProbeConfig   `toml:"probe"`
}

// StorageConfig controls where the preference is persisted.
type StorageConfig struct {
	Path string `toml:"path"` // Empty = DataPath()/preferences.json; extension picks json, yaml or toml
}

// ProbeConfig controls system preference detection.
type ProbeConfig struct {
	Sources []string `toml:"sources"` // Asked in order: env, portal, terminal
	Timeout string   `toml:"timeout"` // Per-source limit, Go duration
	EnvVar  string   `toml:"env_var"` // Variable read by the env source
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: "", // Resolved by StatePath
		},
		Probe: ProbeConfig{
			Sources: append([]string(nil), probe.SourceNames...),
			Timeout: DefaultProbeTimeout,
			EnvVar:  probe.DefaultEnvVar,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName, "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName)
}

// StatePath returns the preference file path: the configured one, or the
// default file in DataPath.
func (c *Config) StatePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return filepath.Join(DataPath(), DefaultStateFile)
}

// ProbeTimeout returns the parsed per-source timeout.
func (c *Config) ProbeTimeout() time.Duration {
	d, err := time.ParseDuration(c.Probe.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultProbeTimeout)
	}
	return d
}

// Validate checks probe source names and the timeout.
func (c *Config) Validate() error {
	var errs []error
	for _, name := range c.Probe.Sources {
		if !probe.Known(name) {
			errs = append(errs, fmt.Errorf("probe.sources: unknown source %q", name))
		}
	}
	if c.Probe.Timeout != "" {
		d, err := time.ParseDuration(c.Probe.Timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("probe.timeout: %w", err))
		} else if d <= 0 {
			errs = append(errs, fmt.Errorf("probe.timeout: must be positive, got %s", d))
		}
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
