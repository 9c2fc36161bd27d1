// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/daybar/internal/partition"
)

// Config holds the application configuration.
type Config struct {
	Day     DayConfig     `toml:"day"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// DayConfig holds the range a fresh plan is seeded with and the drag granularity.
type DayConfig struct {
	Start float64 `toml:"start"` // e.g., 0
	End   float64 `toml:"end"`   // e.g., 24
	Snap  float64 `toml:"snap"`  // e.g., 0.5
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Day: DayConfig{
			Start: partition.DayRange.Start,
			End:   partition.DayRange.End,
			Snap:  partition.DefaultSnap,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Range returns the configured day range.
func (c *Config) Range() partition.Range {
	return partition.Range{Start: c.Day.Start, End: c.Day.End}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daybar.db"
	}
	return filepath.Join(home, ".local", "share", "daybar", "daybar.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "daybar", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	floats := []struct {
		env string
		dst *float64
	}{
		{"DAYBAR_DAY_START", &cfg.Day.Start},
		{"DAYBAR_DAY_END", &cfg.Day.End},
		{"DAYBAR_SNAP", &cfg.Day.Snap},
	}
	for _, f := range floats {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.env, err)
		}
		*f.dst = n
	}

	if v := os.Getenv("DAYBAR_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DAYBAR_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("DAYBAR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := partition.ValidateRange(c.Range()); err != nil {
		return fmt.Errorf("day: %w", err)
	}
	if c.Day.Snap < 0 {
		return errors.New("snap must not be negative")
	}
	if c.Day.Snap > partition.MinDuration {
		return fmt.Errorf("snap must not exceed the minimum block duration (%g)", partition.MinDuration)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
