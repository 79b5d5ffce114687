// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/almanac/internal/log"
)

// Config holds the application configuration.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Sticky   StickyConfig   `toml:"sticky"`
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
}

// WindowConfig holds the virtual scrolling settings.
type WindowConfig struct {
	MinYear          int  `toml:"min_year"`
	MaxYear          int  `toml:"max_year"`
	Overscan         int  `toml:"overscan"`           // extra units rendered past each edge
	CacheCapacity    int  `toml:"cache_capacity"`     // units of computed data kept
	ScrollDebounceMS int  `toml:"scroll_debounce_ms"` // quiescence before scrolling ends
	SmoothScroll     bool `toml:"smooth_scroll"`
}

// StickyConfig holds the sticky header geometry, in terminal lines.
type StickyConfig struct {
	LabelHeight int `toml:"label_height"`
	PushGap     int `toml:"push_gap"`
}

// CalendarConfig holds calendar display settings.
type CalendarConfig struct {
	Timezone        string `toml:"timezone"` // IANA name or "Local"
	MaxEventsPerDay int    `toml:"max_events_per_day"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			MinYear:          1970,
			MaxYear:          2100,
			Overscan:         0,
			CacheCapacity:    20,
			ScrollDebounceMS: 100,
			SmoothScroll:     true,
		},
		Sticky: StickyConfig{
			LabelHeight: 1,
			PushGap:     1,
		},
		Calendar: CalendarConfig{
			Timezone:        "Local",
			MaxEventsPerDay: 4,
		},
		Storage: StorageConfig{
			DBPath: defaultDataPath("almanac.db"),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Log: LogConfig{
			Level: "info",
			File:  defaultDataPath("almanac.log"),
		},
	}
}

// defaultDataPath returns a file path under the user's data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "almanac", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "almanac", "config.toml")
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
	cfg.Log.File = expandPath(cfg.Log.File)

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
	ints := []struct {
		name string
		dst  *int
	}{
		{"ALMANAC_MIN_YEAR", &cfg.Window.MinYear},
		{"ALMANAC_MAX_YEAR", &cfg.Window.MaxYear},
		{"ALMANAC_OVERSCAN", &cfg.Window.Overscan},
		{"ALMANAC_CACHE_CAPACITY", &cfg.Window.CacheCapacity},
		{"ALMANAC_SCROLL_DEBOUNCE_MS", &cfg.Window.ScrollDebounceMS},
		{"ALMANAC_MAX_EVENTS_PER_DAY", &cfg.Calendar.MaxEventsPerDay},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", e.name, v)
		}
		*e.dst = n
	}

	if v := os.Getenv("ALMANAC_SMOOTH_SCROLL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_SMOOTH_SCROLL must be a boolean, got %q", v)
		}
		cfg.Window.SmoothScroll = b
	}
	if v := os.Getenv("ALMANAC_TIMEZONE"); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv("ALMANAC_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ALMANAC_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("ALMANAC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ALMANAC_LOG_FILE"); v != "" {
		cfg.Log.File = v
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

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	w := c.Window
	if w.MinYear < 1 {
		return fmt.Errorf("min_year must be positive, got %d", w.MinYear)
	}
	if w.MinYear > w.MaxYear {
		return errors.New("min_year must not be after max_year")
	}
	if w.Overscan < 0 {
		return errors.New("overscan must not be negative")
	}
	if w.CacheCapacity < 1 {
		return errors.New("cache_capacity must be at least 1")
	}
	if w.ScrollDebounceMS < 0 {
		return errors.New("scroll_debounce_ms must not be negative")
	}

	if c.Sticky.LabelHeight < 1 {
		return errors.New("label_height must be at least 1")
	}
	if c.Sticky.PushGap < 0 {
		return errors.New("push_gap must not be negative")
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Calendar.MaxEventsPerDay < 1 {
		return errors.New("max_events_per_day must be at least 1")
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Location returns the configured calendar time zone.
func (c *Config) Location() (*time.Location, error) {
	switch tz := strings.TrimSpace(c.Calendar.Timezone); tz {
	case "", "Local", "local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
		}
		return loc, nil
	}
}

// ScrollDebounce returns the scroll quiescence window.
func (c *Config) ScrollDebounce() time.Duration {
	return time.Duration(c.Window.ScrollDebounceMS) * time.Millisecond
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	l, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.LevelInfo
	}
	return l
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
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
