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

	"github.com/javiermolinar/classboard/internal/dateutil"
)

// Roster formats.
const (
	FormatTOML   = "toml"
	FormatSQLite = "sqlite"
)

// Themes known to the board UI.
var themes = []string{"mocha", "frappe", "latte"}

// Config holds the application configuration.
type Config struct {
	Board  BoardConfig  `toml:"board"`
	Roster RosterConfig `toml:"roster"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// BoardConfig holds grid and bulk-shift settings.
type BoardConfig struct {
	WindowDays  int    `toml:"window_days"`  // visible day columns; 0 shows the current month
	ShiftAmount int    `toml:"shift_amount"` // default days for an anchor shift
	Anchor      string `toml:"anchor"`       // optional YYYY-MM-DD
}

// RosterConfig locates the roster source.
type RosterConfig struct {
	Path   string `toml:"path"`
	Format string `toml:"format"` // "toml" or "sqlite"; inferred from the extension when empty
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "frappe", "latte"
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	DebugPath string `toml:"debug_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			WindowDays:  0,
			ShiftAmount: 1,
		},
		Roster: RosterConfig{
			Path: defaultRosterPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			DebugPath: "classboard-debug.log",
		},
	}
}

func defaultRosterPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "roster.toml"
	}
	return filepath.Join(home, ".local", "share", "classboard", "roster.toml")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "classboard", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Roster.Path = expandPath(cfg.Roster.Path)
	cfg.Log.DebugPath = expandPath(cfg.Log.DebugPath)
	if cfg.Roster.Format == "" {
		cfg.Roster.Format = InferFormat(cfg.Roster.Path)
	}

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
			return nil
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
	if v := os.Getenv("CLASSBOARD_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CLASSBOARD_WINDOW_DAYS: %w", err)
		}
		cfg.Board.WindowDays = n
	}
	if v := os.Getenv("CLASSBOARD_SHIFT_AMOUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CLASSBOARD_SHIFT_AMOUNT: %w", err)
		}
		cfg.Board.ShiftAmount = n
	}
	if v := os.Getenv("CLASSBOARD_ANCHOR"); v != "" {
		cfg.Board.Anchor = v
	}

	if v := os.Getenv("CLASSBOARD_ROSTER_PATH"); v != "" {
		cfg.Roster.Path = v
	}
	if v := os.Getenv("CLASSBOARD_ROSTER_FORMAT"); v != "" {
		cfg.Roster.Format = v
	}

	if v := os.Getenv("CLASSBOARD_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("CLASSBOARD_DEBUG_PATH"); v != "" {
		cfg.Log.DebugPath = v
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

// InferFormat guesses the roster format from a file extension.
func InferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatTOML
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Board.WindowDays < 0 {
		return errors.New("window_days must not be negative")
	}
	if c.Board.ShiftAmount < 1 {
		return errors.New("shift_amount must be at least 1")
	}
	if c.Board.Anchor != "" {
		if _, err := dateutil.ParseDate(c.Board.Anchor); err != nil {
			return fmt.Errorf("anchor: %w", err)
		}
	}
	if c.Roster.Path == "" {
		return errors.New("roster path must be set")
	}
	switch c.Roster.Format {
	case FormatTOML, FormatSQLite:
	default:
		return fmt.Errorf("invalid roster format: %s", c.Roster.Format)
	}
	if !isValidTheme(c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}
	return nil
}

func isValidTheme(name string) bool {
	name = strings.ToLower(name)
	for _, t := range themes {
		if t == name {
			return true
		}
	}
	return false
}

// AnchorDate returns the configured anchor day, or the zero time.
func (c *Config) AnchorDate() time.Time {
	if c.Board.Anchor == "" {
		return time.Time{}
	}
	t, err := dateutil.ParseDate(c.Board.Anchor)
	if err != nil {
		return time.Time{}
	}
	return t
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
