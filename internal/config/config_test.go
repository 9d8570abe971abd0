package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Board.WindowDays != 0 {
		t.Errorf("expected window_days 0, got %d", cfg.Board.WindowDays)
	}
	if cfg.Board.ShiftAmount != 1 {
		t.Errorf("expected shift_amount 1, got %d", cfg.Board.ShiftAmount)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", cfg.UI.Theme)
	}
	if cfg.Log.DebugPath == "" {
		t.Error("expected a default debug path")
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Board.ShiftAmount != 1 {
		t.Errorf("expected default shift_amount, got %d", cfg.Board.ShiftAmount)
	}
	if cfg.Roster.Format != FormatTOML {
		t.Errorf("expected inferred toml format, got %s", cfg.Roster.Format)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[board]
window_days = 21
shift_amount = 3
anchor = "2025-12-01"

[roster]
path = "/tmp/roster.db"

[ui]
theme = "latte"

[log]
debug_path = "/tmp/classboard.log"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Board.WindowDays != 21 {
		t.Errorf("expected window_days 21, got %d", cfg.Board.WindowDays)
	}
	if cfg.Board.ShiftAmount != 3 {
		t.Errorf("expected shift_amount 3, got %d", cfg.Board.ShiftAmount)
	}
	if cfg.Roster.Format != FormatSQLite {
		t.Errorf("expected sqlite format inferred from .db, got %s", cfg.Roster.Format)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
	if cfg.Log.DebugPath != "/tmp/classboard.log" {
		t.Errorf("expected debug_path /tmp/classboard.log, got %s", cfg.Log.DebugPath)
	}
	want := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	if got := cfg.AnchorDate(); !got.Equal(want) {
		t.Errorf("AnchorDate() = %v, want %v", got, want)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[board]
window_days = 14
shift_amount = 2

[roster]
path = "/tmp/roster.toml"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("CLASSBOARD_SHIFT_AMOUNT", "5")
	t.Setenv("CLASSBOARD_ROSTER_PATH", "/tmp/other.sqlite")
	t.Setenv("CLASSBOARD_UI_THEME", "frappe")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Board.ShiftAmount != 5 {
		t.Errorf("expected shift_amount 5 from env, got %d", cfg.Board.ShiftAmount)
	}
	if cfg.Board.WindowDays != 14 {
		t.Errorf("expected window_days 14 from file, got %d", cfg.Board.WindowDays)
	}
	if cfg.Roster.Path != "/tmp/other.sqlite" || cfg.Roster.Format != FormatSQLite {
		t.Errorf("expected sqlite roster from env, got %+v", cfg.Roster)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe from env, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_BadEnvNumber(t *testing.T) {
	t.Setenv("CLASSBOARD_WINDOW_DAYS", "lots")

	if _, err := LoadFrom("/nonexistent/path/config.toml"); err == nil {
		t.Error("expected error for non-numeric CLASSBOARD_WINDOW_DAYS")
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[board\nwindow_days = "), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative window", func(c *Config) { c.Board.WindowDays = -1 }, true},
		{"zero shift", func(c *Config) { c.Board.ShiftAmount = 0 }, true},
		{"bad anchor", func(c *Config) { c.Board.Anchor = "2025.12.01" }, true},
		{"good anchor", func(c *Config) { c.Board.Anchor = "2025-12-01" }, false},
		{"empty roster path", func(c *Config) { c.Roster.Path = "" }, true},
		{"unknown format", func(c *Config) { c.Roster.Format = "csv" }, true},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"theme case", func(c *Config) { c.UI.Theme = "Latte" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Roster.Format = FormatTOML
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestInferFormat(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"roster.toml", FormatTOML},
		{"roster.db", FormatSQLite},
		{"roster.SQLITE", FormatSQLite},
		{"roster.sqlite3", FormatSQLite},
		{"roster", FormatTOML},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := InferFormat(tc.path); got != tc.want {
				t.Errorf("InferFormat(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestAnchorDate_Unset(t *testing.T) {
	if got := Default().AnchorDate(); !got.IsZero() {
		t.Errorf("expected zero anchor, got %v", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/roster.toml", filepath.Join(home, "roster.toml")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Board.WindowDays = 28
	cfg.Board.ShiftAmount = 7
	cfg.Roster.Path = filepath.Join(tmpDir, "roster.toml")
	cfg.Roster.Format = FormatTOML
	cfg.UI.Theme = "frappe"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Board.WindowDays != 28 {
		t.Errorf("expected window_days 28, got %d", loaded.Board.WindowDays)
	}
	if loaded.Board.ShiftAmount != 7 {
		t.Errorf("expected shift_amount 7, got %d", loaded.Board.ShiftAmount)
	}
	if loaded.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", loaded.UI.Theme)
	}
}
