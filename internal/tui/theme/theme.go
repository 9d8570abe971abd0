// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header, weekend columns
	BgSelection string `toml:"bg_selection"` // Selected cards
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Empty cells, hints
	Accent      string `toml:"accent"`       // Title, cursor, anchor
	Assigned    string `toml:"assigned"`     // Cards with a teacher
	Unassigned  string `toml:"unassigned"`   // Cards without a teacher
	Pending     string `toml:"pending"`      // Span being created, grabbed card
	Warning     string `toml:"warning"`      // Rejections
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.BgHighlight = coalesce(t.BgHighlight, t.Bg)
	t.BgSelection = coalesce(t.BgSelection, t.BgHighlight, t.Accent)
	t.FgMuted = coalesce(t.FgMuted, t.Fg)
	t.Pending = coalesce(t.Pending, t.Warning, t.Accent)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
