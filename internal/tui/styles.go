package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/classboard/internal/tui/theme"
)

// Styles holds all lipgloss styles for the board, derived from a palette.
type Styles struct {
	colorBg lipgloss.Color

	TitleStyle lipgloss.Style
	ModeStyle  lipgloss.Style
	MetaStyle  lipgloss.Style

	// Day header row
	DayHeaderStyle       lipgloss.Style
	DayHeaderTodayStyle  lipgloss.Style
	DayHeaderAnchorStyle lipgloss.Style

	// Project label column
	LabelStyle       lipgloss.Style
	LabelActiveStyle lipgloss.Style

	// Grid cells
	EmptyCellStyle     lipgloss.Style
	AssignedStyle      lipgloss.Style
	AssignedAltStyle   lipgloss.Style // adjacent assigned entries alternate shades
	UnassignedStyle    lipgloss.Style
	UnassignedAltStyle lipgloss.Style
	SelectedStyle      lipgloss.Style
	PreviewStyle       lipgloss.Style // pending create, move or resize span
	CursorStyle        lipgloss.Style

	// Footer
	StatusInfoStyle lipgloss.Style
	StatusOKStyle   lipgloss.Style
	StatusWarnStyle lipgloss.Style
	HelpStyle       lipgloss.Style
	PromptStyle     lipgloss.Style
	SuggestionStyle lipgloss.Style
	UsageStyle      lipgloss.Style
}

// NewStyles creates the board styles from a palette.
func NewStyles(p *theme.Palette) *Styles {
	s := &Styles{colorBg: p.Bg}

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s.TitleStyle = base.Bold(true).Foreground(p.Accent)
	s.ModeStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(p.TextOnAccent).
		Background(p.Accent)
	s.MetaStyle = base.Foreground(p.FgMuted)

	s.DayHeaderStyle = base.Width(cellWidth).Align(lipgloss.Center)
	s.DayHeaderTodayStyle = s.DayHeaderStyle.Bold(true).Foreground(p.Accent)
	s.DayHeaderAnchorStyle = s.DayHeaderStyle.
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning)

	s.LabelStyle = base.Width(labelWidth).MaxWidth(labelWidth)
	s.LabelActiveStyle = s.LabelStyle.Bold(true).Foreground(p.Accent).Background(p.BgHighlight)

	cell := lipgloss.NewStyle().Width(cellWidth)
	s.EmptyCellStyle = cell.Foreground(p.FgMuted).Background(p.Bg)
	s.AssignedStyle = cell.Foreground(p.TextOnAssigned).Background(p.AssignedBg)
	s.AssignedAltStyle = cell.Foreground(p.TextOnAssigned).Background(p.AssignedBgAlt)
	s.UnassignedStyle = cell.Foreground(p.TextOnUnassigned).Background(p.UnassignedBg)
	s.UnassignedAltStyle = cell.Foreground(p.TextOnUnassigned).Background(p.UnassignedBgAlt)
	s.SelectedStyle = cell.Bold(true).Foreground(p.TextOnSelection).Background(p.BgSelection)
	s.PreviewStyle = cell.Foreground(p.TextOnPending).Background(p.Pending)
	s.CursorStyle = cell.Bold(true).Reverse(true)

	s.StatusInfoStyle = base.Foreground(p.FgMuted)
	s.StatusOKStyle = base.Foreground(p.Accent)
	s.StatusWarnStyle = base.Bold(true).Foreground(p.Warning)
	s.HelpStyle = base.Foreground(p.FgMuted)
	s.PromptStyle = base.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		BorderBackground(p.Bg).
		Padding(0, 1)
	s.SuggestionStyle = base.Bold(true).Foreground(p.Accent)
	s.UsageStyle = base.Foreground(p.FgMuted)

	return s
}

// entryStyle picks the card style for an entry. alt alternates the shade of
// neighbouring entries in a row.
func (s *Styles) entryStyle(assigned, alt bool) lipgloss.Style {
	switch {
	case assigned && alt:
		return s.AssignedAltStyle
	case assigned:
		return s.AssignedStyle
	case alt:
		return s.UnassignedAltStyle
	default:
		return s.UnassignedStyle
	}
}

func (s *Styles) statusStyle(kind statusKind) lipgloss.Style {
	switch kind {
	case statusOK:
		return s.StatusOKStyle
	case statusWarn:
		return s.StatusWarnStyle
	default:
		return s.StatusInfoStyle
	}
}
