// Package tui provides the terminal board for classboard.
package tui

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/logging"
	"github.com/javiermolinar/classboard/internal/schedule"
	"github.com/javiermolinar/classboard/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCreate      // Extending a new span from markStart
	ModeMove        // Carrying a grabbed entry to a new start day
	ModeResize      // Dragging one edge of a grabbed entry
	ModePrompt
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "CREATE"
	case ModeMove:
		return "MOVE"
	case ModeResize:
		return "RESIZE"
	case ModePrompt:
		return "PROMPT"
	default:
		return "NORMAL"
	}
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
)

const (
	labelWidth = 18
	cellWidth  = 3
)

// Options configures a Model.
type Options struct {
	Theme       string
	WindowDays  int       // 0 shows a calendar month
	ShiftAmount int       // default anchor shift in days
	Anchor      time.Time // initial shift anchor, zero for none
	Today       time.Time // zero means time.Now()
	Logger      *slog.Logger
	Clipboard   func(string) error
}

// Model is the board TUI model.
type Model struct {
	session *board.Session
	styles  *Styles
	logger  *slog.Logger
	copy    func(string) error

	today      time.Time
	window     dateutil.DateRange
	windowDays int
	rows       []schedule.Project

	row, col  int // cursor: row index and day offset within the window
	rowOffset int
	colOffset int

	mode      Mode
	markStart time.Time
	grabbed   board.Ref
	edge      board.Edge
	selected  map[board.Ref]struct{}

	anchor      time.Time
	scope       board.Scope
	shiftAmount int

	prompt     textinput.Model
	status     string
	statusKind statusKind

	width  int
	height int
}

// New creates the board model over a session.
func New(session *board.Session, opts Options) Model {
	t, err := theme.Load(opts.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = dateutil.TruncateToDay(today)
	amount := opts.ShiftAmount
	if amount < 1 {
		amount = 1
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200

	m := Model{
		session:     session,
		styles:      NewStyles(theme.NewPalette(t)),
		logger:      logger,
		copy:        copyFn,
		today:       today,
		windowDays:  opts.WindowDays,
		selected:    make(map[board.Ref]struct{}),
		anchor:      dateutil.TruncateToDay(opts.Anchor),
		scope:       board.ScopeAfter,
		shiftAmount: amount,
		prompt:      ti,
		width:       120,
		height:      30,
	}
	m.window = m.windowAround(today)
	m.col = m.columnOf(today)
	m.refreshRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		updated, cmd := m.handleKeyMsg(msg)
		updated.refreshRows()
		updated.ensureCursorVisible()
		return updated, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.Width = max(10, msg.Width-4)
		m.ensureCursorVisible()
		return m, nil
	}
	return m, nil
}

func (m Model) windowAround(t time.Time) dateutil.DateRange {
	if m.windowDays > 0 {
		return dateutil.DateRange{Start: t, End: dateutil.AddDays(t, m.windowDays-1)}
	}
	return dateutil.MonthRange(t)
}

// shiftWindow moves the visible window one page back or forward.
func (m *Model) shiftWindow(forward bool) {
	if m.windowDays > 0 {
		n := m.windowDays
		if !forward {
			n = -n
		}
		m.window = dateutil.DateRange{Start: dateutil.AddDays(m.window.Start, n), End: dateutil.AddDays(m.window.End, n)}
	} else {
		months := 1
		if !forward {
			months = -1
		}
		m.window = dateutil.MonthRange(m.window.Start.AddDate(0, months, 0))
	}
	m.col = min(m.col, m.window.Len()-1)
}

func (m *Model) refreshRows() {
	m.rows = m.session.Rows()
	if m.row >= len(m.rows) {
		m.row = max(0, len(m.rows)-1)
	}
}

// cursorDate is the day under the cursor.
func (m Model) cursorDate() time.Time {
	return dateutil.AddDays(m.window.Start, m.col)
}

// columnOf is t's column in the window, clamped to the visible days so the
// cursor stays on the grid for entries reaching past either end.
func (m Model) columnOf(t time.Time) int {
	return max(0, min(m.window.Column(t), m.window.Len()-1))
}

func (m Model) currentProject() (schedule.Project, bool) {
	if m.row < 0 || m.row >= len(m.rows) {
		return schedule.Project{}, false
	}
	return m.rows[m.row], true
}

// entryAt returns the entry of a project covering day.
func (m Model) entryAt(projectID string, day time.Time) (schedule.Entry, bool) {
	for _, e := range m.session.Entries(projectID) {
		if !day.Before(e.StartDate) && !day.After(e.EndDate) {
			return e, true
		}
	}
	return schedule.Entry{}, false
}

// cursorEntry returns the entry under the cursor.
func (m Model) cursorEntry() (schedule.Entry, bool) {
	p, ok := m.currentProject()
	if !ok {
		return schedule.Entry{}, false
	}
	return m.entryAt(p.ID, m.cursorDate())
}

func refOf(e schedule.Entry) board.Ref {
	return board.Ref{ProjectID: e.ProjectID, ScheduleID: e.ScheduleID}
}

// selection returns the selected refs in a stable order, falling back to the
// entry under the cursor when nothing is selected.
func (m Model) selection() []board.Ref {
	if len(m.selected) == 0 {
		if e, ok := m.cursorEntry(); ok {
			return []board.Ref{refOf(e)}
		}
		return nil
	}
	refs := make([]board.Ref, 0, len(m.selected))
	for r := range m.selected {
		refs = append(refs, r)
	}
	slices.SortFunc(refs, func(a, b board.Ref) int {
		return cmp.Or(cmp.Compare(a.ProjectID, b.ProjectID), cmp.Compare(a.ScheduleID, b.ScheduleID))
	})
	return refs
}

// pruneSelection drops selected refs whose entries no longer exist.
func (m *Model) pruneSelection() {
	for r := range m.selected {
		if _, ok := m.session.Entry(r.ProjectID, r.ScheduleID); !ok {
			delete(m.selected, r)
		}
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.status = text
	m.statusKind = kind
}

// visibleDays is how many day columns fit the terminal.
func (m Model) visibleDays() int {
	n := (m.width - labelWidth - 1) / cellWidth
	return max(1, min(n, m.window.Len()))
}

// visibleRows is how many project rows fit between header and footer.
func (m Model) visibleRows() int {
	return max(1, m.height-6)
}

func (m *Model) ensureCursorVisible() {
	days := m.visibleDays()
	if m.col < m.colOffset {
		m.colOffset = m.col
	}
	if m.col >= m.colOffset+days {
		m.colOffset = m.col - days + 1
	}
	m.colOffset = max(0, min(m.colOffset, m.window.Len()-days))

	rows := m.visibleRows()
	if m.row < m.rowOffset {
		m.rowOffset = m.row
	}
	if m.row >= m.rowOffset+rows {
		m.rowOffset = m.row - rows + 1
	}
}

// Run starts the board program on the alternate screen and blocks until the
// user quits.
func Run(session *board.Session, opts Options) error {
	p := tea.NewProgram(New(session, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
