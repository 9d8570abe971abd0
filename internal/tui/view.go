package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/schedule"
	"github.com/javiermolinar/classboard/internal/tui/input"
)

// span is an inclusive day range on one project row.
type span struct {
	projectID  string
	start, end time.Time
}

func (s span) covers(projectID string, day time.Time) bool {
	return s.projectID == projectID && !day.Before(s.start) && !day.After(s.end)
}

// View renders the board.
func (m Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderDayHeader(),
	}
	sections = append(sections, m.renderRows()...)
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	parts := []string{
		m.styles.TitleStyle.Render("classboard"),
		m.styles.ModeStyle.Render(m.mode.String()),
		m.styles.MetaStyle.Render(m.windowLabel()),
	}
	anchor := "anchor: none"
	if !m.anchor.IsZero() {
		anchor = fmt.Sprintf("anchor: %s %s", m.anchor.Format(dateutil.DateLayout), m.scope)
	}
	parts = append(parts, m.styles.MetaStyle.Render(fmt.Sprintf("%s  shift %dd", anchor, m.shiftAmount)))
	if n := len(m.selected); n > 0 {
		parts = append(parts, m.styles.MetaStyle.Render(fmt.Sprintf("%d selected", n)))
	}
	entries, cursor := m.session.History()
	parts = append(parts, m.styles.MetaStyle.Render(fmt.Sprintf("history %d/%d", cursor, len(entries))))
	return strings.Join(parts, "  ")
}

func (m Model) windowLabel() string {
	if m.windowDays == 0 {
		return m.window.Start.Format("January 2006")
	}
	return m.window.Start.Format(dateutil.DateLayout) + " to " + m.window.End.Format(dateutil.DateLayout)
}

// renderDayHeader renders the weekday and day-of-month rows.
func (m Model) renderDayHeader() string {
	var weekdays, numbers strings.Builder
	weekdays.WriteString(m.styles.LabelStyle.Render(""))
	numbers.WriteString(m.styles.LabelStyle.Render("project"))
	for i := range m.visibleDays() {
		day := dateutil.AddDays(m.window.Start, m.colOffset+i)
		style := m.styles.DayHeaderStyle
		switch {
		case !m.anchor.IsZero() && day.Equal(m.anchor):
			style = m.styles.DayHeaderAnchorStyle
		case day.Equal(m.today):
			style = m.styles.DayHeaderTodayStyle
		}
		weekdays.WriteString(style.Render(day.Weekday().String()[:2]))
		numbers.WriteString(style.Render(fmt.Sprintf("%2d", day.Day())))
	}
	return weekdays.String() + "\n" + numbers.String()
}

func (m Model) renderRows() []string {
	if len(m.rows) == 0 {
		return []string{m.styles.HelpStyle.Render("No projects yet. Type /project-new <school-id> <name> to add one.")}
	}
	preview, previewing := m.preview()
	end := min(len(m.rows), m.rowOffset+m.visibleRows())
	lines := make([]string, 0, end-m.rowOffset)
	for r := m.rowOffset; r < end; r++ {
		lines = append(lines, m.renderRow(r, preview, previewing))
	}
	return lines
}

func (m Model) renderRow(r int, preview span, previewing bool) string {
	p := m.rows[r]
	var b strings.Builder
	label := ansi.Truncate(projectLabel(p), labelWidth-1, "…")
	if r == m.row {
		b.WriteString(m.styles.LabelActiveStyle.Render(label))
	} else {
		b.WriteString(m.styles.LabelStyle.Render(label))
	}

	entries := m.session.Entries(p.ID)
	for i := range m.visibleDays() {
		col := m.colOffset + i
		day := dateutil.AddDays(m.window.Start, col)

		text := ""
		style := m.styles.EmptyCellStyle
		for idx, e := range entries {
			if day.Before(e.StartDate) || day.After(e.EndDate) {
				continue
			}
			text = m.cardSegment(e, day)
			style = m.styles.entryStyle(e.TeacherID != "", idx%2 == 1)
			if _, on := m.selected[refOf(e)]; on {
				style = m.styles.SelectedStyle
			}
			break
		}
		if text == "" && day.Equal(m.today) {
			text = " · "
		}
		if previewing && preview.covers(p.ID, day) {
			style = m.styles.PreviewStyle
		}
		if r == m.row && col == m.col {
			style = m.styles.CursorStyle
			if text == "" {
				text = " ▏ "
			}
		}
		b.WriteString(style.Render(text))
	}
	return b.String()
}

func projectLabel(p schedule.Project) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// cardSegment returns the slice of an entry's card label that falls on day.
func (m Model) cardSegment(e schedule.Entry, day time.Time) string {
	width := e.Days() * cellWidth
	card := []rune(padRight(ansi.Truncate(m.cardLabel(e), width, "…"), width))
	offset := dateutil.DaysBetween(e.StartDate, day) * cellWidth
	if offset < 0 || offset+cellWidth > len(card) {
		return ""
	}
	return string(card[offset : offset+cellWidth])
}

// cardLabel is the text painted across an entry: teacher then subject.
func (m Model) cardLabel(e schedule.Entry) string {
	teacher := "unassigned"
	if t, ok := m.session.Teacher(e.TeacherID); ok {
		teacher = t.Name
	} else if e.TeacherID != "" {
		teacher = e.TeacherID
	}
	if sub, ok := m.session.Subject(e.SubjectsID); ok {
		return teacher + " · " + sub.Name
	}
	return teacher
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// preview returns the span the pending create, move or resize would occupy.
func (m Model) preview() (span, bool) {
	p, ok := m.currentProject()
	if !ok {
		return span{}, false
	}
	cursor := m.cursorDate()
	switch m.mode {
	case ModeCreate:
		start, end := m.markStart, cursor
		if end.Before(start) {
			start, end = end, start
		}
		return span{projectID: p.ID, start: start, end: end}, true
	case ModeMove:
		e, ok := m.session.Entry(m.grabbed.ProjectID, m.grabbed.ScheduleID)
		if !ok {
			return span{}, false
		}
		return span{projectID: p.ID, start: cursor, end: dateutil.AddDays(cursor, e.Days()-1)}, true
	case ModeResize:
		e, ok := m.session.Entry(m.grabbed.ProjectID, m.grabbed.ScheduleID)
		if !ok {
			return span{}, false
		}
		start, end := e.StartDate, e.EndDate
		if m.edge == board.EdgeLeft {
			start = cursor
			if start.After(end) {
				start = end
			}
		} else {
			end = cursor
			if end.Before(start) {
				end = start
			}
		}
		return span{projectID: e.ProjectID, start: start, end: end}, true
	}
	return span{}, false
}

func (m Model) renderFooter() string {
	lines := []string{m.styles.statusStyle(m.statusKind).Render(m.statusLine())}
	if m.mode == ModePrompt {
		lines = append(lines, m.styles.PromptStyle.Render(m.prompt.View()))
		for _, cmd := range input.PromptMatchingCommands(m.prompt.Value(), promptCommands) {
			lines = append(lines, m.styles.SuggestionStyle.Render(cmd.Usage)+"  "+m.styles.UsageStyle.Render(cmd.Description))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	lines = append(lines, m.styles.HelpStyle.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// statusLine shows the last message, or the entry under the cursor.
func (m Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	e, ok := m.cursorEntry()
	if !ok {
		return m.cursorDate().Format("Monday 2006-01-02")
	}
	parts := []string{
		fmt.Sprintf("%s to %s", e.StartDate.Format(dateutil.DateLayout), e.EndDate.Format(dateutil.DateLayout)),
		m.cardLabel(e),
	}
	if e.Area != "" {
		parts = append(parts, e.Area)
	}
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	return strings.Join(parts, " | ")
}

func (m Model) helpLine() string {
	switch m.mode {
	case ModeCreate:
		return "h/l extend  enter create  esc cancel"
	case ModeMove:
		return "h/j/k/l move  enter drop  esc cancel"
	case ModeResize:
		return "h/l drag edge  enter apply  esc cancel"
	default:
		return "n new  m move  </> resize  space select  g merge  x delete  a anchor  f/b shift  u/r undo/redo  / command  q quit"
	}
}
