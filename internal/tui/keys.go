package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.logger.Debug("key", "key", msg.String(), "mode", m.mode.String())

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeCreate, ModeMove, ModeResize:
		return m.handleDragKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// navigate applies cursor movement keys shared by every grid mode. It
// reports whether the key was consumed.
func (m *Model) navigate(key string, vertical bool) bool {
	switch key {
	case "h", "left":
		if m.col > 0 {
			m.col--
		} else {
			m.shiftWindow(false)
			m.col = m.window.Len() - 1
		}
	case "l", "right":
		if m.col < m.window.Len()-1 {
			m.col++
		} else {
			m.shiftWindow(true)
			m.col = 0
		}
	case "j", "down":
		if vertical && m.row < len(m.rows)-1 {
			m.row++
		}
	case "k", "up":
		if vertical && m.row > 0 {
			m.row--
		}
	case "[":
		m.shiftWindow(false)
	case "]":
		m.shiftWindow(true)
	case "0", "home":
		m.col = 0
	case "$", "end":
		m.col = m.window.Len() - 1
	default:
		return false
	}
	return true
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if m.navigate(key, true) {
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit

	case "t":
		m.window = m.windowAround(m.today)
		m.col = m.columnOf(m.today)

	case " ":
		e, ok := m.cursorEntry()
		if !ok {
			break
		}
		ref := refOf(e)
		if _, on := m.selected[ref]; on {
			delete(m.selected, ref)
		} else {
			m.selected[ref] = struct{}{}
		}
		m.setStatus(statusInfo, fmt.Sprintf("%d selected", len(m.selected)))

	case "esc":
		clear(m.selected)
		m.setStatus(statusInfo, "")

	case "n":
		if _, ok := m.currentProject(); !ok {
			m.setStatus(statusWarn, "Create a project first (/project-new)")
			break
		}
		m.mode = ModeCreate
		m.markStart = m.cursorDate()
		m.setStatus(statusInfo, "Extend the span with h/l, enter to create")

	case "m":
		e, ok := m.cursorEntry()
		if !ok {
			break
		}
		m.mode = ModeMove
		m.grabbed = refOf(e)
		m.col = m.columnOf(e.StartDate)
		m.setStatus(statusInfo, "Move to the new start day, enter to drop")

	case "<", ">":
		e, ok := m.cursorEntry()
		if !ok {
			break
		}
		m.mode = ModeResize
		m.grabbed = refOf(e)
		if key == "<" {
			m.edge = board.EdgeLeft
			m.col = m.columnOf(e.StartDate)
		} else {
			m.edge = board.EdgeRight
			m.col = m.columnOf(e.EndDate)
		}
		m.setStatus(statusInfo, "Drag the edge with h/l, enter to apply")

	case "g":
		m.apply("merge", m.session.Merge(m.selection()))

	case "x", "d", "delete":
		m.apply("delete", m.session.DeleteSelected(m.selection()))

	case "a":
		day := m.cursorDate()
		if m.anchor.Equal(day) {
			m.anchor = time.Time{}
			m.setStatus(statusInfo, "Anchor cleared")
		} else {
			m.anchor = day
			m.setStatus(statusInfo, "Anchor set to "+day.Format(dateutil.DateLayout))
		}

	case "s":
		if m.scope == board.ScopeAfter {
			m.scope = board.ScopeBefore
		} else {
			m.scope = board.ScopeAfter
		}
		m.setStatus(statusInfo, "Shift scope: "+string(m.scope))

	case "+", "=":
		m.shiftAmount++
	case "-":
		if m.shiftAmount > 1 {
			m.shiftAmount--
		}

	case "f", "b":
		dir := board.Forward
		if key == "b" {
			dir = board.Backward
		}
		m.apply("shift", m.session.ShiftFromAnchor(board.Shift{
			Anchor:    m.anchor,
			Scope:     m.scope,
			Direction: dir,
			Amount:    m.shiftAmount,
		}))

	case "u":
		if n := m.session.Undo(); n > 0 {
			m.setStatus(statusOK, fmt.Sprintf("Undid %d change(s)", n))
		} else {
			m.setStatus(statusInfo, "Nothing to undo")
		}
		m.pruneSelection()

	case "r", "ctrl+r":
		if n := m.session.Redo(); n > 0 {
			m.setStatus(statusOK, fmt.Sprintf("Redid %d change(s)", n))
		} else {
			m.setStatus(statusInfo, "Nothing to redo")
		}
		m.pruneSelection()

	case "T":
		e, ok := m.cursorEntry()
		if !ok {
			break
		}
		var names []string
		for _, t := range m.session.AvailableTeachers(refOf(e), true) {
			names = append(names, t.ID)
		}
		if len(names) == 0 {
			m.setStatus(statusWarn, "No teacher is free for this entry")
		} else {
			m.setStatus(statusInfo, "Free: "+strings.Join(names, ", "))
		}

	case "c":
		m.copySelection()

	case "/":
		m.mode = ModePrompt
		m.prompt.SetValue("/")
		m.prompt.CursorEnd()
		m.prompt.Focus()
	}
	return m, nil
}

// handleDragKeys handles keys while creating, moving or resizing.
func (m Model) handleDragKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if m.navigate(key, m.mode == ModeMove) {
		return m, nil
	}

	switch key {
	case "esc", "q":
		m.mode = ModeNormal
		m.setStatus(statusInfo, "Cancelled")
	case "enter", "n", "m", " ":
		mode := m.mode
		m.mode = ModeNormal
		switch mode {
		case ModeCreate:
			p, _ := m.currentProject()
			m.apply("create", m.session.DragCreate(p.ID, m.markStart, m.cursorDate()))
		case ModeMove:
			p, _ := m.currentProject()
			m.apply("move", m.session.Move(m.grabbed, p.ID, m.cursorDate()))
		case ModeResize:
			m.apply("resize", m.session.Resize(m.grabbed, m.edge, m.cursorDate()))
		}
	}
	return m, nil
}

// handlePromptKeys handles keys while the command prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "tab":
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.closePrompt()
		m.runCommand(line)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// apply reports an operation outcome in the status line.
func (m *Model) apply(op string, out board.Outcome) {
	if !out.OK() {
		m.setStatus(statusWarn, rejectionText(out.Reason))
		return
	}
	m.pruneSelection()
	m.setStatus(statusOK, successText(op, out))
}
