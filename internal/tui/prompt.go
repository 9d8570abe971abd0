package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/schedule"
	"github.com/javiermolinar/classboard/internal/summary"
	"github.com/javiermolinar/classboard/internal/tui/input"
)

var promptCommands = []input.PromptCommand{
	{Name: "/teacher", Usage: "/teacher <id|->", Description: "Assign a teacher to the entry under the cursor"},
	{Name: "/subject", Usage: "/subject <id|->", Description: "Assign a subject to the entry under the cursor"},
	{Name: "/describe", Usage: "/describe <text>", Description: "Set the entry description"},
	{Name: "/area", Usage: "/area <text>", Description: "Set the entry area"},
	{Name: "/amount", Usage: "/amount <days>", Description: "Set the anchor shift amount"},
	{Name: "/shift", Usage: "/shift <before|after> <forward|backward> <days>", Description: "Shift entries around the anchor"},
	{Name: "/project-new", Usage: "/project-new <school-id> <name>", Description: "Create a project"},
	{Name: "/project-rename", Usage: "/project-rename <name>", Description: "Rename the project under the cursor"},
	{Name: "/project-delete", Usage: "/project-delete", Description: "Delete the project under the cursor and its entries"},
	{Name: "/summary", Usage: "/summary", Description: "Show booked days per teacher in the visible window"},
	{Name: "/history", Usage: "/history <position>", Description: "Jump to a point in the edit history"},
	{Name: "/clear-history", Usage: "/clear-history", Description: "Forget the edit history"},
}

// runCommand executes a slash command typed in the prompt.
func (m *Model) runCommand(line string) {
	name, args, ok := input.ParseCommand(line)
	if !ok {
		return
	}
	m.logger.Debug("prompt command", "name", name, "args", args)

	switch name {
	case "/teacher", "/subject":
		e, ok := m.cursorEntry()
		if !ok {
			m.setStatus(statusWarn, "Put the cursor on an entry first")
			return
		}
		if len(args) != 1 {
			m.setStatus(statusWarn, "usage: "+name+" <id|->")
			return
		}
		id := args[0]
		if id == "-" {
			id = ""
		}
		if name == "/teacher" {
			if _, known := m.session.Teacher(id); id != "" && !known {
				m.setStatus(statusWarn, "Unknown teacher "+id)
				return
			}
			m.apply("assign-teacher", m.session.AssignTeacher(refOf(e), id))
			return
		}
		if _, known := m.session.Subject(id); id != "" && !known {
			m.setStatus(statusWarn, "Unknown subject "+id)
			return
		}
		m.apply("assign-subject", m.session.AssignSubject(refOf(e), id))

	case "/describe", "/area":
		e, ok := m.cursorEntry()
		if !ok {
			m.setStatus(statusWarn, "Put the cursor on an entry first")
			return
		}
		text := input.Rest(args, 0)
		if name == "/describe" {
			m.apply("describe", m.session.Describe(refOf(e), text, e.Area))
		} else {
			m.apply("describe", m.session.Describe(refOf(e), e.Description, text))
		}

	case "/amount":
		n, err := positive(args, 0)
		if err != nil {
			m.setStatus(statusWarn, err.Error())
			return
		}
		m.shiftAmount = n
		m.setStatus(statusInfo, fmt.Sprintf("Shift amount: %d day(s)", n))

	case "/shift":
		if len(args) != 3 {
			m.setStatus(statusWarn, "usage: /shift <before|after> <forward|backward> <days>")
			return
		}
		scope := board.Scope(strings.ToLower(args[0]))
		dir := board.Direction(strings.ToLower(args[1]))
		if scope != board.ScopeBefore && scope != board.ScopeAfter {
			m.setStatus(statusWarn, "scope must be before or after")
			return
		}
		if dir != board.Forward && dir != board.Backward {
			m.setStatus(statusWarn, "direction must be forward or backward")
			return
		}
		n, err := positive(args, 2)
		if err != nil {
			m.setStatus(statusWarn, err.Error())
			return
		}
		m.scope, m.shiftAmount = scope, n
		m.apply("shift", m.session.ShiftFromAnchor(board.Shift{
			Anchor: m.anchor, Scope: scope, Direction: dir, Amount: n,
		}))

	case "/project-new":
		if len(args) < 2 {
			m.setStatus(statusWarn, "usage: /project-new <school-id> <name>")
			return
		}
		out := m.session.CreateProject(schedule.Project{SchoolID: args[0], Name: input.Rest(args, 1)})
		m.apply("create-project", out)
		if out.OK() {
			m.refreshRows()
			m.row = len(m.rows) - 1
		}

	case "/project-rename":
		p, ok := m.session.Project(m.currentProjectID())
		if !ok {
			m.setStatus(statusWarn, "Not a registered project")
			return
		}
		p.Name = input.Rest(args, 0)
		m.apply("update-project", m.session.UpdateProject(p))

	case "/project-delete":
		pid := m.currentProjectID()
		if pid == "" {
			m.setStatus(statusWarn, "No project under the cursor")
			return
		}
		m.apply("delete-project", m.session.DeleteProject(pid))

	case "/summary":
		sum := summary.SummarizeWindow(m.session.Data(), m.session.Teachers(), m.window.Start, m.window.End)
		m.setStatus(statusInfo, sum.String())

	case "/history":
		if len(args) != 1 {
			m.setStatus(statusWarn, "usage: /history <position>")
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			m.setStatus(statusWarn, "position must be a non-negative number")
			return
		}
		cursor := m.session.JumpTo(n)
		m.pruneSelection()
		m.setStatus(statusOK, fmt.Sprintf("History position %d", cursor))

	case "/clear-history":
		m.session.ClearHistory()
		m.setStatus(statusOK, "History cleared")

	default:
		m.setStatus(statusWarn, "Unknown command "+name)
	}
}

func (m Model) currentProjectID() string {
	p, ok := m.currentProject()
	if !ok {
		return ""
	}
	return p.ID
}

func positive(args []string, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing number of days")
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("days must be a positive number, got %q", args[i])
	}
	return n, nil
}
