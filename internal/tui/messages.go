package tui

import (
	"fmt"

	"github.com/javiermolinar/classboard/internal/board"
)

// rejectionText turns a rejection reason into the status line message.
func rejectionText(r board.Reason) string {
	switch r {
	case board.ReasonProjectConflict:
		return "Date conflict: the project already has an entry on those days"
	case board.ReasonTeacherConflict:
		return "Teacher conflict: the teacher is booked elsewhere on those days"
	case board.ReasonNoAnchor:
		return "Pick an anchor day first (a)"
	case board.ReasonNothingToAdjust:
		return "Nothing to adjust in that range"
	case board.ReasonInvalidSelection:
		return "Invalid selection"
	case board.ReasonNotFound:
		return "Nothing selected there"
	case board.ReasonInvalidProject:
		return "A project needs a school"
	default:
		return "Rejected: " + string(r)
	}
}

func successText(op string, out board.Outcome) string {
	switch op {
	case "create":
		return "Entry created"
	case "move":
		return "Entry moved"
	case "resize":
		return "Entry resized"
	case "merge":
		return fmt.Sprintf("Merged %d entries", out.Count)
	case "shift":
		return fmt.Sprintf("Shifted %d entries", out.Count)
	case "delete":
		return fmt.Sprintf("Deleted %d entries", out.Count)
	case "create-project":
		return "Project created"
	case "delete-project":
		return fmt.Sprintf("Project deleted with %d entries", out.Count)
	default:
		return "Done"
	}
}
