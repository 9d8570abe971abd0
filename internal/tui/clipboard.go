package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/classboard/internal/dateutil"
)

// copySelection copies a tab-separated summary of the selected entries to
// the clipboard.
func (m *Model) copySelection() {
	refs := m.selection()
	if len(refs) == 0 {
		m.setStatus(statusWarn, "Nothing to copy")
		return
	}

	var b strings.Builder
	for _, ref := range refs {
		e, ok := m.session.Entry(ref.ProjectID, ref.ScheduleID)
		if !ok {
			continue
		}
		project := e.ProjectID
		if p, ok := m.session.Project(e.ProjectID); ok {
			project = projectLabel(p)
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\t%s\n",
			project,
			e.StartDate.Format(dateutil.DateLayout),
			e.EndDate.Format(dateutil.DateLayout),
			m.cardLabel(e),
			e.Area,
			e.Description,
		)
	}

	if err := m.copy(b.String()); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.setStatus(statusWarn, "Clipboard unavailable: "+err.Error())
		return
	}
	m.setStatus(statusOK, fmt.Sprintf("Copied %d entries", len(refs)))
}
