// Package summary aggregates how booked a stretch of the board is.
package summary

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/schedule"
)

// TeacherLoad is one teacher's booked days inside a window.
type TeacherLoad struct {
	TeacherID string
	Name      string
	Days      int
	Entries   int
}

// WindowSummary holds booked days per teacher for a date window. Only the
// part of each entry inside the window counts.
type WindowSummary struct {
	Start      time.Time
	End        time.Time
	Teachers   []TeacherLoad // busiest first
	Unassigned int           // entry-days without a teacher
	Entries    int           // entries touching the window
}

// SummarizeWindow builds the summary of data over [start, end]. Teachers
// missing from the roster are reported by id.
func SummarizeWindow(data schedule.Data, teachers []schedule.Teacher, start, end time.Time) WindowSummary {
	start, end = dateutil.TruncateToDay(start), dateutil.TruncateToDay(end)
	s := WindowSummary{Start: start, End: end}

	names := make(map[string]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.Name
	}

	loads := make(map[string]*TeacherLoad)
	for e := range data.All() {
		days := clippedDays(e, start, end)
		if days == 0 {
			continue
		}
		s.Entries++
		if e.TeacherID == "" {
			s.Unassigned += days
			continue
		}
		l, ok := loads[e.TeacherID]
		if !ok {
			name := names[e.TeacherID]
			if name == "" {
				name = e.TeacherID
			}
			l = &TeacherLoad{TeacherID: e.TeacherID, Name: name}
			loads[e.TeacherID] = l
		}
		l.Days += days
		l.Entries++
	}

	for _, l := range loads {
		s.Teachers = append(s.Teachers, *l)
	}
	slices.SortFunc(s.Teachers, func(a, b TeacherLoad) int {
		return cmp.Or(cmp.Compare(b.Days, a.Days), cmp.Compare(a.TeacherID, b.TeacherID))
	})
	return s
}

// clippedDays counts the days of e inside [start, end].
func clippedDays(e schedule.Entry, start, end time.Time) int {
	from, to := e.StartDate, e.EndDate
	if from.Before(start) {
		from = start
	}
	if to.After(end) {
		to = end
	}
	return dateutil.CountDaysInclusive(from, to)
}

// String renders the summary on one line, for example
// "Ada 5d, Grace 3d, unassigned 2d".
func (s WindowSummary) String() string {
	if s.Entries == 0 {
		return "Nothing booked"
	}
	parts := make([]string, 0, len(s.Teachers)+1)
	for _, l := range s.Teachers {
		parts = append(parts, fmt.Sprintf("%s %dd", l.Name, l.Days))
	}
	if s.Unassigned > 0 {
		parts = append(parts, fmt.Sprintf("unassigned %dd", s.Unassigned))
	}
	return strings.Join(parts, ", ")
}
