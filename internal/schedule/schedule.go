// Package schedule defines the core domain types for classboard.
package schedule

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/classboard/internal/dateutil"
)

// Entry is one bookable span: a teacher teaching a subject for a project over
// an inclusive range of calendar days.
type Entry struct {
	ScheduleID  string
	ProjectID   string
	StartDate   time.Time // inclusive, UTC midnight
	EndDate     time.Time // inclusive, UTC midnight
	TeacherID   string    // empty means unassigned
	SubjectsID  string    // empty means unassigned
	Description string
	Area        string
}

// Canonical returns the entry with both dates truncated to the day and
// swapped if reversed, so StartDate <= EndDate always holds.
func (e Entry) Canonical() Entry {
	e.StartDate = dateutil.TruncateToDay(e.StartDate)
	e.EndDate = dateutil.TruncateToDay(e.EndDate)
	if e.EndDate.Before(e.StartDate) {
		e.StartDate, e.EndDate = e.EndDate, e.StartDate
	}
	return e
}

// Days returns the number of calendar days the entry spans.
func (e Entry) Days() int {
	return dateutil.CountDaysInclusive(e.StartDate, e.EndDate)
}

// Shifted returns the entry moved by n days, keeping its duration.
func (e Entry) Shifted(n int) Entry {
	e.StartDate = dateutil.AddDays(e.StartDate, n)
	e.EndDate = dateutil.AddDays(e.EndDate, n)
	return e
}

// SameContent reports whether every observed field of e equals o's.
// Identity fields (ScheduleID, ProjectID) are not compared.
func (e Entry) SameContent(o Entry) bool {
	return e.StartDate.Equal(o.StartDate) &&
		e.EndDate.Equal(o.EndDate) &&
		e.TeacherID == o.TeacherID &&
		e.SubjectsID == o.SubjectsID &&
		e.Area == o.Area &&
		e.Description == o.Description
}

// Data maps a project id to its schedule entries. Order inside a project is
// insertion order and carries no meaning beyond presentation.
type Data map[string][]Entry

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for pid, entries := range d {
		out[pid] = slices.Clone(entries)
	}
	return out
}

// ProjectIDs returns the project ids present in d, sorted.
func (d Data) ProjectIDs() []string {
	ids := make([]string, 0, len(d))
	for pid := range d {
		ids = append(ids, pid)
	}
	slices.Sort(ids)
	return ids
}

// Find returns the entry with the given id inside one project.
func (d Data) Find(projectID, scheduleID string) (Entry, bool) {
	for _, e := range d[projectID] {
		if e.ScheduleID == scheduleID {
			return e, true
		}
	}
	return Entry{}, false
}

// Locate returns the entry with the given id in any project.
func (d Data) Locate(scheduleID string) (Entry, bool) {
	for _, pid := range d.ProjectIDs() {
		if e, ok := d.Find(pid, scheduleID); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// All yields every entry, projects in sorted id order.
func (d Data) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, pid := range d.ProjectIDs() {
			for _, e := range d[pid] {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Len returns the total number of entries.
func (d Data) Len() int {
	n := 0
	for _, entries := range d {
		n += len(entries)
	}
	return n
}

// Sorted returns a copy of d with each project's entries ordered by start
// date, then end date, then schedule id.
func (d Data) Sorted() Data {
	out := d.Clone()
	for _, entries := range out {
		slices.SortFunc(entries, compareEntries)
	}
	return out
}

func compareEntries(a, b Entry) int {
	if c := a.StartDate.Compare(b.StartDate); c != 0 {
		return c
	}
	if c := a.EndDate.Compare(b.EndDate); c != 0 {
		return c
	}
	return strings.Compare(a.ScheduleID, b.ScheduleID)
}
