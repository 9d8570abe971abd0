// Package conflict provides the overlap predicates that gate every board
// mutation.
//
// Spans are closed intervals of calendar days: two spans that share a single
// boundary day overlap. An entry ending on day N and another starting on day
// N are a conflict.
package conflict

import (
	"time"

	"github.com/javiermolinar/classboard/internal/schedule"
)

// IDSet is a set of schedule ids excluded from a check.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids, skipping empty ones.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether id is in the set. A nil set contains nothing.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Overlaps reports whether [start, end] and [otherStart, otherEnd] share at
// least one day.
func Overlaps(start, end, otherStart, otherEnd time.Time) bool {
	return !(end.Before(otherStart) || start.After(otherEnd))
}

// ProjectOverlap reports whether [start, end] collides with any entry of the
// project other than excludeID.
func ProjectOverlap(data schedule.Data, projectID string, start, end time.Time, excludeID string) bool {
	_, found := FirstProjectOverlap(data, projectID, start, end, NewIDSet(excludeID))
	return found
}

// FirstProjectOverlap returns the first entry of the project, outside
// exclude, that collides with [start, end].
func FirstProjectOverlap(data schedule.Data, projectID string, start, end time.Time, exclude IDSet) (schedule.Entry, bool) {
	for _, e := range data[projectID] {
		if exclude.Has(e.ScheduleID) {
			continue
		}
		if Overlaps(start, end, e.StartDate, e.EndDate) {
			return e, true
		}
	}
	return schedule.Entry{}, false
}

// TeacherInternalOverlap reports whether the teacher already has an entry in
// any project, outside exclude, that collides with [start, end]. The
// exclusion set lets a batch of co-moving entries be validated together.
// An empty teacher id never conflicts.
func TeacherInternalOverlap(data schedule.Data, teacherID string, start, end time.Time, exclude IDSet) bool {
	_, found := FirstTeacherOverlap(data, teacherID, start, end, exclude)
	return found
}

// FirstTeacherOverlap returns the first colliding entry booked for the
// teacher, scanning projects in sorted id order.
func FirstTeacherOverlap(data schedule.Data, teacherID string, start, end time.Time, exclude IDSet) (schedule.Entry, bool) {
	if teacherID == "" {
		return schedule.Entry{}, false
	}
	for e := range data.All() {
		if e.TeacherID != teacherID || exclude.Has(e.ScheduleID) {
			continue
		}
		if Overlaps(start, end, e.StartDate, e.EndDate) {
			return e, true
		}
	}
	return schedule.Entry{}, false
}

// TeacherExternalConflict reports whether [start, end] collides with any of
// the teacher's external busy windows.
func TeacherExternalConflict(busy []schedule.BusyWindow, start, end time.Time) bool {
	for _, w := range busy {
		if Overlaps(start, end, w.Start, w.End) {
			return true
		}
	}
	return false
}
