// Package roster provides the read-only reference data a board works with:
// projects, subjects and teachers together with their external busy
// schedules.
package roster

import (
	"context"
	"errors"
	"slices"

	"github.com/javiermolinar/classboard/internal/schedule"
)

// ErrNotFound is returned when a roster file or database does not exist.
var ErrNotFound = errors.New("roster not found")

// Roster is the reference data loaded at session start.
type Roster struct {
	Projects []schedule.Project
	Subjects []schedule.Subject
	Teachers []schedule.Teacher

	// Entries seeds the board with schedule entries booked earlier.
	Entries []schedule.Entry

	// DroppedBusy counts busy windows discarded while loading because they
	// did not parse or ended before they started.
	DroppedBusy int
}

// Source loads a roster from some backing format.
type Source interface {
	Load(ctx context.Context) (Roster, error)
}

// ScheduleData groups the seed entries by project.
func (r Roster) ScheduleData() schedule.Data {
	data := make(schedule.Data)
	for _, e := range r.Entries {
		data[e.ProjectID] = append(data[e.ProjectID], e)
	}
	return data
}

// Teacher returns the teacher with the given id.
func (r Roster) Teacher(id string) (schedule.Teacher, bool) {
	i := slices.IndexFunc(r.Teachers, func(t schedule.Teacher) bool { return t.ID == id })
	if i < 0 {
		return schedule.Teacher{}, false
	}
	return r.Teachers[i], true
}

// Subject returns the subject with the given id.
func (r Roster) Subject(id string) (schedule.Subject, bool) {
	i := slices.IndexFunc(r.Subjects, func(s schedule.Subject) bool { return s.ID == id })
	if i < 0 {
		return schedule.Subject{}, false
	}
	return r.Subjects[i], true
}

// Project returns the project with the given id.
func (r Roster) Project(id string) (schedule.Project, bool) {
	i := slices.IndexFunc(r.Projects, func(p schedule.Project) bool { return p.ID == id })
	if i < 0 {
		return schedule.Project{}, false
	}
	return r.Projects[i], true
}
