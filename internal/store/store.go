// Package store holds the authoritative in-memory schedule data.
//
// The store trusts its input: it canonicalizes dates but performs no
// conflict checking. Every mutation reports what it changed to the
// subscribed observers, synchronously and before returning.
package store

import (
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/classboard/internal/schedule"
)

// Observer receives every change applied by the store.
type Observer interface {
	Observe(change schedule.Change)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(change schedule.Change)

// Observe calls f(change).
func (f ObserverFunc) Observe(change schedule.Change) { f(change) }

// Draft holds the fields of an entry about to be created.
type Draft struct {
	ProjectID   string
	StartDate   time.Time
	EndDate     time.Time
	TeacherID   string
	SubjectsID  string
	Description string
	Area        string
}

func (d Draft) entry(id string) schedule.Entry {
	return schedule.Entry{
		ScheduleID:  id,
		ProjectID:   d.ProjectID,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		TeacherID:   d.TeacherID,
		SubjectsID:  d.SubjectsID,
		Description: d.Description,
		Area:        d.Area,
	}.Canonical()
}

// Store is the schedule data container.
type Store struct {
	data      schedule.Data
	newID     func() string
	observers []Observer
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides how schedule ids are assigned.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		data:   schedule.Data{},
		newID:  uuid.NewString,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer for every subsequent change.
func (s *Store) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// Snapshot returns a deep copy of the current data.
func (s *Store) Snapshot() schedule.Data {
	return s.data.Clone()
}

// Get returns the entry with the given id inside a project.
func (s *Store) Get(projectID, scheduleID string) (schedule.Entry, bool) {
	return s.data.Find(projectID, scheduleID)
}

// Entries returns a copy of a project's entries.
func (s *Store) Entries(projectID string) []schedule.Entry {
	return slices.Clone(s.data[projectID])
}

// Create assigns a fresh schedule id, canonicalizes the dates and appends the
// entry to its project, creating the project list if needed.
func (s *Store) Create(d Draft) schedule.Entry {
	e := d.entry(s.newID())
	s.insert(e)
	return e
}

// CreateWithID inserts e keeping its schedule id. It is used to replay a
// previously deleted entry verbatim.
func (s *Store) CreateWithID(e schedule.Entry) schedule.Entry {
	e = e.Canonical()
	if _, exists := s.data.Find(e.ProjectID, e.ScheduleID); exists {
		s.logger.Debug("create skipped, id already present",
			"project_id", e.ProjectID, "schedule_id", e.ScheduleID)
		return e
	}
	s.insert(e)
	return e
}

func (s *Store) insert(e schedule.Entry) {
	s.data[e.ProjectID] = append(s.data[e.ProjectID], e)
	s.emit(schedule.Added(e))
}

// Update replaces the entry matching e.ScheduleID inside e.ProjectID with e.
// It reports false, and changes nothing, when no such entry exists.
// Replacing an entry with identical content is not reported as a change.
func (s *Store) Update(e schedule.Entry) (schedule.Entry, bool) {
	e = e.Canonical()
	entries := s.data[e.ProjectID]
	i := slices.IndexFunc(entries, func(x schedule.Entry) bool { return x.ScheduleID == e.ScheduleID })
	if i < 0 {
		s.logger.Debug("update target not found",
			"project_id", e.ProjectID, "schedule_id", e.ScheduleID)
		return e, false
	}
	before := entries[i]
	entries[i] = e
	if !before.SameContent(e) {
		s.emit(schedule.Updated(before, e))
	}
	return e, true
}

// Delete removes the entry from its project, dropping the project key once
// its list is empty. It reports false when the entry does not exist.
func (s *Store) Delete(projectID, scheduleID string) (schedule.Entry, bool) {
	entries := s.data[projectID]
	i := slices.IndexFunc(entries, func(x schedule.Entry) bool { return x.ScheduleID == scheduleID })
	if i < 0 {
		s.logger.Debug("delete target not found",
			"project_id", projectID, "schedule_id", scheduleID)
		return schedule.Entry{}, false
	}
	removed := entries[i]
	if rest := slices.Delete(slices.Clone(entries), i, i+1); len(rest) > 0 {
		s.data[projectID] = rest
	} else {
		delete(s.data, projectID)
	}
	s.emit(schedule.Deleted(removed))
	return removed, true
}

// DeleteAllForProject removes a project's whole list and returns the removed
// entries. Each removal is reported as its own delete change.
func (s *Store) DeleteAllForProject(projectID string) []schedule.Entry {
	removed, ok := s.data[projectID]
	if !ok {
		return nil
	}
	delete(s.data, projectID)
	for _, e := range removed {
		s.emit(schedule.Deleted(e))
	}
	return removed
}

// Load replaces the whole data set. The differences from the previous data
// are reported as individual changes.
func (s *Store) Load(data schedule.Data) {
	next := make(schedule.Data, len(data))
	for pid, entries := range data {
		if len(entries) == 0 {
			continue
		}
		list := make([]schedule.Entry, 0, len(entries))
		for _, e := range entries {
			e.ProjectID = pid
			list = append(list, e.Canonical())
		}
		next[pid] = list
	}
	prev := s.data
	s.data = next
	for _, change := range schedule.Diff(prev, next) {
		s.emit(change)
	}
}

func (s *Store) emit(change schedule.Change) {
	for _, o := range s.observers {
		o.Observe(change.Clone())
	}
}
