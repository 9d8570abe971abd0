// Package board is the operation layer of the scheduling board. A Session
// owns the schedule store, the edit log that records its changes, the
// project registry and the teacher roster, and exposes every user intent as
// a validate-then-commit operation returning an Outcome.
package board

import (
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/classboard/internal/history"
	"github.com/javiermolinar/classboard/internal/logging"
	"github.com/javiermolinar/classboard/internal/roster"
	"github.com/javiermolinar/classboard/internal/schedule"
	"github.com/javiermolinar/classboard/internal/store"
)

// Session is one editing session. It is not safe for concurrent use.
type Session struct {
	store *store.Store
	log   *history.Log

	projects []schedule.Project
	subjects []schedule.Subject
	teachers []schedule.Teacher

	newProjectID func() string
	logger       *slog.Logger
}

type options struct {
	logger       *slog.Logger
	newID        func() string
	newProjectID func() string
	now          func() time.Time
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the logger shared by the session, its store and its log.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIDGenerator overrides how schedule ids are assigned.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithProjectIDGenerator overrides how project ids are assigned.
func WithProjectIDGenerator(fn func() string) Option {
	return func(o *options) { o.newProjectID = fn }
}

// WithClock sets the time source used to stamp history entries.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New starts a session over the given roster with an empty schedule.
func New(r roster.Roster, opts ...Option) *Session {
	o := options{
		logger:       logging.Discard(),
		newID:        uuid.NewString,
		newProjectID: uuid.NewString,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	st := store.New(store.WithIDGenerator(o.newID), store.WithLogger(o.logger))
	lg := history.New(st, history.WithClock(o.now), history.WithLogger(o.logger))
	st.Subscribe(lg)

	return &Session{
		store:        st,
		log:          lg,
		projects:     slices.Clone(r.Projects),
		subjects:     slices.Clone(r.Subjects),
		teachers:     slices.Clone(r.Teachers),
		newProjectID: o.newProjectID,
		logger:       o.logger,
	}
}

// Subscribe registers an observer for every store change, including those
// applied by undo and redo.
func (s *Session) Subscribe(o store.Observer) {
	s.store.Subscribe(o)
}

// Load replaces the schedule data. The load is recorded as one undoable
// batch.
func (s *Session) Load(data schedule.Data) {
	s.log.Group(func() { s.store.Load(data) })
}

// Data returns a snapshot of the schedule data.
func (s *Session) Data() schedule.Data {
	return s.store.Snapshot()
}

// Entry returns one schedule entry.
func (s *Session) Entry(projectID, scheduleID string) (schedule.Entry, bool) {
	return s.store.Get(projectID, scheduleID)
}

// Entries returns a project's entries.
func (s *Session) Entries(projectID string) []schedule.Entry {
	return s.store.Entries(projectID)
}

// Teachers returns the roster's teachers.
func (s *Session) Teachers() []schedule.Teacher {
	return slices.Clone(s.teachers)
}

// Teacher looks a teacher up by id.
func (s *Session) Teacher(id string) (schedule.Teacher, bool) {
	i := slices.IndexFunc(s.teachers, func(t schedule.Teacher) bool { return t.ID == id })
	if i < 0 {
		return schedule.Teacher{}, false
	}
	return s.teachers[i], true
}

// Subjects returns the roster's subjects.
func (s *Session) Subjects() []schedule.Subject {
	return slices.Clone(s.subjects)
}

// Subject looks a subject up by id.
func (s *Session) Subject(id string) (schedule.Subject, bool) {
	i := slices.IndexFunc(s.subjects, func(sub schedule.Subject) bool { return sub.ID == id })
	if i < 0 {
		return schedule.Subject{}, false
	}
	return s.subjects[i], true
}

// Undo reverts the latest operation and returns the number of log entries
// replayed.
func (s *Session) Undo() int {
	n := s.log.Undo()
	s.logger.Debug("undo", "entries", n, "cursor", s.log.Cursor())
	return n
}

// Redo re-applies the latest undone operation.
func (s *Session) Redo() int {
	n := s.log.Redo()
	s.logger.Debug("redo", "entries", n, "cursor", s.log.Cursor())
	return n
}

// CanUndo reports whether the history cursor is above zero.
func (s *Session) CanUndo() bool { return s.log.CanUndo() }

// CanRedo reports whether there are undone entries to re-apply.
func (s *Session) CanRedo() bool { return s.log.CanRedo() }

// History returns a copy of the edit log and its cursor.
func (s *Session) History() ([]history.Entry, int) {
	return s.log.Entries(), s.log.Cursor()
}

// JumpTo moves the history cursor to target, replaying every entry on the
// way, and returns the resulting cursor.
func (s *Session) JumpTo(target int) int {
	return s.log.MoveCursor(target)
}

// ClearHistory drops the edit log without touching the data.
func (s *Session) ClearHistory() {
	s.log.Reset()
}

// commit runs fn as one history batch.
func (s *Session) commit(op string, fn func()) {
	s.log.Group(fn)
	s.logger.Debug("applied", "op", op, "cursor", s.log.Cursor())
}

func (s *Session) reject(op string, r Reason, attrs ...any) Outcome {
	s.logger.Debug("rejected", append([]any{"op", op, "reason", string(r)}, attrs...)...)
	return rejected(r)
}
