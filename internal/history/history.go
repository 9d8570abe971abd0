// Package history keeps the linear edit log of a board and replays it for
// undo and redo.
//
// The log is fed by the store: every applied change is reported through
// Observe and appended as one Entry. Undo and redo apply the inverse or
// forward effect of logged entries back into the store. While such a replay
// is in flight the log is in the Replaying state and swallows the changes the
// store reports, so a replay never records itself.
package history

import (
	"io"
	"log/slog"
	"time"

	"github.com/javiermolinar/classboard/internal/schedule"
)

// State is the replay state of a log.
type State int

const (
	// Idle means changes reported by the store are recorded.
	Idle State = iota
	// Replaying means an undo or redo mutation is in flight and its
	// changes must not be recorded.
	Replaying
)

func (s State) String() string {
	if s == Replaying {
		return "replaying"
	}
	return "idle"
}

// Entry is one recorded change.
// Before is the prior snapshot (update, delete); After the resulting one
// (add, update). Entries sharing a Batch were produced by one operation.
type Entry struct {
	Time       time.Time
	Op         schedule.Op
	ProjectID  string
	ScheduleID string
	Before     *schedule.Entry
	After      *schedule.Entry
	Batch      uint64
}

// Mutator is the part of the store the log replays into. Replays are not
// checked beforehand: a target that no longer exists is a no-op in the
// store.
type Mutator interface {
	CreateWithID(e schedule.Entry) schedule.Entry
	Update(e schedule.Entry) (schedule.Entry, bool)
	Delete(projectID, scheduleID string) (schedule.Entry, bool)
}

// Log is an ordered list of entries plus a cursor in [0, Len()].
// Entries at index >= cursor have been undone and can be redone.
type Log struct {
	entries []Entry
	cursor  int

	state      State
	depth      int // nested replays in flight
	suppressed int // changes swallowed while replaying

	batch     uint64 // open batch id
	openDepth int
	lastBatch uint64

	target Mutator
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithClock sets the time source for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithLogger sets the logger used for replay diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// New creates an empty log replaying into target.
func New(target Mutator, opts ...Option) *Log {
	l := &Log{
		target: target,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Observe records a change reported by the store, unless a replay is in
// flight.
func (l *Log) Observe(change schedule.Change) {
	if l.state == Replaying {
		l.suppressed++
		return
	}
	change = change.Clone()
	l.append(Entry{
		Time:       l.now(),
		Op:         change.Op,
		ProjectID:  change.ProjectID,
		ScheduleID: change.ScheduleID,
		Before:     change.Before,
		After:      change.After,
		Batch:      l.batchID(),
	})
}

// append drops every redoable entry, then pushes e.
func (l *Log) append(e Entry) {
	if l.cursor < len(l.entries) {
		l.entries = l.entries[:l.cursor]
	}
	l.entries = append(l.entries, e)
	l.cursor = len(l.entries)
}

func (l *Log) batchID() uint64 {
	if l.openDepth > 0 {
		return l.batch
	}
	l.lastBatch++
	return l.lastBatch
}

// Begin opens a batch: every change recorded until the matching End shares
// one batch id and is undone and redone as a unit. Batches nest; only the
// outermost pair delimits.
func (l *Log) Begin() {
	if l.openDepth == 0 {
		l.lastBatch++
		l.batch = l.lastBatch
	}
	l.openDepth++
}

// End closes the batch opened by Begin.
func (l *Log) End() {
	if l.openDepth > 0 {
		l.openDepth--
	}
}

// Group runs fn inside one batch.
func (l *Log) Group(fn func()) {
	l.Begin()
	defer l.End()
	fn()
}

// Undo reverts the most recent batch, newest entry first, and returns the
// number of entries reverted.
func (l *Log) Undo() int {
	if l.cursor == 0 {
		return 0
	}
	batch := l.entries[l.cursor-1].Batch
	n := 0
	for l.cursor > 0 && l.entries[l.cursor-1].Batch == batch {
		l.StepBack()
		n++
	}
	return n
}

// Redo re-applies the next undone batch in order and returns the number of
// entries re-applied.
func (l *Log) Redo() int {
	if l.cursor == len(l.entries) {
		return 0
	}
	batch := l.entries[l.cursor].Batch
	n := 0
	for l.cursor < len(l.entries) && l.entries[l.cursor].Batch == batch {
		l.StepForward()
		n++
	}
	return n
}

// StepBack moves the cursor back by one entry, applying the inverse of
// log[cursor-1]. It reports false when the cursor is already at 0.
func (l *Log) StepBack() bool {
	if l.cursor == 0 {
		return false
	}
	l.cursor--
	e := l.entries[l.cursor]
	l.replay("undo", e, func() { l.applyInverse(e) })
	return true
}

// StepForward moves the cursor forward by one entry, applying the forward
// effect of log[cursor]. It reports false when nothing is left to redo.
func (l *Log) StepForward() bool {
	if l.cursor == len(l.entries) {
		return false
	}
	e := l.entries[l.cursor]
	l.cursor++
	l.replay("redo", e, func() { l.applyForward(e) })
	return true
}

// MoveCursor moves the cursor to target, clamped to [0, Len()], replaying
// every intervening entry one step at a time. It returns the new cursor.
func (l *Log) MoveCursor(target int) int {
	target = max(0, min(target, len(l.entries)))
	for l.cursor > target {
		l.StepBack()
	}
	for l.cursor < target {
		l.StepForward()
	}
	return l.cursor
}

func (l *Log) replay(direction string, e Entry, apply func()) {
	l.state = Replaying
	l.depth++
	defer func() {
		l.depth--
		if l.depth == 0 {
			l.state = Idle
		}
	}()
	before := l.suppressed
	apply()
	l.logger.Debug("replayed log entry",
		"direction", direction,
		"op", string(e.Op),
		"project_id", e.ProjectID,
		"schedule_id", e.ScheduleID,
		"cursor", l.cursor,
		"suppressed", l.suppressed-before,
	)
}

func (l *Log) applyInverse(e Entry) {
	switch e.Op {
	case schedule.OpAdd:
		l.target.Delete(e.After.ProjectID, e.After.ScheduleID)
	case schedule.OpDelete:
		l.target.CreateWithID(*e.Before)
	case schedule.OpUpdate:
		l.target.Update(*e.Before)
	}
}

func (l *Log) applyForward(e Entry) {
	switch e.Op {
	case schedule.OpAdd:
		l.target.CreateWithID(*e.After)
	case schedule.OpDelete:
		l.target.Delete(e.Before.ProjectID, e.Before.ScheduleID)
	case schedule.OpUpdate:
		l.target.Update(*e.After)
	}
}

// CanUndo reports whether the cursor is past the start of the log.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether undone entries remain ahead of the cursor.
func (l *Log) CanRedo() bool { return l.cursor < len(l.entries) }

// Cursor returns the current cursor.
func (l *Log) Cursor() int { return l.cursor }

// Len returns the number of entries, including undone ones.
func (l *Log) Len() int { return len(l.entries) }

// State returns the replay state.
func (l *Log) State() State { return l.state }

// Suppressed returns how many store changes have been swallowed by replays.
func (l *Log) Suppressed() int { return l.suppressed }

// Entries returns a copy of the log. The snapshots are copied too, so
// callers cannot rewrite what undo and redo replay.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		c := schedule.Change{Before: e.Before, After: e.After}.Clone()
		e.Before, e.After = c.Before, c.After
		out[i] = e
	}
	return out
}

// Reset clears the log and moves the cursor to 0.
func (l *Log) Reset() {
	l.entries = nil
	l.cursor = 0
}
