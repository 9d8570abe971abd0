package schedule

import (
	"maps"
	"slices"
)

// Op is the kind of a single entry change.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change is the fact a mutation reports about one entry.
// Before is set for update and delete, After for add and update.
type Change struct {
	Op         Op
	ProjectID  string
	ScheduleID string
	Before     *Entry
	After      *Entry
}

// Added builds the change for a newly created entry.
func Added(e Entry) Change {
	return Change{Op: OpAdd, ProjectID: e.ProjectID, ScheduleID: e.ScheduleID, After: &e}
}

// Deleted builds the change for a removed entry.
func Deleted(e Entry) Change {
	return Change{Op: OpDelete, ProjectID: e.ProjectID, ScheduleID: e.ScheduleID, Before: &e}
}

// Updated builds the change for an entry replaced in place.
func Updated(before, after Entry) Change {
	return Change{Op: OpUpdate, ProjectID: after.ProjectID, ScheduleID: after.ScheduleID, Before: &before, After: &after}
}

// Clone returns a copy of the change that shares no snapshot with c.
func (c Change) Clone() Change {
	c.Before = cloneEntry(c.Before)
	c.After = cloneEntry(c.After)
	return c
}

func cloneEntry(e *Entry) *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// Diff compares two snapshots and returns the changes that turn prev into
// curr. Projects are visited in sorted id order; inside a project adds come
// first (curr order), then deletes (prev order), then updates (curr order).
// An entry counts as updated when any observed field differs.
func Diff(prev, curr Data) []Change {
	pids := make(map[string]struct{}, len(prev)+len(curr))
	for pid := range prev {
		pids[pid] = struct{}{}
	}
	for pid := range curr {
		pids[pid] = struct{}{}
	}

	var changes []Change
	for _, pid := range slices.Sorted(maps.Keys(pids)) {
		prevByID := indexByID(prev[pid])
		currByID := indexByID(curr[pid])

		for _, e := range curr[pid] {
			if _, ok := prevByID[e.ScheduleID]; !ok {
				changes = append(changes, Added(e))
			}
		}
		for _, e := range prev[pid] {
			if _, ok := currByID[e.ScheduleID]; !ok {
				changes = append(changes, Deleted(e))
			}
		}
		for _, e := range curr[pid] {
			old, ok := prevByID[e.ScheduleID]
			if ok && !old.SameContent(e) {
				changes = append(changes, Updated(old, e))
			}
		}
	}
	return changes
}

func indexByID(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ScheduleID] = e
	}
	return m
}
