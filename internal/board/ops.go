package board

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/classboard/internal/conflict"
	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/schedule"
	"github.com/javiermolinar/classboard/internal/store"
)

// Ref identifies an entry on the board.
type Ref struct {
	ProjectID  string
	ScheduleID string
}

// Edge is the side of an entry being resized.
type Edge int

// Resize edges.
const (
	EdgeLeft Edge = iota
	EdgeRight
)

// Scope selects which entries an anchor shift moves.
type Scope string

// Shift scopes.
const (
	ScopeBefore Scope = "before" // entries starting before the anchor day
	ScopeAfter  Scope = "after"  // entries starting on or after the anchor day
)

// Direction is the way an anchor shift moves entries.
type Direction string

// Shift directions.
const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Shift describes a bulk anchor shift.
type Shift struct {
	Anchor    time.Time // zero means no anchor has been chosen
	Scope     Scope
	Direction Direction
	Amount    int // days, must be positive
}

// DragCreate creates an unassigned entry over the dragged span, which may be
// given in either direction.
func (s *Session) DragCreate(projectID string, from, to time.Time) Outcome {
	start, end := dateutil.TruncateToDay(from), dateutil.TruncateToDay(to)
	if end.Before(start) {
		start, end = end, start
	}
	if conflict.ProjectOverlap(s.store.Snapshot(), projectID, start, end, "") {
		return s.reject("create", ReasonProjectConflict, "project_id", projectID)
	}

	var created schedule.Entry
	s.commit("create", func() {
		created = s.store.Create(store.Draft{ProjectID: projectID, StartDate: start, EndDate: end})
	})
	return Outcome{Count: 1, ScheduleID: created.ScheduleID}
}

// Move drags an entry so that it starts on newStart, keeping its length.
// Moving onto another project deletes the entry and recreates it there with
// a fresh id, its area set to the teacher's location.
func (s *Session) Move(ref Ref, targetProjectID string, newStart time.Time) Outcome {
	data := s.store.Snapshot()
	current, ok := data.Find(ref.ProjectID, ref.ScheduleID)
	if !ok {
		return s.reject("move", ReasonNotFound, "schedule_id", ref.ScheduleID)
	}
	if targetProjectID == "" {
		targetProjectID = ref.ProjectID
	}

	start := dateutil.TruncateToDay(newStart)
	end := dateutil.AddDays(start, current.Days()-1)
	self := conflict.NewIDSet(current.ScheduleID)

	if conflict.ProjectOverlap(data, targetProjectID, start, end, current.ScheduleID) {
		return s.reject("move", ReasonProjectConflict, "schedule_id", current.ScheduleID)
	}
	if conflict.TeacherInternalOverlap(data, current.TeacherID, start, end, self) {
		return s.reject("move", ReasonTeacherConflict, "schedule_id", current.ScheduleID)
	}

	if targetProjectID == ref.ProjectID {
		next := current
		next.StartDate, next.EndDate = start, end
		s.commit("move", func() { s.store.Update(next) })
		return Outcome{Count: 1, ScheduleID: current.ScheduleID}
	}

	area := ""
	if t, ok := s.Teacher(current.TeacherID); ok {
		area = t.Location
	}
	var created schedule.Entry
	s.commit("move-across", func() {
		s.store.Delete(current.ProjectID, current.ScheduleID)
		created = s.store.Create(store.Draft{
			ProjectID:  targetProjectID,
			StartDate:  start,
			EndDate:    end,
			TeacherID:  current.TeacherID,
			SubjectsID: current.SubjectsID,
			Area:       area,
		})
	})
	return Outcome{Count: 1, ScheduleID: created.ScheduleID}
}

// Resize moves one edge of an entry to the given day while the other edge
// stays fixed. The dragged edge cannot cross the opposite one.
func (s *Session) Resize(ref Ref, edge Edge, to time.Time) Outcome {
	data := s.store.Snapshot()
	current, ok := data.Find(ref.ProjectID, ref.ScheduleID)
	if !ok {
		return s.reject("resize", ReasonNotFound, "schedule_id", ref.ScheduleID)
	}

	day := dateutil.TruncateToDay(to)
	next := current
	switch edge {
	case EdgeLeft:
		if day.After(current.EndDate) {
			day = current.EndDate
		}
		next.StartDate = day
	case EdgeRight:
		if day.Before(current.StartDate) {
			day = current.StartDate
		}
		next.EndDate = day
	}

	if conflict.ProjectOverlap(data, ref.ProjectID, next.StartDate, next.EndDate, current.ScheduleID) {
		return s.reject("resize", ReasonProjectConflict, "schedule_id", current.ScheduleID)
	}
	if conflict.TeacherInternalOverlap(data, current.TeacherID, next.StartDate, next.EndDate,
		conflict.NewIDSet(current.ScheduleID)) {
		return s.reject("resize", ReasonTeacherConflict, "schedule_id", current.ScheduleID)
	}

	s.commit("resize", func() { s.store.Update(next) })
	return Outcome{Count: 1, ScheduleID: current.ScheduleID}
}

// AssignSubject sets the entry's subject. An empty subjectID clears it; an
// id missing from the roster is rejected as not-found.
func (s *Session) AssignSubject(ref Ref, subjectID string) Outcome {
	current, ok := s.store.Get(ref.ProjectID, ref.ScheduleID)
	if !ok {
		return s.reject("assign-subject", ReasonNotFound, "schedule_id", ref.ScheduleID)
	}
	if current.SubjectsID == subjectID {
		return Outcome{ScheduleID: current.ScheduleID}
	}
	if _, known := s.Subject(subjectID); subjectID != "" && !known {
		return s.reject("assign-subject", ReasonNotFound, "subject_id", subjectID)
	}

	next := current
	next.SubjectsID = subjectID
	s.commit("assign-subject", func() { s.store.Update(next) })
	return Outcome{Count: 1, ScheduleID: current.ScheduleID}
}

// AssignTeacher sets the entry's teacher after checking the teacher's
// external busy windows and other bookings. An empty teacherID clears it; an
// id missing from the roster is rejected as not-found.
func (s *Session) AssignTeacher(ref Ref, teacherID string) Outcome {
	data := s.store.Snapshot()
	current, ok := data.Find(ref.ProjectID, ref.ScheduleID)
	if !ok {
		return s.reject("assign-teacher", ReasonNotFound, "schedule_id", ref.ScheduleID)
	}
	if current.TeacherID == teacherID {
		return Outcome{ScheduleID: current.ScheduleID}
	}
	if _, known := s.Teacher(teacherID); teacherID != "" && !known {
		return s.reject("assign-teacher", ReasonNotFound, "teacher_id", teacherID)
	}
	if s.teacherBlocked(data, teacherID, current) {
		return s.reject("assign-teacher", ReasonTeacherConflict,
			"schedule_id", current.ScheduleID, "teacher_id", teacherID)
	}

	next := current
	next.TeacherID = teacherID
	s.commit("assign-teacher", func() { s.store.Update(next) })
	return Outcome{Count: 1, ScheduleID: current.ScheduleID}
}

func (s *Session) teacherBlocked(data schedule.Data, teacherID string, e schedule.Entry) bool {
	if teacherID == "" {
		return false
	}
	if t, ok := s.Teacher(teacherID); ok && conflict.TeacherExternalConflict(t.Busy, e.StartDate, e.EndDate) {
		return true
	}
	return conflict.TeacherInternalOverlap(data, teacherID, e.StartDate, e.EndDate, conflict.NewIDSet(e.ScheduleID))
}

// Describe replaces an entry's free-form description and area.
func (s *Session) Describe(ref Ref, description, area string) Outcome {
	current, ok := s.store.Get(ref.ProjectID, ref.ScheduleID)
	if !ok {
		return s.reject("describe", ReasonNotFound, "schedule_id", ref.ScheduleID)
	}
	next := current
	next.Description, next.Area = description, area
	s.commit("describe", func() { s.store.Update(next) })
	return Outcome{Count: 1, ScheduleID: current.ScheduleID}
}

// AvailableTeachers lists the teachers that could be assigned to an entry
// without a conflict. With bySubject set and a subject assigned, only
// teachers able to teach that subject are listed.
func (s *Session) AvailableTeachers(ref Ref, bySubject bool) []schedule.Teacher {
	data := s.store.Snapshot()
	current, ok := data.Find(ref.ProjectID, ref.ScheduleID)
	if !ok {
		return nil
	}
	subject, hasSubject := s.Subject(current.SubjectsID)

	var out []schedule.Teacher
	for _, t := range s.teachers {
		if bySubject && hasSubject && !t.Teaches(subject.Name) {
			continue
		}
		if s.teacherBlocked(data, t.ID, current) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Merge joins contiguous entries of one project and one teacher into the
// earliest of them. Contiguous means each entry starts the day after the
// previous one ends.
func (s *Session) Merge(refs []Ref) Outcome {
	data := s.store.Snapshot()
	refs = uniqueRefs(refs)
	if len(refs) < 2 {
		return s.reject("merge", ReasonInvalidSelection, "selected", len(refs))
	}

	selected := make([]schedule.Entry, 0, len(refs))
	for _, r := range refs {
		e, ok := data.Find(r.ProjectID, r.ScheduleID)
		if !ok {
			return s.reject("merge", ReasonNotFound, "schedule_id", r.ScheduleID)
		}
		selected = append(selected, e)
	}

	first := selected[0]
	for _, e := range selected[1:] {
		if e.ProjectID != first.ProjectID || e.TeacherID != first.TeacherID {
			return s.reject("merge", ReasonInvalidSelection, "schedule_id", e.ScheduleID)
		}
	}

	slices.SortFunc(selected, func(a, b schedule.Entry) int {
		return cmp.Or(a.StartDate.Compare(b.StartDate), cmp.Compare(a.ScheduleID, b.ScheduleID))
	})
	for i := 1; i < len(selected); i++ {
		if !selected[i].StartDate.Equal(dateutil.AddDays(selected[i-1].EndDate, 1)) {
			return s.reject("merge", ReasonInvalidSelection, "gap_before", selected[i].ScheduleID)
		}
	}

	merged := selected[0]
	merged.EndDate = selected[len(selected)-1].EndDate
	ids := make([]string, 0, len(selected))
	for _, e := range selected {
		ids = append(ids, e.ScheduleID)
	}
	exclude := conflict.NewIDSet(ids...)

	if _, hit := conflict.FirstProjectOverlap(data, merged.ProjectID, merged.StartDate, merged.EndDate, exclude); hit {
		return s.reject("merge", ReasonProjectConflict, "schedule_id", merged.ScheduleID)
	}
	if conflict.TeacherInternalOverlap(data, merged.TeacherID, merged.StartDate, merged.EndDate, exclude) {
		return s.reject("merge", ReasonTeacherConflict, "schedule_id", merged.ScheduleID)
	}

	s.commit("merge", func() {
		s.store.Update(merged)
		for _, e := range selected[1:] {
			s.store.Delete(e.ProjectID, e.ScheduleID)
		}
	})
	return Outcome{Count: len(selected), ScheduleID: merged.ScheduleID}
}

// ShiftFromAnchor moves every entry starting before, or on and after, the
// anchor day by the requested number of days. Either every candidate moves
// or none does.
func (s *Session) ShiftFromAnchor(req Shift) Outcome {
	if req.Anchor.IsZero() {
		return s.reject("shift", ReasonNoAnchor)
	}
	anchor := dateutil.TruncateToDay(req.Anchor)
	delta := req.Amount
	if req.Direction == Backward {
		delta = -delta
	}

	data := s.store.Snapshot()
	var candidates []schedule.Entry
	for e := range data.All() {
		after := !e.StartDate.Before(anchor)
		if (req.Scope == ScopeAfter) == after {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 || req.Amount <= 0 {
		return s.reject("shift", ReasonNothingToAdjust, "anchor", anchor.Format(dateutil.DateLayout))
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ScheduleID)
	}
	moving := conflict.NewIDSet(ids...)

	shifted := make([]schedule.Entry, 0, len(candidates))
	for _, c := range candidates {
		next := c.Shifted(delta)
		if hit, ok := conflict.FirstProjectOverlap(data, next.ProjectID, next.StartDate, next.EndDate, moving); ok {
			return s.reject("shift", ReasonProjectConflict,
				"schedule_id", c.ScheduleID, "blocked_by", hit.ScheduleID)
		}
		if conflict.TeacherInternalOverlap(data, next.TeacherID, next.StartDate, next.EndDate, moving) {
			return s.reject("shift", ReasonTeacherConflict, "schedule_id", c.ScheduleID)
		}
		shifted = append(shifted, next)
	}

	s.commit("shift", func() {
		for _, e := range shifted {
			s.store.Update(e)
		}
	})
	return Outcome{Count: len(shifted)}
}

// DeleteSelected removes every selected entry and reports how many were
// actually deleted.
func (s *Session) DeleteSelected(refs []Ref) Outcome {
	refs = uniqueRefs(refs)
	if len(refs) == 0 {
		return s.reject("delete", ReasonInvalidSelection)
	}

	data := s.store.Snapshot()
	groups := make(map[string][]string)
	for _, r := range refs {
		if _, ok := data.Find(r.ProjectID, r.ScheduleID); ok {
			groups[r.ProjectID] = append(groups[r.ProjectID], r.ScheduleID)
		}
	}
	if len(groups) == 0 {
		return s.reject("delete", ReasonNotFound, "selected", len(refs))
	}
	pids := make([]string, 0, len(groups))
	for pid := range groups {
		pids = append(pids, pid)
	}
	slices.Sort(pids)

	deleted := 0
	s.commit("delete", func() {
		for _, pid := range pids {
			for _, sid := range groups[pid] {
				if _, ok := s.store.Delete(pid, sid); ok {
					deleted++
				}
			}
		}
	})
	return Outcome{Count: deleted}
}

func uniqueRefs(refs []Ref) []Ref {
	seen := make(map[Ref]struct{}, len(refs))
	out := make([]Ref, 0, len(refs))
	for _, r := range refs {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
