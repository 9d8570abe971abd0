package conflict

import (
	"testing"
	"time"

	"github.com/javiermolinar/classboard/internal/schedule"
)

func day(d int) time.Time {
	return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
}

func entry(id, pid, teacher string, start, end int) schedule.Entry {
	return schedule.Entry{ScheduleID: id, ProjectID: pid, TeacherID: teacher, StartDate: day(start), EndDate: day(end)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"shared end boundary", 10, 12, true},
		{"shared start boundary", 3, 5, true},
		{"inside", 6, 8, true},
		{"covering", 1, 20, true},
		{"before", 1, 4, false},
		{"after", 11, 15, false},
		{"single day on boundary", 10, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(day(tt.start), day(tt.end), day(5), day(10)); got != tt.want {
				t.Errorf("Overlaps([%d,%d], [5,10]) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestProjectOverlap(t *testing.T) {
	data := schedule.Data{
		"p": {entry("a", "p", "", 1, 5), entry("b", "p", "", 10, 15)},
		"q": {entry("c", "q", "", 6, 9)},
	}

	tests := []struct {
		name       string
		start, end int
		exclude    string
		want       bool
	}{
		{"boundary day 5 conflicts", 5, 8, "", true},
		{"gap fits", 6, 9, "", false},
		{"boundary day 10 conflicts", 6, 10, "", true},
		{"excluding self", 1, 6, "a", false},
		{"excluding other still conflicts", 1, 6, "b", true},
		{"other project ignored", 6, 9, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProjectOverlap(data, "p", day(tt.start), day(tt.end), tt.exclude); got != tt.want {
				t.Errorf("ProjectOverlap() = %v, want %v", got, tt.want)
			}
		})
	}

	if ProjectOverlap(data, "missing", day(1), day(31), "") {
		t.Error("unknown project should never overlap")
	}
}

func TestTeacherInternalOverlap(t *testing.T) {
	data := schedule.Data{
		"p": {entry("a", "p", "t1", 1, 5), entry("b", "p", "t2", 1, 5)},
		"q": {entry("c", "q", "t1", 10, 12), entry("d", "q", "", 1, 31)},
	}

	tests := []struct {
		name       string
		teacher    string
		start, end int
		exclude    IDSet
		want       bool
	}{
		{"cross project", "t1", 12, 14, nil, true},
		{"free gap", "t1", 6, 9, nil, false},
		{"other teacher ignored", "t2", 10, 12, nil, false},
		{"excluded ids", "t1", 1, 12, NewIDSet("a", "c"), false},
		{"partially excluded", "t1", 1, 12, NewIDSet("a"), true},
		{"unassigned never conflicts", "", 1, 31, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TeacherInternalOverlap(data, tt.teacher, day(tt.start), day(tt.end), tt.exclude); got != tt.want {
				t.Errorf("TeacherInternalOverlap() = %v, want %v", got, tt.want)
			}
		})
	}

	e, ok := FirstTeacherOverlap(data, "t1", day(4), day(11), nil)
	if !ok || e.ScheduleID != "a" {
		t.Errorf("FirstTeacherOverlap() = %v, %v; want entry a", e.ScheduleID, ok)
	}
}

func TestTeacherExternalConflict(t *testing.T) {
	busy := []schedule.BusyWindow{{Start: day(10), End: day(15)}}

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"straddles end", 14, 16, true},
		{"touches start", 8, 10, true},
		{"touches end", 15, 20, true},
		{"before", 1, 9, false},
		{"after", 16, 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TeacherExternalConflict(busy, day(tt.start), day(tt.end)); got != tt.want {
				t.Errorf("TeacherExternalConflict() = %v, want %v", got, tt.want)
			}
		})
	}

	if TeacherExternalConflict(nil, day(1), day(31)) {
		t.Error("no busy windows should never conflict")
	}
}

func TestIDSet(t *testing.T) {
	s := NewIDSet("a", "", "b")
	if len(s) != 2 {
		t.Errorf("expected empty ids to be skipped, got %d members", len(s))
	}
	var nilSet IDSet
	if nilSet.Has("a") {
		t.Error("nil set should be empty")
	}
}
