package summary

import (
	"testing"
	"time"

	"github.com/javiermolinar/classboard/internal/schedule"
)

func day(d int) time.Time {
	return time.Date(2025, time.November, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeWindow(t *testing.T) {
	data := schedule.Data{
		"p1": {
			{ScheduleID: "a", ProjectID: "p1", StartDate: day(1), EndDate: day(5), TeacherID: "ada"},
			{ScheduleID: "b", ProjectID: "p1", StartDate: day(8), EndDate: day(9)},
		},
		"p2": {
			{ScheduleID: "c", ProjectID: "p2", StartDate: day(3), EndDate: day(12), TeacherID: "grace"},
			{ScheduleID: "d", ProjectID: "p2", StartDate: day(20), EndDate: day(21), TeacherID: "ada"},
			{ScheduleID: "e", ProjectID: "p2", StartDate: day(13), EndDate: day(14), TeacherID: "ghost"},
		},
	}
	teachers := []schedule.Teacher{{ID: "ada", Name: "Ada"}, {ID: "grace", Name: "Grace"}}

	s := SummarizeWindow(data, teachers, day(3), day(14))

	if s.Entries != 4 {
		t.Fatalf("entries = %d, want 4", s.Entries)
	}
	if s.Unassigned != 2 {
		t.Fatalf("unassigned = %d, want 2", s.Unassigned)
	}
	want := []TeacherLoad{
		{TeacherID: "grace", Name: "Grace", Days: 10, Entries: 1},
		{TeacherID: "ada", Name: "Ada", Days: 3, Entries: 1},
		{TeacherID: "ghost", Name: "ghost", Days: 2, Entries: 1},
	}
	if len(s.Teachers) != len(want) {
		t.Fatalf("teachers = %+v, want %+v", s.Teachers, want)
	}
	for i := range want {
		if s.Teachers[i] != want[i] {
			t.Errorf("teacher %d = %+v, want %+v", i, s.Teachers[i], want[i])
		}
	}
	if got := s.String(); got != "Grace 10d, Ada 3d, ghost 2d, unassigned 2d" {
		t.Fatalf("String() = %q", got)
	}
}

func TestSummarizeWindowEmpty(t *testing.T) {
	s := SummarizeWindow(schedule.Data{}, nil, day(1), day(30))
	if s.Entries != 0 || len(s.Teachers) != 0 {
		t.Fatalf("summary = %+v, want empty", s)
	}
	if s.String() != "Nothing booked" {
		t.Fatalf("String() = %q", s.String())
	}
}
