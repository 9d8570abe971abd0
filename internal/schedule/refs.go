package schedule

import (
	"slices"
	"time"
)

// Project is a class or course grouping that owns a timeline of entries.
type Project struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	SchoolID    string `toml:"school_id"`
	SchoolName  string `toml:"school_name"`
	Description string `toml:"description"`
}

// Subject is something a teacher can teach.
type Subject struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// BusyWindow is an inclusive span a teacher is committed to outside the board.
type BusyWindow struct {
	Start time.Time
	End   time.Time
}

// Teacher is a read-only reference entity. Entries point at teachers by id
// only.
type Teacher struct {
	ID       string
	Name     string
	Subjects []string // subject names the teacher can teach
	Location string
	Phone    string
	Avatar   string
	Busy     []BusyWindow
}

// Teaches reports whether the teacher's subject set contains name.
func (t Teacher) Teaches(name string) bool {
	return slices.Contains(t.Subjects, name)
}
