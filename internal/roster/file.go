package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/schedule"
)

// File is a roster stored as a TOML document:
//
//	[[projects]]
//	id = "p1"
//	name = "Grade 7 Science"
//	school_id = "north"
//
//	[[teachers]]
//	id = "t1"
//	name = "Ada"
//	subjects = ["Physics"]
//	busy = [{ start = "2025.12.10", end = "2025.12.15" }]
//
//	[[schedule]]
//	id = "e1"
//	project_id = "p1"
//	start = "2025-11-03"
//	end = "2025-11-07"
//	teacher_id = "t1"
type File struct {
	Path string
}

type fileDoc struct {
	Projects []schedule.Project `toml:"projects"`
	Subjects []schedule.Subject `toml:"subjects"`
	Teachers []fileTeacher      `toml:"teachers"`
	Schedule []fileEntry        `toml:"schedule,omitempty"`
}

type fileTeacher struct {
	ID       string    `toml:"id"`
	Name     string    `toml:"name"`
	Subjects []string  `toml:"subjects"`
	Location string    `toml:"location,omitempty"`
	Phone    string    `toml:"phone,omitempty"`
	Avatar   string    `toml:"avatar,omitempty"`
	Busy     []RawBusy `toml:"busy,omitempty"`
}

type fileEntry struct {
	ID          string `toml:"id"`
	ProjectID   string `toml:"project_id"`
	Start       string `toml:"start"`
	End         string `toml:"end"`
	TeacherID   string `toml:"teacher_id,omitempty"`
	SubjectID   string `toml:"subject_id,omitempty"`
	Description string `toml:"description,omitempty"`
	Area        string `toml:"area,omitempty"`
}

func (fe fileEntry) entry() (schedule.Entry, error) {
	if fe.ProjectID == "" {
		return schedule.Entry{}, errors.New("missing project_id")
	}
	if fe.Start == "" || fe.End == "" {
		return schedule.Entry{}, errors.New("missing start or end")
	}
	start, err := dateutil.ParseDate(fe.Start)
	if err != nil {
		return schedule.Entry{}, fmt.Errorf("start: %w", err)
	}
	end, err := dateutil.ParseDate(fe.End)
	if err != nil {
		return schedule.Entry{}, fmt.Errorf("end: %w", err)
	}
	id := fe.ID
	if id == "" {
		id = uuid.NewString()
	}
	e := schedule.Entry{
		ScheduleID:  id,
		ProjectID:   fe.ProjectID,
		StartDate:   start,
		EndDate:     end,
		TeacherID:   fe.TeacherID,
		SubjectsID:  fe.SubjectID,
		Description: fe.Description,
		Area:        fe.Area,
	}
	return e.Canonical(), nil
}

func toFileEntry(e schedule.Entry) fileEntry {
	return fileEntry{
		ID:          e.ScheduleID,
		ProjectID:   e.ProjectID,
		Start:       e.StartDate.Format(dateutil.DateLayout),
		End:         e.EndDate.Format(dateutil.DateLayout),
		TeacherID:   e.TeacherID,
		SubjectID:   e.SubjectsID,
		Description: e.Description,
		Area:        e.Area,
	}
}

// Load reads and decodes the file.
func (f File) Load(_ context.Context) (Roster, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Roster{}, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
		}
		return Roster{}, fmt.Errorf("reading roster file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a TOML roster document from r.
func Decode(r io.Reader) (Roster, error) {
	var doc fileDoc
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return Roster{}, fmt.Errorf("parsing roster: %w", err)
	}

	out := Roster{
		Projects: doc.Projects,
		Subjects: doc.Subjects,
		Teachers: make([]schedule.Teacher, 0, len(doc.Teachers)),
	}
	for _, ft := range doc.Teachers {
		busy, dropped := ParseBusy(ft.Busy)
		out.DroppedBusy += dropped
		out.Teachers = append(out.Teachers, schedule.Teacher{
			ID:       ft.ID,
			Name:     ft.Name,
			Subjects: ft.Subjects,
			Location: ft.Location,
			Phone:    ft.Phone,
			Avatar:   ft.Avatar,
			Busy:     busy,
		})
	}
	for i, fe := range doc.Schedule {
		e, err := fe.entry()
		if err != nil {
			return Roster{}, fmt.Errorf("parsing schedule entry %d: %w", i+1, err)
		}
		out.Entries = append(out.Entries, e)
	}
	return out, nil
}

// Encode writes r as a TOML roster document.
func Encode(w io.Writer, r Roster) error {
	doc := fileDoc{
		Projects: r.Projects,
		Subjects: r.Subjects,
		Teachers: make([]fileTeacher, 0, len(r.Teachers)),
	}
	for _, t := range r.Teachers {
		doc.Teachers = append(doc.Teachers, fileTeacher{
			ID:       t.ID,
			Name:     t.Name,
			Subjects: t.Subjects,
			Location: t.Location,
			Phone:    t.Phone,
			Avatar:   t.Avatar,
			Busy:     FormatBusy(t.Busy),
		})
	}
	for _, e := range r.Entries {
		doc.Schedule = append(doc.Schedule, toFileEntry(e))
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}
	return nil
}
