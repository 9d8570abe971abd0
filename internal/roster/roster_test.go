package roster

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/classboard/internal/schedule"
)

const sampleRoster = `
[[projects]]
id = "p1"
name = "Grade 7 Science"
school_id = "north"
school_name = "North Campus"

[[subjects]]
id = "s1"
name = "Physics"

[[teachers]]
id = "t1"
name = "Ada"
subjects = ["Physics", "Maths"]
location = "Room 4"
busy = [
  { start = "2025.12.10", end = "2025.12.15" },
  { start = "2025-12-20", end = "2025.12.21" },
  { start = "2025.12.22", end = "2025.12.21" },
]

[[teachers]]
id = "t2"
name = "Grace"
subjects = ["Chemistry"]

[[schedule]]
id = "e1"
project_id = "p1"
start = "2025-11-03"
end = "2025-11-07"
teacher_id = "t1"
subject_id = "s1"
area = "Room 4"

[[schedule]]
project_id = "p1"
start = "2025-11-14"
end = "2025-11-12"
`

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseBusy(t *testing.T) {
	tests := []struct {
		name    string
		raw     []RawBusy
		want    []schedule.BusyWindow
		dropped int
	}{
		{
			name: "valid window",
			raw:  []RawBusy{{Start: "2025.12.10", End: "2025.12.15"}},
			want: []schedule.BusyWindow{{Start: date(2025, 12, 10), End: date(2025, 12, 15)}},
		},
		{
			name: "single day window",
			raw:  []RawBusy{{Start: "2025.01.01", End: "2025.01.01"}},
			want: []schedule.BusyWindow{{Start: date(2025, 1, 1), End: date(2025, 1, 1)}},
		},
		{
			name:    "wrong layout dropped",
			raw:     []RawBusy{{Start: "2025-12-10", End: "2025.12.15"}},
			dropped: 1,
		},
		{
			name:    "inverted window dropped",
			raw:     []RawBusy{{Start: "2025.12.15", End: "2025.12.10"}},
			dropped: 1,
		},
		{
			name:    "empty strings dropped",
			raw:     []RawBusy{{}},
			dropped: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := ParseBusy(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.dropped, dropped)
		})
	}
}

func TestFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRoster), 0o644))

	r, err := File{Path: path}.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, r.Projects, 1)
	assert.Equal(t, "North Campus", r.Projects[0].SchoolName)
	require.Len(t, r.Teachers, 2)
	assert.Equal(t, 2, r.DroppedBusy)

	ada, ok := r.Teacher("t1")
	require.True(t, ok)
	assert.Equal(t, "Room 4", ada.Location)
	assert.Equal(t, []schedule.BusyWindow{{Start: date(2025, 12, 10), End: date(2025, 12, 15)}}, ada.Busy)
	assert.True(t, ada.Teaches("Maths"))

	_, ok = r.Teacher("missing")
	assert.False(t, ok)
	s, ok := r.Subject("s1")
	require.True(t, ok)
	assert.Equal(t, "Physics", s.Name)
	p, ok := r.Project("p1")
	require.True(t, ok)
	assert.Equal(t, "north", p.SchoolID)
}

func TestFileLoad_Missing(t *testing.T) {
	_, err := File{Path: filepath.Join(t.TempDir(), "nope.toml")}.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(strings.NewReader("[[projects]\nid = "))
	assert.Error(t, err)
}

func TestEncodeDecodeKeepsBusyWindows(t *testing.T) {
	r, err := Decode(strings.NewReader(sampleRoster))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, r))

	again, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, again.DroppedBusy)
	assert.Equal(t, r.Teachers, again.Teachers)
	assert.Equal(t, r.Projects, again.Projects)
	assert.Equal(t, r.Entries, again.Entries)
}

func TestDecodeSchedule(t *testing.T) {
	r, err := Decode(strings.NewReader(sampleRoster))
	require.NoError(t, err)
	require.Len(t, r.Entries, 2)

	assert.Equal(t, schedule.Entry{
		ScheduleID: "e1",
		ProjectID:  "p1",
		StartDate:  date(2025, 11, 3),
		EndDate:    date(2025, 11, 7),
		TeacherID:  "t1",
		SubjectsID: "s1",
		Area:       "Room 4",
	}, r.Entries[0])

	second := r.Entries[1]
	assert.NotEmpty(t, second.ScheduleID, "missing ids are generated")
	assert.Equal(t, date(2025, 11, 12), second.StartDate, "reversed dates are swapped")
	assert.Equal(t, date(2025, 11, 14), second.EndDate)

	data := r.ScheduleData()
	assert.Len(t, data, 1)
	assert.Len(t, data["p1"], 2)
}

func TestDecodeSchedule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing project", "[[schedule]]\nstart = \"2025-11-03\"\nend = \"2025-11-04\"\n"},
		{"missing end", "[[schedule]]\nproject_id = \"p1\"\nstart = \"2025-11-03\"\n"},
		{"bad date", "[[schedule]]\nproject_id = \"p1\"\nstart = \"2025.11.03\"\nend = \"2025-11-04\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.ErrorContains(t, err, "schedule entry 1")
		})
	}
}
