package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/conflict"
	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/schedule"
)

func (a *App) teachersCmd() *cobra.Command {
	var (
		subject string
		from    string
		to      string
	)

	cmd := &cobra.Command{
		Use:   "teachers",
		Short: "List the roster's teachers",
		Long: `List every teacher in the roster with the subjects they teach, their
location and the days they are busy outside the board.

With --from (and optionally --to) only teachers free for the whole range
are listed. With --subject only teachers of that subject are listed.`,
		Example: `  classboard teachers
  classboard teachers --subject Physics
  classboard teachers --from=2025-12-08 --to=2025-12-12`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.loadRoster(cmd.Context())
			if err != nil {
				return err
			}

			teachers := r.Teachers
			if subject != "" {
				teachers = teachersOf(teachers, subject)
			}
			if from != "" {
				dateRange, err := dateutil.NewDateRange(from, to)
				if err != nil {
					return err
				}
				teachers = freeTeachers(teachers, dateRange.Start, dateRange.End)
			}

			printTeachers(cmd.OutOrStdout(), teachers)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Only teachers of this subject name")
	cmd.Flags().StringVar(&from, "from", "", "Only teachers free from this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the free range (YYYY-MM-DD, defaults to --from)")

	return cmd
}

func teachersOf(teachers []schedule.Teacher, subject string) []schedule.Teacher {
	var out []schedule.Teacher
	for _, t := range teachers {
		if t.Teaches(subject) {
			out = append(out, t)
		}
	}
	return out
}

// freeTeachers keeps the teachers whose busy windows leave [start, end] free.
func freeTeachers(teachers []schedule.Teacher, start, end time.Time) []schedule.Teacher {
	var out []schedule.Teacher
	for _, t := range teachers {
		if !conflict.TeacherExternalConflict(t.Busy, start, end) {
			out = append(out, t)
		}
	}
	return out
}

func printTeachers(w io.Writer, teachers []schedule.Teacher) {
	if len(teachers) == 0 {
		fmt.Fprintln(w, "No teachers found.")
		return
	}

	tbl := uitable.New()
	tbl.MaxColWidth = uint(max(20, termWidth()/3))
	tbl.Wrap = true
	tbl.AddRow(formatHeader("ID"), formatHeader("NAME"), formatHeader("SUBJECTS"), formatHeader("LOCATION"), formatHeader("BUSY"))
	for _, t := range teachers {
		tbl.AddRow(t.ID, t.Name, strings.Join(t.Subjects, ", "), t.Location, formatMuted(busyText(t.Busy)))
	}
	fmt.Fprintln(w, tbl)
}

func busyText(windows []schedule.BusyWindow) string {
	if len(windows) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(windows))
	for _, b := range windows {
		parts = append(parts, b.Start.Format(dateutil.DateLayout)+".."+b.End.Format(dateutil.DateLayout))
	}
	return strings.Join(parts, ", ")
}

func (a *App) projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the roster's projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.loadRoster(cmd.Context())
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), r.Projects)
			return nil
		},
	}
}

func printProjects(w io.Writer, projects []schedule.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return
	}

	tbl := uitable.New()
	tbl.MaxColWidth = uint(max(20, termWidth()/3))
	tbl.AddRow(formatHeader("ID"), formatHeader("NAME"), formatHeader("SCHOOL"), formatHeader("DESCRIPTION"))
	for _, p := range projects {
		school := p.SchoolID
		if p.SchoolName != "" {
			school = fmt.Sprintf("%s (%s)", p.SchoolName, p.SchoolID)
		}
		tbl.AddRow(p.ID, p.Name, school, p.Description)
	}
	fmt.Fprintln(w, tbl)
}
