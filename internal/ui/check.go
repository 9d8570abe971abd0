package ui

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/conflict"
	"github.com/javiermolinar/classboard/internal/roster"
	"github.com/javiermolinar/classboard/internal/schedule"
)

var errCheckFailed = errors.New("roster check found problems")

func (a *App) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the roster",
		Long: `Load the roster and report problems the board would trip over:
busy windows that could not be parsed, duplicate ids, projects without a
school, teachers listing subjects the roster does not define, and seed
schedule entries that reference unknown ids or overlap.

Exits with a non-zero status when a problem is found.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.loadRoster(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d projects, %d subjects, %d teachers, %d entries\n",
				formatHeader("Roster:"), len(r.Projects), len(r.Subjects), len(r.Teachers), len(r.Entries))

			problems := checkRoster(r)
			printProblems(out, problems)
			if len(problems) > 0 {
				return errCheckFailed
			}
			return nil
		},
	}
}

// checkRoster lists the roster's consistency problems in a stable order.
func checkRoster(r roster.Roster) []string {
	var problems []string

	if r.DroppedBusy > 0 {
		problems = append(problems, fmt.Sprintf("%d busy window(s) could not be parsed and were dropped", r.DroppedBusy))
	}

	seen := make(map[string]bool)
	for _, p := range r.Projects {
		if seen[p.ID] {
			problems = append(problems, fmt.Sprintf("duplicate project id %q", p.ID))
		}
		seen[p.ID] = true
		if p.SchoolID == "" {
			problems = append(problems, fmt.Sprintf("project %q has no school id", p.ID))
		}
	}

	subjectNames := make([]string, 0, len(r.Subjects))
	clear(seen)
	for _, s := range r.Subjects {
		if seen[s.ID] {
			problems = append(problems, fmt.Sprintf("duplicate subject id %q", s.ID))
		}
		seen[s.ID] = true
		subjectNames = append(subjectNames, s.Name)
	}

	clear(seen)
	for _, t := range r.Teachers {
		if seen[t.ID] {
			problems = append(problems, fmt.Sprintf("duplicate teacher id %q", t.ID))
		}
		seen[t.ID] = true
		for _, name := range t.Subjects {
			if !slices.Contains(subjectNames, name) {
				problems = append(problems, fmt.Sprintf("teacher %q teaches unknown subject %q", t.ID, name))
			}
		}
	}

	return append(problems, checkEntries(r)...)
}

// checkEntries reports seed entries the board would never have accepted:
// unknown references, and overlaps checked in file order.
func checkEntries(r roster.Roster) []string {
	var problems []string
	seen := make(schedule.Data)
	ids := make(map[string]bool, len(r.Entries))
	for _, e := range r.Entries {
		if ids[e.ScheduleID] {
			problems = append(problems, fmt.Sprintf("duplicate schedule entry id %q", e.ScheduleID))
		}
		ids[e.ScheduleID] = true

		if _, ok := r.Project(e.ProjectID); !ok {
			problems = append(problems, fmt.Sprintf("schedule entry %q belongs to unknown project %q", e.ScheduleID, e.ProjectID))
		}
		if e.SubjectsID != "" {
			if _, ok := r.Subject(e.SubjectsID); !ok {
				problems = append(problems, fmt.Sprintf("schedule entry %q has unknown subject %q", e.ScheduleID, e.SubjectsID))
			}
		}
		if other, hit := conflict.FirstProjectOverlap(seen, e.ProjectID, e.StartDate, e.EndDate, nil); hit {
			problems = append(problems, fmt.Sprintf("schedule entries %q and %q overlap in project %q", other.ScheduleID, e.ScheduleID, e.ProjectID))
		}
		if e.TeacherID != "" {
			t, ok := r.Teacher(e.TeacherID)
			switch {
			case !ok:
				problems = append(problems, fmt.Sprintf("schedule entry %q has unknown teacher %q", e.ScheduleID, e.TeacherID))
			case conflict.TeacherExternalConflict(t.Busy, e.StartDate, e.EndDate):
				problems = append(problems, fmt.Sprintf("schedule entry %q falls in a busy window of teacher %q", e.ScheduleID, e.TeacherID))
			}
			if other, hit := conflict.FirstTeacherOverlap(seen, e.TeacherID, e.StartDate, e.EndDate, nil); hit {
				problems = append(problems, fmt.Sprintf("teacher %q is booked by both %q and %q", e.TeacherID, other.ScheduleID, e.ScheduleID))
			}
		}
		seen[e.ProjectID] = append(seen[e.ProjectID], e)
	}
	return problems
}

func printProblems(w io.Writer, problems []string) {
	if len(problems) == 0 {
		fmt.Fprintln(w, formatOK("No problems found."))
		return
	}
	for _, p := range problems {
		fmt.Fprintf(w, "  %s %s\n", formatWarn("!"), p)
	}
}
