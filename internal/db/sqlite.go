// Package db provides a SQLite-backed roster source, including the
// schedule entries a board starts from.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/roster"
	"github.com/javiermolinar/classboard/internal/schedule"
)

// SQLite implements roster.Source using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ roster.Source = (*SQLite)(nil)

// New opens the database at path and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads the whole roster. Busy windows that do not parse are dropped
// and counted in the returned roster.
func (s *SQLite) Load(ctx context.Context) (roster.Roster, error) {
	var r roster.Roster

	projects, err := s.listProjects(ctx)
	if err != nil {
		return r, err
	}
	r.Projects = projects

	subjects, err := s.listSubjects(ctx)
	if err != nil {
		return r, err
	}
	r.Subjects = subjects

	teachers, dropped, err := s.listTeachers(ctx)
	if err != nil {
		return r, err
	}
	r.Teachers = teachers
	r.DroppedBusy = dropped

	entries, err := s.listEntries(ctx)
	if err != nil {
		return r, err
	}
	r.Entries = entries

	return r, nil
}

func (s *SQLite) listEntries(ctx context.Context) ([]schedule.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, start_date, end_date, teacher_id, subject_id, description, area
		FROM schedule_entries
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying schedule entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []schedule.Entry
	for rows.Next() {
		var (
			e          schedule.Entry
			start, end string
		)
		if err := rows.Scan(&e.ScheduleID, &e.ProjectID, &start, &end,
			&e.TeacherID, &e.SubjectsID, &e.Description, &e.Area); err != nil {
			return nil, fmt.Errorf("scanning schedule entry: %w", err)
		}
		if e.StartDate, err = time.Parse(dateutil.DateLayout, start); err != nil {
			return nil, fmt.Errorf("schedule entry %s: start date: %w", e.ScheduleID, err)
		}
		if e.EndDate, err = time.Parse(dateutil.DateLayout, end); err != nil {
			return nil, fmt.Errorf("schedule entry %s: end date: %w", e.ScheduleID, err)
		}
		entries = append(entries, e.Canonical())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule entries: %w", err)
	}
	return entries, nil
}

func (s *SQLite) listProjects(ctx context.Context) ([]schedule.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, school_id, school_name, description
		FROM projects
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []schedule.Project
	for rows.Next() {
		var p schedule.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.SchoolID, &p.SchoolName, &p.Description); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (s *SQLite) listSubjects(ctx context.Context) ([]schedule.Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM subjects ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subjects []schedule.Subject
	for rows.Next() {
		var sub schedule.Subject
		if err := rows.Scan(&sub.ID, &sub.Name); err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		subjects = append(subjects, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return subjects, nil
}

func (s *SQLite) listTeachers(ctx context.Context) ([]schedule.Teacher, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, location, phone, avatar
		FROM teachers
		ORDER BY position, id
	`)
	if err != nil {
		return nil, 0, fmt.Errorf("querying teachers: %w", err)
	}

	var teachers []schedule.Teacher
	for rows.Next() {
		var t schedule.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Location, &t.Phone, &t.Avatar); err != nil {
			_ = rows.Close()
			return nil, 0, fmt.Errorf("scanning teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, 0, fmt.Errorf("iterating teachers: %w", err)
	}
	_ = rows.Close()

	dropped := 0
	for i := range teachers {
		subjects, err := s.teacherSubjects(ctx, teachers[i].ID)
		if err != nil {
			return nil, 0, err
		}
		teachers[i].Subjects = subjects

		raw, err := s.teacherBusy(ctx, teachers[i].ID)
		if err != nil {
			return nil, 0, err
		}
		busy, n := roster.ParseBusy(raw)
		teachers[i].Busy = busy
		dropped += n
	}
	return teachers, dropped, nil
}

func (s *SQLite) teacherSubjects(ctx context.Context, teacherID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject FROM teacher_subjects
		WHERE teacher_id = ?
		ORDER BY position, subject
	`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("querying teacher subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subjects []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning teacher subject: %w", err)
		}
		subjects = append(subjects, name)
	}
	return subjects, rows.Err()
}

func (s *SQLite) teacherBusy(ctx context.Context, teacherID string) ([]roster.RawBusy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_date, end_date FROM teacher_busy
		WHERE teacher_id = ?
		ORDER BY id
	`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("querying teacher busy windows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var raw []roster.RawBusy
	for rows.Next() {
		var b roster.RawBusy
		if err := rows.Scan(&b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("scanning busy window: %w", err)
		}
		raw = append(raw, b)
	}
	return raw, rows.Err()
}

// Save replaces the stored roster with r in a single transaction.
func (s *SQLite) Save(ctx context.Context, r roster.Roster) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"schedule_entries", "teacher_busy", "teacher_subjects", "teachers", "subjects", "projects"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, p := range r.Projects {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projects (id, name, school_id, school_name, description, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.SchoolID, p.SchoolName, p.Description, i)
		if err != nil {
			return fmt.Errorf("inserting project %s: %w", p.ID, err)
		}
	}

	for i, sub := range r.Subjects {
		_, err := tx.ExecContext(ctx, `INSERT INTO subjects (id, name, position) VALUES (?, ?, ?)`,
			sub.ID, sub.Name, i)
		if err != nil {
			return fmt.Errorf("inserting subject %s: %w", sub.ID, err)
		}
	}

	for i, t := range r.Teachers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO teachers (id, name, location, phone, avatar, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, t.ID, t.Name, t.Location, t.Phone, t.Avatar, i)
		if err != nil {
			return fmt.Errorf("inserting teacher %s: %w", t.ID, err)
		}
		for j, name := range t.Subjects {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO teacher_subjects (teacher_id, subject, position) VALUES (?, ?, ?)
			`, t.ID, name, j)
			if err != nil {
				return fmt.Errorf("inserting subject %q for teacher %s: %w", name, t.ID, err)
			}
		}
		for _, b := range roster.FormatBusy(t.Busy) {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO teacher_busy (teacher_id, start_date, end_date) VALUES (?, ?, ?)
			`, t.ID, b.Start, b.End)
			if err != nil {
				return fmt.Errorf("inserting busy window for teacher %s: %w", t.ID, err)
			}
		}
	}

	for i, e := range r.Entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_entries
				(id, project_id, start_date, end_date, teacher_id, subject_id, description, area, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ScheduleID, e.ProjectID,
			e.StartDate.Format(dateutil.DateLayout), e.EndDate.Format(dateutil.DateLayout),
			e.TeacherID, e.SubjectsID, e.Description, e.Area, i)
		if err != nil {
			return fmt.Errorf("inserting schedule entry %s: %w", e.ScheduleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// AddBusyRaw stores a busy window verbatim, without validating it. Windows
// that do not parse are dropped on Load.
func (s *SQLite) AddBusyRaw(ctx context.Context, teacherID string, b roster.RawBusy) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teacher_busy (teacher_id, start_date, end_date) VALUES (?, ?, ?)
	`, teacherID, b.Start, b.End)
	if err != nil {
		return fmt.Errorf("inserting busy window: %w", err)
	}
	return nil
}
