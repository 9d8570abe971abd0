package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS projects (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			school_id   TEXT NOT NULL,
			school_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			position    INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS subjects (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS teachers (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			phone    TEXT NOT NULL DEFAULT '',
			avatar   TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS teacher_subjects (
			teacher_id TEXT NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
			subject    TEXT NOT NULL,
			position   INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (teacher_id, subject)
		);

		CREATE TABLE IF NOT EXISTS teacher_busy (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			teacher_id TEXT NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
			start_date TEXT NOT NULL,
			end_date   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_teacher_busy_teacher ON teacher_busy(teacher_id);

		CREATE TABLE IF NOT EXISTS schedule_entries (
			id          TEXT PRIMARY KEY,
			project_id  TEXT NOT NULL,
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL,
			teacher_id  TEXT NOT NULL DEFAULT '',
			subject_id  TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			area        TEXT NOT NULL DEFAULT '',
			position    INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_schedule_entries_project ON schedule_entries(project_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating roster tables: %w", err)
	}

	return nil
}
