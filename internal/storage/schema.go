package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			weekday_minutes INTEGER NOT NULL,
			weekend_minutes INTEGER NOT NULL DEFAULT 0,
			holidays_available INTEGER DEFAULT 0,
			weekends_available INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			priority INTEGER NOT NULL,
			urgency_level INTEGER DEFAULT 1,
			last_practiced DATETIME,
			minutes_invested INTEGER DEFAULT 0,
			minutes_debt INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// skill_id is a weak reference: deleting a skill keeps its task history.
		`CREATE TABLE IF NOT EXISTS weekly_tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			skill_id INTEGER NOT NULL,
			skill_name TEXT NOT NULL,
			scheduled_date TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			kind TEXT DEFAULT 'session',
			is_completed INTEGER DEFAULT 0,
			is_skipped INTEGER DEFAULT 0,
			run_id TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS checkins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id INTEGER NOT NULL,
			skill_id INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			recorded_at DATETIME NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_skills_name ON skills(name COLLATE NOCASE);`,
		`CREATE INDEX IF NOT EXISTS idx_weekly_tasks_date ON weekly_tasks(scheduled_date, is_completed);`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_recorded_at ON checkins(recorded_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already exists)
	alterStmts := []string{
		`ALTER TABLE weekly_tasks ADD COLUMN kind TEXT DEFAULT 'session';`,
		`ALTER TABLE weekly_tasks ADD COLUMN is_skipped INTEGER DEFAULT 0;`,
		`ALTER TABLE weekly_tasks ADD COLUMN run_id TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
