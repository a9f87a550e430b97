package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, skill_id, skill_name, scheduled_date, duration_minutes, kind, is_completed, is_skipped, run_id`

func (r *TaskRepo) Insert(ctx context.Context, t WeeklyTask) (int64, error) {
	kind := t.Kind
	if kind == "" {
		kind = "session"
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO weekly_tasks (
			skill_id, skill_name, scheduled_date, duration_minutes,
			kind, is_completed, is_skipped, run_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.SkillID, t.SkillName, FormatDate(t.ScheduledDate), t.DurationMinutes, kind, boolToInt(t.IsCompleted), boolToInt(t.IsSkipped), nullableString(t.RunID))
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*WeeklyTask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM weekly_tasks WHERE id = ?`, id)
	return scanTaskRow(row)
}

func (r *TaskRepo) Update(ctx context.Context, t *WeeklyTask) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE weekly_tasks
		SET skill_id = ?, skill_name = ?, scheduled_date = ?, duration_minutes = ?,
			kind = ?, is_completed = ?, is_skipped = ?, run_id = ?
		WHERE id = ?
	`, t.SkillID, t.SkillName, FormatDate(t.ScheduledDate), t.DurationMinutes, t.Kind, boolToInt(t.IsCompleted), boolToInt(t.IsSkipped), nullableString(t.RunID), t.ID)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

// DeleteFutureIncomplete removes unfinished rows scheduled on or after cutoff's date.
// Completed rows are history and are never touched.
func (r *TaskRepo) DeleteFutureIncomplete(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM weekly_tasks
		WHERE scheduled_date >= ? AND is_completed = 0
	`, FormatDate(cutoff))
	if err != nil {
		return 0, fmt.Errorf("task delete future: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("task delete future rows affected: %w", err)
	}
	return n, nil
}

// ListFrom returns rows scheduled on or after from's date, oldest first.
func (r *TaskRepo) ListFrom(ctx context.Context, from time.Time) ([]WeeklyTask, error) {
	return r.list(ctx, `
		SELECT `+taskColumns+`
		FROM weekly_tasks
		WHERE scheduled_date >= ?
		ORDER BY scheduled_date ASC, id ASC
	`, FormatDate(from))
}

func (r *TaskRepo) ListOn(ctx context.Context, day time.Time) ([]WeeklyTask, error) {
	return r.list(ctx, `
		SELECT `+taskColumns+`
		FROM weekly_tasks
		WHERE scheduled_date = ?
		ORDER BY id ASC
	`, FormatDate(day))
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]WeeklyTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []WeeklyTask
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*WeeklyTask, error) {
	var (
		t         WeeklyTask
		scheduled string
		kind      sql.NullString
		completed int
		skipped   int
		runID     sql.NullString
	)

	if err := row.Scan(&t.ID, &t.SkillID, &t.SkillName, &scheduled, &t.DurationMinutes, &kind, &completed, &skipped, &runID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	day, err := ParseDate(scheduled)
	if err != nil {
		return nil, fmt.Errorf("task %d scheduled_date %q: %w", t.ID, scheduled, err)
	}
	t.ScheduledDate = day
	t.Kind = "session"
	if kind.Valid && kind.String != "" {
		t.Kind = kind.String
	}
	t.IsCompleted = completed != 0
	t.IsSkipped = skipped != 0
	if runID.Valid {
		t.RunID = runID.String
	}
	return &t, nil
}
