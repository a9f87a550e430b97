package storage

import (
	"context"
	"fmt"
	"time"
)

type CheckinRepo struct {
	db DBTX
}

func NewCheckinRepo(db DBTX) *CheckinRepo {
	return &CheckinRepo{db: db}
}

func (r *CheckinRepo) Insert(ctx context.Context, c Checkin) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO checkins (task_id, skill_id, outcome, minutes, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.TaskID, c.SkillID, c.Outcome, c.Minutes, c.RecordedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("checkin insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("checkin last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns the newest check-ins first; limit <= 0 returns all.
func (r *CheckinRepo) ListRecent(ctx context.Context, limit int) ([]Checkin, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, skill_id, outcome, minutes, recorded_at
		FROM checkins
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("checkin list: %w", err)
	}
	defer rows.Close()

	var out []Checkin
	for rows.Next() {
		var c Checkin
		if err := rows.Scan(&c.ID, &c.TaskID, &c.SkillID, &c.Outcome, &c.Minutes, &c.RecordedAt); err != nil {
			return nil, fmt.Errorf("checkin scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checkin rows: %w", err)
	}
	return out, nil
}

func (r *CheckinRepo) CountSince(ctx context.Context, outcome string, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM checkins
		WHERE outcome = ? AND recorded_at >= ?
	`, outcome, since.UTC())
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("checkin count: %w", err)
	}
	return n, nil
}
