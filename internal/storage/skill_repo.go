package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SkillRepo struct {
	db DBTX
}

func NewSkillRepo(db DBTX) *SkillRepo {
	return &SkillRepo{db: db}
}

const skillColumns = `id, name, priority, urgency_level, last_practiced, minutes_invested, minutes_debt, created_at`

func (r *SkillRepo) Insert(ctx context.Context, in SkillInsert) (int64, error) {
	urgency := in.UrgencyLevel
	if urgency == 0 {
		urgency = 1
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO skills (name, priority, urgency_level, last_practiced, minutes_invested, minutes_debt)
		VALUES (?, ?, ?, ?, 0, 0)
	`, in.Name, in.Priority, urgency, nullableUTC(in.LastPracticed))
	if err != nil {
		return 0, fmt.Errorf("skill insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("skill last insert id: %w", err)
	}
	return id, nil
}

func (r *SkillRepo) Get(ctx context.Context, id int64) (*Skill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ?`, id)
	return scanSkillRow(row)
}

// FindByName matches case-insensitively.
func (r *SkillRepo) FindByName(ctx context.Context, name string) (*Skill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE name = ? COLLATE NOCASE LIMIT 1`, name)
	return scanSkillRow(row)
}

func (r *SkillRepo) ListAll(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+skillColumns+` FROM skills ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("skill list: %w", err)
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		s, err := scanSkillRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skill list rows: %w", err)
	}
	return out, nil
}

func (r *SkillRepo) Update(ctx context.Context, s *Skill) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE skills
		SET name = ?, priority = ?, urgency_level = ?, last_practiced = ?, minutes_invested = ?, minutes_debt = ?
		WHERE id = ?
	`, s.Name, s.Priority, s.UrgencyLevel, nullableUTC(s.LastPracticed), s.MinutesInvested, s.MinutesDebt, s.ID)
	if err != nil {
		return fmt.Errorf("skill update: %w", err)
	}
	return nil
}

// Delete removes the skill row only; weekly_tasks keep their denormalized name.
func (r *SkillRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("skill delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("skill delete rows affected: %w", err)
	}
	return n > 0, nil
}

func nullableUTC(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func scanSkillRow(row scanner) (*Skill, error) {
	var (
		s             Skill
		lastPracticed sql.NullTime
		createdAt     sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Priority, &s.UrgencyLevel, &lastPracticed, &s.MinutesInvested, &s.MinutesDebt, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("skill scan: %w", err)
	}
	if lastPracticed.Valid {
		v := lastPracticed.Time
		s.LastPracticed = &v
	}
	if createdAt.Valid {
		s.CreatedAt = createdAt.Time
	}
	return &s, nil
}
