package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ProfileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get returns the single profile row, or nil when none has been created.
func (r *ProfileRepo) Get(ctx context.Context) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, age, weekday_minutes, weekend_minutes, holidays_available, weekends_available
		FROM profile
		ORDER BY id ASC
		LIMIT 1
	`)

	var (
		p        Profile
		holidays int
		weekends int
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Age, &p.WeekdayMinutes, &p.WeekendMinutes, &holidays, &weekends); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	p.HolidaysAvailable = holidays != 0
	p.WeekendsAvailable = weekends != 0
	return &p, nil
}

func (r *ProfileRepo) Insert(ctx context.Context, p *Profile) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO profile (name, age, weekday_minutes, weekend_minutes, holidays_available, weekends_available)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Name, p.Age, p.WeekdayMinutes, p.WeekendMinutes, boolToInt(p.HolidaysAvailable), boolToInt(p.WeekendsAvailable))
	if err != nil {
		return 0, fmt.Errorf("profile insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("profile last insert id: %w", err)
	}
	return id, nil
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profile
		SET name = ?, age = ?, weekday_minutes = ?, weekend_minutes = ?, holidays_available = ?, weekends_available = ?
		WHERE id = ?
	`, p.Name, p.Age, p.WeekdayMinutes, p.WeekendMinutes, boolToInt(p.HolidaysAvailable), boolToInt(p.WeekendsAvailable), p.ID)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
