package engine

import (
	"context"

	"skillplan/internal/storage"
)

type ProfileInput struct {
	Name              string
	Age               int
	WeekdayMinutes    int
	WeekendMinutes    int
	HolidaysAvailable bool
	WeekendsAvailable bool
}

func (in ProfileInput) validate() error {
	if in.Age <= 0 {
		return ValidationError{Field: "age", Reason: "must be positive"}
	}
	if in.WeekdayMinutes <= 0 {
		return ValidationError{Field: "weekday minutes", Reason: "must be positive"}
	}
	if in.WeekendMinutes < 0 {
		return ValidationError{Field: "weekend minutes", Reason: "must not be negative"}
	}
	return nil
}

// SaveProfile creates the profile or overwrites the existing one.
func (s *Service) SaveProfile(ctx context.Context, in ProfileInput) (*storage.Profile, bool, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, false, err
	}
	if err := in.validate(); err != nil {
		return nil, false, err
	}

	var (
		saved   *storage.Profile
		created bool
	)
	err = s.store.InTx(ctx, func(tx Store) error {
		p, err := tx.GetProfile(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			p = &storage.Profile{}
			created = true
		}
		p.Name = name
		p.Age = in.Age
		p.WeekdayMinutes = in.WeekdayMinutes
		p.WeekendMinutes = in.WeekendMinutes
		p.HolidaysAvailable = in.HolidaysAvailable
		p.WeekendsAvailable = in.WeekendsAvailable

		if created {
			id, err := tx.InsertProfile(ctx, p)
			if err != nil {
				return err
			}
			p.ID = id
		} else if err := tx.UpdateProfile(ctx, p); err != nil {
			return err
		}
		saved = p
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	s.log.Info("profile saved", "created", created, "weekday_minutes", saved.WeekdayMinutes, "weekend_minutes", saved.WeekendMinutes)
	return saved, created, nil
}

func (s *Service) Profile(ctx context.Context) (*storage.Profile, error) {
	return s.store.GetProfile(ctx)
}
