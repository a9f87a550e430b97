package engine

import (
	"context"
	"fmt"
	"strings"

	"skillplan/internal/storage"
)

type AddSkillInput struct {
	Name     string
	Priority Priority
}

type EditSkillInput struct {
	Name     *string
	Priority *Priority
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return n, nil
}

// AddSkill creates a never-practiced skill. Names are unique ignoring case.
func (s *Service) AddSkill(ctx context.Context, in AddSkillInput) (*storage.Skill, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if !in.Priority.IsValid() {
		return nil, ValidationError{Field: "priority", Reason: fmt.Sprintf("%d is not 1-4", in.Priority)}
	}

	var created *storage.Skill
	err = s.store.InTx(ctx, func(tx Store) error {
		existing, err := tx.FindSkillByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %q", ErrSkillExists, existing.Name)
		}
		id, err := tx.InsertSkill(ctx, storage.SkillInsert{
			Name:         name,
			Priority:     int(in.Priority),
			UrgencyLevel: 1,
		})
		if err != nil {
			return err
		}
		created, err = tx.GetSkill(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("skill added", "skill_id", created.ID, "name", created.Name, "priority", in.Priority.String())
	return created, nil
}

// EditSkill renames or re-prioritizes a skill. Existing tasks keep the name
// they were scheduled under.
func (s *Service) EditSkill(ctx context.Context, id int64, in EditSkillInput) (*storage.Skill, error) {
	var updated *storage.Skill
	err := s.store.InTx(ctx, func(tx Store) error {
		skill, err := tx.GetSkill(ctx, id)
		if err != nil {
			return err
		}
		if skill == nil {
			return fmt.Errorf("%w: %d", ErrSkillNotFound, id)
		}

		if in.Name != nil {
			name, err := normalizeName(*in.Name)
			if err != nil {
				return err
			}
			existing, err := tx.FindSkillByName(ctx, name)
			if err != nil {
				return err
			}
			if existing != nil && existing.ID != id {
				return fmt.Errorf("%w: %q", ErrSkillExists, existing.Name)
			}
			skill.Name = name
		}
		if in.Priority != nil {
			if !in.Priority.IsValid() {
				return ValidationError{Field: "priority", Reason: fmt.Sprintf("%d is not 1-4", *in.Priority)}
			}
			skill.Priority = int(*in.Priority)
		}

		if err := tx.UpdateSkill(ctx, skill); err != nil {
			return err
		}
		updated = skill
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) RemoveSkill(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteSkill(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrSkillNotFound, id)
	}
	s.log.Info("skill removed", "skill_id", id)
	return nil
}

func (s *Service) Skills(ctx context.Context) ([]storage.Skill, error) {
	return s.store.ListSkills(ctx)
}
