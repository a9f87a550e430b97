package engine

import (
	"context"
	"fmt"
	"time"

	"skillplan/internal/storage"
)

type CheckinResult struct {
	TaskID      int64
	SkillID     int64
	SkillName   string
	Outcome     Outcome
	Minutes     int
	DebtBefore  int
	DebtAfter   int
	SkillExists bool
}

// CheckIn records the outcome of one of today's sessions. Done sessions move the
// skill's last-practiced time to now, add the minutes to its investment and pay
// down debt; skipped sessions add their minutes to debt.
func (s *Service) CheckIn(ctx context.Context, taskID int64, outcome Outcome) (*CheckinResult, error) {
	if !outcome.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}

	now := s.now()
	var res *CheckinResult

	err := s.store.InTx(ctx, func(tx Store) error {
		task, err := tx.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("%w: %d", ErrTaskNotFound, taskID)
		}
		if task.IsCompleted || task.IsSkipped {
			return fmt.Errorf("%w: %d", ErrAlreadyCheckedIn, taskID)
		}
		if !SameDate(task.ScheduledDate, now) {
			return fmt.Errorf("%w: task %d is on %s", ErrNotDueToday, taskID, storage.FormatDate(task.ScheduledDate))
		}

		res = &CheckinResult{
			TaskID:    task.ID,
			SkillID:   task.SkillID,
			SkillName: task.SkillName,
			Outcome:   outcome,
			Minutes:   task.DurationMinutes,
		}

		switch outcome {
		case OutcomeDone:
			task.IsCompleted = true
		case OutcomeSkip:
			task.IsSkipped = true
		}
		if err := tx.UpdateTask(ctx, task); err != nil {
			return err
		}

		skill, err := tx.GetSkill(ctx, task.SkillID)
		if err != nil {
			return err
		}
		if skill != nil {
			res.SkillExists = true
			res.DebtBefore = skill.MinutesDebt
			applyCheckin(skill, outcome, task.DurationMinutes, now)
			res.DebtAfter = skill.MinutesDebt
			if err := tx.UpdateSkill(ctx, skill); err != nil {
				return err
			}
		}

		_, err = tx.InsertCheckin(ctx, storage.Checkin{
			TaskID:     task.ID,
			SkillID:    task.SkillID,
			Outcome:    string(outcome),
			Minutes:    task.DurationMinutes,
			RecordedAt: now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if !res.SkillExists {
		s.log.Warn("check-in for deleted skill", "task_id", res.TaskID, "skill_id", res.SkillID, "skill", res.SkillName)
	}
	s.log.Info("check-in recorded",
		"task_id", res.TaskID,
		"skill_id", res.SkillID,
		"outcome", string(res.Outcome),
		"minutes", res.Minutes,
		"debt_before", res.DebtBefore,
		"debt_after", res.DebtAfter,
	)
	return res, nil
}

func applyCheckin(skill *storage.Skill, outcome Outcome, minutes int, now time.Time) {
	switch outcome {
	case OutcomeDone:
		t := now
		skill.LastPracticed = &t
		skill.MinutesInvested += minutes
		skill.MinutesDebt = max(0, skill.MinutesDebt-minutes)
	case OutcomeSkip:
		skill.MinutesDebt += minutes
	}
}

// TodayAgenda lists today's sessions still waiting for a check-in.
func (s *Service) TodayAgenda(ctx context.Context) ([]storage.WeeklyTask, error) {
	tasks, err := s.store.ListTasksOn(ctx, s.Today())
	if err != nil {
		return nil, err
	}
	var out []storage.WeeklyTask
	for _, t := range tasks {
		if t.IsCompleted || t.IsSkipped {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// History returns the most recent check-ins, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]storage.Checkin, error) {
	return s.store.ListCheckins(ctx, limit)
}
