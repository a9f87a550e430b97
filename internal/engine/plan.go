package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skillplan/internal/storage"
)

// DayAllocation records how one planned day was budgeted.
type DayAllocation struct {
	Date     time.Time
	Skipped  bool // weekend with weekends unavailable
	Budget   int
	Buckets  Buckets
	CoreDebt int // running Core debt after this day
}

// PlanResult is the outcome of one generation run.
type PlanResult struct {
	RunID         string
	Start         time.Time
	Tasks         []storage.WeeklyTask
	Days          []DayAllocation
	Purged        int64
	CoreDebtStart int
	CoreDebtEnd   int
	Empty         bool // no skills; nothing was changed
}

func (r *PlanResult) TotalMinutes() int {
	total := 0
	for _, t := range r.Tasks {
		total += t.DurationMinutes
	}
	return total
}

// CoreDebt sums minutes of debt across Core skills, clamped to MaxCoreDebt.
func CoreDebt(skills []storage.Skill) int {
	total := 0
	for _, s := range skills {
		if Priority(s.Priority) == PriorityCore && s.MinutesDebt > 0 {
			total += s.MinutesDebt
		}
	}
	return ClampCoreDebt(total)
}

// BuildPlan simulates the next PlanHorizonDays days starting at now's date and
// returns the sessions to schedule. It does not touch storage and does not
// modify skills.
func BuildPlan(profile *storage.Profile, skills []storage.Skill, now time.Time) *PlanResult {
	today := DateOf(now)
	run := newPlanRun(skills, now)
	coreDebt := CoreDebt(skills)

	res := &PlanResult{
		Start:         today,
		CoreDebtStart: coreDebt,
	}

	for i := 0; i < PlanHorizonDays; i++ {
		day := today.AddDate(0, 0, i)

		minutes, ok := DayBudget(profile, day)
		if !ok {
			res.Days = append(res.Days, DayAllocation{Date: day, Skipped: true, CoreDebt: coreDebt})
			continue
		}

		buckets := Distribute(minutes, coreDebt)
		// Core time above the base counts as repayment for the rest of the run.
		if excess := buckets.Core - CoreBaseMinutes; excess > 0 {
			coreDebt = max(0, coreDebt-excess)
		}

		queues := run.queues(skills)
		pool := &dabblerPool{queue: queues[PriorityDabbler], budget: buckets.Dabbler}

		run.fillCategory(day, PriorityCore, buckets.Core, queues[PriorityCore], pool)
		run.fillCategory(day, PriorityBuilder, buckets.Builder, queues[PriorityBuilder], pool)
		run.fillCategory(day, PriorityMaintainer, buckets.Maintainer, queues[PriorityMaintainer], pool)
		pool.finish(run, day)

		res.Days = append(res.Days, DayAllocation{
			Date:     day,
			Budget:   minutes,
			Buckets:  buckets,
			CoreDebt: coreDebt,
		})
	}

	res.Tasks = run.tasks
	res.CoreDebtEnd = coreDebt
	return res
}

// Generate rebuilds the coming week for profile. Unfinished rows from today on
// are replaced in one transaction; completed and past rows are kept.
func (s *Service) Generate(ctx context.Context, profile *storage.Profile) (*PlanResult, error) {
	if profile == nil {
		return nil, ErrNoProfile
	}

	skills, err := s.store.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		s.log.Info("plan generation skipped: no skills")
		return &PlanResult{Start: s.Today(), Empty: true}, nil
	}

	res := BuildPlan(profile, skills, s.now())
	res.RunID = uuid.NewString()
	for i := range res.Tasks {
		res.Tasks[i].RunID = res.RunID
	}

	err = s.store.InTx(ctx, func(tx Store) error {
		purged, err := tx.DeleteFutureIncompleteTasks(ctx, res.Start)
		if err != nil {
			return err
		}
		res.Purged = purged
		for i := range res.Tasks {
			id, err := tx.InsertTask(ctx, res.Tasks[i])
			if err != nil {
				return err
			}
			res.Tasks[i].ID = id
		}
		return nil
	})
	if err != nil {
		s.log.Error("plan generation failed", "run_id", res.RunID, "error", err)
		return nil, err
	}

	s.log.Info("plan generated",
		"run_id", res.RunID,
		"skills", len(skills),
		"sessions", len(res.Tasks),
		"minutes", res.TotalMinutes(),
		"purged", res.Purged,
		"core_debt_start", res.CoreDebtStart,
		"core_debt_end", res.CoreDebtEnd,
	)
	return res, nil
}

// GeneratePlan generates for the stored profile.
func (s *Service) GeneratePlan(ctx context.Context) (*PlanResult, error) {
	p, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoProfile
	}
	return s.Generate(ctx, p)
}

// UpcomingPlan returns every task from today on, grouped by date.
func (s *Service) UpcomingPlan(ctx context.Context) ([]PlanDay, error) {
	tasks, err := s.store.ListTasksFrom(ctx, s.Today())
	if err != nil {
		return nil, err
	}
	return GroupByDate(tasks), nil
}
