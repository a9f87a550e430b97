package engine

import (
	"context"
	"time"

	"skillplan/internal/storage"
)

// Overview summarizes the current state for status screens.
type Overview struct {
	Profile        *storage.Profile
	Skills         int
	ByPriority     map[Priority]int
	TotalDebt      int
	CoreDebt       int // clamped as the planner sees it
	NeverPracticed int

	TodayPending    int
	TodayDone       int
	TodaySkipped    int
	UpcomingTasks   int
	UpcomingMinutes int
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	p, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := s.store.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasksFrom(ctx, s.Today())
	if err != nil {
		return nil, err
	}
	return buildOverview(p, skills, tasks, s.now()), nil
}

func buildOverview(p *storage.Profile, skills []storage.Skill, tasks []storage.WeeklyTask, now time.Time) *Overview {
	o := &Overview{
		Profile:    p,
		Skills:     len(skills),
		ByPriority: map[Priority]int{},
		CoreDebt:   CoreDebt(skills),
	}
	for _, sk := range skills {
		o.ByPriority[Priority(sk.Priority)]++
		o.TotalDebt += sk.MinutesDebt
		if sk.LastPracticed == nil {
			o.NeverPracticed++
		}
	}
	for _, t := range tasks {
		if SameDate(t.ScheduledDate, now) {
			switch {
			case t.IsCompleted:
				o.TodayDone++
			case t.IsSkipped:
				o.TodaySkipped++
			default:
				o.TodayPending++
			}
		}
		if !t.IsCompleted && !t.IsSkipped {
			o.UpcomingTasks++
			o.UpcomingMinutes += t.DurationMinutes
		}
	}
	return o
}
