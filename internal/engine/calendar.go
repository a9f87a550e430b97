package engine

import (
	"sort"
	"time"

	"skillplan/internal/storage"
)

// PlanHorizonDays is the rolling window each generation run covers.
const PlanHorizonDays = 7

// DateOf truncates t to midnight of its calendar date, keeping the location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// DayBudget returns the minutes the profile offers on day and whether the day is scheduled at all.
func DayBudget(p *storage.Profile, day time.Time) (int, bool) {
	if IsWeekend(day) {
		if !p.WeekendsAvailable {
			return 0, false
		}
		return p.WeekendMinutes, true
	}
	return p.WeekdayMinutes, true
}

// PlanDay groups one date's tasks.
type PlanDay struct {
	Date  time.Time
	Tasks []storage.WeeklyTask
}

func (d PlanDay) TotalMinutes() int {
	total := 0
	for _, t := range d.Tasks {
		total += t.DurationMinutes
	}
	return total
}

// GroupByDate groups tasks by scheduled date. Input order within a date is kept;
// dates come out ascending.
func GroupByDate(tasks []storage.WeeklyTask) []PlanDay {
	var out []PlanDay
	index := map[string]int{}
	for _, t := range tasks {
		key := storage.FormatDate(t.ScheduledDate)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, PlanDay{Date: DateOf(t.ScheduledDate)})
		}
		out[i].Tasks = append(out[i].Tasks, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
