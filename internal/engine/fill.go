package engine

import (
	"time"

	"skillplan/internal/storage"
)

// BreakMinutes is the length of a Dabbler session interleaved between others.
const BreakMinutes = 15

// planRun owns the state of one generation pass: the simulated recency map and
// the rows emitted so far. It never writes back to the skill snapshot.
type planRun struct {
	now     time.Time
	recency map[int64]*time.Time
	tasks   []storage.WeeklyTask
}

func newPlanRun(skills []storage.Skill, now time.Time) *planRun {
	return &planRun{now: now, recency: Recency(skills)}
}

func (r *planRun) schedule(s storage.Skill, day time.Time, minutes int, kind string) {
	r.tasks = append(r.tasks, storage.WeeklyTask{
		SkillID:         s.ID,
		SkillName:       s.Name,
		ScheduledDate:   day,
		DurationMinutes: minutes,
		Kind:            kind,
	})
	d := day
	r.recency[s.ID] = &d
}

// queues ranks every skill against the current simulated recency and splits
// the ranking per priority.
func (r *planRun) queues(skills []storage.Skill) map[Priority][]RankedSkill {
	out := make(map[Priority][]RankedSkill, len(Priorities))
	for _, rs := range RankSkills(skills, r.recency, r.now) {
		p := Priority(rs.Skill.Priority)
		out[p] = append(out[p], rs)
	}
	return out
}

// dabblerPool is the Dabbler queue and budget shared by a day's category fills.
type dabblerPool struct {
	queue  []RankedSkill
	budget int
}

// interleave schedules a break for the head of the queue and rotates it to the tail.
func (p *dabblerPool) interleave(r *planRun, day time.Time) {
	if p.budget < BreakMinutes || len(p.queue) == 0 {
		return
	}
	head := p.queue[0]
	r.schedule(head.Skill, day, BreakMinutes, KindBreak)
	p.budget -= BreakMinutes

	copy(p.queue, p.queue[1:])
	p.queue[len(p.queue)-1] = head
}

// finish spends what is left of the Dabbler budget on one session for the queue head.
func (p *dabblerPool) finish(r *planRun, day time.Time) {
	if p.budget <= BreakMinutes || len(p.queue) == 0 {
		return
	}
	r.schedule(p.queue[0].Skill, day, p.budget, KindDabble)
	p.budget = 0
}

// fillCategory places sessions for one priority, most urgent first, until the
// bucket cannot fit a survival-length session or the queue runs out. It returns
// the unspent bucket.
func (r *planRun) fillCategory(day time.Time, p Priority, bucket int, queue []RankedSkill, pool *dabblerPool) int {
	rule := RulesFor(p)
	for _, entry := range queue {
		if bucket < rule.Survival {
			break
		}

		duration := rule.Ideal
		// Debt stretches the session but never changes who gets picked.
		if debt := entry.Skill.MinutesDebt; debt > 0 {
			duration = min(duration+debt, rule.DailyMax)
		}
		duration = min(duration, bucket)

		r.schedule(entry.Skill, day, duration, KindSession)
		bucket -= duration

		pool.interleave(r, day)
	}
	return bucket
}
