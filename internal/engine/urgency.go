package engine

import (
	"sort"
	"time"

	"skillplan/internal/storage"
)

const (
	// NeverPracticedUrgency outranks any practiced skill.
	NeverPracticedUrgency = 10000.0

	// DebtUrgencyRate is the score added per minute of debt.
	DebtUrgencyRate = 0.1
)

// PriorityWeight is the per-day urgency growth for a level.
func PriorityWeight(p Priority) float64 {
	switch p {
	case PriorityCore:
		return 0.50
	case PriorityBuilder:
		return 0.30
	case PriorityMaintainer:
		return 0.25
	case PriorityDabbler:
		return 0.15
	default:
		return 0
	}
}

// Urgency scores how overdue a skill is. effectiveLastPracticed may be a simulated
// value; nil means never practiced.
func Urgency(skill storage.Skill, effectiveLastPracticed *time.Time, now time.Time) float64 {
	if effectiveLastPracticed == nil {
		return NeverPracticedUrgency
	}

	daysSince := now.Sub(*effectiveLastPracticed).Hours() / 24
	// Simulated dates can sit in the future relative to now.
	if daysSince < 0 {
		daysSince = 0
	}

	score := daysSince * PriorityWeight(Priority(skill.Priority))
	if skill.MinutesDebt > 0 {
		score += float64(skill.MinutesDebt) * DebtUrgencyRate
	}
	return score
}

// Recency copies each skill's stored last-practiced time into a map keyed by id.
func Recency(skills []storage.Skill) map[int64]*time.Time {
	out := make(map[int64]*time.Time, len(skills))
	for _, s := range skills {
		if s.LastPracticed != nil {
			v := *s.LastPracticed
			out[s.ID] = &v
		} else {
			out[s.ID] = nil
		}
	}
	return out
}

// RankedSkill pairs a skill with its urgency for one planning day.
type RankedSkill struct {
	Skill storage.Skill
	Score float64
}

// RankSkills scores skills against the recency map and orders them by score
// descending, then skill id ascending.
func RankSkills(skills []storage.Skill, recency map[int64]*time.Time, now time.Time) []RankedSkill {
	out := make([]RankedSkill, 0, len(skills))
	for _, s := range skills {
		out = append(out, RankedSkill{Skill: s, Score: Urgency(s, recency[s.ID], now)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Skill.ID < out[j].Skill.ID
	})
	return out
}
