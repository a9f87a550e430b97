package engine

// SessionRule holds the per-priority session lengths in minutes.
type SessionRule struct {
	Ideal    int // preferred session length
	Survival int // smallest session worth scheduling
	DailyMax int // fatigue ceiling for one session, debt extension included
}

var sessionRules = map[Priority]SessionRule{
	PriorityCore:       {Ideal: 60, Survival: 20, DailyMax: 240},
	PriorityBuilder:    {Ideal: 40, Survival: 20, DailyMax: 90},
	PriorityMaintainer: {Ideal: 20, Survival: 10, DailyMax: 45},
	PriorityDabbler:    {Ideal: 20, Survival: 5, DailyMax: 60},
}

// LookupRule returns the rule for p and whether p is a known level.
func LookupRule(p Priority) (SessionRule, bool) {
	r, ok := sessionRules[p]
	return r, ok
}

// RulesFor returns the rule for p. Unknown levels get the Dabbler row.
func RulesFor(p Priority) SessionRule {
	if r, ok := sessionRules[p]; ok {
		return r
	}
	return sessionRules[PriorityDabbler]
}

func IdealSessionLength(p Priority) int { return RulesFor(p).Ideal }
func SurvivalMinimum(p Priority) int    { return RulesFor(p).Survival }
func DailyMax(p Priority) int           { return RulesFor(p).DailyMax }
