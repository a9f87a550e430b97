package engine

import (
	"testing"
	"time"

	"skillplan/internal/storage"
)

func TestSessionRulesTable(t *testing.T) {
	cases := []struct {
		p    Priority
		want SessionRule
	}{
		{PriorityCore, SessionRule{Ideal: 60, Survival: 20, DailyMax: 240}},
		{PriorityBuilder, SessionRule{Ideal: 40, Survival: 20, DailyMax: 90}},
		{PriorityMaintainer, SessionRule{Ideal: 20, Survival: 10, DailyMax: 45}},
		{PriorityDabbler, SessionRule{Ideal: 20, Survival: 5, DailyMax: 60}},
	}
	for _, tc := range cases {
		got, ok := LookupRule(tc.p)
		if !ok || got != tc.want {
			t.Fatalf("LookupRule(%s)=%+v,%v, want %+v", tc.p, got, ok, tc.want)
		}
		if IdealSessionLength(tc.p) != tc.want.Ideal || SurvivalMinimum(tc.p) != tc.want.Survival || DailyMax(tc.p) != tc.want.DailyMax {
			t.Fatalf("accessors for %s disagree with table", tc.p)
		}
	}
	if _, ok := LookupRule(Priority(9)); ok {
		t.Fatalf("LookupRule(9) reported ok")
	}
}

func TestUrgencyNeverPracticed(t *testing.T) {
	for _, p := range Priorities {
		s := storage.Skill{ID: 1, Priority: int(p), MinutesDebt: 500}
		if got := Urgency(s, nil, monday); got != NeverPracticedUrgency {
			t.Fatalf("Urgency(never, %s)=%v, want %v", p, got, NeverPracticedUrgency)
		}
	}

	// A year idle with heavy debt still ranks below never-practiced.
	old := monday.AddDate(-1, 0, 0)
	s := storage.Skill{ID: 2, Priority: int(PriorityCore), MinutesDebt: 1000}
	if got := Urgency(s, &old, monday); got >= NeverPracticedUrgency {
		t.Fatalf("Urgency(practiced)=%v, want < %v", got, NeverPracticedUrgency)
	}
}

func TestUrgencyWeightsAndDebt(t *testing.T) {
	tenDaysAgo := monday.Add(-10 * 24 * time.Hour)
	cases := []struct {
		p    Priority
		debt int
		want float64
	}{
		{PriorityCore, 0, 5.0},
		{PriorityBuilder, 0, 3.0},
		{PriorityMaintainer, 0, 2.5},
		{PriorityDabbler, 0, 1.5},
		{PriorityCore, 40, 9.0},
	}
	for _, tc := range cases {
		s := storage.Skill{ID: 1, Priority: int(tc.p), MinutesDebt: tc.debt}
		got := Urgency(s, &tenDaysAgo, monday)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("Urgency(%s, debt=%d)=%v, want %v", tc.p, tc.debt, got, tc.want)
		}
	}
}

func TestUrgencyFutureRecencyClampsToZero(t *testing.T) {
	tomorrow := monday.AddDate(0, 0, 1)
	s := storage.Skill{ID: 1, Priority: int(PriorityCore)}
	if got := Urgency(s, &tomorrow, monday); got != 0 {
		t.Fatalf("Urgency(future)=%v, want 0", got)
	}
}

func TestUrgencyEarlierPracticeRanksHigher(t *testing.T) {
	for _, p := range Priorities {
		for days := 0; days < 30; days++ {
			earlier := monday.AddDate(0, 0, -days-1)
			later := monday.AddDate(0, 0, -days)
			s := storage.Skill{ID: 1, Priority: int(p), MinutesDebt: 15}
			if Urgency(s, &earlier, monday) < Urgency(s, &later, monday) {
				t.Fatalf("%s: earlier practice scored lower at %d days", p, days)
			}
		}
	}
}

func TestRankSkillsTieBreakByID(t *testing.T) {
	last := monday.AddDate(0, 0, -2)
	skills := []storage.Skill{
		{ID: 7, Name: "g", Priority: int(PriorityBuilder)},
		{ID: 3, Name: "c", Priority: int(PriorityBuilder), LastPracticed: &last},
		{ID: 2, Name: "b", Priority: int(PriorityBuilder)},
		{ID: 5, Name: "e", Priority: int(PriorityBuilder), LastPracticed: &last},
	}
	recency := map[int64]*time.Time{}
	for _, s := range skills {
		recency[s.ID] = s.LastPracticed
	}

	ranked := RankSkills(skills, recency, monday)
	var got []int64
	for _, r := range ranked {
		got = append(got, r.Skill.ID)
	}
	want := []int64{2, 7, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank order=%v, want %v", got, want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"core":       PriorityCore,
		" Builder ":  PriorityBuilder,
		"MAINTAINER": PriorityMaintainer,
		"4":          PriorityDabbler,
		"1":          PriorityCore,
	}
	for in, want := range cases {
		got, err := ParsePriority(in)
		if err != nil || got != want {
			t.Fatalf("ParsePriority(%q)=%v,%v, want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"", "0", "5", "urgent"} {
		if _, err := ParsePriority(in); err == nil {
			t.Fatalf("ParsePriority(%q) expected error", in)
		}
	}
}
