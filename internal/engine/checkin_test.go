package engine

import (
	"context"
	"errors"
	"testing"

	"skillplan/internal/storage"
)

func seedTask(t *testing.T, store *memStore, skill storage.Skill, dayOffset, minutes int) storage.WeeklyTask {
	t.Helper()
	task := storage.WeeklyTask{
		SkillID:         skill.ID,
		SkillName:       skill.Name,
		ScheduledDate:   DateOf(monday).AddDate(0, 0, dayOffset),
		DurationMinutes: minutes,
		Kind:            KindSession,
	}
	id, err := store.InsertTask(context.Background(), task)
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	task.ID = id
	return task
}

func TestCheckInDoneUpdatesSkill(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	skill := store.addSkill("Piano", PriorityCore, nil, 25)
	task := seedTask(t, store, skill, 0, 60)
	svc := NewService(store, WithClock(fixedClock(monday)))

	res, err := svc.CheckIn(ctx, task.ID, OutcomeDone)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.DebtBefore != 25 || res.DebtAfter != 0 || !res.SkillExists {
		t.Fatalf("result=%+v", res)
	}

	got := store.skills[skill.ID]
	if got.LastPracticed == nil || !got.LastPracticed.Equal(monday) {
		t.Fatalf("last practiced=%v, want %v", got.LastPracticed, monday)
	}
	if got.MinutesInvested != 60 {
		t.Fatalf("invested=%d, want 60", got.MinutesInvested)
	}
	if !store.tasks[task.ID].IsCompleted {
		t.Fatalf("task not completed")
	}
	if len(store.checkins) != 1 || store.checkins[0].Outcome != string(OutcomeDone) {
		t.Fatalf("checkins=%+v", store.checkins)
	}
}

func TestCheckInDonePaysDebtPartially(t *testing.T) {
	store := newMemStore()
	skill := store.addSkill("Chess", PriorityBuilder, nil, 100)
	task := seedTask(t, store, skill, 0, 40)
	svc := NewService(store, WithClock(fixedClock(monday)))

	if _, err := svc.CheckIn(context.Background(), task.ID, OutcomeDone); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if got := store.skills[skill.ID].MinutesDebt; got != 60 {
		t.Fatalf("debt=%d, want 60", got)
	}
}

func TestCheckInSkipAddsDebt(t *testing.T) {
	store := newMemStore()
	lastWeek := monday.AddDate(0, 0, -7)
	skill := store.addSkill("Chess", PriorityBuilder, &lastWeek, 10)
	task := seedTask(t, store, skill, 0, 40)
	svc := NewService(store, WithClock(fixedClock(monday)))

	res, err := svc.CheckIn(context.Background(), task.ID, OutcomeSkip)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.DebtAfter != 50 {
		t.Fatalf("debt after=%d, want 50", res.DebtAfter)
	}
	got := store.skills[skill.ID]
	if !got.LastPracticed.Equal(lastWeek) || got.MinutesInvested != 0 {
		t.Fatalf("skip changed practice fields: %+v", got)
	}
	stored := store.tasks[task.ID]
	if stored.IsCompleted || !stored.IsSkipped {
		t.Fatalf("task flags=%+v, want skipped only", stored)
	}
}

func TestCheckInRejections(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	skill := store.addSkill("Piano", PriorityCore, nil, 0)
	today := seedTask(t, store, skill, 0, 60)
	tomorrow := seedTask(t, store, skill, 1, 60)
	svc := NewService(store, WithClock(fixedClock(monday)))

	if _, err := svc.CheckIn(ctx, today.ID, Outcome("later")); !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("bad outcome err=%v", err)
	}
	if _, err := svc.CheckIn(ctx, 999, OutcomeDone); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("unknown task err=%v", err)
	}
	if _, err := svc.CheckIn(ctx, tomorrow.ID, OutcomeDone); !errors.Is(err, ErrNotDueToday) {
		t.Fatalf("future task err=%v", err)
	}
	if _, err := svc.CheckIn(ctx, today.ID, OutcomeSkip); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if _, err := svc.CheckIn(ctx, today.ID, OutcomeDone); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second check-in err=%v", err)
	}
	if got := store.skills[skill.ID].MinutesDebt; got != 60 {
		t.Fatalf("debt=%d, want 60 after one skip", got)
	}
}

func TestCheckInDeletedSkillStillRecords(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	skill := store.addSkill("Juggling", PriorityDabbler, nil, 0)
	task := seedTask(t, store, skill, 0, 20)
	svc := NewService(store, WithClock(fixedClock(monday)))

	if err := svc.RemoveSkill(ctx, skill.ID); err != nil {
		t.Fatalf("RemoveSkill: %v", err)
	}
	res, err := svc.CheckIn(ctx, task.ID, OutcomeDone)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.SkillExists || res.SkillName != "Juggling" {
		t.Fatalf("result=%+v", res)
	}
	if !store.tasks[task.ID].IsCompleted {
		t.Fatalf("task not completed")
	}
}

func TestTodayAgendaAndHistory(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := store.addSkill("Piano", PriorityCore, nil, 0)
	b := store.addSkill("Chess", PriorityBuilder, nil, 0)
	first := seedTask(t, store, a, 0, 60)
	second := seedTask(t, store, b, 0, 40)
	seedTask(t, store, a, 1, 60)
	svc := NewService(store, WithClock(fixedClock(monday)))

	agenda, err := svc.TodayAgenda(ctx)
	if err != nil {
		t.Fatalf("TodayAgenda: %v", err)
	}
	if len(agenda) != 2 {
		t.Fatalf("agenda=%d, want 2", len(agenda))
	}

	if _, err := svc.CheckIn(ctx, first.ID, OutcomeDone); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := svc.CheckIn(ctx, second.ID, OutcomeSkip); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	agenda, _ = svc.TodayAgenda(ctx)
	if len(agenda) != 0 {
		t.Fatalf("agenda after check-ins=%d, want 0", len(agenda))
	}

	hist, err := svc.History(ctx, 1)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 1 || hist[0].TaskID != second.ID {
		t.Fatalf("history=%+v, want newest first", hist)
	}
}

func TestOverviewCounts(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.profile = weekdayProfile(120, 0, false)
	a := store.addSkill("Piano", PriorityCore, nil, 30)
	b := store.addSkill("Chess", PriorityBuilder, timePtr(monday.AddDate(0, 0, -2)), 5)
	first := seedTask(t, store, a, 0, 60)
	seedTask(t, store, b, 0, 40)
	seedTask(t, store, a, 2, 60)
	svc := NewService(store, WithClock(fixedClock(monday)))

	if _, err := svc.CheckIn(ctx, first.ID, OutcomeDone); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	o, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if o.Skills != 2 || o.ByPriority[PriorityCore] != 1 || o.ByPriority[PriorityBuilder] != 1 {
		t.Fatalf("skill counts=%+v", o)
	}
	if o.TotalDebt != 5 || o.CoreDebt != 0 || o.NeverPracticed != 0 {
		t.Fatalf("debt=%d core=%d never=%d, want 5/0/0", o.TotalDebt, o.CoreDebt, o.NeverPracticed)
	}
	if o.TodayDone != 1 || o.TodayPending != 1 || o.TodaySkipped != 0 {
		t.Fatalf("today=%d/%d/%d", o.TodayDone, o.TodayPending, o.TodaySkipped)
	}
	if o.UpcomingTasks != 2 || o.UpcomingMinutes != 100 {
		t.Fatalf("upcoming=%d/%d, want 2/100", o.UpcomingTasks, o.UpcomingMinutes)
	}
}
