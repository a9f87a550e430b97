package engine

import (
	"context"
	"errors"
	"testing"
)

func TestAddSkillValidatesAndDedupes(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(), WithClock(fixedClock(monday)))

	s, err := svc.AddSkill(ctx, AddSkillInput{Name: "  Piano ", Priority: PriorityCore})
	if err != nil {
		t.Fatalf("AddSkill: %v", err)
	}
	if s.Name != "Piano" || s.LastPracticed != nil || s.MinutesDebt != 0 {
		t.Fatalf("created=%+v", s)
	}

	if _, err := svc.AddSkill(ctx, AddSkillInput{Name: "piano", Priority: PriorityBuilder}); !errors.Is(err, ErrSkillExists) {
		t.Fatalf("duplicate err=%v, want ErrSkillExists", err)
	}

	var verr ValidationError
	if _, err := svc.AddSkill(ctx, AddSkillInput{Name: "   ", Priority: PriorityCore}); !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("blank name err=%v", err)
	}
	if _, err := svc.AddSkill(ctx, AddSkillInput{Name: "Chess", Priority: 5}); !errors.As(err, &verr) || verr.Field != "priority" {
		t.Fatalf("bad priority err=%v", err)
	}
}

func TestEditSkill(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, WithClock(fixedClock(monday)))
	piano, _ := svc.AddSkill(ctx, AddSkillInput{Name: "Piano", Priority: PriorityCore})
	chess, _ := svc.AddSkill(ctx, AddSkillInput{Name: "Chess", Priority: PriorityBuilder})

	name := "Grand Piano"
	p := PriorityMaintainer
	got, err := svc.EditSkill(ctx, piano.ID, EditSkillInput{Name: &name, Priority: &p})
	if err != nil {
		t.Fatalf("EditSkill: %v", err)
	}
	if got.Name != name || got.Priority != int(PriorityMaintainer) {
		t.Fatalf("edited=%+v", got)
	}

	clash := "CHESS"
	if _, err := svc.EditSkill(ctx, piano.ID, EditSkillInput{Name: &clash}); !errors.Is(err, ErrSkillExists) {
		t.Fatalf("rename clash err=%v", err)
	}
	// Changing only the case of its own name is allowed.
	own := "chess"
	if _, err := svc.EditSkill(ctx, chess.ID, EditSkillInput{Name: &own}); err != nil {
		t.Fatalf("self rename: %v", err)
	}
	if _, err := svc.EditSkill(ctx, 404, EditSkillInput{Name: &name}); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("missing err=%v", err)
	}
	if got := store.skills[piano.ID].Name; got != name {
		t.Fatalf("failed edit leaked: name=%q", got)
	}
}

func TestRemoveSkill(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore())
	s, _ := svc.AddSkill(ctx, AddSkillInput{Name: "Chess", Priority: PriorityBuilder})

	if err := svc.RemoveSkill(ctx, s.ID); err != nil {
		t.Fatalf("RemoveSkill: %v", err)
	}
	if err := svc.RemoveSkill(ctx, s.ID); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("second remove err=%v", err)
	}
	skills, _ := svc.Skills(ctx)
	if len(skills) != 0 {
		t.Fatalf("skills=%d, want 0", len(skills))
	}
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore())

	in := ProfileInput{Name: "Ada", Age: 30, WeekdayMinutes: 90, WeekendMinutes: 180, WeekendsAvailable: true}
	p, created, err := svc.SaveProfile(ctx, in)
	if err != nil || !created {
		t.Fatalf("SaveProfile: created=%v err=%v", created, err)
	}
	id := p.ID

	in.WeekdayMinutes = 45
	p, created, err = svc.SaveProfile(ctx, in)
	if err != nil || created {
		t.Fatalf("update: created=%v err=%v", created, err)
	}
	if p.ID != id || p.WeekdayMinutes != 45 {
		t.Fatalf("updated=%+v", p)
	}

	bad := []ProfileInput{
		{Name: "", Age: 30, WeekdayMinutes: 60},
		{Name: "Ada", Age: 0, WeekdayMinutes: 60},
		{Name: "Ada", Age: 30, WeekdayMinutes: 0},
		{Name: "Ada", Age: 30, WeekdayMinutes: 60, WeekendMinutes: -1},
	}
	for i, in := range bad {
		var verr ValidationError
		if _, _, err := svc.SaveProfile(ctx, in); !errors.As(err, &verr) {
			t.Fatalf("case %d err=%v, want ValidationError", i, err)
		}
	}
}
