package engine

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"skillplan/internal/storage"
)

// memStore is an in-memory Store. InTx snapshots state and restores it when fn fails.
type memStore struct {
	profile  *storage.Profile
	skills   map[int64]storage.Skill
	tasks    map[int64]storage.WeeklyTask
	checkins []storage.Checkin
	nextID   int64

	// failInsertAfter makes InsertTask fail once this many rows were inserted (0 = never).
	failInsertAfter int
	inserted        int
}

func newMemStore() *memStore {
	return &memStore{
		skills: map[int64]storage.Skill{},
		tasks:  map[int64]storage.WeeklyTask{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) snapshot() *memStore {
	cp := *m
	cp.skills = make(map[int64]storage.Skill, len(m.skills))
	for k, v := range m.skills {
		cp.skills[k] = v
	}
	cp.tasks = make(map[int64]storage.WeeklyTask, len(m.tasks))
	for k, v := range m.tasks {
		cp.tasks[k] = v
	}
	cp.checkins = append([]storage.Checkin(nil), m.checkins...)
	if m.profile != nil {
		p := *m.profile
		cp.profile = &p
	}
	return &cp
}

func (m *memStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	before := m.snapshot()
	if err := fn(m); err != nil {
		*m = *before
		return err
	}
	return nil
}

func (m *memStore) ListSkills(ctx context.Context) ([]storage.Skill, error) {
	out := make([]storage.Skill, 0, len(m.skills))
	for _, s := range m.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetSkill(ctx context.Context, id int64) (*storage.Skill, error) {
	s, ok := m.skills[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) FindSkillByName(ctx context.Context, name string) (*storage.Skill, error) {
	for _, s := range m.skills {
		if strings.EqualFold(s.Name, name) {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertSkill(ctx context.Context, in storage.SkillInsert) (int64, error) {
	id := m.id()
	m.skills[id] = storage.Skill{
		ID:            id,
		Name:          in.Name,
		Priority:      in.Priority,
		UrgencyLevel:  in.UrgencyLevel,
		LastPracticed: in.LastPracticed,
	}
	return id, nil
}

func (m *memStore) UpdateSkill(ctx context.Context, s *storage.Skill) error {
	m.skills[s.ID] = *s
	return nil
}

func (m *memStore) DeleteSkill(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.skills[id]; !ok {
		return false, nil
	}
	delete(m.skills, id)
	return true, nil
}

func (m *memStore) GetProfile(ctx context.Context) (*storage.Profile, error) {
	if m.profile == nil {
		return nil, nil
	}
	p := *m.profile
	return &p, nil
}

func (m *memStore) InsertProfile(ctx context.Context, p *storage.Profile) (int64, error) {
	cp := *p
	cp.ID = m.id()
	m.profile = &cp
	return cp.ID, nil
}

func (m *memStore) UpdateProfile(ctx context.Context, p *storage.Profile) error {
	cp := *p
	m.profile = &cp
	return nil
}

func (m *memStore) DeleteFutureIncompleteTasks(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, t := range m.tasks {
		if !t.IsCompleted && !DateOf(t.ScheduledDate).Before(DateOf(cutoff)) {
			delete(m.tasks, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) InsertTask(ctx context.Context, t storage.WeeklyTask) (int64, error) {
	if m.failInsertAfter > 0 && m.inserted >= m.failInsertAfter {
		return 0, errors.New("disk full")
	}
	m.inserted++
	t.ID = m.id()
	m.tasks[t.ID] = t
	return t.ID, nil
}

func (m *memStore) UpdateTask(ctx context.Context, t *storage.WeeklyTask) error {
	m.tasks[t.ID] = *t
	return nil
}

func (m *memStore) GetTask(ctx context.Context, id int64) (*storage.WeeklyTask, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memStore) ListTasksFrom(ctx context.Context, from time.Time) ([]storage.WeeklyTask, error) {
	var out []storage.WeeklyTask
	for _, t := range m.tasks {
		if !DateOf(t.ScheduledDate).Before(DateOf(from)) {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (m *memStore) ListTasksOn(ctx context.Context, day time.Time) ([]storage.WeeklyTask, error) {
	var out []storage.WeeklyTask
	for _, t := range m.tasks {
		if SameDate(t.ScheduledDate, day) {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (m *memStore) InsertCheckin(ctx context.Context, c storage.Checkin) (int64, error) {
	c.ID = m.id()
	m.checkins = append(m.checkins, c)
	return c.ID, nil
}

func (m *memStore) ListCheckins(ctx context.Context, limit int) ([]storage.Checkin, error) {
	out := make([]storage.Checkin, 0, len(m.checkins))
	for i := len(m.checkins) - 1; i >= 0; i-- {
		out = append(out, m.checkins[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) allTasks() []storage.WeeklyTask {
	out := make([]storage.WeeklyTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	sortTasks(out)
	return out
}

func sortTasks(ts []storage.WeeklyTask) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].ScheduledDate.Equal(ts[j].ScheduledDate) {
			return ts[i].ScheduledDate.Before(ts[j].ScheduledDate)
		}
		return ts[i].ID < ts[j].ID
	})
}

// addSkill seeds a skill directly, bypassing validation.
func (m *memStore) addSkill(name string, p Priority, lastPracticed *time.Time, debt int) storage.Skill {
	id := m.id()
	s := storage.Skill{
		ID:            id,
		Name:          name,
		Priority:      int(p),
		UrgencyLevel:  1,
		LastPracticed: lastPracticed,
		MinutesDebt:   debt,
	}
	m.skills[id] = s
	return s
}

// monday is 2026-10-19 09:00 UTC, a Monday.
var monday = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func timePtr(t time.Time) *time.Time { return &t }
