package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Store bundles the repositories over one handle (a DB or an open transaction).
type Store struct {
	root *sql.DB
	db   DBTX

	profiles *ProfileRepo
	skills   *SkillRepo
	tasks    *TaskRepo
	checkins *CheckinRepo
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(root *sql.DB, db DBTX) *Store {
	return &Store{
		root:     root,
		db:       db,
		profiles: NewProfileRepo(db),
		skills:   NewSkillRepo(db),
		tasks:    NewTaskRepo(db),
		checkins: NewCheckinRepo(db),
	}
}

func (s *Store) ProfileRepo() *ProfileRepo { return s.profiles }
func (s *Store) SkillRepo() *SkillRepo     { return s.skills }
func (s *Store) TaskRepo() *TaskRepo       { return s.tasks }
func (s *Store) CheckinRepo() *CheckinRepo { return s.checkins }

// InTx runs fn against a Store bound to a single transaction. Nested calls reuse the open one.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	if _, ok := s.db.(*sql.Tx); ok {
		return fn(s)
	}
	if s.root == nil {
		return errors.New("store has no database handle")
	}
	return WithTx(ctx, s.root, func(tx *sql.Tx) error {
		return fn(newStore(s.root, tx))
	})
}

func (s *Store) ListSkills(ctx context.Context) ([]Skill, error) { return s.skills.ListAll(ctx) }

func (s *Store) GetSkill(ctx context.Context, id int64) (*Skill, error) { return s.skills.Get(ctx, id) }

func (s *Store) FindSkillByName(ctx context.Context, name string) (*Skill, error) {
	return s.skills.FindByName(ctx, name)
}

func (s *Store) InsertSkill(ctx context.Context, in SkillInsert) (int64, error) {
	return s.skills.Insert(ctx, in)
}

func (s *Store) UpdateSkill(ctx context.Context, sk *Skill) error { return s.skills.Update(ctx, sk) }

func (s *Store) DeleteSkill(ctx context.Context, id int64) (bool, error) {
	return s.skills.Delete(ctx, id)
}

func (s *Store) GetProfile(ctx context.Context) (*Profile, error) { return s.profiles.Get(ctx) }

func (s *Store) InsertProfile(ctx context.Context, p *Profile) (int64, error) {
	return s.profiles.Insert(ctx, p)
}

func (s *Store) UpdateProfile(ctx context.Context, p *Profile) error {
	return s.profiles.Update(ctx, p)
}

func (s *Store) DeleteFutureIncompleteTasks(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.tasks.DeleteFutureIncomplete(ctx, cutoff)
}

func (s *Store) InsertTask(ctx context.Context, t WeeklyTask) (int64, error) {
	return s.tasks.Insert(ctx, t)
}

func (s *Store) UpdateTask(ctx context.Context, t *WeeklyTask) error { return s.tasks.Update(ctx, t) }

func (s *Store) GetTask(ctx context.Context, id int64) (*WeeklyTask, error) {
	return s.tasks.Get(ctx, id)
}

func (s *Store) ListTasksFrom(ctx context.Context, from time.Time) ([]WeeklyTask, error) {
	return s.tasks.ListFrom(ctx, from)
}

func (s *Store) ListTasksOn(ctx context.Context, day time.Time) ([]WeeklyTask, error) {
	return s.tasks.ListOn(ctx, day)
}

func (s *Store) InsertCheckin(ctx context.Context, c Checkin) (int64, error) {
	return s.checkins.Insert(ctx, c)
}

func (s *Store) ListCheckins(ctx context.Context, limit int) ([]Checkin, error) {
	return s.checkins.ListRecent(ctx, limit)
}
