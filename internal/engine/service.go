package engine

import (
	"context"
	"database/sql"
	"time"

	"skillplan/internal/logger"
	"skillplan/internal/storage"
)

// Store is the persistence the planner, check-in and management routines need.
type Store interface {
	ListSkills(ctx context.Context) ([]storage.Skill, error)
	GetSkill(ctx context.Context, id int64) (*storage.Skill, error)
	FindSkillByName(ctx context.Context, name string) (*storage.Skill, error)
	InsertSkill(ctx context.Context, in storage.SkillInsert) (int64, error)
	UpdateSkill(ctx context.Context, s *storage.Skill) error
	DeleteSkill(ctx context.Context, id int64) (bool, error)

	GetProfile(ctx context.Context) (*storage.Profile, error)
	InsertProfile(ctx context.Context, p *storage.Profile) (int64, error)
	UpdateProfile(ctx context.Context, p *storage.Profile) error

	DeleteFutureIncompleteTasks(ctx context.Context, cutoff time.Time) (int64, error)
	InsertTask(ctx context.Context, t storage.WeeklyTask) (int64, error)
	UpdateTask(ctx context.Context, t *storage.WeeklyTask) error
	GetTask(ctx context.Context, id int64) (*storage.WeeklyTask, error)
	ListTasksFrom(ctx context.Context, from time.Time) ([]storage.WeeklyTask, error)
	ListTasksOn(ctx context.Context, day time.Time) ([]storage.WeeklyTask, error)

	InsertCheckin(ctx context.Context, c storage.Checkin) (int64, error)
	ListCheckins(ctx context.Context, limit int) ([]storage.Checkin, error)

	// InTx runs fn atomically; readers never observe a partial result.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

type sqlStore struct {
	*storage.Store
}

// NewSQLStore adapts the SQLite store to Store.
func NewSQLStore(db *sql.DB) Store {
	return sqlStore{Store: storage.NewStore(db)}
}

func (s sqlStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.Store.InTx(ctx, func(tx *storage.Store) error {
		return fn(sqlStore{Store: tx})
	})
}

type Service struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
}

type Option func(*Service)

func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now; "today" is the clock's calendar date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   logger.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Store() Store { return s.store }

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// Today returns the clock's calendar date at midnight.
func (s *Service) Today() time.Time { return DateOf(s.now()) }
