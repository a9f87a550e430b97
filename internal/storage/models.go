package storage

import "time"

// DateLayout is the on-disk format of scheduled dates.
const DateLayout = "2006-01-02"

type Profile struct {
	ID                int64
	Name              string
	Age               int
	WeekdayMinutes    int
	WeekendMinutes    int
	HolidaysAvailable bool // stored only; planning never reads it
	WeekendsAvailable bool
}

type Skill struct {
	ID              int64
	Name            string
	Priority        int
	UrgencyLevel    int        // legacy column, not used for planning
	LastPracticed   *time.Time // nil means never practiced
	MinutesInvested int
	MinutesDebt     int
	CreatedAt       time.Time
}

type SkillInsert struct {
	Name          string
	Priority      int
	UrgencyLevel  int
	LastPracticed *time.Time
}

type WeeklyTask struct {
	ID              int64
	SkillID         int64
	SkillName       string
	ScheduledDate   time.Time
	DurationMinutes int
	Kind            string
	IsCompleted     bool
	IsSkipped       bool
	RunID           string
}

type Checkin struct {
	ID         int64
	TaskID     int64
	SkillID    int64
	Outcome    string
	Minutes    int
	RecordedAt time.Time
}

// FormatDate renders t's calendar date (in t's location) for storage.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a stored date as local midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
