package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProfile means a plan was requested before a profile exists.
	ErrNoProfile        = errors.New("profile not found; create one with 'skillplan profile set'")
	ErrSkillExists      = errors.New("skill already exists")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotDueToday      = errors.New("task is not scheduled for today")
	ErrAlreadyCheckedIn = errors.New("task already checked in")
	ErrInvalidOutcome   = errors.New("invalid check-in outcome")
)

// ValidationError rejects a user-supplied field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
