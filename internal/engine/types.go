package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority is a skill's ordinal category. Lower values rank higher.
type Priority int

const (
	PriorityCore       Priority = 1
	PriorityBuilder    Priority = 2
	PriorityMaintainer Priority = 3
	PriorityDabbler    Priority = 4
)

// Priorities lists every level from highest to lowest.
var Priorities = []Priority{PriorityCore, PriorityBuilder, PriorityMaintainer, PriorityDabbler}

func (p Priority) IsValid() bool {
	return p >= PriorityCore && p <= PriorityDabbler
}

func (p Priority) String() string {
	switch p {
	case PriorityCore:
		return "Core"
	case PriorityBuilder:
		return "Builder"
	case PriorityMaintainer:
		return "Maintainer"
	case PriorityDabbler:
		return "Dabbler"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Cadence is the practice rhythm shown next to each level when picking one.
func (p Priority) Cadence() string {
	switch p {
	case PriorityCore:
		return "daily practice, critical skills"
	case PriorityBuilder:
		return "3-4x a week, major hobbies"
	case PriorityMaintainer:
		return "2x a week, keeping sharp"
	case PriorityDabbler:
		return "1x a week, low pressure"
	default:
		return ""
	}
}

// ParsePriority accepts a level name (core, builder, maintainer, dabbler) or its number 1-4.
func ParsePriority(input string) (Priority, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if n, err := strconv.Atoi(s); err == nil {
		p := Priority(n)
		if !p.IsValid() {
			return 0, fmt.Errorf("invalid priority: %q (want 1-4)", input)
		}
		return p, nil
	}
	for _, p := range Priorities {
		if strings.ToLower(p.String()) == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("invalid priority: %q", input)
}

// Outcome is the result recorded by a check-in.
type Outcome string

const (
	OutcomeDone Outcome = "done"
	OutcomeSkip Outcome = "skip"
)

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeDone, OutcomeSkip:
		return true
	default:
		return false
	}
}

// Task kinds record which placement step emitted a row.
const (
	KindSession = "session"
	KindBreak   = "break"
	KindDabble  = "dabble"
)
