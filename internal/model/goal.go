// Package model defines the core domain entities for goal tracking.
package model

import "time"

// ProgressType determines how a goal's raw progress values are interpreted.
type ProgressType string

const (
	// ProgressNumeric tracks progress as currentValue out of targetValue.
	ProgressNumeric ProgressType = "NUMERIC"
	// ProgressPercentage tracks progress as a 0-100 percentage.
	ProgressPercentage ProgressType = "PERCENTAGE"
)

// Valid reports whether the progress type is a known variant.
func (p ProgressType) Valid() bool {
	switch p {
	case ProgressNumeric, ProgressPercentage:
		return true
	default:
		return false
	}
}

// Status is the lifecycle state of a goal.
type Status string

const (
	// StatusActive is the initial state of every goal.
	StatusActive Status = "ACTIVE"
	// StatusCompleted marks a goal whose target condition was met.
	StatusCompleted Status = "COMPLETED"
	// StatusAbandoned marks a goal the user gave up on.
	StatusAbandoned Status = "ABANDONED"
	// StatusArchived removes a goal from active tracking without deleting it.
	StatusArchived Status = "ARCHIVED"
)

// Valid reports whether the status is a known variant.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusAbandoned, StatusArchived:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the state machine permits moving from s to next.
// ARCHIVED is re-enterable only via explicit reactivation back to ACTIVE.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return false
	}
	switch s {
	case StatusActive:
		return next == StatusCompleted || next == StatusAbandoned || next == StatusArchived
	case StatusCompleted:
		return next == StatusArchived
	case StatusAbandoned:
		return next == StatusActive || next == StatusArchived
	case StatusArchived:
		return next == StatusActive
	default:
		return false
	}
}

// Goal is a trackable objective. A goal may have sub-goals; a goal with
// children derives its progress purely from their completion state.
type Goal struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	AbandonedAt  *time.Time
	ParentID     *int64
	TargetValue  *float64
	EndDate      *Day
	Title        string
	Description  string
	GoalType     string
	Unit         string
	Category     Category
	ProgressType ProgressType
	Status       Status
	ID           int64
	CurrentValue float64
	StartDate    Day
	Level        int
}

// HasDeadline reports whether the goal has an end date.
func (g *Goal) HasDeadline() bool {
	return g.EndDate != nil
}

// Overdue reports whether the goal's deadline has passed as of today.
func (g *Goal) Overdue(today Day) bool {
	return g.EndDate != nil && *g.EndDate < today
}

// DueWithin reports whether the goal's deadline falls inside the next n days,
// today inclusive.
func (g *Goal) DueWithin(today Day, n int) bool {
	if g.EndDate == nil {
		return false
	}
	diff := int64(*g.EndDate - today)
	return diff >= 0 && diff <= int64(n)
}
