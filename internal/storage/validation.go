// Package storage provides the data persistence layer for the summit application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/summitlabs/summit/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidID     = errors.New("id must be positive")
	ErrInvalidStatus = errors.New("invalid goal status")
	ErrInvalidGoal   = errors.New("invalid goal")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a goal id is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateGoal validates a goal before it is written.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if strings.TrimSpace(goal.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidGoal)
	}
	if !goal.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidGoal, goal.Category)
	}
	if !goal.ProgressType.Valid() {
		return fmt.Errorf("%w: unknown progress type %q", ErrInvalidGoal, goal.ProgressType)
	}
	if !goal.Status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, goal.Status)
	}
	if goal.ParentID != nil && *goal.ParentID <= 0 {
		return fmt.Errorf("%w: non-positive parent id", ErrInvalidGoal)
	}
	if goal.Level < 0 {
		return fmt.Errorf("%w: negative level", ErrInvalidGoal)
	}
	if goal.EndDate != nil && *goal.EndDate < goal.StartDate {
		return fmt.Errorf("%w: end date before start date", ErrInvalidGoal)
	}
	return nil
}

// validateStatus validates a status value on its own.
func validateStatus(status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return nil
}
