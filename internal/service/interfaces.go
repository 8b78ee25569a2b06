// Package service defines the interfaces between the goal engine and its collaborators.
package service

import (
	"context"
	"time"

	"github.com/summitlabs/summit/internal/model"
)

// Storage defines the contract for the goal persistence layer. Read methods
// return (nil, nil) for absent goals rather than an error; mutations on
// absent goals are the caller's concern.
type Storage interface {
	// Single-goal operations
	GetGoal(ctx context.Context, id int64) (*model.Goal, error)
	InsertGoal(ctx context.Context, goal *model.Goal) (int64, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error
	UpdateGoalProgress(ctx context.Context, id int64, value float64) error
	UpdateGoalStatus(ctx context.Context, id int64, status model.Status, at time.Time) error
	DeleteGoal(ctx context.Context, id int64) error
	DeleteGoalWithChildren(ctx context.Context, id int64) (int64, error)

	// Hierarchy queries
	GetChildren(ctx context.Context, parentID int64) ([]*model.Goal, error)
	CountChildren(ctx context.Context, parentID int64) (int, error)
	CountCompletedChildren(ctx context.Context, parentID int64) (int, error)

	// Snapshot queries
	GetAllGoals(ctx context.Context) ([]*model.Goal, error)
	GetGoalsByStatus(ctx context.Context, status model.Status) ([]*model.Goal, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
