package engine

import (
	"context"
	"fmt"

	"github.com/summitlabs/summit/internal/model"
)

// Goal returns a goal by id, or (nil, nil) when absent.
func (e *Engine) Goal(ctx context.Context, id int64) (*model.Goal, error) {
	return e.storage.GetGoal(ctx, id)
}

// Children returns the direct children of a goal.
func (e *Engine) Children(ctx context.Context, id int64) ([]*model.Goal, error) {
	return e.storage.GetChildren(ctx, id)
}

// AllGoals returns the full goal snapshot.
func (e *Engine) AllGoals(ctx context.Context) ([]*model.Goal, error) {
	return e.storage.GetAllGoals(ctx)
}

// GoalProgress returns a goal's effective progress fraction. A goal with
// children rolls up their completion state; a leaf uses its own raw values.
func (e *Engine) GoalProgress(ctx context.Context, goal *model.Goal) (float64, error) {
	total, err := e.storage.CountChildren(ctx, goal.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	if total == 0 {
		return Progress(goal), nil
	}

	completed, err := e.storage.CountCompletedChildren(ctx, goal.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed children: %w", err)
	}
	return ChildProgress(completed, total), nil
}

// GoalHealth returns a goal's health score as of today.
func (e *Engine) GoalHealth(ctx context.Context, goal *model.Goal, today model.Day) (int, error) {
	progress, err := e.GoalProgress(ctx, goal)
	if err != nil {
		return 0, err
	}
	return Health(goal, progress, today), nil
}

// Insights computes the full analytics report over the current goal snapshot.
func (e *Engine) Insights(ctx context.Context) (*model.GoalInsights, error) {
	goals, err := e.storage.GetAllGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	now := e.now()
	return BuildInsights(goals, model.DayOf(now), now), nil
}

// Statistics computes aggregate counts and average progress over the current
// goal snapshot.
func (e *Engine) Statistics(ctx context.Context) (*model.GoalStatistics, error) {
	goals, err := e.storage.GetAllGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	return BuildStatistics(goals), nil
}
