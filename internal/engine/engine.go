package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/summitlabs/summit/internal/common"
	"github.com/summitlabs/summit/internal/model"
	"github.com/summitlabs/summit/internal/service"
)

// Engine orchestrates goal mutations over the storage collaborator and keeps
// ancestor progress consistent through upward propagation.
//
// Mutations within one ancestor chain are serialized by a per-root-goal lock,
// held for the full mutation plus propagation. Two completions under
// unrelated roots proceed independently; reads take no lock and accept
// eventually-consistent snapshots.
type Engine struct {
	storage   service.Storage
	now       func() time.Time
	rootLocks map[int64]*sync.Mutex
	mu        sync.Mutex
}

// New creates a goal engine backed by the given storage.
func New(storage service.Storage) *Engine {
	return NewWithClock(storage, time.Now)
}

// NewWithClock creates a goal engine with an explicit clock, for
// deterministic tests.
func NewWithClock(storage service.Storage, now func() time.Time) *Engine {
	return &Engine{
		storage:   storage,
		now:       now,
		rootLocks: make(map[int64]*sync.Mutex),
	}
}

// NewGoalParams carries the caller-supplied fields for goal creation.
type NewGoalParams struct {
	TargetValue  *float64
	EndDate      *model.Day
	Title        string
	Description  string
	GoalType     string
	Unit         string
	Category     model.Category
	ProgressType model.ProgressType
	StartDate    model.Day
}

// CreateGoal creates a new root goal and returns its id.
func (e *Engine) CreateGoal(ctx context.Context, params NewGoalParams) (int64, error) {
	goal, err := e.buildGoal(params)
	if err != nil {
		return 0, err
	}

	id, err := e.storage.InsertGoal(ctx, goal)
	if err != nil {
		return 0, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("created goal", "id", id, "title", goal.Title, "category", goal.Category)
	return id, nil
}

// CreateSubGoal creates a goal under an existing parent. The sub-goal
// inherits the parent's category and date window for any field the caller
// left unset, and its level is always parent.Level+1. A missing parent is a
// hard failure: a sub-goal with no valid parent would violate the hierarchy
// invariant.
func (e *Engine) CreateSubGoal(ctx context.Context, parentID int64, params NewGoalParams) (int64, error) {
	unlock, err := e.lockRoot(ctx, parentID)
	if err != nil {
		return 0, err
	}
	defer unlock()

	parent, err := e.storage.GetGoal(ctx, parentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load parent goal: %w", err)
	}
	if parent == nil {
		return 0, fmt.Errorf("%w: id %d", common.ErrParentNotFound, parentID)
	}

	if params.Category == "" {
		params.Category = parent.Category
	}
	if params.StartDate == 0 {
		params.StartDate = parent.StartDate
	}
	if params.EndDate == nil {
		params.EndDate = parent.EndDate
	}

	goal, err := e.buildGoal(params)
	if err != nil {
		return 0, err
	}
	goal.ParentID = &parent.ID
	goal.Level = parent.Level + 1

	id, err := e.storage.InsertGoal(ctx, goal)
	if err != nil {
		return 0, fmt.Errorf("failed to create sub-goal: %w", err)
	}

	slog.Info("created sub-goal", "id", id, "parent_id", parentID, "level", goal.Level)

	// A new incomplete child dilutes the parent's child-completion
	// percentage, so recompute the chain.
	if err := e.propagate(ctx, parentID); err != nil {
		return id, err
	}
	return id, nil
}

func (e *Engine) buildGoal(params NewGoalParams) (*model.Goal, error) {
	if params.Category == "" {
		params.Category = model.CategoryOther
	}
	if params.ProgressType == "" {
		if params.TargetValue != nil {
			params.ProgressType = model.ProgressNumeric
		} else {
			params.ProgressType = model.ProgressPercentage
		}
	}
	if params.StartDate == 0 {
		params.StartDate = model.DayOf(e.now())
	}

	goal := &model.Goal{
		Title:        params.Title,
		Description:  params.Description,
		Category:     params.Category,
		GoalType:     params.GoalType,
		ProgressType: params.ProgressType,
		TargetValue:  params.TargetValue,
		Unit:         params.Unit,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		Status:       model.StatusActive,
		CreatedAt:    e.now(),
		UpdatedAt:    e.now(),
	}

	if goal.ProgressType == model.ProgressNumeric && (goal.TargetValue == nil || *goal.TargetValue <= 0) {
		return nil, fmt.Errorf("%w: numeric goals need a positive target value", common.ErrInvalidGoal)
	}
	return goal, nil
}

// UpdateProgress records a progress value for a goal. A NUMERIC goal whose
// new value meets its target auto-completes and cascades upward; PERCENTAGE
// goals complete only via explicit completion.
func (e *Engine) UpdateProgress(ctx context.Context, id int64, value float64) error {
	unlock, err := e.lockRoot(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	goal, err := e.storage.GetGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil {
		return fmt.Errorf("%w: id %d", common.ErrNotFound, id)
	}

	if err := e.storage.UpdateGoalProgress(ctx, id, value); err != nil {
		return err
	}

	completed := goal.Status == model.StatusActive &&
		goal.ProgressType == model.ProgressNumeric &&
		goal.TargetValue != nil && *goal.TargetValue > 0 &&
		value >= *goal.TargetValue
	if completed {
		if err := e.storage.UpdateGoalStatus(ctx, id, model.StatusCompleted, e.now()); err != nil {
			return err
		}
		slog.Info("goal reached its target", "id", id, "value", value, "target", *goal.TargetValue)
	}

	if goal.ParentID != nil {
		return e.propagate(ctx, *goal.ParentID)
	}
	return nil
}

// CompleteGoal explicitly marks a goal COMPLETED and cascades upward. The
// raw value is pinned to the target so a completed goal always reads as
// fully complete.
func (e *Engine) CompleteGoal(ctx context.Context, id int64) error {
	return e.transition(ctx, id, model.StatusCompleted)
}

// AbandonGoal marks a goal ABANDONED. No progress precondition applies.
func (e *Engine) AbandonGoal(ctx context.Context, id int64) error {
	return e.transition(ctx, id, model.StatusAbandoned)
}

// ReactivateGoal returns an abandoned or archived goal to ACTIVE.
func (e *Engine) ReactivateGoal(ctx context.Context, id int64) error {
	return e.transition(ctx, id, model.StatusActive)
}

// ArchiveGoal archives a goal. Archiving never propagates to parents.
func (e *Engine) ArchiveGoal(ctx context.Context, id int64) error {
	return e.transition(ctx, id, model.StatusArchived)
}

func (e *Engine) transition(ctx context.Context, id int64, next model.Status) error {
	unlock, err := e.lockRoot(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	goal, err := e.storage.GetGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil {
		return fmt.Errorf("%w: id %d", common.ErrNotFound, id)
	}

	if !goal.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, goal.Status, next)
	}

	if next == model.StatusCompleted {
		// Keep the invariant that a COMPLETED goal's value satisfies
		// its target condition even when completion was explicit.
		if target := completionValue(goal); target > goal.CurrentValue {
			if err := e.storage.UpdateGoalProgress(ctx, id, target); err != nil {
				return err
			}
		}
	}

	if err := e.storage.UpdateGoalStatus(ctx, id, next, e.now()); err != nil {
		return err
	}

	slog.Info("goal status changed", "id", id, "from", goal.Status, "to", next)

	// COMPLETED and ABANDONED cascade upward; archiving and reactivation
	// leave ancestors alone.
	if (next == model.StatusCompleted || next == model.StatusAbandoned) && goal.ParentID != nil {
		return e.propagate(ctx, *goal.ParentID)
	}
	return nil
}

func completionValue(goal *model.Goal) float64 {
	switch goal.ProgressType {
	case model.ProgressNumeric:
		if goal.TargetValue != nil {
			return *goal.TargetValue
		}
		return goal.CurrentValue
	case model.ProgressPercentage:
		return 100
	default:
		return goal.CurrentValue
	}
}

// DeleteGoal removes a goal and its entire subtree, then re-propagates on the
// former parent so its child-completion percentage reflects the removal.
func (e *Engine) DeleteGoal(ctx context.Context, id int64) error {
	unlock, err := e.lockRoot(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	goal, err := e.storage.GetGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil {
		return fmt.Errorf("%w: id %d", common.ErrNotFound, id)
	}

	removed, err := e.storage.DeleteGoalWithChildren(ctx, id)
	if err != nil {
		return err
	}
	slog.Info("deleted goal subtree", "id", id, "removed", removed)

	if goal.ParentID != nil {
		return e.propagate(ctx, *goal.ParentID)
	}
	return nil
}

// propagate recomputes ancestor progress and status after a descendant's
// status changed. It walks upward iteratively with a visited guard so a
// malformed parent chain surfaces as a data-integrity error instead of an
// unbounded recursion.
//
// A parent id that no longer resolves is a silent no-op: deletes can race
// with propagation, and the surviving operation should not fail over a
// vanished ancestor.
func (e *Engine) propagate(ctx context.Context, parentID int64) error {
	visited := make(map[int64]bool)
	id := parentID

	for {
		if visited[id] {
			return fmt.Errorf("%w: goal %d revisited during propagation", common.ErrHierarchyCycle, id)
		}
		visited[id] = true

		parent, err := e.storage.GetGoal(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load ancestor %d: %w", id, err)
		}
		if parent == nil {
			return nil
		}

		total, err := e.storage.CountChildren(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count children of %d: %w", id, err)
		}
		if total == 0 {
			return nil
		}

		completed, err := e.storage.CountCompletedChildren(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count completed children of %d: %w", id, err)
		}

		// A goal with children is a rollup of their completion state;
		// its stored value is always a percentage.
		percentage := float64(completed) / float64(total) * 100
		if err := e.storage.UpdateGoalProgress(ctx, id, percentage); err != nil {
			return fmt.Errorf("failed to update ancestor %d: %w", id, err)
		}

		slog.Debug("propagated child completion",
			"id", id, "completed", completed, "total", total, "percentage", percentage)

		if completed < total {
			// Partial completion updates the value but never reverts an
			// already-completed ancestor back to ACTIVE.
			return nil
		}

		if parent.Status.CanTransitionTo(model.StatusCompleted) {
			if err := e.storage.UpdateGoalStatus(ctx, id, model.StatusCompleted, e.now()); err != nil {
				return fmt.Errorf("failed to complete ancestor %d: %w", id, err)
			}
			slog.Info("all children completed, goal auto-completed", "id", id)
		}

		if parent.ParentID == nil {
			return nil
		}
		id = *parent.ParentID
	}
}

// lockRoot serializes mutations per root goal. It resolves the root by
// walking the parent chain (with a cycle guard) and holds that root's mutex
// until the returned unlock runs. A goal whose chain cannot be resolved
// (already deleted) locks on its own id so the mutation can surface NotFound
// under the same serialization rules.
func (e *Engine) lockRoot(ctx context.Context, id int64) (func(), error) {
	rootID, err := e.resolveRoot(ctx, id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	lock, ok := e.rootLocks[rootID]
	if !ok {
		lock = &sync.Mutex{}
		e.rootLocks[rootID] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock, nil
}

func (e *Engine) resolveRoot(ctx context.Context, id int64) (int64, error) {
	visited := make(map[int64]bool)
	current := id

	for {
		if visited[current] {
			return 0, fmt.Errorf("%w: goal %d revisited while resolving root", common.ErrHierarchyCycle, current)
		}
		visited[current] = true

		goal, err := e.storage.GetGoal(ctx, current)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve root of %d: %w", id, err)
		}
		if goal == nil || goal.ParentID == nil {
			return current, nil
		}
		current = *goal.ParentID
	}
}
