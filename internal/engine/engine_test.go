package engine

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/summitlabs/summit/internal/common"
	"github.com/summitlabs/summit/internal/model"
	"github.com/summitlabs/summit/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *storage.SQLiteStorage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	clock := func() time.Time {
		return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return NewWithClock(store, clock), store
}

func createRoot(t *testing.T, e *Engine, title string) int64 {
	t.Helper()
	target := 10.0
	id, err := e.CreateGoal(context.Background(), NewGoalParams{
		Title:       title,
		Category:    model.CategoryLearning,
		TargetValue: &target,
		StartDate:   model.Day(19700),
	})
	require.NoError(t, err)
	return id
}

func createChild(t *testing.T, e *Engine, parentID int64, title string) int64 {
	t.Helper()
	target := 5.0
	id, err := e.CreateSubGoal(context.Background(), parentID, NewGoalParams{
		Title:       title,
		TargetValue: &target,
	})
	require.NoError(t, err)
	return id
}

func TestEngine_CreateSubGoal_Inheritance(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	target := 10.0
	end := model.Day(19900)
	rootID, err := e.CreateGoal(ctx, NewGoalParams{
		Title:       "Learn Go",
		Category:    model.CategoryLearning,
		TargetValue: &target,
		StartDate:   model.Day(19700),
		EndDate:     &end,
	})
	require.NoError(t, err)

	childID := createChild(t, e, rootID, "Finish the tour")
	child, err := e.Goal(ctx, childID)
	require.NoError(t, err)
	require.NotNil(t, child)

	assert.Equal(t, model.CategoryLearning, child.Category, "category inherited from parent")
	assert.Equal(t, model.Day(19700), child.StartDate, "start date inherited from parent")
	require.NotNil(t, child.EndDate)
	assert.Equal(t, end, *child.EndDate, "end date inherited from parent")
	assert.Equal(t, 1, child.Level)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, rootID, *child.ParentID)

	grandchildID := createChild(t, e, childID, "Chapter one")
	grandchild, err := e.Goal(ctx, grandchildID)
	require.NoError(t, err)
	assert.Equal(t, 2, grandchild.Level, "level is always parent level plus one")
}

func TestEngine_CreateSubGoal_MissingParent(t *testing.T) {
	e, _ := newTestEngine(t)

	target := 5.0
	_, err := e.CreateSubGoal(context.Background(), 9999, NewGoalParams{
		Title:       "orphan",
		TargetValue: &target,
	})
	assert.ErrorIs(t, err, common.ErrParentNotFound)
}

func TestEngine_CreateGoal_NumericNeedsTarget(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.CreateGoal(context.Background(), NewGoalParams{
		Title:        "no target",
		Category:     model.CategoryOther,
		ProgressType: model.ProgressNumeric,
	})
	assert.ErrorIs(t, err, common.ErrInvalidGoal)
}

func TestEngine_UpdateProgress_AutoCompletesNumeric(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	id := createRoot(t, e, "Read ten books")

	require.NoError(t, e.UpdateProgress(ctx, id, 4))
	goal, err := e.Goal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, goal.Status)
	assert.Equal(t, 4.0, goal.CurrentValue)

	require.NoError(t, e.UpdateProgress(ctx, id, 10))
	goal, err = e.Goal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, goal.Status)
	assert.NotNil(t, goal.CompletedAt)
}

func TestEngine_UpdateProgress_PercentageNeverAutoCompletes(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	id, err := e.CreateGoal(ctx, NewGoalParams{
		Title:        "Thesis draft",
		Category:     model.CategoryLearning,
		ProgressType: model.ProgressPercentage,
	})
	require.NoError(t, err)

	require.NoError(t, e.UpdateProgress(ctx, id, 100))
	goal, err := e.Goal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, goal.Status, "percentage goals complete only explicitly")
}

func TestEngine_UpdateProgress_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	err := e.UpdateProgress(context.Background(), 12345, 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEngine_CompleteGoal_PinsValueToTarget(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	id := createRoot(t, e, "Save for a trip")
	require.NoError(t, e.UpdateProgress(ctx, id, 3))
	require.NoError(t, e.CompleteGoal(ctx, id))

	goal, err := e.Goal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, goal.Status)
	assert.Equal(t, 10.0, goal.CurrentValue, "explicit completion satisfies the target condition")
}

func TestEngine_StatusTransitions(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	id := createRoot(t, e, "Transition test")

	require.NoError(t, e.AbandonGoal(ctx, id))
	assert.ErrorIs(t, e.AbandonGoal(ctx, id), common.ErrInvalidTransition)

	require.NoError(t, e.ReactivateGoal(ctx, id))
	goal, err := e.Goal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, goal.Status)
	assert.Nil(t, goal.AbandonedAt, "reactivation clears the abandonment timestamp")

	require.NoError(t, e.CompleteGoal(ctx, id))
	assert.ErrorIs(t, e.ReactivateGoal(ctx, id), common.ErrInvalidTransition)

	require.NoError(t, e.ArchiveGoal(ctx, id))
	goal, err = e.Goal(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, goal.Status)

	require.NoError(t, e.ReactivateGoal(ctx, id))
}

func TestEngine_Propagation_PartialCompletion(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	parentID := createRoot(t, e, "Parent")
	doneID := createChild(t, e, parentID, "Done child")
	createChild(t, e, parentID, "Pending child")

	require.NoError(t, e.CompleteGoal(ctx, doneID))

	parent, err := e.Goal(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, parent.CurrentValue, "parent value is the child completion percentage")
	assert.Equal(t, model.StatusActive, parent.Status, "partial completion leaves status alone")

	progress, err := e.GoalProgress(ctx, parent)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, progress, 1e-9, "a goal with children ignores its own raw value")
}

func TestEngine_Propagation_RecursiveCascade(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	rootID := createRoot(t, e, "Root")
	midID := createChild(t, e, rootID, "Mid")
	leafID := createChild(t, e, midID, "Leaf")

	// Completing mid's only child completes mid, and mid is root's only
	// child, so root completes too — all from one propagation pass.
	require.NoError(t, e.CompleteGoal(ctx, leafID))

	mid, err := e.Goal(ctx, midID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, mid.Status)
	assert.Equal(t, 100.0, mid.CurrentValue)

	root, err := e.Goal(ctx, rootID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, root.Status)
	assert.Equal(t, 100.0, root.CurrentValue)
}

func TestEngine_Propagation_Idempotent(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	parentID := createRoot(t, e, "Parent")
	doneID := createChild(t, e, parentID, "Done")
	createChild(t, e, parentID, "Pending")
	require.NoError(t, e.CompleteGoal(ctx, doneID))

	first, err := e.Goal(ctx, parentID)
	require.NoError(t, err)

	require.NoError(t, e.propagate(ctx, parentID))
	second, err := e.Goal(ctx, parentID)
	require.NoError(t, err)

	assert.Equal(t, first.CurrentValue, second.CurrentValue)
	assert.Equal(t, first.Status, second.Status)
}

func TestEngine_Propagation_MissingParentIsNoOp(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.NoError(t, e.propagate(context.Background(), 4242))
}

func TestEngine_Propagation_NeverRevertsCompletedParent(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	parentID := createRoot(t, e, "Parent")
	childID := createChild(t, e, parentID, "Only child")
	require.NoError(t, e.CompleteGoal(ctx, childID))

	parent, err := e.Goal(ctx, parentID)
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, parent.Status)

	// Regress the child behind the engine's back and re-propagate: the
	// parent's value drops but its completed status stays.
	require.NoError(t, store.UpdateGoalStatus(ctx, childID, model.StatusActive, time.Now()))
	require.NoError(t, e.propagate(ctx, parentID))

	parent, err = e.Goal(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, parent.CurrentValue)
	assert.Equal(t, model.StatusCompleted, parent.Status)
}

func TestEngine_DeleteGoal_CascadesAndRepropagates(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	parentID := createRoot(t, e, "Parent")
	doneID := createChild(t, e, parentID, "Done")
	pendingID := createChild(t, e, parentID, "Pending")
	pendingChildID := createChild(t, e, pendingID, "Pending grandchild")
	require.NoError(t, e.CompleteGoal(ctx, doneID))

	// Removing the pending subtree leaves only completed children, so the
	// parent auto-completes.
	require.NoError(t, e.DeleteGoal(ctx, pendingID))

	for _, id := range []int64{pendingID, pendingChildID} {
		goal, err := e.Goal(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, goal, "goal %d should be gone", id)
	}

	parent, err := e.Goal(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, parent.CurrentValue)
	assert.Equal(t, model.StatusCompleted, parent.Status)
}

func TestEngine_DeleteGoal_NotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	err := e.DeleteGoal(context.Background(), 777)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestEngine_ConcurrentCompletionsSerialize(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	parentID := createRoot(t, e, "Parent")
	childIDs := make([]int64, 8)
	for i := range childIDs {
		childIDs[i] = createChild(t, e, parentID, "Child")
	}

	var wg sync.WaitGroup
	for _, id := range childIDs {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := e.CompleteGoal(ctx, id); err != nil {
				t.Errorf("CompleteGoal(%d) failed: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	parent, err := e.Goal(ctx, parentID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, parent.CurrentValue, "no completion may be lost to a propagation race")
	assert.Equal(t, model.StatusCompleted, parent.Status)
}

func TestEngine_InsightsOverStoredGoals(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	rootID := createRoot(t, e, "Root")
	childID := createChild(t, e, rootID, "Child")
	require.NoError(t, e.CompleteGoal(ctx, childID))

	insights, err := e.Insights(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, insights.TotalGoals)
	assert.Equal(t, 2, insights.CompletedCount, "child completion cascaded to the root")
	assert.Equal(t, 1, insights.Streak.CurrentStreak, "both completions fall on the clock's today")

	stats, err := e.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CompletedGoals)
	assert.InDelta(t, 1.0, stats.AverageProgress, 1e-9)
}

func TestEngine_HealthOfStoredGoal(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	target := 10.0
	end := model.Day(19800)
	id, err := e.CreateGoal(ctx, NewGoalParams{
		Title:       "Paced goal",
		Category:    model.CategoryHealth,
		TargetValue: &target,
		StartDate:   model.Day(19700),
		EndDate:     &end,
	})
	require.NoError(t, err)
	require.NoError(t, e.UpdateProgress(ctx, id, 5))

	goal, err := e.Goal(ctx, id)
	require.NoError(t, err)

	// Halfway through the window with half the target met.
	score, err := e.GoalHealth(ctx, goal, model.Day(19750))
	require.NoError(t, err)
	assert.Equal(t, 100, score)
}

func TestEngine_TransitionOnMissingGoal(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	for _, op := range []func(context.Context, int64) error{
		e.CompleteGoal, e.AbandonGoal, e.ReactivateGoal, e.ArchiveGoal,
	} {
		err := op(ctx, 31337)
		if !errors.Is(err, common.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	}
}
