package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/summitlabs/summit/internal/model"
)

const goalColumns = `id, parent_id, level, title, description, category, goal_type,
	progress_type, target_value, current_value, unit, start_date, end_date,
	status, created_at, updated_at, completed_at, abandoned_at`

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*model.Goal, error) {
	var (
		goal        model.Goal
		parentID    sql.NullInt64
		targetValue sql.NullFloat64
		endDate     sql.NullInt64
		completedAt sql.NullTime
		abandonedAt sql.NullTime
	)

	err := row.Scan(
		&goal.ID, &parentID, &goal.Level, &goal.Title, &goal.Description,
		&goal.Category, &goal.GoalType, &goal.ProgressType, &targetValue,
		&goal.CurrentValue, &goal.Unit, &goal.StartDate, &endDate,
		&goal.Status, &goal.CreatedAt, &goal.UpdatedAt, &completedAt, &abandonedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		goal.ParentID = &parentID.Int64
	}
	if targetValue.Valid {
		goal.TargetValue = &targetValue.Float64
	}
	if endDate.Valid {
		d := model.Day(endDate.Int64)
		goal.EndDate = &d
	}
	if completedAt.Valid {
		t := completedAt.Time
		goal.CompletedAt = &t
	}
	if abandonedAt.Valid {
		t := abandonedAt.Time
		goal.AbandonedAt = &t
	}
	return &goal, nil
}

func goalArgs(goal *model.Goal) []any {
	var (
		parentID    any
		targetValue any
		endDate     any
		completedAt any
		abandonedAt any
	)
	if goal.ParentID != nil {
		parentID = *goal.ParentID
	}
	if goal.TargetValue != nil {
		targetValue = *goal.TargetValue
	}
	if goal.EndDate != nil {
		endDate = int64(*goal.EndDate)
	}
	if goal.CompletedAt != nil {
		completedAt = *goal.CompletedAt
	}
	if goal.AbandonedAt != nil {
		abandonedAt = *goal.AbandonedAt
	}
	return []any{
		parentID, goal.Level, goal.Title, goal.Description, string(goal.Category),
		goal.GoalType, string(goal.ProgressType), targetValue, goal.CurrentValue,
		goal.Unit, int64(goal.StartDate), endDate, string(goal.Status),
		goal.CreatedAt, goal.UpdatedAt, completedAt, abandonedAt,
	}
}

// GetGoal returns a goal by id, or (nil, nil) when no such goal exists.
func (s *SQLiteStorage) GetGoal(ctx context.Context, id int64) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ?`

	goal, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}
	return goal, nil
}

// InsertGoal persists a new goal and returns its assigned id.
func (s *SQLiteStorage) InsertGoal(ctx context.Context, goal *model.Goal) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateGoal(goal); err != nil {
		return 0, err
	}

	now := time.Now()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	if goal.UpdatedAt.IsZero() {
		goal.UpdatedAt = now
	}

	query := `
		INSERT INTO goals (parent_id, level, title, description, category, goal_type,
			progress_type, target_value, current_value, unit, start_date, end_date,
			status, created_at, updated_at, completed_at, abandoned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query, goalArgs(goal)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert goal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get goal ID: %w", err)
	}

	goal.ID = id
	slog.Debug("inserted goal", "id", id, "title", goal.Title, "level", goal.Level)
	return id, nil
}

// UpdateGoal rewrites every mutable field of an existing goal.
func (s *SQLiteStorage) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}
	if err := validateID(goal.ID, "goal.ID"); err != nil {
		return err
	}

	goal.UpdatedAt = time.Now()

	query := `
		UPDATE goals SET parent_id = ?, level = ?, title = ?, description = ?,
			category = ?, goal_type = ?, progress_type = ?, target_value = ?,
			current_value = ?, unit = ?, start_date = ?, end_date = ?, status = ?,
			created_at = ?, updated_at = ?, completed_at = ?, abandoned_at = ?
		WHERE id = ?`

	args := append(goalArgs(goal), goal.ID)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// UpdateGoalProgress sets a goal's current value. Updating a goal that no
// longer exists is a silent no-op so that progress propagation can race with
// deletes.
func (s *SQLiteStorage) UpdateGoalProgress(ctx context.Context, id int64, value float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	query := `UPDATE goals SET current_value = ?, updated_at = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, value, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}
	return nil
}

// UpdateGoalStatus sets a goal's status, stamping the matching lifecycle
// timestamp. Reactivation back to ACTIVE clears both timestamps.
func (s *SQLiteStorage) UpdateGoalStatus(ctx context.Context, id int64, status model.Status, at time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateStatus(status); err != nil {
		return err
	}

	var query string
	args := []any{string(status), at}
	switch status {
	case model.StatusCompleted:
		query = `UPDATE goals SET status = ?, updated_at = ?, completed_at = ? WHERE id = ?`
		args = append(args, at, id)
	case model.StatusAbandoned:
		query = `UPDATE goals SET status = ?, updated_at = ?, abandoned_at = ? WHERE id = ?`
		args = append(args, at, id)
	case model.StatusActive:
		query = `UPDATE goals SET status = ?, updated_at = ?, completed_at = NULL, abandoned_at = NULL WHERE id = ?`
		args = append(args, id)
	default:
		query = `UPDATE goals SET status = ?, updated_at = ? WHERE id = ?`
		args = append(args, id)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update goal status: %w", err)
	}

	slog.Debug("updated goal status", "id", id, "status", status)
	return nil
}

// DeleteGoal removes a single goal.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// DeleteGoalWithChildren removes a goal and its entire subtree, returning the
// number of goals removed.
func (s *SQLiteStorage) DeleteGoalWithChildren(ctx context.Context, id int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(id, "id"); err != nil {
		return 0, err
	}

	query := `
		WITH RECURSIVE subtree(id) AS (
			SELECT id FROM goals WHERE id = ?
			UNION ALL
			SELECT g.id FROM goals g JOIN subtree s ON g.parent_id = s.id
		)
		DELETE FROM goals WHERE id IN (SELECT id FROM subtree)`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete goal subtree: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed goals: %w", err)
	}

	slog.Debug("deleted goal subtree", "id", id, "removed", removed)
	return removed, nil
}

// GetChildren returns the direct children of a goal, oldest first.
func (s *SQLiteStorage) GetChildren(ctx context.Context, parentID int64) ([]*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(parentID, "parentID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + goalColumns + ` FROM goals WHERE parent_id = ? ORDER BY id`
	return s.queryGoals(ctx, query, parentID)
}

// CountChildren returns the number of direct children of a goal.
func (s *SQLiteStorage) CountChildren(ctx context.Context, parentID int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(parentID, "parentID"); err != nil {
		return 0, err
	}

	var count int
	query := `SELECT COUNT(*) FROM goals WHERE parent_id = ?`
	if err := s.db.QueryRowContext(ctx, query, parentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	return count, nil
}

// CountCompletedChildren returns the number of direct children with COMPLETED status.
func (s *SQLiteStorage) CountCompletedChildren(ctx context.Context, parentID int64) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(parentID, "parentID"); err != nil {
		return 0, err
	}

	var count int
	query := `SELECT COUNT(*) FROM goals WHERE parent_id = ? AND status = ?`
	if err := s.db.QueryRowContext(ctx, query, parentID, string(model.StatusCompleted)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed children: %w", err)
	}
	return count, nil
}

// GetAllGoals returns every goal, roots first within creation order.
func (s *SQLiteStorage) GetAllGoals(ctx context.Context) ([]*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + goalColumns + ` FROM goals ORDER BY level, id`
	return s.queryGoals(ctx, query)
}

// GetGoalsByStatus returns every goal with the given status.
func (s *SQLiteStorage) GetGoalsByStatus(ctx context.Context, status model.Status) ([]*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	query := `SELECT ` + goalColumns + ` FROM goals WHERE status = ? ORDER BY level, id`
	return s.queryGoals(ctx, query, string(status))
}

func (s *SQLiteStorage) queryGoals(ctx context.Context, query string, args ...any) ([]*model.Goal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []*model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}
