package engine

import (
	"testing"

	"github.com/summitlabs/summit/internal/model"
)

func deadlineGoal(start, end model.Day) *model.Goal {
	return &model.Goal{
		ProgressType: model.ProgressPercentage,
		StartDate:    start,
		EndDate:      &end,
		Status:       model.StatusActive,
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		goal     *model.Goal
		name     string
		progress float64
		today    model.Day
		want     int
	}{
		{
			name:     "completed is always 100",
			goal:     &model.Goal{Status: model.StatusCompleted},
			progress: 0.1,
			today:    50,
			want:     100,
		},
		{
			name:     "abandoned is always 0",
			goal:     &model.Goal{Status: model.StatusAbandoned},
			progress: 0.9,
			today:    50,
			want:     0,
		},
		{
			name:     "no deadline is purely value-based",
			goal:     &model.Goal{Status: model.StatusActive},
			progress: 0.42,
			today:    50,
			want:     42,
		},
		{
			name:     "exactly on track scores 100",
			goal:     deadlineGoal(0, 100),
			progress: 0.5,
			today:    50,
			want:     100,
		},
		{
			name:     "behind pace scores proportionally",
			goal:     deadlineGoal(0, 100),
			progress: 0.25,
			today:    50,
			want:     50,
		},
		{
			name:     "ahead of pace cannot exceed 100",
			goal:     deadlineGoal(0, 100),
			progress: 1.0,
			today:    25,
			want:     100,
		},
		{
			name:     "on pace but overdue decays 2 percent per day",
			goal:     deadlineGoal(0, 100),
			progress: 1.0,
			today:    110,
			want:     80,
		},
		{
			name:     "behind and overdue compounds",
			goal:     deadlineGoal(0, 100),
			progress: 0.5,
			today:    110,
			want:     40,
		},
		{
			name:     "overdue decay floors at half",
			goal:     deadlineGoal(0, 100),
			progress: 1.0,
			today:    500,
			want:     50,
		},
		{
			name:     "deadline not after start expects full progress",
			goal:     deadlineGoal(100, 100),
			progress: 0.5,
			today:    100,
			want:     50,
		},
		{
			name:     "before the window starts expectation is zero",
			goal:     deadlineGoal(50, 100),
			progress: 0,
			today:    40,
			want:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Health(tt.goal, tt.progress, tt.today); got != tt.want {
				t.Errorf("Health() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHealth_Bounds(t *testing.T) {
	goal := deadlineGoal(0, 100)
	for today := model.Day(0); today <= 400; today += 25 {
		for _, progress := range []float64{0, 0.25, 0.5, 0.75, 1} {
			score := Health(goal, progress, today)
			if score < 0 || score > 100 {
				t.Fatalf("Health out of bounds: progress=%v today=%d score=%d", progress, today, score)
			}
		}
	}
}
