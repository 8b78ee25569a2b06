package engine

import (
	"testing"

	"github.com/summitlabs/summit/internal/model"
)

func numericGoal(current, target float64) *model.Goal {
	return &model.Goal{
		ProgressType: model.ProgressNumeric,
		TargetValue:  &target,
		CurrentValue: current,
		Status:       model.StatusActive,
	}
}

func percentageGoal(current float64) *model.Goal {
	return &model.Goal{
		ProgressType: model.ProgressPercentage,
		CurrentValue: current,
		Status:       model.StatusActive,
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		goal *model.Goal
		name string
		want float64
	}{
		{name: "numeric halfway", goal: numericGoal(5, 10), want: 0.5},
		{name: "numeric at target", goal: numericGoal(10, 10), want: 1},
		{name: "numeric over target clamps", goal: numericGoal(15, 10), want: 1},
		{name: "numeric negative clamps to zero", goal: numericGoal(-3, 10), want: 0},
		{name: "numeric without target", goal: &model.Goal{
			ProgressType: model.ProgressNumeric,
			CurrentValue: 5,
			Status:       model.StatusActive,
		}, want: 0},
		{name: "percentage halfway", goal: percentageGoal(50), want: 0.5},
		{name: "percentage over 100 clamps", goal: percentageGoal(150), want: 1},
		{name: "percentage zero", goal: percentageGoal(0), want: 0},
		{name: "completed status overrides raw value", goal: &model.Goal{
			ProgressType: model.ProgressNumeric,
			CurrentValue: 1,
			Status:       model.StatusCompleted,
		}, want: 1},
		{name: "unknown progress type", goal: &model.Goal{
			ProgressType: "MILESTONE",
			CurrentValue: 5,
			Status:       model.StatusActive,
		}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.goal); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgress_MonotonicInCurrentValue(t *testing.T) {
	prev := -1.0
	for v := 0.0; v <= 120; v += 10 {
		got := Progress(percentageGoal(v))
		if got < prev {
			t.Fatalf("Progress not monotonic: value %v gave %v after %v", v, got, prev)
		}
		if got < 0 || got > 1 {
			t.Fatalf("Progress out of range at value %v: %v", v, got)
		}
		prev = got
	}
}

func TestChildProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{name: "no children", completed: 0, total: 0, want: 0},
		{name: "none completed", completed: 0, total: 4, want: 0},
		{name: "half completed", completed: 2, total: 4, want: 0.5},
		{name: "all completed", completed: 4, total: 4, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChildProgress(tt.completed, tt.total); got != tt.want {
				t.Errorf("ChildProgress(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}
