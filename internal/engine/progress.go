// Package engine implements the goal hierarchy and progress aggregation engine:
// progress calculation, upward propagation, health scoring, streaks, and insights.
package engine

import "github.com/summitlabs/summit/internal/model"

// Progress converts a goal's raw fields into a completion fraction in [0,1].
// Status is authoritative: a COMPLETED goal is fully complete regardless of
// its raw values. Goals with children must use ChildProgress instead.
func Progress(g *model.Goal) float64 {
	if g.Status == model.StatusCompleted {
		return 1
	}

	switch g.ProgressType {
	case model.ProgressNumeric:
		if g.TargetValue != nil && *g.TargetValue > 0 {
			return clamp(g.CurrentValue / *g.TargetValue, 0, 1)
		}
		return 0
	case model.ProgressPercentage:
		return clamp(g.CurrentValue/100, 0, 1)
	default:
		return 0
	}
}

// ChildProgress is the progress fraction of a goal with children: the share
// of its direct children that are COMPLETED. The goal's own raw value is
// ignored entirely.
func ChildProgress(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clamp(float64(completed)/float64(total), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
