package engine

import (
	"math"

	"github.com/summitlabs/summit/internal/model"
)

// Overdue scoring constants: each overdue day costs 2% of the score, floored
// at half the on-time score no matter how late the goal is.
const (
	overdueDecayPerDay = 0.02
	overdueFloor       = 0.5
	aheadOfPaceCap     = 1.5
)

// Health compares actual progress against time-elapsed-expected progress and
// returns a score in [0,100]. It is a point-in-time snapshot against an
// explicit today, never persisted.
func Health(g *model.Goal, progress float64, today model.Day) int {
	switch g.Status {
	case model.StatusCompleted:
		return 100
	case model.StatusAbandoned:
		return 0
	}

	// Without a deadline there is no time pressure; the score is purely
	// value-based.
	if g.EndDate == nil {
		return int(math.Round(progress * 100))
	}

	end := *g.EndDate
	var expected float64
	if end <= g.StartDate {
		expected = 1
	} else {
		expected = clamp(float64(today-g.StartDate)/float64(end-g.StartDate), 0, 1)
	}

	healthRatio := 1.0
	if expected > 0 {
		healthRatio = clamp(progress/expected, 0, aheadOfPaceCap)
	}

	overdueRatio := 1.0
	if today > end {
		overdueDays := float64(today - end)
		overdueRatio = math.Max(overdueFloor, 1-overdueDays*overdueDecayPerDay)
	}

	score := int(math.Round(healthRatio * overdueRatio * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
