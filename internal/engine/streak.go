package engine

import (
	"sort"

	"github.com/summitlabs/summit/internal/model"
)

// Streak computes consecutive-day completion streaks over a set of completion
// dates. The current streak survives until the day after the latest
// completion, so checking in the next morning doesn't show a broken streak.
func Streak(days []model.Day, today model.Day) model.StreakData {
	if len(days) == 0 {
		return model.StreakData{}
	}

	unique := make(map[model.Day]struct{}, len(days))
	for _, d := range days {
		unique[d] = struct{}{}
	}
	sorted := make([]model.Day, 0, len(unique))
	for d := range unique {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	longest := 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := sorted[len(sorted)-1]
	current := 0
	if last == today || last == today-1 {
		current = 1
		for i := len(sorted) - 2; i >= 0; i-- {
			if sorted[i+1]-sorted[i] != 1 {
				break
			}
			current++
		}
	}

	return model.StreakData{
		CurrentStreak: current,
		LongestStreak: longest,
		TotalDays:     len(sorted),
		LastDate:      &last,
	}
}
