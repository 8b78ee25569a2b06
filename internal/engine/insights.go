package engine

import (
	"sort"
	"time"

	"github.com/summitlabs/summit/internal/model"
)

// monthsOfHistory is the size of the trailing monthly cohort window,
// current month inclusive.
const monthsOfHistory = 6

// deadlineWindowDays is how far ahead the upcoming-deadline list looks.
const deadlineWindowDays = 7

// BuildInsights derives the full analytics report from an in-memory snapshot
// of all goals. It is a pure function: the same snapshot, today, and now
// always produce the same report.
func BuildInsights(goals []*model.Goal, today model.Day, now time.Time) *model.GoalInsights {
	insights := &model.GoalInsights{
		TotalGoals: len(goals),
	}

	for _, g := range goals {
		switch g.Status {
		case model.StatusActive:
			insights.ActiveCount++
		case model.StatusCompleted:
			insights.CompletedCount++
		case model.StatusAbandoned:
			insights.AbandonedCount++
		}
	}
	if insights.TotalGoals > 0 {
		insights.CompletionRate = float64(insights.CompletedCount) / float64(insights.TotalGoals)
	}

	insights.AvgCompletionDays = averageCompletionDays(goals)
	insights.CategoryStats = categoryStats(goals)
	insights.MonthlyStats = monthlyStats(goals, now)
	insights.UpcomingDeadlines = upcomingDeadlines(goals, today)
	insights.OverdueGoals = overdueGoals(goals, today)
	insights.Streak = completionStreak(goals, today)
	insights.MostActiveCategory = mostActiveCategory(insights.CategoryStats)

	return insights
}

// averageCompletionDays measures how long completed goals took, in days from
// start date to completion date. Goals with no recorded completion timestamp
// are excluded from the average, not counted as zero.
func averageCompletionDays(goals []*model.Goal) float64 {
	var total int64
	count := 0
	for _, g := range goals {
		if g.Status != model.StatusCompleted || g.CompletedAt == nil {
			continue
		}
		total += int64(model.DayOf(*g.CompletedAt) - g.StartDate)
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

func categoryStats(goals []*model.Goal) []model.CategoryStats {
	byCategory := make(map[model.Category]*model.CategoryStats)
	for _, g := range goals {
		stats, ok := byCategory[g.Category]
		if !ok {
			stats = &model.CategoryStats{Category: g.Category}
			byCategory[g.Category] = stats
		}
		stats.TotalCount++
		switch g.Status {
		case model.StatusActive:
			stats.ActiveCount++
		case model.StatusCompleted:
			stats.CompletedCount++
		}
	}

	// Enumeration order, categories with zero goals excluded.
	result := make([]model.CategoryStats, 0, len(byCategory))
	for _, c := range model.Categories() {
		stats, ok := byCategory[c]
		if !ok {
			continue
		}
		stats.CompletionRate = float64(stats.CompletedCount) / float64(stats.TotalCount)
		result = append(result, *stats)
	}
	return result
}

// monthlyStats buckets goal lifecycle events into the trailing six calendar
// months, oldest first.
func monthlyStats(goals []*model.Goal, now time.Time) []model.MonthlyStats {
	result := make([]model.MonthlyStats, 0, monthsOfHistory)
	current := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := monthsOfHistory - 1; i >= 0; i-- {
		month := current.AddDate(0, -i, 0)
		stats := model.MonthlyStats{
			Year:  month.Year(),
			Month: month.Month(),
		}
		for _, g := range goals {
			if inMonth(g.CreatedAt, month) {
				stats.CreatedCount++
			}
			if g.CompletedAt != nil && inMonth(*g.CompletedAt, month) {
				stats.CompletedCount++
			}
			if g.AbandonedAt != nil && inMonth(*g.AbandonedAt, month) {
				stats.AbandonedCount++
			}
		}
		result = append(result, stats)
	}
	return result
}

// inMonth tests a timestamp, truncated to its calendar day, against the
// boundaries of the month starting at monthStart.
func inMonth(t time.Time, monthStart time.Time) bool {
	day := model.DayOf(t).Time()
	return !day.Before(monthStart) && day.Before(monthStart.AddDate(0, 1, 0))
}

func upcomingDeadlines(goals []*model.Goal, today model.Day) []*model.Goal {
	var result []*model.Goal
	for _, g := range goals {
		if g.Status == model.StatusActive && g.DueWithin(today, deadlineWindowDays) {
			result = append(result, g)
		}
	}
	sortByEndDate(result)
	return result
}

func overdueGoals(goals []*model.Goal, today model.Day) []*model.Goal {
	var result []*model.Goal
	for _, g := range goals {
		if g.Status == model.StatusActive && g.Overdue(today) {
			result = append(result, g)
		}
	}
	sortByEndDate(result)
	return result
}

func sortByEndDate(goals []*model.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		return *goals[i].EndDate < *goals[j].EndDate
	})
}

func completionStreak(goals []*model.Goal, today model.Day) model.StreakData {
	var days []model.Day
	for _, g := range goals {
		if g.Status == model.StatusCompleted && g.CompletedAt != nil {
			days = append(days, model.DayOf(*g.CompletedAt))
		}
	}
	return Streak(days, today)
}

// mostActiveCategory picks the category with the highest active-goal count.
// Ties break toward the earlier enumerated category; stats are already in
// enumeration order.
func mostActiveCategory(stats []model.CategoryStats) model.Category {
	var best model.Category
	bestCount := -1
	for _, s := range stats {
		if s.ActiveCount > bestCount {
			best = s.Category
			bestCount = s.ActiveCount
		}
	}
	return best
}

// BuildStatistics derives aggregate counts and the average progress fraction
// across the goal set. Goals with children contribute their child-completion
// rollup rather than their raw value; archived goals are excluded from the
// progress average.
func BuildStatistics(goals []*model.Goal) *model.GoalStatistics {
	stats := &model.GoalStatistics{TotalGoals: len(goals)}

	childTotals := make(map[int64]int)
	childCompleted := make(map[int64]int)
	for _, g := range goals {
		if g.ParentID == nil {
			continue
		}
		childTotals[*g.ParentID]++
		if g.Status == model.StatusCompleted {
			childCompleted[*g.ParentID]++
		}
	}

	var progressSum float64
	progressCount := 0
	for _, g := range goals {
		switch g.Status {
		case model.StatusActive:
			stats.ActiveGoals++
		case model.StatusCompleted:
			stats.CompletedGoals++
		case model.StatusAbandoned:
			stats.AbandonedGoals++
		case model.StatusArchived:
			stats.ArchivedGoals++
			continue
		}

		if total := childTotals[g.ID]; total > 0 {
			progressSum += ChildProgress(childCompleted[g.ID], total)
		} else {
			progressSum += Progress(g)
		}
		progressCount++
	}

	if progressCount > 0 {
		stats.AverageProgress = progressSum / float64(progressCount)
	}
	return stats
}
