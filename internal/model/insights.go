package model

import "time"

// GoalStatistics is an aggregate snapshot over the full goal set. It is
// computed on demand and never persisted.
type GoalStatistics struct {
	TotalGoals      int
	ActiveGoals     int
	CompletedGoals  int
	AbandonedGoals  int
	ArchivedGoals   int
	AverageProgress float64
}

// CategoryStats aggregates goal counts within a single category.
type CategoryStats struct {
	Category       Category
	TotalCount     int
	ActiveCount    int
	CompletedCount int
	CompletionRate float64
}

// MonthlyStats counts goal lifecycle events within one calendar month.
type MonthlyStats struct {
	Year           int
	Month          time.Month
	CreatedCount   int
	CompletedCount int
	AbandonedCount int
}

// Label renders the month as YYYY-MM.
func (m MonthlyStats) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// StreakData describes consecutive-day completion streaks.
type StreakData struct {
	LastDate      *Day
	CurrentStreak int
	LongestStreak int
	TotalDays     int
}

// GoalInsights is the full analytics report derived from a goal snapshot.
// Like GoalStatistics it is recomputed on every query.
type GoalInsights struct {
	MostActiveCategory Category
	CategoryStats      []CategoryStats
	MonthlyStats       []MonthlyStats
	UpcomingDeadlines  []*Goal
	OverdueGoals       []*Goal
	Streak             StreakData
	TotalGoals         int
	ActiveCount        int
	CompletedCount     int
	AbandonedCount     int
	CompletionRate     float64
	AvgCompletionDays  float64
}
