package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/summitlabs/summit/internal/model"
)

const progressBarWidth = 20

// ProgressBar renders a fixed-width textual progress bar for a fraction in [0,1].
func ProgressBar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*progressBarWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
}

// StatusGlyph returns the one-character marker for a goal status.
func StatusGlyph(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return SuccessStyle.Render(SuccessIcon)
	case model.StatusAbandoned:
		return SubtleStyle.Render(AbandonedGlyph)
	case model.StatusArchived:
		return SubtleStyle.Render(ArchivedGlyph)
	default:
		return ActiveGlyph
	}
}

// GoalLine holds one goal plus its derived display values.
type GoalLine struct {
	Goal     *model.Goal
	Progress float64
	Health   int
}

// RenderGoalTree renders the goal hierarchy as an indented tree, children
// under their parents in id order.
func RenderGoalTree(lines []GoalLine) string {
	byParent := make(map[int64][]GoalLine)
	var roots []GoalLine
	for _, line := range lines {
		if line.Goal.ParentID == nil {
			roots = append(roots, line)
		} else {
			byParent[*line.Goal.ParentID] = append(byParent[*line.Goal.ParentID], line)
		}
	}
	sortLines(roots)
	for _, children := range byParent {
		sortLines(children)
	}

	var b strings.Builder
	for _, root := range roots {
		renderSubtree(&b, root, byParent, 0)
	}
	return b.String()
}

func sortLines(lines []GoalLine) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].Goal.ID < lines[j].Goal.ID })
}

func renderSubtree(b *strings.Builder, line GoalLine, byParent map[int64][]GoalLine, depth int) {
	g := line.Goal
	indent := strings.Repeat("  ", depth)
	deadline := ""
	if g.EndDate != nil {
		deadline = SubtleStyle.Render(" due " + g.EndDate.Format())
	}
	fmt.Fprintf(b, "%s%s #%d %s  %s %3.0f%%  health %d%s\n",
		indent, StatusGlyph(g.Status), g.ID, BoldStyle.Render(g.Title),
		ProgressFilledStyle.Render(ProgressBar(line.Progress)), line.Progress*100,
		line.Health, deadline)

	for _, child := range byParent[g.ID] {
		renderSubtree(b, child, byParent, depth+1)
	}
}

// RenderInsights renders the full analytics report.
func RenderInsights(insights *model.GoalInsights) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goals: %d total, %d active, %d completed, %d abandoned\n",
		insights.TotalGoals, insights.ActiveCount, insights.CompletedCount, insights.AbandonedCount)
	fmt.Fprintf(&b, "Completion rate: %.0f%%\n", insights.CompletionRate*100)
	if insights.AvgCompletionDays > 0 {
		fmt.Fprintf(&b, "Average completion time: %.1f days\n", insights.AvgCompletionDays)
	}

	if len(insights.CategoryStats) > 0 {
		b.WriteString("\n" + BoldStyle.Render("By category") + "\n")
		for _, s := range insights.CategoryStats {
			fmt.Fprintf(&b, "  %-13s %2d goals  %2d active  %2d done  %3.0f%%\n",
				s.Category, s.TotalCount, s.ActiveCount, s.CompletedCount, s.CompletionRate*100)
		}
		fmt.Fprintf(&b, "  Most active: %s\n", insights.MostActiveCategory)
	}

	if len(insights.MonthlyStats) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Last six months") + "\n")
		for _, m := range insights.MonthlyStats {
			fmt.Fprintf(&b, "  %s  +%d created  %d completed  %d abandoned\n",
				m.Label(), m.CreatedCount, m.CompletedCount, m.AbandonedCount)
		}
	}

	if len(insights.UpcomingDeadlines) > 0 {
		b.WriteString("\n" + WarningStyle.Render("Due within a week") + "\n")
		for _, g := range insights.UpcomingDeadlines {
			fmt.Fprintf(&b, "  #%d %s (due %s)\n", g.ID, g.Title, g.EndDate.Format())
		}
	}

	if len(insights.OverdueGoals) > 0 {
		b.WriteString("\n" + ErrorStyle.Render("Overdue") + "\n")
		for _, g := range insights.OverdueGoals {
			fmt.Fprintf(&b, "  #%d %s (was due %s)\n", g.ID, g.Title, g.EndDate.Format())
		}
	}

	fmt.Fprintf(&b, "\n%s Streak: %d day(s) current, %d longest, %d total completion days\n",
		FlameIcon, insights.Streak.CurrentStreak, insights.Streak.LongestStreak, insights.Streak.TotalDays)

	return RenderBox("Goal insights", strings.TrimRight(b.String(), "\n"))
}

// RenderStatistics renders the compact statistics summary.
func RenderStatistics(stats *model.GoalStatistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total:      %d\n", stats.TotalGoals)
	fmt.Fprintf(&b, "Active:     %d\n", stats.ActiveGoals)
	fmt.Fprintf(&b, "Completed:  %d\n", stats.CompletedGoals)
	fmt.Fprintf(&b, "Abandoned:  %d\n", stats.AbandonedGoals)
	fmt.Fprintf(&b, "Archived:   %d\n", stats.ArchivedGoals)
	fmt.Fprintf(&b, "Average progress: %s %.0f%%",
		ProgressFilledStyle.Render(ProgressBar(stats.AverageProgress)), stats.AverageProgress*100)
	return RenderBox("Goal statistics", b.String())
}
