package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/summitlabs/summit/internal/cli"
)

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show goal analytics",
		Long: `Derive analytics from the full goal set: completion rate, category
breakdowns, monthly cohorts, upcoming and overdue deadlines, and streaks.
Everything is recomputed from scratch on each run.`,
		RunE: runInsights,
	}
}

func runInsights(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, cleanup, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	insights, err := eng.Insights(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute insights: %w", err)
	}

	if insights.TotalGoals == 0 {
		fmt.Println(cli.SubtleStyle.Render("No goals yet. Use 'summit add' to create one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.RenderInsights(insights)) //nolint:forbidigo // User-facing output
	return nil
}
