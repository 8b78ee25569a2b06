package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/summitlabs/summit/internal/cli"
	"github.com/summitlabs/summit/internal/engine"
	"github.com/summitlabs/summit/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the goal hierarchy",
		Long: `Display all goals as a tree with progress bars, status markers, and health
scores. Sub-goals are indented under their parents.`,
		RunE: runList,
	}

	cmd.Flags().StringP("status", "s", "", "Only show goals with this status (active, completed, abandoned, archived)")
	cmd.Flags().StringP("category", "c", "", "Only show goals in this category")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	statusFilter, categoryFilter, err := listFilters(cmd)
	if err != nil {
		return err
	}

	eng, cleanup, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	goals, err := eng.AllGoals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	today := model.DayOf(time.Now())
	var lines []cli.GoalLine
	for _, g := range goals {
		if statusFilter != "" && g.Status != statusFilter {
			continue
		}
		if categoryFilter != "" && g.Category != categoryFilter {
			continue
		}

		progress, err := eng.GoalProgress(ctx, g)
		if err != nil {
			return fmt.Errorf("failed to compute progress for goal %d: %w", g.ID, err)
		}
		lines = append(lines, cli.GoalLine{
			Goal:     g,
			Progress: progress,
			Health:   engine.Health(g, progress, today),
		})
	}

	if len(lines) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No goals found. Use 'summit add' to create one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle("Goals"))  //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderGoalTree(lines)) //nolint:forbidigo // User-facing output
	return nil
}

func listFilters(cmd *cobra.Command) (model.Status, model.Category, error) {
	status, err := parseStatus(mustString(cmd, "status"))
	if err != nil {
		return "", "", err
	}

	category, err := parseCategory(mustString(cmd, "category"))
	if err != nil {
		return "", "", err
	}
	return status, category, nil
}
