package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/summitlabs/summit/internal/cli"
	"github.com/summitlabs/summit/internal/model"
)

func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <value>",
		Short: "Record progress on a goal",
		Long: `Record a new progress value for a goal. A numeric goal that reaches its
target completes automatically, and completion rolls up to its parents.`,
		Args: cobra.ExactArgs(2),
		RunE: runProgress,
	}
}

func runProgress(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseGoalID(args[0])
	if err != nil {
		return err
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid progress value %q", args[1])
	}

	eng, cleanup, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.UpdateProgress(ctx, id, value); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	goal, err := eng.Goal(ctx, id)
	if err != nil {
		return err
	}
	if goal == nil {
		return nil
	}

	if goal.Status == model.StatusCompleted {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Goal #%d %q reached its target!", id, goal.Title))) //nolint:forbidigo // User-facing output
		return nil
	}

	progress, err := eng.GoalProgress(ctx, goal)
	if err != nil {
		return err
	}
	fmt.Printf("%s %.0f%%\n", cli.ProgressFilledStyle.Render(cli.ProgressBar(progress)), progress*100) //nolint:forbidigo // User-facing output
	return nil
}
