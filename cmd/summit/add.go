package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/summitlabs/summit/internal/cli"
	"github.com/summitlabs/summit/internal/engine"
	"github.com/summitlabs/summit/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal or sub-goal",
		Long: `Create a new goal. With --parent the goal becomes a sub-goal and inherits
the parent's category and date window for any field you leave unset.`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().Int64P("parent", "p", 0, "Parent goal id (creates a sub-goal)")
	cmd.Flags().StringP("category", "c", "", "Category (career, finance, health, learning, relationship, lifestyle, hobby, other)")
	cmd.Flags().String("type", "", "Free-form goal type label")
	cmd.Flags().String("progress-type", "", "Progress type (numeric, percentage)")
	cmd.Flags().Float64P("target", "t", 0, "Target value for numeric goals")
	cmd.Flags().StringP("unit", "u", "", "Display unit for the target (e.g. km, books)")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().String("end", "", "End date / deadline (YYYY-MM-DD)")
	cmd.Flags().StringP("description", "d", "", "Longer description")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	params, parentID, err := addParams(cmd, args[0])
	if err != nil {
		return err
	}

	eng, cleanup, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var id int64
	if parentID > 0 {
		id, err = eng.CreateSubGoal(ctx, parentID, params)
	} else {
		id, err = eng.CreateGoal(ctx, params)
	}
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Debug("goal created", "id", id, "parent", parentID)
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created goal #%d %q", id, params.Title))) //nolint:forbidigo // User-facing output
	return nil
}

func addParams(cmd *cobra.Command, title string) (engine.NewGoalParams, int64, error) {
	var params engine.NewGoalParams
	params.Title = title

	parentID, _ := cmd.Flags().GetInt64("parent")

	category, err := parseCategory(mustString(cmd, "category"))
	if err != nil {
		return params, 0, err
	}
	params.Category = category
	// Root goals without an explicit category land in OTHER; sub-goals
	// inherit from their parent instead.
	if category == "" && parentID == 0 {
		params.Category = model.CategoryOther
	}

	progressType, err := parseProgressType(mustString(cmd, "progress-type"))
	if err != nil {
		return params, 0, err
	}
	params.ProgressType = progressType

	if target, _ := cmd.Flags().GetFloat64("target"); target > 0 {
		params.TargetValue = &target
	}

	start, err := parseDayFlag(mustString(cmd, "start"))
	if err != nil {
		return params, 0, err
	}
	if start != nil {
		params.StartDate = *start
	}

	end, err := parseDayFlag(mustString(cmd, "end"))
	if err != nil {
		return params, 0, err
	}
	params.EndDate = end

	params.GoalType = mustString(cmd, "type")
	params.Unit = mustString(cmd, "unit")
	params.Description = mustString(cmd, "description")

	return params, parentID, nil
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
