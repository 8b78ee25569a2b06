package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/summitlabs/summit/internal/cli"
	"github.com/summitlabs/summit/internal/engine"
)

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a goal as completed",
		Long: `Mark a goal as completed. If every sibling is completed too, the parent
completes as well, all the way up the hierarchy.`,
		Args: cobra.ExactArgs(1),
		RunE: statusRunner("Completed", func(ctx context.Context, e *engine.Engine, id int64) error {
			return e.CompleteGoal(ctx, id)
		}),
	}
}

func abandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a goal",
		Args:  cobra.ExactArgs(1),
		RunE: statusRunner("Abandoned", func(ctx context.Context, e *engine.Engine, id int64) error {
			return e.AbandonGoal(ctx, id)
		}),
	}
}

func reactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate <id>",
		Short: "Return an abandoned or archived goal to active",
		Args:  cobra.ExactArgs(1),
		RunE: statusRunner("Reactivated", func(ctx context.Context, e *engine.Engine, id int64) error {
			return e.ReactivateGoal(ctx, id)
		}),
	}
}

func archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a goal",
		Args:  cobra.ExactArgs(1),
		RunE: statusRunner("Archived", func(ctx context.Context, e *engine.Engine, id int64) error {
			return e.ArchiveGoal(ctx, id)
		}),
	}
}

func statusRunner(verb string, op func(context.Context, *engine.Engine, int64) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := parseGoalID(args[0])
		if err != nil {
			return err
		}

		eng, cleanup, err := initEngine(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := op(ctx, eng, id); err != nil {
			return err
		}

		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s goal #%d", verb, id))) //nolint:forbidigo // User-facing output
		return nil
	}
}
