package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/summitlabs/summit/internal/cli"
	"github.com/summitlabs/summit/internal/common"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal and all of its sub-goals",
		Long: `Delete a goal. Sub-goals are deleted with it, and the former parent's
progress is recomputed from its remaining children.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	goal, err := eng.Goal(ctx, id)
	if err != nil {
		return err
	}
	if goal == nil {
		return common.NewUserError(fmt.Sprintf("Goal #%d does not exist", id), common.ErrNotFound)
	}

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		children, err := eng.Children(ctx, id)
		if err != nil {
			return err
		}
		prompt := fmt.Sprintf("Delete goal #%d %q", id, goal.Title)
		if len(children) > 0 {
			prompt += fmt.Sprintf(" and its %d sub-goal(s)", len(children))
		}
		if !confirm(prompt + "? [y/N] ") {
			fmt.Println(cli.SubtleStyle.Render("Aborted.")) //nolint:forbidigo // User-facing output
			return nil
		}
	}

	if err := eng.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	common.LogInfo("deleted goal", common.Fields{"id": id})

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted goal #%d", id))) //nolint:forbidigo // User-facing output
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt) //nolint:forbidigo // User-facing output
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
