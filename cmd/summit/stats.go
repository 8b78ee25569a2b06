package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/summitlabs/summit/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate goal statistics",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, cleanup, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := eng.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	fmt.Println(cli.RenderStatistics(stats)) //nolint:forbidigo // User-facing output
	return nil
}
