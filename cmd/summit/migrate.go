package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/summitlabs/summit/internal/cli"
	"github.com/summitlabs/summit/internal/common"
	"github.com/summitlabs/summit/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Long: `Apply any pending schema migrations to the goal database. Other commands
migrate automatically; this command exists to migrate explicitly and to
inspect the current schema version.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show the current schema version without migrating")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close storage", nil)
		}
	}()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	statusOnly, _ := cmd.Flags().GetBool("status")
	if statusOnly {
		fmt.Printf("Schema version %d (expected %d)\n", version, storage.ExpectedSchemaVersion) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Database is at schema version %d", version))) //nolint:forbidigo // User-facing output
	return nil
}
