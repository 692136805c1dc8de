package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jan-server/catalog-api/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migrations",
	Long:  `Apply, roll back and inspect the SQL migrations bundled with the catalog service.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE:  runMigrateDown,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied migration version",
	RunE:  runMigrateStatus,
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, log, closeDB, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer closeDB()
	return database.Migrate(cmd.Context(), db, log)
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	steps, _ := cmd.Flags().GetInt("steps")
	db, log, closeDB, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer closeDB()
	return database.Rollback(cmd.Context(), db, steps, log)
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, _, closeDB, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	state, err := database.Status(cmd.Context(), db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "version: %d\nlatest:  %d\ndirty:   %t\n", state.Version, state.Latest, state.Dirty)
	if state.Version < state.Latest {
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) pending\n", state.Latest-state.Version)
	}
	return nil
}
