package main

import (
	"fmt"

	"github.com/labaid/labaid-api/internal/database"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

func gooseCommand(use, short, command string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := database.OpenSQL(cmd.Context(), &cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db, command, args...); err != nil {
				return err
			}
			if command == "up" || command == "down" {
				fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed\n", command)
			}
			return nil
		},
	}
}

var createMigrationCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new SQL migration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := goose.Create(nil, migrationsDir, args[0], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		return nil
	},
}

func init() {
	createMigrationCmd.Flags().StringVar(&migrationsDir, "dir", "./migrations", "Migrations directory")
	migrateCmd.AddCommand(
		createMigrationCmd,
		gooseCommand("up", "Apply all pending migrations", "up", cobra.NoArgs),
		gooseCommand("down", "Roll back the latest migration", "down", cobra.NoArgs),
		gooseCommand("status", "Show applied and pending migrations", "status", cobra.NoArgs),
		gooseCommand("version", "Print the current schema version", "version", cobra.NoArgs),
	)
	rootCmd.AddCommand(migrateCmd)
}
