package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killallgit/labeler/internal/database"
	"github.com/killallgit/labeler/internal/models"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Manage the video registry schema.

Available subcommands:
  up      - Create or update the registry tables
  status  - Show which registry tables exist`,
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Create or update the registry tables",
		Long: `Apply the registry schema to the configured database.

Migrations are additive: missing tables, columns and indexes are created,
existing data is left alone.`,
		RunE: runMigrateUp,
	}
	status := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runMigrateStatus,
	}
	cmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")

	cmd.AddCommand(up, status)
	return cmd
}

// registryModels lists every table the registry owns
var registryModels = []any{&models.Video{}}

func openRegistry() (*database.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("database path is not configured")
	}
	return database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db, err := openRegistry()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		return printMigrationStatus(cmd, db)
	}

	if err := db.Migrate(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Migrations applied successfully")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openRegistry()
	if err != nil {
		return err
	}
	defer db.Close()
	return printMigrationStatus(cmd, db)
}

func printMigrationStatus(cmd *cobra.Command, db *database.DB) error {
	out := cmd.OutOrStdout()
	for _, m := range registryModels {
		state := "pending"
		if db.Migrator().HasTable(m) {
			state = "applied"
		}
		stmt := db.Model(m).Statement
		if err := stmt.Parse(m); err != nil {
			return err
		}
		fmt.Fprintf(out, "%-12s %s\n", stmt.Schema.Table, state)
	}
	return nil
}
