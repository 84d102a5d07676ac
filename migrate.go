package main

import (
	"fittrack/internal/config"
	"fittrack/internal/database"
	"fittrack/internal/observability"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)

			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Database schema is up to date")
			return nil
		},
	}
}

// openDB loads the config, connects and migrates.
func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg, observability.NewLogger(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, err
	}
	return db, nil
}
