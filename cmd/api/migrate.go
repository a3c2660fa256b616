package main

import (
	"github.com/spf13/cobra"

	"billingapi/internal/database"
	"billingapi/internal/database/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing collection tables and indexes",
	Example: `  # Apply the schema, then exit
  billingapi migrate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewPostgres(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return migration.EnsureMigrated(cmd.Context(), db, cfg.Database.Host)
	},
}
