package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// MigrateCmd creates or alters the tables of every configured database.
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the schema of the production and test databases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := LoadConfig()
			logger := newLogger()

			primary, test, err := openDatabases(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = closeDatabases(primary, test) }()

			if err = migrateDatabases(primary, test); err != nil {
				return err
			}

			color.Green("migrated %s", cfg.DBName)
			if test != nil {
				color.Green("migrated %s", cfg.TestDBName)
			}
			return nil
		},
	}
}
