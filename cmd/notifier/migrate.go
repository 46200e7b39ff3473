package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pgInfra "github.com/fastygo/tasknotify/internal/infrastructure/postgres"
)

func newMigrateCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, zapLogger, err := bootstrap()
			if err != nil {
				return err
			}
			defer zapLogger.Sync()

			mcfg := cfg.Migrations
			mcfg.Enabled = true
			if path != "" {
				mcfg.Path = path
			}
			if err := pgInfra.RunMigrations(cfg.Database, mcfg, zapLogger); err != nil {
				return fmt.Errorf("migrations failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "migrations directory (overrides MIGRATIONS_PATH)")
	return cmd
}
