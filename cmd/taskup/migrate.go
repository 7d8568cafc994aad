package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskup/internal/config"
	pgInfra "github.com/fastygo/taskup/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Postgres storage schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, zapLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	if cfg.Storage.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate needs STORAGE_DRIVER=%s, got %q", config.DriverPostgres, cfg.Storage.Driver)
	}
	cfg.Migrations.Enabled = true
	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}
