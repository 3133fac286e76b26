package main

import (
	"github.com/shenikar/incident_reporting_system/internal/config"
	"github.com/shenikar/incident_reporting_system/migrations"
	"github.com/shenikar/incident_reporting_system/pkg/logger"
	"github.com/shenikar/incident_reporting_system/pkg/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			log.Info("Running database migrations...")
			if err := postgres.MigrateUp(migrations.FS, cfg.DatabaseURL); err != nil {
				return err
			}
			log.Info("Database migrations applied successfully")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)

			log.WithField("steps", steps).Warn("Rolling back database migrations...")
			if err := postgres.MigrateDown(migrations.FS, cfg.DatabaseURL, steps); err != nil {
				return err
			}
			log.Info("Database migrations rolled back")
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 rolls back all")

	cmd.AddCommand(up, down)
	return cmd
}
