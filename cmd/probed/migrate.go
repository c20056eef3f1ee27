package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/probekit/pkg/config"
	"github.com/dmitrymomot/probekit/pkg/logger"
	"github.com/dmitrymomot/probekit/pkg/report"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the report schema to Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			pgCfg  report.PGConfig
			logCfg logger.Config
		)
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		if err := config.Load(&logCfg); err != nil {
			return err
		}
		log := logger.New(logger.FromConfig(logCfg))

		ctx := cmd.Context()
		pool, err := report.ConnectPG(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := report.Migrate(ctx, pool, pgCfg, log); err != nil {
			return err
		}
		log.InfoContext(ctx, "report schema is up to date")
		return nil
	},
}
