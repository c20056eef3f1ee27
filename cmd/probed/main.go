package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/probekit/pkg/config"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "probed",
	Short: "Classify browser-like environments by their capabilities",
	Long: `probed assigns an environment snapshot to a browser family, bounds its
version, and checks the self-reported signature against what was observed.

Configuration is read from the environment (HTTP_*, LOG_*, MEMO_*, REDIS_*,
REPORT_*, PG_*, PROBE_LATEST_*), optionally preloaded from .env files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if len(envFiles) == 0 {
			return nil
		}
		return config.LoadEnv(envFiles...)
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
