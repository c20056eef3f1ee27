package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/probekit/internal/api"
	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/config"
	"github.com/dmitrymomot/probekit/pkg/httpserver"
	"github.com/dmitrymomot/probekit/pkg/logger"
	"github.com/dmitrymomot/probekit/pkg/memo"
	"github.com/dmitrymomot/probekit/pkg/report"
)

// serviceConfig is everything serve reads from the environment.
type serviceConfig struct {
	Log      logger.Config
	HTTP     httpserver.Config
	Memo     memo.Config
	Report   report.Config
	Ceilings classify.Ceilings
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the classification HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var cfg serviceConfig
		if err := config.Load(&cfg); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg serviceConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.New(
		logger.FromConfig(cfg.Log),
		logger.WithContextExtractors(api.RequestIDExtractor()),
	)
	logger.SetAsDefault(log)

	store, closeStore, err := memo.Open(ctx, cfg.Memo)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.ErrorContext(ctx, "failed to close memo store", logger.Error(err))
		}
	}()

	reporter, closeReport, err := report.Open(ctx, cfg.Report, log.With(logger.Component("report")))
	if err != nil {
		return err
	}
	defer closeReport()

	classifier := classify.New(
		classify.WithCeilings(cfg.Ceilings),
		classify.WithLogger(log.With(logger.Component("classify"))),
	)
	m := memo.New(store,
		memo.WithClassifier(classifier),
		memo.WithLogger(log.With(logger.Component("memo"))),
	)

	handler := api.NewHandler(m,
		api.WithReporter(reporter),
		api.WithLogger(log.With(logger.Component("api"))),
	)
	router := api.NewRouter(handler, log,
		httpserver.Check{Name: "memo", Fn: m.Ping},
		httpserver.Check{Name: "report", Fn: reporter.Ping},
	)

	log.InfoContext(ctx, "starting probed",
		slog.String("memo_backend", cfg.Memo.Backend),
		slog.String("report_sink", cfg.Report.Sink),
	)
	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, router); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
