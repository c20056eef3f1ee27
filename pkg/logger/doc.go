// Package logger builds structured slog loggers for probekit services.
//
// New returns a *slog.Logger configured by functional options: output format
// (JSON or text), level, static attributes and ContextExtractor callbacks that
// pull request-scoped values such as request IDs out of the context of every
// record. Presets per environment (WithDevelopment, WithStaging,
// WithProduction) and FromConfig cover the usual service setup:
//
//	var cfg logger.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	log := logger.New(logger.FromConfig(cfg))
//	logger.SetAsDefault(log)
//
// Attribute helpers keep key names consistent across packages:
//
//	log.InfoContext(ctx, "environment classified",
//	    logger.EnvironmentID(id),
//	    logger.Family("chrome"),
//	    logger.Signature(ua),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
