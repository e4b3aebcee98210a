// Package logger builds the structured slog loggers used by the relay and
// the CLI.
//
// Records are JSON. Context extractors add request-scoped attributes such
// as the request id, and a Sentry handler receives warnings and errors
// when SENTRY_DSN is configured:
//
//	log := logger.New(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "mail sent", slog.String("to", to))
package logger
