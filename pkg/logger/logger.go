package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// ErrFlushTimeout is returned by Flush when Sentry events are still queued.
var ErrFlushTimeout = errors.New("logger: sentry flush timed out")

const defaultFlushTimeout = 2 * time.Second

// New returns a JSON logger writing to w (stdout when nil).
// When cfg.SentryDSN is set, warnings and errors are also shipped to Sentry;
// a failed Sentry init degrades to the JSON handler alone.
func New(cfg Config, w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	level := ParseLevel(cfg.Level)
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	if cfg.SentryDSN == "" {
		return slog.New(NewContextHandler(jsonHandler, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(jsonHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(jsonHandler, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(newMultiHandler(jsonHandler, sentryHandler), extractors...))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Flush waits for queued Sentry events until ctx expires, or two seconds
// when ctx has no deadline. Use it as a shutdown hook when SentryDSN is set.
func Flush(ctx context.Context) error {
	timeout := defaultFlushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !sentry.Flush(timeout) {
		return ErrFlushTimeout
	}
	return nil
}
