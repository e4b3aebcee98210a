package delivery

import (
	"context"
	"log/slog"

	"github.com/sindegeologico/sindeform/pkg/health"
	"github.com/sindegeologico/sindeform/pkg/mailer"
	"github.com/sindegeologico/sindeform/pkg/mailer/postmark"
	"github.com/sindegeologico/sindeform/pkg/mailer/resend"
	"github.com/sindegeologico/sindeform/pkg/mailer/smtp"
)

// New validates cfg and builds the Sender of the active strategy.
func New(cfg Config, logger *slog.Logger) (mailer.Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Strategy {
	case StrategyPostmark:
		return postmark.New(cfg.Postmark), nil
	case StrategySMTP:
		return smtp.New(cfg.SMTP, smtp.WithLogger(logger)), nil
	case StrategySMTPFallback:
		return smtp.NewFallback(cfg.SMTP, smtp.WithLogger(logger)), nil
	default:
		return resend.New(cfg.Resend), nil
	}
}

// Healthcheck reports the configuration state of the active strategy.
// It never contacts the provider.
func Healthcheck(cfg Config) health.CheckFunc {
	return func(context.Context) error {
		return cfg.Validate()
	}
}
