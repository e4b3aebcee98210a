package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sindegeologico/sindeform"
	"github.com/sindegeologico/sindeform/handlers"
	"github.com/sindegeologico/sindeform/middlewares"
	"github.com/sindegeologico/sindeform/pkg/delivery"
	"github.com/sindegeologico/sindeform/pkg/logger"
	"github.com/sindegeologico/sindeform/pkg/mailer"
)

func newServeCmd(app *cliApp) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mail relay",
		Long: `Serves GET /api/health, GET /api/health/ready and POST /api/send-pdf.
The delivery strategy comes from MAIL_STRATEGY (resend, postmark, smtp, smtp-fallback).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				app.cfg.Server.Port = port
			}
			return runServe(cmd, app)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, app *cliApp) error {
	cfg := app.cfg
	log := app.logger

	var m *mailer.Mailer
	sender, err := delivery.New(cfg.Mail, log)
	if err != nil {
		// Requests answer with the configuration message until this is fixed.
		log.Warn("mail delivery not configured",
			slog.String("strategy", string(cfg.Mail.Strategy)),
			slog.Any("error", err),
		)
	} else {
		m = mailer.New(sender, mailer.NewRenderer(mailer.Templates()), cfg.Mail.Mailer)
	}

	relay := handlers.NewRelay(m, cfg.Mail, handlers.WithLocation(cfg.Server.Location()))

	server := sindeform.New(
		sindeform.WithLogger(log),
		sindeform.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.Server.CORSAllowOrigins...)),
			middlewares.BodyLimit(cfg.Server.BodyLimit),
			middlewares.Timeout(cfg.Server.RequestTimeout),
		),
		sindeform.WithHandlers(relay),
	)

	opts := []sindeform.RunOption{
		sindeform.WithContext(cmd.Context()),
		sindeform.ShutdownTimeout(cfg.Server.ShutdownTimeout),
	}
	if cfg.Log.SentryDSN != "" {
		opts = append(opts, sindeform.ShutdownHook(logger.Flush))
	}

	log.Info("mail relay configured",
		slog.String("strategy", string(cfg.Mail.Strategy)),
		slog.String("to", cfg.Mail.Mailer.To),
	)
	return server.Run(cfg.Server.Addr(), opts...)
}
