package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sindegeologico/sindeform/config"
	"github.com/sindegeologico/sindeform/middlewares"
	"github.com/sindegeologico/sindeform/pkg/composer"
	"github.com/sindegeologico/sindeform/pkg/logger"
	"github.com/sindegeologico/sindeform/pkg/relayclient"
	"github.com/sindegeologico/sindeform/pkg/snapshot"
)

// cliApp carries the configuration shared by every command.
type cliApp struct {
	envFiles []string
	store    string
	apiURL   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	app := &cliApp{}

	root := &cobra.Command{
		Use:           "sindeform",
		Short:         "SINDEGEOLÓGICO affiliation form composer and mail relay",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceVar(&app.envFiles, "env-file", nil, "Environment files to load (default .env)")
	flags.StringVar(&app.store, "store", "", "Snapshot store: directory, file://, sqlite:// or redis:// (overrides SINDEFORM_STORE)")
	flags.StringVar(&app.apiURL, "api", "", "Relay base URL (overrides API_BASE_URL)")

	root.AddCommand(
		newServeCmd(app),
		newFormCmd(app),
		newPdfCmd(app),
		newSendCmd(app),
		newVersionCmd(),
	)
	return root
}

func (a *cliApp) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return err
	}
	if a.store != "" {
		cfg.Client.Store = a.store
	}
	if a.apiURL != "" {
		cfg.Client.APIBaseURL = a.apiURL
	}

	a.cfg = cfg
	a.logger = logger.New(cfg.Log, cmd.ErrOrStderr(), middlewares.RequestIDExtractor())
	return nil
}

// openComposer loads the persisted form. The returned close func releases the store.
func (a *cliApp) openComposer(ctx context.Context) (*composer.Composer, func() error, error) {
	store, err := snapshot.Open(ctx, a.cfg.Client.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	relay := relayclient.New(a.cfg.Client.APIBaseURL, relayclient.WithTimeout(a.cfg.Client.Timeout))
	c := composer.New(store, relay, composer.WithLogger(a.logger))
	c.Load(ctx)
	return c, store.Close, nil
}
