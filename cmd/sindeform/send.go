package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sindegeologico/sindeform/pkg/composer"
)

func newSendCmd(app *cliApp) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Mail the stored form through the relay",
		Long:  "Renders the form and posts it to API_BASE_URL. With --out the PDF is also written locally, concurrently with the send.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withComposer(cmd, func(c *composer.Composer) error {
				var (
					path   string
					status string
				)

				g, ctx := errgroup.WithContext(cmd.Context())
				if out != "" {
					g.Go(func() error {
						var err error
						path, err = c.DownloadPdf(ctx, out)
						return err
					})
				}
				g.Go(func() error {
					status = c.SendByEmail(ctx)
					return nil
				})
				if err := g.Wait(); err != nil {
					return err
				}

				if path != "" {
					cmd.Println(path)
				}
				cmd.Println(status)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Also write the PDF into this directory")
	return cmd
}
