package main

import (
	"github.com/spf13/cobra"

	"github.com/sindegeologico/sindeform/pkg/composer"
)

func newPdfCmd(app *cliApp) *cobra.Command {
	var (
		out    string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Render the stored form to formulario-sindegeologico.pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withComposer(cmd, func(c *composer.Composer) error {
				if stdout {
					_, err := c.WritePdf(cmd.Context(), cmd.OutOrStdout())
					return err
				}

				dir := out
				if dir == "" {
					dir = app.cfg.Client.OutputDir
				}
				path, err := c.DownloadPdf(cmd.Context(), dir)
				if err != nil {
					return err
				}
				cmd.Println(path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (overrides SINDEFORM_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write the PDF to standard output")
	return cmd
}
