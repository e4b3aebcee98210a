package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sindegeologico/sindeform/pkg/composer"
	"github.com/sindegeologico/sindeform/pkg/form"
)

// errBadAssignment is returned for "form set" arguments without "=".
var errBadAssignment = errors.New("expected field=value")

func newFormCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Edit the stored affiliation form",
		Long: `Shows, edits, saves and resets the affiliation form kept in the snapshot store.
Every edit saves the form again, so the stored copy is always ready for review.`,
	}

	var slot int

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the form with signatures redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withComposer(cmd, func(c *composer.Composer) error {
				return printForm(cmd.OutOrStdout(), c)
			})
		},
	}

	set := &cobra.Command{
		Use:   "set field=value...",
		Short: "Assign form fields and save",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withComposer(cmd, func(c *composer.Composer) error {
				c.Modify()
				for _, arg := range args {
					name, value, ok := strings.Cut(arg, "=")
					if !ok {
						return fmt.Errorf("%q: %w", arg, errBadAssignment)
					}
					if err := c.UpdateField(strings.TrimSpace(name), value); err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
				}
				return saveAndPrint(cmd, c)
			})
		},
	}

	sign := &cobra.Command{
		Use:   "sign image",
		Short: "Load a signature image and save",
		Long:  "Slot 1 also fills slot 2. Files that are not images are ignored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withComposer(cmd, func(c *composer.Composer) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()

				contentType, err := sniffContentType(f)
				if err != nil {
					return err
				}
				if !form.IsImageType(contentType) {
					cmd.PrintErrf("%s no es una imagen; se ignoró.\n", args[0])
				}

				c.Modify()
				if err := c.UploadSignature(cmd.Context(), form.Slot(slot), f, contentType); err != nil {
					return err
				}
				return saveAndPrint(cmd, c)
			})
		},
	}
	sign.Flags().IntVar(&slot, "slot", int(form.SlotAffiliation), "Signature slot (1 or 2)")

	unsign := &cobra.Command{
		Use:   "unsign",
		Short: "Remove a signature and save",
		Long:  "Removing slot 1 also clears slot 2.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withComposer(cmd, func(c *composer.Composer) error {
				c.Modify()
				if err := c.RemoveSignature(form.Slot(slot)); err != nil {
					return err
				}
				return saveAndPrint(cmd, c)
			})
		},
	}
	unsign.Flags().IntVar(&slot, "slot", int(form.SlotAffiliation), "Signature slot (1 or 2)")

	save := &cobra.Command{
		Use:   "save",
		Short: "Save the form for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withComposer(cmd, func(c *composer.Composer) error {
				return saveAndPrint(cmd, c)
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear the form and delete the stored copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withComposer(cmd, func(c *composer.Composer) error {
				if err := c.Reset(cmd.Context()); err != nil {
					return err
				}
				cmd.Println("Formulario reiniciado.")
				return nil
			})
		},
	}

	cmd.AddCommand(show, set, sign, unsign, save, reset)
	return cmd
}

func (a *cliApp) withComposer(cmd *cobra.Command, fn func(*composer.Composer) error) error {
	c, closeStore, err := a.openComposer(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(c)
}

func saveAndPrint(cmd *cobra.Command, c *composer.Composer) error {
	if _, err := c.Save(cmd.Context()); err != nil {
		return err
	}
	return printForm(cmd.OutOrStdout(), c)
}

// formView is the JSON printed by "form show".
type formView struct {
	Mode string       `json:"mode"`
	Form form.Preview `json:"form"`
}

func printForm(w io.Writer, c *composer.Composer) error {
	preview, ok := c.Preview()
	if !ok || c.Mode() == composer.ModeEditable {
		preview = form.NewPreview(c.Record())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(formView{Mode: c.Mode().String(), Form: preview})
}

// sniffContentType detects the MIME type from the first bytes and rewinds f.
func sniffContentType(f *os.File) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", f.Name(), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s: %w", f.Name(), err)
	}
	return http.DetectContentType(head[:n]), nil
}
