package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/sindegeologico/sindeform/pkg/form"
	"github.com/sindegeologico/sindeform/pkg/pdfdoc"
	"github.com/sindegeologico/sindeform/pkg/relayclient"
	"github.com/sindegeologico/sindeform/pkg/snapshot"
)

// Status texts reported by SendByEmail.
const (
	StatusSending  = "Enviando..."
	StatusSent     = "Correo enviado correctamente."
	StatusRejected = "No se pudo enviar el correo."
	StatusFailed   = "Error enviando correo."
)

// Mode is the editing state of the form.
type Mode int

const (
	// ModeEditable accepts field and signature edits.
	ModeEditable Mode = iota
	// ModeReview freezes the form and shows the saved preview.
	ModeReview
)

func (m Mode) String() string {
	if m == ModeReview {
		return "review"
	}
	return "editable"
}

// Relay delivers a composed PDF. *relayclient.Client implements it.
type Relay interface {
	SendPDF(ctx context.Context, req relayclient.MailRequest) (relayclient.Result, error)
}

// Composer holds the state of one form.
type Composer struct {
	mu      sync.Mutex
	store   snapshot.Store
	relay   Relay
	logger  *slog.Logger
	pdfOpts []pdfdoc.Option

	record  form.Record
	mode    Mode
	preview *form.Preview
	status  string
	sending bool
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger for recovered failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPDFOptions passes options to every render.
func WithPDFOptions(opts ...pdfdoc.Option) Option {
	return func(c *Composer) {
		c.pdfOpts = append(c.pdfOpts, opts...)
	}
}

// New creates a composer with a blank, editable form.
// relay may be nil when the form is only rendered locally.
func New(store snapshot.Store, relay Relay, opts ...Option) *Composer {
	c := &Composer{
		store:  store,
		relay:  relay,
		logger: slog.New(slog.DiscardHandler),
		record: form.Defaults(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load restores the persisted snapshot. A valid snapshot opens the form in
// review with its preview; a corrupt one is deleted and the form starts blank.
func (c *Composer) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record = form.Defaults()
	c.mode = ModeEditable
	c.preview = nil

	data, err := c.store.Get(ctx, snapshot.Key)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			c.logger.WarnContext(ctx, "snapshot unavailable", slog.Any("error", err))
		}
		return
	}

	record, err := form.Decode(data)
	if err != nil {
		c.logger.WarnContext(ctx, "discarding corrupt snapshot", slog.Any("error", err))
		if err := c.store.Delete(ctx, snapshot.Key); err != nil {
			c.logger.WarnContext(ctx, "delete corrupt snapshot", slog.Any("error", err))
		}
		return
	}

	c.record = form.Derive(record).Apply(record)
	preview := form.NewPreview(c.record)
	c.preview = &preview
	c.mode = ModeReview
}

// Record returns a copy of the current values.
func (c *Composer) Record() form.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// Mode returns the editing state.
func (c *Composer) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Preview returns the last saved preview, if any.
func (c *Composer) Preview() (form.Preview, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.preview == nil {
		return form.Preview{}, false
	}
	return *c.preview, true
}

// Status returns the last send status text.
func (c *Composer) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Sending reports whether a send is in flight.
func (c *Composer) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// UpdateField assigns a plain field and recomputes the derived ones.
// Derived and signature fields are read-only here.
func (c *Composer) UpdateField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeEditable {
		return ErrNotEditable
	}
	if form.IsDerived(name) || form.IsSignature(name) {
		if _, err := c.record.Get(name); err != nil {
			return err
		}
		return form.ErrReadOnlyField
	}
	if err := c.record.Set(name, value); err != nil {
		return err
	}
	if form.IsDependency(name) {
		c.record = form.Derive(c.record).Apply(c.record)
	}
	return nil
}

// UploadSignature reads an image into the slot. Content that is not an
// image is ignored without error. The affiliation slot also fills the
// authorization slot.
func (c *Composer) UploadSignature(ctx context.Context, slot form.Slot, r io.Reader, contentType string) error {
	if _, err := slot.Field(); err != nil {
		return err
	}
	if c.Mode() != ModeEditable {
		return ErrNotEditable
	}

	dataURL, err := form.ReadDataURL(r, contentType)
	if errors.Is(err, form.ErrNotImage) {
		c.logger.DebugContext(ctx, "ignoring non-image signature",
			slog.Int("slot", int(slot)),
			slog.String("content_type", contentType),
		)
		return nil
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeEditable {
		return ErrNotEditable
	}
	c.record, err = form.WithSignature(c.record, slot, dataURL)
	return err
}

// RemoveSignature clears the slot. Clearing the affiliation slot clears
// both.
func (c *Composer) RemoveSignature(slot form.Slot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeEditable {
		return ErrNotEditable
	}
	record, err := form.WithoutSignature(c.record, slot)
	if err != nil {
		return err
	}
	c.record = record
	return nil
}

// Save persists the form, switches to review and returns the preview.
func (c *Composer) Save(ctx context.Context) (form.Preview, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := form.Derive(c.record).Apply(c.record)
	data, err := form.Encode(record)
	if err != nil {
		return form.Preview{}, fmt.Errorf("encode form: %w", err)
	}
	if err := c.store.Put(ctx, snapshot.Key, data); err != nil {
		return form.Preview{}, fmt.Errorf("save form: %w", err)
	}

	preview := form.NewPreview(record)
	c.record = record
	c.preview = &preview
	c.mode = ModeReview
	c.status = ""
	return preview, nil
}

// Modify returns a reviewed form to editing. The preview is kept.
func (c *Composer) Modify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeEditable
}

// Reset restores the defaults and deletes the snapshot.
func (c *Composer) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record = form.Defaults()
	c.preview = nil
	c.mode = ModeEditable
	c.status = ""

	if err := c.store.Delete(ctx, snapshot.Key); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// RenderPdf composes the current form into a PDF document.
func (c *Composer) RenderPdf(ctx context.Context) (*pdfdoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pdfdoc.Render(c.Record(), c.pdfOpts...)
}

// DownloadPdf renders the form into dir under pdfdoc.FileName and returns the path.
func (c *Composer) DownloadPdf(ctx context.Context, dir string) (string, error) {
	doc, err := c.RenderPdf(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, pdfdoc.FileName)
	if err := os.WriteFile(path, doc.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

// WritePdf renders the form and streams it to w.
func (c *Composer) WritePdf(ctx context.Context, w io.Writer) (int64, error) {
	doc, err := c.RenderPdf(ctx)
	if err != nil {
		return 0, err
	}
	return doc.WriteTo(w)
}

// SendByEmail renders the form, posts it to the relay and returns the
// resulting status text, which Status also reports afterwards.
func (c *Composer) SendByEmail(ctx context.Context) string {
	c.setSending(true, StatusSending)

	status := c.send(ctx)

	c.setSending(false, status)
	return status
}

func (c *Composer) send(ctx context.Context) string {
	if c.relay == nil {
		return StatusFailed
	}

	record := c.Record()
	doc, err := c.RenderPdf(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "render pdf for email", slog.Any("error", err))
		return StatusFailed
	}

	res, err := c.relay.SendPDF(ctx, relayclient.MailRequest{
		PDFBase64: doc.Base64(),
		FileName:  pdfdoc.FileName,
		FormData:  &record,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "send pdf", slog.Any("error", err))

		var relayErr *relayclient.RelayError
		if errors.As(err, &relayErr) {
			if relayErr.Message != "" {
				return relayErr.Message
			}
			return StatusRejected
		}
		return StatusFailed
	}

	if res.Message == "" {
		return StatusSent
	}
	return res.Message
}

func (c *Composer) setSending(sending bool, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sending = sending
	c.status = status
}
