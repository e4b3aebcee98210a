package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a new Mailer with the given sender and renderer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams contains parameters for sending a templated email.
type SendParams struct {
	To       string // Recipient; falls back to Config.To
	Template string // Template filename (e.g., "affiliation.md")
	Data     any    // Template data

	// Optional overrides
	Subject     string       // Override template subject
	Layout      string       // Override default layout
	From        string       // Override default sender
	ReplyTo     string       // Reply-to address
	Attachments []Attachment // File attachments
}

// Recipient returns the address a message with the given override goes to.
func (m *Mailer) Recipient(to string) string {
	if to != "" {
		return to
	}
	return m.config.To
}

// Send renders a template and sends an email.
// Subject resolution: params.Subject > template metadata > config fallback.
func (m *Mailer) Send(ctx context.Context, params SendParams) (Receipt, error) {
	to := m.Recipient(params.To)
	if to == "" {
		return Receipt{}, ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return Receipt{}, errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		if s, ok := result.Metadata["Subject"].(string); ok && s != "" {
			subject = s
		} else {
			subject = m.config.FallbackSubject
		}
	}
	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return Receipt{}, errors.Join(ErrRenderFailed, err)
	}

	from := params.From
	if from == "" {
		from = m.config.From
	}

	return m.SendRaw(ctx, &Email{
		To:          []string{to},
		From:        from,
		Subject:     subject,
		HTML:        result.HTML,
		Text:        result.Text,
		ReplyTo:     params.ReplyTo,
		Attachments: params.Attachments,
	})
}

// SendRaw sends a pre-built email without template rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) (Receipt, error) {
	switch {
	case len(email.To) == 0:
		return Receipt{}, ErrNoRecipient
	case email.From == "":
		return Receipt{}, ErrNoSender
	case email.Subject == "":
		return Receipt{}, ErrNoSubject
	case email.HTML == "" && email.Text == "":
		return Receipt{}, ErrNoContent
	}

	receipt, err := m.sender.Send(ctx, email)
	if err != nil {
		return Receipt{}, errors.Join(ErrSendFailed, err)
	}
	return receipt, nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
