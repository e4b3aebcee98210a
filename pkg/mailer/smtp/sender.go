package smtp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/mail"

	"github.com/go-gomail/gomail"

	"github.com/sindegeologico/sindeform/pkg/mailer"
)

// Sender implements mailer.Sender over SMTP. It tries its transports in
// order, one at a time, and stops at the first that accepts the message.
type Sender struct {
	dial       DialFunc
	logger     *slog.Logger
	transports []Transport
}

// Option configures a Sender.
type Option func(*Sender)

// WithDialer replaces the network dialer, mainly for tests.
func WithDialer(dial DialFunc) Option {
	return func(s *Sender) {
		if dial != nil {
			s.dial = dial
		}
	}
}

// WithLogger logs every failed attempt at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a sender that uses only the configured transport.
func New(cfg Config, opts ...Option) *Sender {
	return newSender(cfg, []Transport{cfg.Transport()}, opts)
}

// NewFallback creates a sender that walks FallbackTransports of the configured one.
func NewFallback(cfg Config, opts ...Option) *Sender {
	return newSender(cfg, FallbackTransports(cfg.Transport()), opts)
}

func newSender(cfg Config, transports []Transport, opts []Option) *Sender {
	s := &Sender{
		dial:       Dialer(cfg),
		logger:     slog.New(slog.DiscardHandler),
		transports: transports,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transports returns the ordered list the sender tries.
func (s *Sender) Transports() []Transport {
	return append([]Transport(nil), s.transports...)
}

// Send implements mailer.Sender. The receipt names the transport that
// accepted the message. When all fail the error is a mailer.DeliveryError
// whose detail describes the last attempt.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) (mailer.Receipt, error) {
	if len(s.transports) == 0 {
		return mailer.Receipt{}, ErrNoTransports
	}

	from, to, err := envelope(email)
	if err != nil {
		ae := classify(s.transports[0], phaseEnvelope, err)
		return mailer.Receipt{}, &mailer.DeliveryError{Detail: ae.Detail(), Err: ae}
	}
	msg := buildMessage(email)

	var (
		errs []error
		last *AttemptError
	)
	for _, t := range s.transports {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		err := s.attempt(ctx, t, from, to, msg)
		if err == nil {
			return mailer.Receipt{Transport: t.Label()}, nil
		}

		last = err
		errs = append(errs, err)
		s.logger.WarnContext(ctx, "smtp attempt failed",
			slog.String("transport", t.Label()),
			slog.String("code", err.Code),
			slog.Int("response_code", err.ResponseCode),
			slog.String("error", err.Message),
		)
	}

	detail := ErrAllAttemptsFailed.Error()
	if last != nil {
		detail = last.Detail()
	}
	return mailer.Receipt{}, &mailer.DeliveryError{
		Detail: detail,
		Err:    errors.Join(append([]error{ErrAllAttemptsFailed}, errs...)...),
	}
}

// attempt dials (connect, TLS and auth) and then sends over that connection.
// Cancelling ctx aborts it at whatever stage it is in.
func (s *Sender) attempt(ctx context.Context, t Transport, from string, to []string, msg *gomail.Message) *AttemptError {
	conn, err := s.dial(ctx, t)
	if err != nil {
		return classify(t, phaseDial, contextCause(ctx, err))
	}
	defer func() { _ = conn.Close() }()

	if err := conn.Send(from, to, msg); err != nil {
		return classify(t, phaseSend, contextCause(ctx, err))
	}
	return nil
}

// contextCause prefixes err with ctx's error when ctx ended the attempt.
func contextCause(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil && !errors.Is(err, cerr) {
		return fmt.Errorf("%w: %w", cerr, err)
	}
	return err
}

// envelope extracts the bare SMTP addresses from the display headers.
func envelope(email *mailer.Email) (string, []string, error) {
	from, err := mail.ParseAddress(email.From)
	if err != nil {
		return "", nil, fmt.Errorf("%w: from %q: %w", ErrInvalidAddress, email.From, err)
	}
	if len(email.To) == 0 {
		return "", nil, fmt.Errorf("%w: no recipients", ErrInvalidAddress)
	}

	to := make([]string, 0, len(email.To))
	for _, raw := range email.To {
		addr, err := mail.ParseAddress(raw)
		if err != nil {
			return "", nil, fmt.Errorf("%w: to %q: %w", ErrInvalidAddress, raw, err)
		}
		to = append(to, addr.Address)
	}
	return from.Address, to, nil
}

func buildMessage(email *mailer.Email) *gomail.Message {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", email.From)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	for name, value := range email.Headers {
		m.SetHeader(name, value)
	}

	switch {
	case email.Text != "" && email.HTML != "":
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTML)
	case email.HTML != "":
		m.SetBody("text/html", email.HTML)
	default:
		m.SetBody("text/plain", email.Text)
	}

	for _, a := range email.Attachments {
		content := a.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		m.Attach(a.Filename, settings...)
	}
	return m
}
