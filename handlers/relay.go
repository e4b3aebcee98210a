package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sindegeologico/sindeform"
	"github.com/sindegeologico/sindeform/middlewares"
	"github.com/sindegeologico/sindeform/pkg/delivery"
	"github.com/sindegeologico/sindeform/pkg/form"
	"github.com/sindegeologico/sindeform/pkg/health"
	"github.com/sindegeologico/sindeform/pkg/mailer"
	"github.com/sindegeologico/sindeform/pkg/pdfdoc"
	"github.com/sindegeologico/sindeform/pkg/relayclient"
	"github.com/sindegeologico/sindeform/pkg/sanitizer"
)

// Messages returned by the relay.
const (
	MessageMissingPDF      = "No se recibió el PDF."
	MessageInvalidPDF      = "El PDF recibido no es válido."
	MessageInvalidRequest  = "La solicitud no es válida."
	MessageSendFailed      = "No se pudo enviar el correo."
	MessageUnknownStrategy = "La estrategia de correo configurada no es válida."
)

// Relay mails composed affiliation PDFs to the union's office.
// Implements sindeform.Handler interface.
type Relay struct {
	mailer   *mailer.Mailer
	cfg      delivery.Config
	location *time.Location
	now      func() time.Time
	checks   health.Checks
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithLocation sets the zone of the "Fecha envio" line. Defaults to UTC.
func WithLocation(loc *time.Location) RelayOption {
	return func(h *Relay) {
		if loc != nil {
			h.location = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RelayOption {
	return func(h *Relay) {
		if now != nil {
			h.now = now
		}
	}
}

// WithReadinessCheck adds a named check to /api/health/ready.
func WithReadinessCheck(name string, fn health.CheckFunc) RelayOption {
	return func(h *Relay) {
		if fn != nil {
			h.checks[name] = fn
		}
	}
}

// NewRelay creates the relay handler. m may be nil when the delivery
// configuration is incomplete; requests then fail with the configuration
// message instead of attempting delivery.
func NewRelay(m *mailer.Mailer, cfg delivery.Config, opts ...RelayOption) *Relay {
	h := &Relay{
		mailer:   m,
		cfg:      cfg,
		location: time.UTC,
		now:      time.Now,
		checks:   health.Checks{"mail": delivery.Healthcheck(cfg)},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes declares all routes for the relay.
func (h *Relay) Routes(r sindeform.Router) {
	r.GET("/api/health", h.health)
	r.GET("/api/health/ready", h.ready)
	r.POST("/api/send-pdf", h.sendPDF)
}

// health reports that the process is up.
func (h *Relay) health(c sindeform.Context) error {
	health.LivenessHandler()(c.Response(), c.Request())
	return nil
}

// ready runs the readiness checks.
func (h *Relay) ready(c sindeform.Context) error {
	health.ReadinessHandler(h.checks, health.WithLogger(c.Logger()))(c.Response(), c.Request())
	return nil
}

// affiliationMail is the data of the affiliation email template.
type affiliationMail struct {
	Name   string
	Email  string
	City   string
	SentAt string
}

// sendPDF mails the attached PDF to the configured recipient.
func (h *Relay) sendPDF(c sindeform.Context) error {
	if err := h.cfg.Validate(); err != nil {
		return sindeform.ErrInternal(configMessage(err), sindeform.WithError(err))
	}
	if h.mailer == nil {
		return sindeform.ErrInternal(MessageSendFailed)
	}

	var req relayclient.MailRequest
	if err := c.BindJSON(&req); err != nil && !errors.Is(err, sindeform.ErrEmptyBody) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return sindeform.ErrBadRequest(MessageInvalidRequest, sindeform.WithError(err))
	}

	if strings.TrimSpace(req.PDFBase64) == "" {
		return sindeform.ErrBadRequest(MessageMissingPDF)
	}
	pdf, err := decodePDF(req.PDFBase64)
	if err != nil {
		return sindeform.ErrBadRequest(MessageInvalidPDF, sindeform.WithError(err))
	}

	var record form.Record
	if req.FormData != nil {
		record = *req.FormData
	}

	receipt, err := h.mailer.Send(middlewares.GetTimeoutContext(c), mailer.SendParams{
		Template: mailer.AffiliationTemplate,
		Data: affiliationMail{
			Name:   sanitizer.Line(record.FullName()),
			Email:  sanitizer.Line(record.Correo),
			City:   sanitizer.Line(record.Ciudad),
			SentAt: FormatSentAt(h.now().In(h.location)),
		},
		Attachments: []mailer.Attachment{{
			Filename:    sanitizer.Filename(req.FileName, pdfdoc.FileName),
			ContentType: "application/pdf",
			Content:     pdf,
		}},
	})
	if err != nil {
		c.LogError("send pdf failed",
			slog.String("strategy", string(h.cfg.Strategy)),
			slog.Any("error", err),
		)
		return sindeform.ErrInternal(deliveryMessage(err), sindeform.WithError(err))
	}

	to := h.mailer.Recipient("")
	message := "Correo enviado a " + to
	if h.cfg.Strategy.ReportsTransport() && receipt.Transport != "" {
		message += " usando " + receipt.Transport
	}

	c.LogInfo("pdf sent",
		slog.String("to", to),
		slog.String("transport", receipt.Transport),
		slog.String("message_id", receipt.MessageID),
		slog.Int("size", len(pdf)),
	)
	return c.JSON(http.StatusOK, relayclient.Result{OK: true, Message: message})
}

// decodePDF accepts raw standard base64 and tolerates a data URL prefix.
func decodePDF(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		_, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, base64.CorruptInputError(0)
		}
		s = payload
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, base64.CorruptInputError(0)
	}
	return data, nil
}

func configMessage(err error) string {
	var cfgErr *mailer.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Message != "" {
		return cfgErr.Message
	}
	if errors.Is(err, delivery.ErrUnknownStrategy) {
		return MessageUnknownStrategy
	}
	return MessageSendFailed
}

func deliveryMessage(err error) string {
	var delErr *mailer.DeliveryError
	if errors.As(err, &delErr) {
		if msg := delErr.Error(); msg != "" {
			return msg
		}
	}
	return MessageSendFailed
}

// FormatSentAt renders t the way the es-CO locale prints a date and time,
// e.g. "2/1/2025, 3:04:05 p. m.".
func FormatSentAt(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "a. m."
	if t.Hour() >= 12 {
		meridiem = "p. m."
	}
	return fmt.Sprintf("%d/%d/%d, %d:%02d:%02d %s",
		t.Day(), int(t.Month()), t.Year(),
		hour, t.Minute(), t.Second(), meridiem)
}
