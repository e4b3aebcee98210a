package delivery

import (
	"maps"
	"slices"
	"strings"

	"github.com/sindegeologico/sindeform/pkg/mailer"
	"github.com/sindegeologico/sindeform/pkg/mailer/postmark"
	"github.com/sindegeologico/sindeform/pkg/mailer/resend"
	"github.com/sindegeologico/sindeform/pkg/mailer/smtp"
)

// Strategy names a delivery route.
type Strategy string

const (
	StrategyResend       Strategy = "resend"
	StrategyPostmark     Strategy = "postmark"
	StrategySMTP         Strategy = "smtp"
	StrategySMTPFallback Strategy = "smtp-fallback"
)

// Strategies lists every supported strategy.
var Strategies = []Strategy{StrategyResend, StrategyPostmark, StrategySMTP, StrategySMTPFallback}

// ReportsTransport reports whether success messages name the transport
// that accepted the message.
func (s Strategy) ReportsTransport() bool {
	return s == StrategySMTPFallback
}

// Config gathers every provider's settings; only the active strategy's
// are required.
type Config struct {
	Strategy Strategy `env:"MAIL_STRATEGY" envDefault:"resend"`
	Mailer   mailer.Config
	Resend   resend.Config
	Postmark postmark.Config
	SMTP     smtp.Config
}

// Missing-configuration messages shown to relay clients.
const (
	MessageMissingResend   = "Faltan variables de Resend en el servidor."
	MessageMissingPostmark = "Faltan variables de Postmark en el servidor."
	MessageMissingSMTP     = "Faltan variables SMTP en el servidor."
)

// Validate returns a *mailer.ConfigError naming the missing variables of
// the active strategy, ErrUnknownStrategy, or nil.
func (c Config) Validate() error {
	var (
		message string
		values  map[string]string
	)
	switch c.Strategy {
	case StrategyResend:
		message = MessageMissingResend
		values = map[string]string{"RESEND_API_KEY": c.Resend.APIKey}
	case StrategyPostmark:
		message = MessageMissingPostmark
		values = map[string]string{"POSTMARK_SERVER_TOKEN": c.Postmark.ServerToken}
	case StrategySMTP, StrategySMTPFallback:
		message = MessageMissingSMTP
		values = map[string]string{
			"SMTP_HOST": c.SMTP.Host,
			"SMTP_USER": c.SMTP.Username,
			"SMTP_PASS": c.SMTP.Password,
		}
	default:
		return ErrUnknownStrategy
	}
	values["EMAIL_FROM"] = c.Mailer.From

	var missing []string
	for _, name := range sortedKeys(values) {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &mailer.ConfigError{Message: message, Missing: missing}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
