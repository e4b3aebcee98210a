package smtp

import "time"

// Config holds SMTP server settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Secure   bool          `env:"SMTP_SECURE" envDefault:"false"` // implicit TLS instead of STARTTLS
	Username string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"25s"` // whole attempt, dial to QUIT
}

// Transport returns the configured transport.
func (c Config) Transport() Transport {
	return Transport{Host: c.Host, Port: c.Port, Secure: c.Secure}
}
