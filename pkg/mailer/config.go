package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	From            string `env:"EMAIL_FROM"`
	To              string `env:"EMAIL_TO" envDefault:"hsolarte@sgc.gov.co"`
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Formulario SINDEGEOLOGICO"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
}
