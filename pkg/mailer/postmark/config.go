package postmark

// Config holds Postmark credentials.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	Stream       string `env:"POSTMARK_MESSAGE_STREAM" envDefault:"outbound"`
}
