// Package config loads the relay and CLI settings from the environment,
// reading a .env file first when one exists.
package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sindegeologico/sindeform/pkg/delivery"
	"github.com/sindegeologico/sindeform/pkg/logger"
)

// DefaultTimezone is used for the "Fecha envio" line of the email body.
const DefaultTimezone = "America/Bogota"

// bogotaOffset backs DefaultTimezone when the tz database is unavailable.
const bogotaOffset = -5 * 60 * 60

// Config is the full application configuration.
type Config struct {
	Server ServerConfig
	Log    logger.Config
	Mail   delivery.Config
	Client ClientConfig
}

// ServerConfig configures the mail relay HTTP server.
type ServerConfig struct {
	Port             int           `env:"PORT" envDefault:"8787"`
	Timezone         string        `env:"MAIL_TIMEZONE" envDefault:"America/Bogota"`
	CORSAllowOrigins []string      `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	BodyLimit        int64         `env:"BODY_LIMIT" envDefault:"31457280"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"90s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Addr returns the listen address for Port.
func (c ServerConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Location resolves Timezone. America/Bogota falls back to a fixed UTC-5
// zone when the tz database is missing; other unknown names fall back to UTC.
func (c ServerConfig) Location() *time.Location {
	name := c.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if name == DefaultTimezone {
		return time.FixedZone("COT", bogotaOffset)
	}
	return time.UTC
}

// ClientConfig configures the form composer CLI.
type ClientConfig struct {
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8787"`
	Store      string        `env:"SINDEFORM_STORE" envDefault:".sindeform"`
	OutputDir  string        `env:"SINDEFORM_OUTPUT_DIR" envDefault:"."`
	Timeout    time.Duration `env:"SINDEFORM_HTTP_TIMEOUT" envDefault:"2m"`
}

// Load reads the given .env files (".env" when none are named), ignoring
// missing ones, then parses the environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrLoadEnvFile, err)
		}
	}
	return parse(env.Options{})
}

// FromMap parses configuration from a map instead of the process environment.
func FromMap(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParse, err)
	}
	return cfg, nil
}
