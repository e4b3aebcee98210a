package pdfdoc

import (
	_ "embed"
	"time"
)

//go:embed assets/logo.png
var defaultLogo []byte

// Option configures rendering.
type Option func(*options)

type options struct {
	logo     []byte
	compress bool
	created  time.Time
}

func defaultOptions() *options {
	return &options{
		logo:     defaultLogo,
		compress: true,
	}
}

// WithLogo replaces the embedded logo. Bytes that do not decode as PNG
// make the header fall back to the "LOGO" placeholder.
func WithLogo(png []byte) Option {
	return func(o *options) {
		o.logo = png
	}
}

// WithCompression toggles stream compression.
// Default: true
func WithCompression(enabled bool) Option {
	return func(o *options) {
		o.compress = enabled
	}
}

// WithCreationDate pins the document creation date, which otherwise is the render time.
func WithCreationDate(t time.Time) Option {
	return func(o *options) {
		o.created = t
	}
}
