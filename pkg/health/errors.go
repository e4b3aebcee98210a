package health

import "errors"

// ErrNotConfigured is returned by checks whose dependency has no configuration.
var ErrNotConfigured = errors.New("health: not configured")
