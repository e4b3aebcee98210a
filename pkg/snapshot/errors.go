package snapshot

import "errors"

var (
	// ErrNotFound is returned when no snapshot exists under the key.
	ErrNotFound = errors.New("snapshot: not found")

	// ErrEmptyDSN is returned when no store location is configured.
	ErrEmptyDSN = errors.New("snapshot: empty store DSN")

	// ErrInvalidDSN is returned when the store location cannot be parsed.
	ErrInvalidDSN = errors.New("snapshot: invalid store DSN")

	// ErrInvalidKey is returned for keys that cannot be mapped to the backend.
	ErrInvalidKey = errors.New("snapshot: invalid key")
)
