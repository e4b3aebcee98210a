package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Key is the fixed key the form state is stored under.
const Key = "sindegeologico_form_data"

// Store persists opaque snapshots under string keys.
type Store interface {
	// Get returns the stored bytes or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Open returns a store for the given DSN:
//
//	file:///var/lib/sindeform       JSON files in a directory
//	sqlite:///var/lib/sindeform.db  single-table SQLite database
//	redis://localhost:6379/0        Redis keys under the "sindeform:" prefix
//	s3://key:secret@bucket/prefix   objects in an S3-compatible bucket
//	                                (?region=, ?endpoint=, ?path_style=true)
//
// A DSN without a scheme is treated as a directory path.
func Open(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}
	if !strings.Contains(dsn, "://") {
		return NewFileStore(dsn)
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDSN, err)
	}

	switch u.Scheme {
	case "file":
		return NewFileStore(hostPath(u))
	case "sqlite":
		return NewSQLiteStore(ctx, hostPath(u))
	case "redis", "rediss":
		return OpenRedisStore(ctx, dsn)
	case "s3":
		cfg, err := parseS3DSN(u)
		if err != nil {
			return nil, err
		}
		return NewS3Store(cfg)
	}
	return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidDSN, u.Scheme)
}

// hostPath accepts both file:///abs/path and file://relative/path.
func hostPath(u *url.URL) string {
	if u.Host == "" {
		return u.Path
	}
	return u.Host + u.Path
}
