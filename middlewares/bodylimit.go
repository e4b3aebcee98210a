package middlewares

import (
	"net/http"

	"github.com/sindegeologico/sindeform/internal"
)

// DefaultBodyLimit matches the relay's 30 MB JSON limit.
const DefaultBodyLimit int64 = 30 << 20

// MessageBodyTooLarge is returned to clients whose body exceeds the limit.
const MessageBodyTooLarge = internal.MessageBodyTooLarge

// BodyLimit rejects bodies larger than limit bytes with a 413.
// Declared lengths are checked up front; chunked bodies are capped while
// being read, surfacing as *http.MaxBytesError from BindJSON.
func BodyLimit(limit int64) internal.Middleware {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			req := c.Request()
			if req.ContentLength > limit {
				return internal.ErrRequestTooLarge(MessageBodyTooLarge)
			}
			if req.Body != nil && req.Body != http.NoBody {
				req.Body = http.MaxBytesReader(c.Response(), req.Body, limit)
			}
			return next(c)
		}
	}
}
