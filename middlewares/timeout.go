package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sindegeologico/sindeform/internal"
)

// DefaultTimeout bounds a request when Timeout is given a non-positive value.
const DefaultTimeout = 30 * time.Second

type timeoutContextKey struct{}

// Timeout runs the handler with a deadline. When it expires first, the
// middleware returns a 503 wrapping a *TimeoutError; the handler keeps
// running against the cancelled context returned by GetTimeoutContext.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", slog.String("timeout", timeout.String()))
					return internal.ErrServiceUnavailable(MessageTimeout, internal.WithError(&TimeoutError{Duration: timeout}))
				}
				return ctx.Err()
			}
		}
	}
}

// GetTimeoutContext returns the deadline-bound context set by Timeout,
// or the request context when the middleware is not installed.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
