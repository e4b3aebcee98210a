// Package middlewares provides the HTTP middleware installed in front of the
// mail relay.
//
//   - RequestID: reuses X-Request-ID or generates a UUID; pair it with
//     RequestIDExtractor so every log line carries request_id.
//   - Recover: turns panics into *PanicError, rendered as a 500.
//   - CORS: permissive by default, origins configurable.
//   - BodyLimit: rejects bodies over the limit with a 413.
//   - Timeout: bounds handler execution.
//
//	app := sindeform.New(
//	    sindeform.WithMiddleware(
//	        middlewares.Recover(),
//	        middlewares.RequestID(),
//	        middlewares.CORS(middlewares.WithAllowOrigins("*")),
//	        middlewares.BodyLimit(middlewares.DefaultBodyLimit),
//	    ),
//	)
package middlewares
