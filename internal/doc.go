// Package internal provides the HTTP application core used by the relay.
//
// Import "github.com/sindegeologico/sindeform" instead, which re-exports the
// public API.
//
// # Core Types
//
//   - App: owns the chi router, global middleware and graceful shutdown
//   - Context: request/response access plus JSON helpers and logging
//   - Router: interface handlers use to declare routes
//   - Handler: types that declare routes on a router
//   - HandlerFunc: route handlers that return errors
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - ErrorHandler: turns handler errors into responses
//
// Context embeds context.Context, so it can be handed straight to mail
// senders and other blocking calls:
//
//	func (h *Relay) sendPDF(c sindeform.Context) error {
//	    receipt, err := h.mailer.Send(c, params)
//	    ...
//	}
//
// # Errors
//
// Handlers return *HTTPError values (ErrBadRequest, ErrInternal and friends)
// to pick a status code. The default error handler renders every error as
// {"ok":false,"message":"..."}; anything that is not an *HTTPError becomes a
// 500 with a generic message.
package internal
