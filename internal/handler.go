package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Relay struct {
//	    mailer *mailer.Mailer
//	}
//
//	func (h *Relay) Routes(r sindeform.Router) {
//	    r.POST("/api/send-pdf", h.sendPDF)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error triggers the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing,
// or wrap the response.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
