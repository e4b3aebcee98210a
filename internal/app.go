package internal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Messages rendered by the default handlers.
const (
	MessageInternal         = "Error interno del servidor."
	MessageNotFound         = "Ruta no encontrada."
	MessageMethodNotAllowed = "Método no permitido."
	MessageBodyTooLarge     = "La solicitud supera el tamaño máximo permitido."
)

// App orchestrates routing, middleware and the server lifecycle.
type App struct {
	router                  chi.Router
	logger                  *slog.Logger
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	middlewares             []Middleware
	handlers                []Handler
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		router: chi.NewRouter(),
		logger: slog.New(slog.DiscardHandler),
	}
	app.errorHandler = app.defaultErrorHandler
	app.notFoundHandler = func(c Context) error {
		return ErrNotFound(MessageNotFound)
	}
	app.methodNotAllowedHandler = func(c Context) error {
		return ErrMethodNotAllowed(MessageMethodNotAllowed)
	}

	for _, opt := range opts {
		opt(app)
	}

	app.setupRoutes()
	return app
}

// Router returns the app as an http.Handler.
func (a *App) Router() http.Handler {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run starts the HTTP server on addr and blocks until SIGINT/SIGTERM,
// then shuts down gracefully.
//
// Example:
//
//	app := sindeform.New(sindeform.WithHandlers(relay))
//	err := app.Run(":8787", sindeform.ShutdownHook(store.Close))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
		ready:           cfg.ready,
	})
}

func (a *App) setupRoutes() {
	a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))

	for _, mw := range a.middlewares {
		a.router.Use(a.chiMiddleware(mw))
	}

	r := &chiRouter{mux: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.serve(h, w, r)
	}
}

func (a *App) serve(h HandlerFunc, w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a.logger)
	if _, nested := w.(*ResponseWriter); !nested {
		defer c.responseWriter.Seal()
	}
	if err := h(c); err != nil {
		a.handleError(c, err)
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", slog.String("error", herr.Error()))
	}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// defaultErrorHandler renders {"ok":false,"message":...}. Errors that are
// not *HTTPError become a 500 with a generic message.
func (a *App) defaultErrorHandler(c Context, err error) error {
	httpErr := AsHTTPError(err)
	if httpErr == nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpErr = ErrRequestTooLarge(MessageBodyTooLarge, WithError(err))
		} else {
			httpErr = ErrInternal(MessageInternal, WithError(err))
		}
	}

	if httpErr.Code >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.Int("status", httpErr.Code),
			slog.Any("error", err),
		)
	}

	return c.JSON(httpErr.Code, ErrorBody{Message: httpErr.Message})
}
