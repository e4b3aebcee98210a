// Package sindeform is the HTTP core of the SINDEGEOLÓGICO affiliation
// form relay: a thin layer over chi that lets handlers declare routes and
// return errors, renders every failure as {"ok":false,"message":...} and
// shuts the server down gracefully on SIGINT/SIGTERM.
//
// # Quick Start
//
//	app := sindeform.New(
//	    sindeform.WithLogger(log),
//	    sindeform.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.CORS(),
//	        middlewares.BodyLimit(middlewares.DefaultBodyLimit),
//	    ),
//	    sindeform.WithHandlers(handlers.NewRelay(mail, cfg.Mail)),
//	)
//
//	if err := app.Run(cfg.Server.Addr()); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes:
//
//	func (h *Relay) Routes(r sindeform.Router) {
//	    r.GET("/api/health", h.health)
//	    r.POST("/api/send-pdf", h.sendPDF)
//	}
//
// A handler returns an error instead of writing one. [HTTPError] values
// keep their status code and message; anything else becomes a 500 with a
// generic message. Request bodies over the BodyLimit become a 413.
//
// # Packages
//
// The form model lives in pkg/form, PDF composition in pkg/pdfdoc, local
// persistence in pkg/snapshot and the client workflow in pkg/composer.
// Mail delivery is split between pkg/mailer (templates and the Sender
// contract), its provider packages and pkg/delivery, which picks one from
// configuration.
package sindeform
