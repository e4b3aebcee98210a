package internal

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Router is what handlers see when declaring their routes.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)

	// Route mounts the routes declared in fn under a shared prefix.
	Route(prefix string, fn func(r Router))
}

type chiRouter struct {
	mux chi.Router
	app *App
}

func (r *chiRouter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Get(path, r.endpoint(h, mw))
}

func (r *chiRouter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Post(path, r.endpoint(h, mw))
}

func (r *chiRouter) Route(prefix string, fn func(Router)) {
	r.mux.Route(prefix, func(sub chi.Router) {
		fn(&chiRouter{mux: sub, app: r.app})
	})
}

// endpoint applies route middleware so that the first one listed is outermost.
func (r *chiRouter) endpoint(h HandlerFunc, mw []Middleware) http.HandlerFunc {
	for _, m := range slices.Backward(mw) {
		h = m(h)
	}
	return func(w http.ResponseWriter, req *http.Request) {
		r.app.serve(h, w, req)
	}
}

// chiMiddleware lifts a Middleware onto the chi stack.
// Layers share one *ResponseWriter so Written reflects the whole chain.
func (a *App) chiMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			a.serve(mw(inner), w, r)
		})
	}
}
