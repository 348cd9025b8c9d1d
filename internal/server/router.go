package server

import (
	"net/http"
	"net/url"
	"path"
	"strings"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Uses [http.ServeMux] internally for routing.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the specified HTTP method and path.
//
// The method filter sits inside the middleware, so a rejected request is still logged and
// rate limited. Other methods get the catalog's JSON 405 rather than a plain-text one.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	methodHandler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.EqualFold(req.Method, method) {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
			return
		}
		handler.ServeHTTP(w, req)
	})

	r.mux.Handle(path, r.Apply(methodHandler))
}

// Handler registers a custom Handler implementation.
//
// All routes returned by [Handler.Routes] are registered with this handler.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)

	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
//
// [http.ServeMux] answers unclean paths such as /albums//tracks with an HTML redirect. Those are matched on
// their cleaned form instead and served as sent, so every response stays JSON.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	escaped := req.URL.EscapedPath()
	cleaned := cleanPath(escaped)
	if cleaned == escaped {
		r.mux.ServeHTTP(w, req)
		return
	}

	unescaped, err := url.PathUnescape(cleaned)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request path.")
		return
	}

	lookup := req.Clone(req.Context())
	lookup.URL.Path = unescaped
	lookup.URL.RawPath = cleaned
	handler, _ := r.mux.Handler(lookup)
	handler.ServeHTTP(w, req)
}

// cleanPath is [path.Clean] rooted at / that keeps a trailing slash, the way the mux compares paths.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	cleaned := path.Clean(p)
	if p[len(p)-1] == '/' && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
