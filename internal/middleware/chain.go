package middleware

import "net/http"

// Middleware is the common shape of all pipeline stages.
type Middleware func(http.Handler) http.Handler

// Chain composes middlewares around a final handler. The first
// middleware is the outermost: Chain(h, a, b) serves a(b(h)).
func Chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
