// Package middleware provides the HTTP middleware chain for devproxy.
//
// Proxy is the request pipeline stage that ties path normalization,
// rule resolution, request building, and forwarding together. The
// other middlewares (Recovery, RequestID, Logging, Metrics) are the
// ambient plumbing around it. All middlewares share the
// func(http.Handler) http.Handler shape and compose with Chain.
package middleware
