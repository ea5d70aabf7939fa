// Package server assembles the devproxy HTTP server: the middleware
// chain around the proxy stage, the local fallback handler, the
// metrics endpoint, and the listener lifecycle.
package server
