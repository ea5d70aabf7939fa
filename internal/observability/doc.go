// Package observability provides structured logging and Prometheus
// metrics for devproxy.
//
// Logging is exposed through the Logger interface so that packages
// receive their diagnostic sink as an explicit dependency. Production
// code is backed by zap; tests can wrap a zaptest observer core via
// FromZap, and NopLogger discards everything.
package observability
