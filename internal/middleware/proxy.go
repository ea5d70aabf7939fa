package middleware

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/vyrodovalexey/devproxy/internal/observability"
	"github.com/vyrodovalexey/devproxy/internal/proxy"
	"github.com/vyrodovalexey/devproxy/internal/router"
)

// RuleSource resolves a normalized request path to a proxy rule.
// *router.RuleSet satisfies it directly; the server's live-reload rule
// holder satisfies it behind an atomic swap.
type RuleSource interface {
	Resolve(path string) router.ProxyRule
}

// Pass-through reason labels for metrics.
const (
	reasonNoMatch      = "no_match"
	reasonUpgrade      = "upgrade"
	reasonBadTarget    = "bad_target"
	reasonForwardError = "forward_error"
)

// Proxy returns the middleware that forwards matched requests to their
// backend target and delegates everything else to the next handler.
//
// The policy is fail-open: an unsupported upgrade request, an
// unparsable target, or a forwarder failure all degrade to "treat this
// request as not proxied" with a diagnostic, never to an error
// response from this stage.
func Proxy(rules RuleSource, forwarder proxy.Forwarder, logger observability.Logger) func(http.Handler) http.Handler {
	metrics := observability.GetProxyMetrics()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := router.NormalizePath(r.URL.Path)

			rule := rules.Resolve(path)
			if rule == nil {
				metrics.PassedThrough.WithLabelValues(reasonNoMatch).Inc()
				next.ServeHTTP(w, r)
				return
			}

			if isUpgradeRequest(r) {
				logger.Warn("connection upgrade requests are not proxied, passing through",
					observability.String("rule", rule.Key()),
					observability.String("path", path),
				)
				metrics.UpgradeBypasses.Inc()
				metrics.PassedThrough.WithLabelValues(reasonUpgrade).Inc()
				next.ServeHTTP(w, r)
				return
			}

			base, err := url.Parse(rule.Target())
			if err != nil {
				logger.Error("invalid proxy target, passing through",
					observability.String("rule", rule.Key()),
					observability.String("target", rule.Target()),
					observability.Error(err),
				)
				metrics.PassedThrough.WithLabelValues(reasonBadTarget).Inc()
				next.ServeHTTP(w, r)
				return
			}

			rewritten := rule.RewritePath(path)
			targetURL := base.ResolveReference(&url.URL{
				Path:     rewritten,
				RawQuery: r.URL.RawQuery,
			})

			outbound := proxy.BuildRequest(r, targetURL)

			resp, err := forwarder.Forward(outbound)
			if err != nil {
				logger.Error("forwarding failed, falling back to local handler",
					observability.String("rule", rule.Key()),
					observability.String("target", targetURL.String()),
					observability.Error(err),
				)
				metrics.ForwardFailures.WithLabelValues(rule.Key()).Inc()
				metrics.PassedThrough.WithLabelValues(reasonForwardError).Inc()
				next.ServeHTTP(w, r)
				return
			}
			defer func() { _ = resp.Body.Close() }()

			metrics.ForwardedTotal.WithLabelValues(rule.Key()).Inc()
			logger.Debug("forwarded request",
				observability.String("rule", rule.Key()),
				observability.String("target", targetURL.String()),
				observability.Int("status", resp.StatusCode),
			)

			relayResponse(w, resp)
		})
	}
}

// isUpgradeRequest reports whether the request asks for a WebSocket
// connection upgrade.
func isUpgradeRequest(r *http.Request) bool {
	if !strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return false
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}

// relayResponse writes the backend response to the client unchanged.
func relayResponse(w http.ResponseWriter, resp *http.Response) {
	header := w.Header()
	for key, values := range resp.Header {
		for _, value := range values {
			header.Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}
