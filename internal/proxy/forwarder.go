package proxy

import (
	"net"
	"net/http"
	"time"

	"github.com/vyrodovalexey/devproxy/internal/observability"
	"github.com/vyrodovalexey/devproxy/internal/util"
)

// hopHeaders are headers that should not be forwarded.
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Forwarder performs the network call for a proxied request. A nil
// error means the backend produced a response (of any status); the
// caller owns relaying it. An error means the call itself failed and
// nothing was written anywhere, so the caller is free to fall back.
type Forwarder interface {
	Forward(req *http.Request) (*http.Response, error)
}

// Transport is the default Forwarder, backed by an http.RoundTripper.
type Transport struct {
	rt     http.RoundTripper
	logger observability.Logger
}

// TransportOption is a functional option for configuring the transport.
type TransportOption func(*Transport)

// WithRoundTripper sets the underlying round tripper.
func WithRoundTripper(rt http.RoundTripper) TransportOption {
	return func(t *Transport) {
		t.rt = rt
	}
}

// WithTransportLogger sets the logger for the transport.
func WithTransportLogger(logger observability.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = logger
	}
}

// NewTransport creates a Forwarder with dev-friendly defaults: short
// dial timeout so a dead backend fails fast, stdlib defaults for
// everything else.
func NewTransport(opts ...TransportOption) *Transport {
	t := &Transport{
		rt: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Forward implements Forwarder. It adjusts transport-specific headers
// on the outbound request and performs the round trip. Cancellation
// propagates through the request's context; no additional timeout is
// imposed here.
func (t *Transport) Forward(req *http.Request) (*http.Response, error) {
	for _, h := range hopHeaders {
		req.Header.Del(h)
	}
	setForwardedHeaders(req)
	req.Host = req.URL.Host

	t.logger.Debug("forwarding request",
		observability.String("method", req.Method),
		observability.String("url", req.URL.String()),
	)

	resp, err := t.rt.RoundTrip(req)
	if err != nil {
		return nil, &util.ForwardError{Target: req.URL.String(), Cause: err}
	}
	return resp, nil
}

// setForwardedHeaders records the original client on the outbound
// request.
func setForwardedHeaders(req *http.Request) {
	if clientIP, _, err := net.SplitHostPort(req.RemoteAddr); err == nil {
		if prior := req.Header.Get("X-Forwarded-For"); prior != "" {
			clientIP = prior + ", " + clientIP
		}
		req.Header.Set("X-Forwarded-For", clientIP)
	}

	if req.TLS != nil {
		req.Header.Set("X-Forwarded-Proto", "https")
	} else {
		req.Header.Set("X-Forwarded-Proto", "http")
	}

	if req.Host != "" {
		req.Header.Set("X-Forwarded-Host", req.Host)
	}
}
