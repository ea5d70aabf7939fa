package proxy

import (
	"net/http"
	"net/url"
)

// BuildRequest clones an inbound request into an outbound one aimed at
// the given target URL. Method, headers, body stream, and the
// request-scoped context are carried through unchanged; the URL is set
// to exactly target. Headers are not filtered here: adjusting
// transport-specific headers such as Content-Length or Connection is
// the Forwarder's responsibility.
func BuildRequest(original *http.Request, target *url.URL) *http.Request {
	outbound := original.Clone(original.Context())
	outbound.URL = target
	// Clients reject requests with RequestURI set; it is a
	// server-side field.
	outbound.RequestURI = ""
	return outbound
}
