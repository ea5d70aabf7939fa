package router

import (
	"regexp"
	"strings"
)

// slashRuns matches one or more consecutive slashes.
var slashRuns = regexp.MustCompile(`/+`)

// NormalizePath canonicalizes a request path for matching: runs of
// consecutive slashes collapse into one, and the result always starts
// with a slash. The empty string and all-slash strings normalize to
// "/". NormalizePath is total and idempotent; it is applied to the
// inbound path before matching and to every rewritten path before the
// outbound URL is built.
func NormalizePath(path string) string {
	path = slashRuns.ReplaceAllString(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
