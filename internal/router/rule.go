package router

import (
	"regexp"
	"strings"

	"github.com/vyrodovalexey/devproxy/internal/config"
	"github.com/vyrodovalexey/devproxy/internal/observability"
)

// ProxyRule is one configured proxy decision: whether a normalized
// path is proxied, how the path is rewritten, and which target base
// URL the request goes to. Rules are immutable after construction and
// safe for concurrent use.
type ProxyRule interface {
	// Matches reports whether the rule applies to the given
	// normalized path.
	Matches(path string) bool

	// RewritePath applies the rule's rewrite (identity when none is
	// configured) and normalizes the result.
	RewritePath(path string) string

	// Target returns the configured base URL string.
	Target() string

	// Key returns the configuration key identifying the rule.
	Key() string
}

// PrefixRule matches by literal, case-sensitive path prefix.
type PrefixRule struct {
	key     string
	prefix  string
	target  string
	rewrite *RewriteRule
}

// Matches implements ProxyRule.
func (r *PrefixRule) Matches(path string) bool {
	return strings.HasPrefix(path, r.prefix)
}

// RewritePath implements ProxyRule.
func (r *PrefixRule) RewritePath(path string) string {
	return rewriteAndNormalize(r.rewrite, path)
}

// Target implements ProxyRule.
func (r *PrefixRule) Target() string { return r.target }

// Key implements ProxyRule.
func (r *PrefixRule) Key() string { return r.key }

// RegexRule matches when its pattern is found anywhere in the path.
type RegexRule struct {
	key     string
	pattern *regexp.Regexp
	target  string
	rewrite *RewriteRule
}

// Matches implements ProxyRule. The match is a substring search, not
// an anchored full-path match.
func (r *RegexRule) Matches(path string) bool {
	return r.pattern.MatchString(path)
}

// RewritePath implements ProxyRule.
func (r *RegexRule) RewritePath(path string) string {
	return rewriteAndNormalize(r.rewrite, path)
}

// Target implements ProxyRule.
func (r *RegexRule) Target() string { return r.target }

// Key implements ProxyRule.
func (r *RegexRule) Key() string { return r.key }

func rewriteAndNormalize(rewrite *RewriteRule, path string) string {
	if rewrite != nil {
		path = rewrite.Apply(path)
	}
	return NormalizePath(path)
}

// NewProxyRule constructs a rule from a validated configuration
// entry. A key starting with '^' is compiled as a regular expression
// (with a single trailing slash stripped from the source first); if
// compilation fails the key degrades to a literal prefix match with a
// warning instead of surfacing an error. The only construction error
// is a malformed regex inside the entry's rewrite spec.
func NewProxyRule(entry config.ProxyEntry, logger observability.Logger) (ProxyRule, error) {
	rewrite, err := CompileRewrite(entry.Key, entry.Rewrite, logger)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(entry.Key, "^") {
		source := strings.TrimSuffix(entry.Key, "/")
		pattern, compileErr := regexp.Compile(source)
		if compileErr == nil {
			return &RegexRule{
				key:     entry.Key,
				pattern: pattern,
				target:  entry.Target,
				rewrite: rewrite,
			}, nil
		}
		logger.Warn("invalid regex rule key, falling back to literal prefix match",
			observability.String("key", entry.Key),
			observability.Error(compileErr),
		)
	}

	return &PrefixRule{
		key:     entry.Key,
		prefix:  entry.Key,
		target:  entry.Target,
		rewrite: rewrite,
	}, nil
}
