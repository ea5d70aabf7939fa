package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vyrodovalexey/devproxy/internal/config"
	"github.com/vyrodovalexey/devproxy/internal/observability"
)

// rewriteSeparator splits a rewrite spec into pattern and replacement.
const rewriteSeparator = "->"

type rewriteKind int

const (
	rewriteStripPrefix rewriteKind = iota
	rewriteTemplate
)

// RewriteRule is a compiled path rewrite. It is a plain data value
// evaluated by Apply, so rewrite behavior is inspectable in tests and
// carries no captured state.
type RewriteRule struct {
	kind     rewriteKind
	key      string
	pattern  *regexp.Regexp
	template string
}

// CompileRewrite turns a raw rewrite setting into an executable
// rewrite, or nil when no rewrite applies.
//
//   - unset or empty string: no rewrite
//   - boolean true: strip the first literal occurrence of the rule key
//     from the path
//   - "<regex>-><replacement>": replace every match of the regex,
//     substituting $i tokens with capture groups ($0 is the whole
//     match)
//
// A spec that does not split on "->" into exactly two parts is ignored
// with a warning. A malformed regex inside a well-formed spec is a
// configuration error and fails rule construction.
func CompileRewrite(key string, raw config.RewriteValue, logger observability.Logger) (*RewriteRule, error) {
	if raw.IsZero() {
		return nil, nil
	}

	if raw.IsBool() {
		if !raw.Bool() {
			return nil, nil
		}
		return &RewriteRule{kind: rewriteStripPrefix, key: key}, nil
	}

	spec := raw.Spec()
	if spec == "" {
		return nil, nil
	}

	parts := strings.Split(spec, rewriteSeparator)
	if len(parts) != 2 {
		logger.Warn(`ignoring malformed rewrite spec, expected "<regex>-><replacement>"`,
			observability.String("key", key),
			observability.String("rewrite", spec),
		)
		return nil, nil
	}

	pattern, err := regexp.Compile(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("rewrite pattern for rule %q: %w", key, err)
	}

	return &RewriteRule{
		kind:     rewriteTemplate,
		pattern:  pattern,
		template: normalizeTemplate(strings.TrimSpace(parts[1])),
	}, nil
}

// groupTokens matches numeric capture references like $1.
var groupTokens = regexp.MustCompile(`\$(\d+)`)

// normalizeTemplate brackets numeric $i tokens as ${i} so that a
// reference followed by more text ($1abc) still means group 1; Go's
// expansion would otherwise read the longest name.
func normalizeTemplate(template string) string {
	return groupTokens.ReplaceAllStringFunc(template, func(token string) string {
		return "${" + token[1:] + "}"
	})
}

// Apply rewrites a path. The caller is responsible for re-normalizing
// the result.
func (r *RewriteRule) Apply(path string) string {
	switch r.kind {
	case rewriteStripPrefix:
		// First occurrence only; an unmatched path passes through.
		return strings.Replace(path, r.key, "", 1)
	case rewriteTemplate:
		return r.pattern.ReplaceAllString(path, r.template)
	default:
		return path
	}
}
