package router

import (
	"github.com/vyrodovalexey/devproxy/internal/config"
	"github.com/vyrodovalexey/devproxy/internal/observability"
)

// RuleSet is an immutable, ordered collection of proxy rules.
// Insertion order is priority order: the first matching rule wins and
// shadows any later rule that would also match. A RuleSet is built
// once and is safe for unsynchronized concurrent reads.
type RuleSet struct {
	rules []ProxyRule
}

// NewRuleSet compiles the given entries, in order, into a rule set.
// Entries whose construction fails are dropped with a warning; one
// bad entry never prevents the rest from loading.
func NewRuleSet(entries config.ProxyEntries, logger observability.Logger) *RuleSet {
	rules := make([]ProxyRule, 0, len(entries))
	for _, entry := range entries {
		rule, err := NewProxyRule(entry, logger)
		if err != nil {
			logger.Warn("dropping proxy rule",
				observability.String("key", entry.Key),
				observability.Error(err),
			)
			continue
		}
		rules = append(rules, rule)
	}
	return &RuleSet{rules: rules}
}

// Resolve returns the first rule matching the given normalized path,
// or nil when the request is not proxied. Resolution is deterministic:
// rule order is the only tie-break, with no specificity ranking.
func (s *RuleSet) Resolve(path string) ProxyRule {
	for _, rule := range s.rules {
		if rule.Matches(path) {
			return rule
		}
	}
	return nil
}

// Len returns the number of rules in the set.
func (s *RuleSet) Len() int {
	return len(s.rules)
}
