package server

import (
	"sync/atomic"

	"github.com/vyrodovalexey/devproxy/internal/router"
)

// RuleHolder publishes the active rule set to the request path. Each
// rule set is immutable; a configuration reload builds a complete new
// set and swaps the pointer, so concurrent requests always see a
// consistent snapshot without locking.
type RuleHolder struct {
	current atomic.Pointer[router.RuleSet]
}

// NewRuleHolder creates a holder serving the given rule set.
func NewRuleHolder(rules *router.RuleSet) *RuleHolder {
	h := &RuleHolder{}
	h.current.Store(rules)
	return h
}

// Resolve implements middleware.RuleSource against the active set.
func (h *RuleHolder) Resolve(path string) router.ProxyRule {
	return h.current.Load().Resolve(path)
}

// Swap replaces the active rule set.
func (h *RuleHolder) Swap(rules *router.RuleSet) {
	h.current.Store(rules)
}

// Len returns the number of rules in the active set.
func (h *RuleHolder) Len() int {
	return h.current.Load().Len()
}
