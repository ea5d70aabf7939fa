package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vyrodovalexey/devproxy/internal/config"
	"github.com/vyrodovalexey/devproxy/internal/observability"
)

func TestRuleSetResolveFirstMatchWins(t *testing.T) {
	t.Parallel()

	set := NewRuleSet(config.ProxyEntries{
		{Key: "/api/v2", Target: "http://localhost:9002"},
		{Key: "/api", Target: "http://localhost:9000"},
		{Key: `^/api/.*`, Target: "http://localhost:9001"},
	}, observability.NopLogger())

	require.Equal(t, 3, set.Len())

	// All three rules match /api/v2/users; order is the only tie-break.
	rule := set.Resolve("/api/v2/users")
	require.NotNil(t, rule)
	assert.Equal(t, "http://localhost:9002", rule.Target())

	// Only the latter two match /api/v1.
	rule = set.Resolve("/api/v1")
	require.NotNil(t, rule)
	assert.Equal(t, "http://localhost:9000", rule.Target())
}

func TestRuleSetResolveDeterministic(t *testing.T) {
	t.Parallel()

	set := NewRuleSet(config.ProxyEntries{
		{Key: "/a", Target: "http://localhost:1"},
		{Key: "/a/b", Target: "http://localhost:2"},
	}, observability.NopLogger())

	// No longest-prefix ranking: the first rule shadows the more
	// specific one on every call.
	for i := 0; i < 10; i++ {
		rule := set.Resolve("/a/b/c")
		require.NotNil(t, rule)
		assert.Equal(t, "http://localhost:1", rule.Target())
	}
}

func TestRuleSetResolveNoMatch(t *testing.T) {
	t.Parallel()

	set := NewRuleSet(config.ProxyEntries{
		{Key: "/api", Target: "http://localhost:9000"},
	}, observability.NopLogger())

	assert.Nil(t, set.Resolve("/static/app.js"))
}

func TestRuleSetEmpty(t *testing.T) {
	t.Parallel()

	set := NewRuleSet(nil, observability.NopLogger())
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Resolve("/anything"))
}

func TestRuleSetDropsBrokenEntries(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	logger := observability.FromZap(zap.New(core))

	set := NewRuleSet(config.ProxyEntries{
		{Key: "/good", Target: "http://localhost:9000"},
		{Key: "/bad", Target: "http://localhost:9001", Rewrite: config.RewriteSpec("(oops -> /x")},
	}, logger)

	require.Equal(t, 1, set.Len())
	rule := set.Resolve("/bad/path")
	assert.Nil(t, rule)
	assert.NotNil(t, set.Resolve("/good/path"))
	assert.Equal(t, 1, logs.Len())
}
