package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestProxyEntriesPreserveOrder(t *testing.T) {
	t.Parallel()

	input := `
/api/v2/:
  target: "http://localhost:9002"
/api/:
  target: "http://localhost:9000"
  rewrite: true
"^/users/(\\d+)/":
  target: "http://localhost:9001"
`

	var entries ProxyEntries
	require.NoError(t, yaml.Unmarshal([]byte(input), &entries))
	require.Len(t, entries, 3)

	assert.Equal(t, "/api/v2/", entries[0].Key)
	assert.Equal(t, "/api/", entries[1].Key)
	assert.Equal(t, `^/users/(\d+)/`, entries[2].Key)

	assert.Equal(t, "http://localhost:9002", entries[0].Target)
	assert.True(t, entries[0].Rewrite.IsZero())
	assert.True(t, entries[1].Rewrite.IsBool())
	assert.True(t, entries[1].Rewrite.Bool())
}

func TestProxyEntriesRejectSequence(t *testing.T) {
	t.Parallel()

	var entries ProxyEntries
	err := yaml.Unmarshal([]byte("- target: x"), &entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping")
}

func TestRewriteValueUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		isZero  bool
		isBool  bool
		boolVal bool
		spec    string
	}{
		{
			name:    "boolean true",
			input:   "true",
			isBool:  true,
			boolVal: true,
		},
		{
			name:   "boolean false",
			input:  "false",
			isBool: true,
		},
		{
			name:  "rewrite spec string",
			input: `"/old/(.*) -> /new/$1"`,
			spec:  "/old/(.*) -> /new/$1",
		},
		{
			name:   "null",
			input:  "null",
			isZero: true,
		},
		{
			name:    "sequence rejected",
			input:   "[1, 2]",
			wantErr: true,
		},
		{
			name:    "mapping rejected",
			input:   "{a: b}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var v RewriteValue
			err := yaml.Unmarshal([]byte(tt.input), &v)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.isZero, v.IsZero())
			assert.Equal(t, tt.isBool, v.IsBool())
			assert.Equal(t, tt.boolVal, v.Bool())
			assert.Equal(t, tt.spec, v.Spec())
		})
	}
}

func TestFullConfigDocument(t *testing.T) {
	t.Parallel()

	input := `
server:
  listen: ":3000"
  static: ./public
logging:
  level: debug
  format: json
proxy:
  /api/:
    target: "http://localhost:9000"
    rewrite: "^/api -> "
`

	cfg := DefaultConfig()
	require.NoError(t, yaml.Unmarshal([]byte(input), cfg))

	assert.Equal(t, ":3000", cfg.Server.Listen)
	assert.Equal(t, "./public", cfg.Server.Static)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.Len(t, cfg.Proxy, 1)
	assert.Equal(t, "^/api -> ", cfg.Proxy[0].Rewrite.Spec())
	assert.False(t, cfg.Proxy[0].Rewrite.IsBool())
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Proxy)
}

func TestNodeKindNames(t *testing.T) {
	t.Parallel()

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("a: b"), &node))
	assert.Equal(t, "document", nodeKind(&node))
	assert.Equal(t, "mapping", nodeKind(node.Content[0]))
	assert.Equal(t, "scalar", nodeKind(node.Content[0].Content[0]))
}
