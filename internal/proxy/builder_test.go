package proxy

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey string

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	body := strings.NewReader(`{"name":"dev"}`)
	original := httptest.NewRequest("POST", "http://devserver.local/api/users?page=2", body)
	original.Header.Set("Authorization", "Bearer token")
	original.Header.Set("Content-Type", "application/json")
	original = original.WithContext(context.WithValue(original.Context(), ctxKey("session"), "s-1"))

	target, err := url.Parse("http://localhost:9000/users")
	require.NoError(t, err)

	outbound := BuildRequest(original, target)

	assert.Equal(t, "POST", outbound.Method)
	assert.Same(t, target, outbound.URL)
	assert.Empty(t, outbound.RequestURI)

	// Headers carried through unfiltered.
	assert.Equal(t, "Bearer token", outbound.Header.Get("Authorization"))
	assert.Equal(t, "application/json", outbound.Header.Get("Content-Type"))

	// Context metadata carried through unchanged.
	assert.Equal(t, "s-1", outbound.Context().Value(ctxKey("session")))

	// Body stream preserved.
	data, err := io.ReadAll(outbound.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"dev"}`, string(data))
}

func TestBuildRequestDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	original := httptest.NewRequest("GET", "http://devserver.local/api", nil)
	target, err := url.Parse("http://localhost:9000/")
	require.NoError(t, err)

	outbound := BuildRequest(original, target)
	outbound.Header.Set("X-Added", "yes")

	assert.Empty(t, original.Header.Get("X-Added"))
	assert.Equal(t, "/api", original.URL.Path)
}
