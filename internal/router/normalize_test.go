package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "empty string",
			path:     "",
			expected: "/",
		},
		{
			name:     "single slash",
			path:     "/",
			expected: "/",
		},
		{
			name:     "all slashes",
			path:     "//",
			expected: "/",
		},
		{
			name:     "many slashes",
			path:     "/////",
			expected: "/",
		},
		{
			name:     "missing leading slash",
			path:     "a/b",
			expected: "/a/b",
		},
		{
			name:     "runs collapse",
			path:     "//a///b",
			expected: "/a/b",
		},
		{
			name:     "already normalized",
			path:     "/api/users",
			expected: "/api/users",
		},
		{
			name:     "trailing slash preserved",
			path:     "/api//",
			expected: "/api/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NormalizePath(tt.path))
		})
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	t.Parallel()

	paths := []string{"", "/", "//", "a/b", "//a///b", "/api/users/", "x//y//z"}
	for _, p := range paths {
		once := NormalizePath(p)
		assert.Equal(t, once, NormalizePath(once), "path %q", p)
	}
}
