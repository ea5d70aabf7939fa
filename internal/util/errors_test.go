package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewConfigError("proxy./api/", "target is not a valid URL", cause)

	assert.Contains(t, err.Error(), "proxy./api/")
	assert.Contains(t, err.Error(), "target is not a valid URL")
	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestConfigErrorWithoutField(t *testing.T) {
	t.Parallel()

	err := NewConfigError("", "empty proxy section", nil)
	assert.Equal(t, "config error: empty proxy section", err.Error())
}

func TestForwardError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := &ForwardError{Target: "http://localhost:9000/users", Cause: cause}

	assert.Contains(t, err.Error(), "http://localhost:9000/users")
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("proxy: %w", err)
	var fe *ForwardError
	require.ErrorAs(t, wrapped, &fe)
	assert.Equal(t, "http://localhost:9000/users", fe.Target)
}
