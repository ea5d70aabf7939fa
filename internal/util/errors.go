package util

import (
	"errors"
	"fmt"
)

// Error conventions for this project:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is().
//   - Structured error types for context-rich errors that carry
//     additional fields. Each type implements Error(), Unwrap() (if
//     wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.

// ErrConfigInvalid is the sentinel for configuration errors; callers
// check it with errors.Is(). A resolution miss is not an error in this
// project, it is a nil rule.
var ErrConfigInvalid = errors.New("invalid configuration")

// ConfigError represents a configuration-related error.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error at %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfigInvalid
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string, cause error) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ForwardError represents a failure while forwarding a request to a
// backend target.
type ForwardError struct {
	Target string
	Cause  error
}

// Error implements the error interface.
func (e *ForwardError) Error() string {
	return fmt.Sprintf("forwarding to %s failed: %v", e.Target, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ForwardError) Unwrap() error {
	return e.Cause
}
