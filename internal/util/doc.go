// Package util provides shared error types and helpers for devproxy.
package util
