// Package config loads and validates the devproxy YAML configuration.
//
// The proxy section is an ordered mapping from rule keys to proxy
// entries. Ordering is significant: the first entry whose rule matches
// a request wins, so the loader preserves document order instead of
// decoding into a Go map.
//
// Validation is deliberately lenient. Entries that cannot be used
// (missing target, unparsable target URL, key without a trailing
// slash) are dropped with a warning rather than failing the load, so
// one bad entry never takes the whole dev server down.
package config
