// Package uid provides identifier generators used across the application.
package uid

// NumberID generates int64 identifiers suitable for primary keys.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers (correlation IDs, tokens).
type StringID interface {
	Generate() string
}
