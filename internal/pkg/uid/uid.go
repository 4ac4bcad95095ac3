// Package uid generates identifiers: numeric snowflake ids for rows and
// UUIDv7 strings for correlation and token ids.
package uid

// NumberID generates unique 64-bit identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
