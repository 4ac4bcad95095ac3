// Package jwt signs and verifies the session tokens handed to clients.
//
// A Codec turns an arbitrary claim set into a compact HS256 token with an
// expiry, and back. Callers never learn why a token was rejected: a bad
// signature, a malformed token and an expired one all surface as
// ErrInvalidToken.
package jwt
