package jwt

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

var (
	// ErrInvalidToken is returned for any token that fails decoding: bad
	// signature, unexpected algorithm, malformed payload or past expiry.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrSigningKeyTooShort is returned when the HS256 key is shorter than 32 bytes.
	ErrSigningKeyTooShort = errors.New("HS256 signing key must be at least 32 bytes (256 bits)")

	// ErrReservedClaim is returned when callers try to set a claim the codec owns.
	ErrReservedClaim = errors.New("claim name is reserved")
)

// Claim names managed by the codec itself.
const (
	ClaimExpiresAt = "exp"
	ClaimIssuedAt  = "iat"
	ClaimID        = "jti"
)

// Codec encodes claims into signed tokens and decodes them back.
type Codec interface {
	// Encode signs claims together with an expiry of now+ttl.
	Encode(claims Claims, ttl time.Duration) (string, error)
	// Decode verifies token and returns the caller claims, without the
	// codec-managed ones.
	Decode(token string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config defines the inputs for building a Codec.
type Config struct {
	// Secret is the HMAC signing key shared by every instance.
	Secret []byte
	// Issuer is written to iss when not empty.
	Issuer string
	Clock  clocker
	// UUID generates the jti of every token.
	UUID generator
}

// Claims is the caller visible payload of a token.
//
// Numbers come back from Decode as json.Number; use Int64 and String instead
// of type asserting.
type Claims map[string]any

// String returns the claim under key when it is a string.
func (c Claims) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// Int64 returns the claim under key as int64. It accepts the numeric kinds a
// claim can hold before and after a round trip.
func (c Claims) Int64(key string) (int64, bool) {
	switch v := c[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
