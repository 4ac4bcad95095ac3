package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSHA256 is a keyed, deterministic digest. The same input always maps to
// the same hex string, which makes it usable as a lookup key for tokens.
// It is not meant for passwords.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a digester keyed with secret.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the lowercase hex encoded HMAC of plaintext. It never fails.
func (s *HMACSHA256) Hash(plaintext string) ([]byte, error) {
	return s.sum(plaintext), nil
}

// Digest is Hash without the error, for call sites that need a string key.
func (s *HMACSHA256) Digest(plaintext string) string {
	return string(s.sum(plaintext))
}

func (s *HMACSHA256) Verify(hashed, plaintext string) bool {
	return hmac.Equal([]byte(hashed), s.sum(plaintext))
}

func (s *HMACSHA256) sum(plaintext string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(plaintext))
	return []byte(hex.EncodeToString(mac.Sum(nil)))
}
