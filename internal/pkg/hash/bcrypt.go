package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes passwords with bcrypt. Every call draws a fresh salt, so two
// hashes of the same password differ while both still verify.
//
// bcrypt reads at most 72 bytes, so the plaintext is first reduced to
// base64(HMAC-SHA256(pepper, plaintext)), 44 bytes for any input length.
// The pepper is never stored next to the hash.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a bcrypt hasher. A cost outside bcrypt's accepted range
// is replaced by bcrypt.DefaultCost.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost, pepper: pepper}
}

func (h *Bcrypt) prehash(plaintext string) []byte {
	mac := hmac.New(sha256.New, []byte(h.pepper))
	mac.Write([]byte(plaintext))

	out := make([]byte, base64.StdEncoding.EncodedLen(sha256.Size))
	base64.StdEncoding.Encode(out, mac.Sum(nil))
	return out
}

func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(h.prehash(plaintext), h.cost)
}

// Verify returns false for a mismatch and for anything that is not a bcrypt
// hash.
func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), h.prehash(plaintext)) == nil
}
