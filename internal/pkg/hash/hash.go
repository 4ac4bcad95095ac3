package hash

import (
	"fmt"
	"strings"
)

// Hash produces and checks digests of plaintext secrets.
//
// Verify must report false for any hashed value it cannot parse.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}

// Config selects and tunes the password hasher.
type Config struct {
	Driver     string
	BcryptCost int
	Pepper     string
}

// NewPassword builds the password hasher named by cfg.Driver.
// An empty driver falls back to bcrypt.
func NewPassword(cfg Config) (Hash, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "bcrypt":
		return NewBcrypt(cfg.BcryptCost, cfg.Pepper), nil
	case "argon2id":
		return NewArgon2id(cfg.Pepper), nil
	default:
		return nil, fmt.Errorf("hash: unsupported password driver %q", cfg.Driver)
	}
}
