package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// Argon2id hashes passwords into PHC strings of the form
// $argon2id$v=19$m=...,t=...,p=...$salt$key.
type Argon2id struct {
	params     argon2Params
	saltLength uint32
	keyLength  uint32
	pepper     string

	// sem bounds how many derivations run at once; each one holds params.memory KiB.
	sem chan struct{}
}

// NewArgon2id returns an Argon2id hasher with interactive-login defaults.
func NewArgon2id(pepper string) *Argon2id {
	return &Argon2id{
		params: argon2Params{
			memory:      32 * 1024,
			iterations:  3,
			parallelism: 2,
		},
		saltLength: 16,
		keyLength:  32,
		pepper:     pepper,
		sem:        make(chan struct{}, 4),
	}
}

func (a *Argon2id) Hash(plaintext string) ([]byte, error) {
	salt := make([]byte, a.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("argon2id: generate salt: %w", err)
	}

	key := a.derive(plaintext, salt, a.params, a.keyLength)

	return fmt.Appendf(nil,
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.params.memory,
		a.params.iterations,
		a.params.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (a *Argon2id) Verify(hashed, plaintext string) bool {
	params, salt, want, ok := parseArgon2id(hashed)
	if !ok {
		return false
	}

	got := a.derive(plaintext, salt, params, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1
}

func (a *Argon2id) derive(plaintext string, salt []byte, p argon2Params, keyLen uint32) []byte {
	a.sem <- struct{}{}
	defer func() { <-a.sem }()

	return argon2.IDKey([]byte(plaintext+a.pepper), salt, p.iterations, p.memory, p.parallelism, keyLen)
}

func parseArgon2id(encoded string) (argon2Params, []byte, []byte, bool) {
	var p argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, nil, nil, false
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return p, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, false
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, false
	}

	return p, salt, key, true
}
