package hash

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	t.Parallel()

	// Arrange
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	// Act
	first, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Assert
	if string(first) == string(second) {
		t.Fatalf("expected salted hashes to differ")
	}
	if !h.Verify(string(first), "s3cret-pass") || !h.Verify(string(second), "s3cret-pass") {
		t.Fatalf("expected both hashes to verify")
	}
	if h.Verify(string(first), "wrong-pass") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestBcrypt_VerifyMalformed(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost, "")
	for _, hashed := range []string{"", "not-a-hash", "$2a$10$short"} {
		if h.Verify(hashed, "whatever") {
			t.Fatalf("Verify(%q) = true, want false", hashed)
		}
	}
}

func TestBcrypt_PepperMismatch(t *testing.T) {
	t.Parallel()

	hashed, err := NewBcrypt(bcrypt.MinCost, "one").Hash("password1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if NewBcrypt(bcrypt.MinCost, "two").Verify(string(hashed), "password1") {
		t.Fatalf("expected verification with a different pepper to fail")
	}
}

func TestBcrypt_LongAndMultibytePasswords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pepper   string
		password string
	}{
		{name: "multibyte within 72 runes", password: strings.Repeat("é", 40)},
		{name: "multibyte with pepper", pepper: "server-side-pepper", password: strings.Repeat("é", 40)},
		{name: "72 ascii bytes with pepper", pepper: "server-side-pepper", password: strings.Repeat("a", 72)},
		{name: "longer than bcrypt input", password: strings.Repeat("x", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Arrange
			h := NewBcrypt(bcrypt.MinCost, tt.pepper)

			// Act
			hashed, err := h.Hash(tt.password)

			// Assert
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !h.Verify(string(hashed), tt.password) {
				t.Fatalf("expected password to verify")
			}
			if h.Verify(string(hashed), tt.password[:len(tt.password)-2]) {
				t.Fatalf("expected a truncated password to fail")
			}
		})
	}
}

func TestBcrypt_DistinguishesPastByte72(t *testing.T) {
	t.Parallel()

	h := NewBcrypt(bcrypt.MinCost, "")
	prefix := strings.Repeat("p", 72)

	hashed, err := h.Hash(prefix + "-one")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if h.Verify(string(hashed), prefix+"-two") {
		t.Fatalf("expected passwords sharing 72 leading bytes to differ")
	}
}

func TestArgon2id_HashAndVerify(t *testing.T) {
	t.Parallel()

	// Arrange
	h := NewArgon2id("pepper")

	// Act
	hashed, err := h.Hash("s3cret-pass")

	// Assert
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(string(hashed), "$argon2id$v=19$") {
		t.Fatalf("unexpected encoding %q", hashed)
	}
	if !h.Verify(string(hashed), "s3cret-pass") {
		t.Fatalf("expected password to verify")
	}
	if h.Verify(string(hashed), "other") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestArgon2id_VerifyMalformed(t *testing.T) {
	t.Parallel()

	h := NewArgon2id("")
	cases := []string{
		"",
		"$argon2i$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$!!$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$c2FsdA$",
	}
	for _, hashed := range cases {
		if h.Verify(hashed, "whatever") {
			t.Fatalf("Verify(%q) = true, want false", hashed)
		}
	}
}

func TestHMACSHA256_Deterministic(t *testing.T) {
	t.Parallel()

	h := NewHMACSHA256("key")

	a := h.Digest("token")
	b, _ := h.Hash("token")

	if a != string(b) {
		t.Fatalf("expected Digest and Hash to agree")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if !h.Verify(a, "token") || h.Verify(a, "token2") {
		t.Fatalf("unexpected Verify result")
	}
	if NewHMACSHA256("other").Digest("token") == a {
		t.Fatalf("expected different keys to produce different digests")
	}
}

func TestNewPassword(t *testing.T) {
	t.Parallel()

	if h, err := NewPassword(Config{}); err != nil {
		t.Fatalf("NewPassword() error = %v", err)
	} else if _, ok := h.(*Bcrypt); !ok {
		t.Fatalf("expected bcrypt by default, got %T", h)
	}

	if h, err := NewPassword(Config{Driver: "ARGON2ID"}); err != nil {
		t.Fatalf("NewPassword() error = %v", err)
	} else if _, ok := h.(*Argon2id); !ok {
		t.Fatalf("expected argon2id, got %T", h)
	}

	if _, err := NewPassword(Config{Driver: "md5"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
