package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/pkg/hash"
	"github.com/shandysiswandi/gotask/internal/pkg/validator"
)

func TestUsecase_Register(t *testing.T) {
	t.Parallel()

	t.Run("register then login", func(t *testing.T) {
		t.Parallel()

		// Arrange
		h := newHarness(t, defaultSession())

		// Act
		user, err := h.uc.Register(context.Background(), RegisterInput{Username: " bob ", Password: "hunter2hunter2"})

		// Assert
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.Username != "bob" || user.ID == 0 {
			t.Fatalf("user = %+v", user)
		}

		stored, err := h.users.GetUserByID(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("user not stored: %v", err)
		}
		if stored.PasswordHash == "hunter2hunter2" || !h.password.Verify(stored.PasswordHash, "hunter2hunter2") {
			t.Fatalf("password not hashed correctly")
		}

		if _, err := h.uc.Login(context.Background(), LoginInput{Username: "bob", Password: "hunter2hunter2"}); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if len(h.msg.registered) != 1 || h.msg.registered[0].UserID != user.ID {
			t.Fatalf("registered events = %+v", h.msg.registered)
		}
	})

	t.Run("multibyte password", func(t *testing.T) {
		t.Parallel()

		peppers := []string{"", "server-side-pepper"}
		for _, pepper := range peppers {
			// Arrange
			h := newHarnessWithPassword(t, defaultSession(), hash.NewBcrypt(bcrypt.MinCost, pepper))
			password := strings.Repeat("é", 40)

			// Act
			user, err := h.uc.Register(context.Background(), RegisterInput{Username: "zoe", Password: password})

			// Assert
			if err != nil {
				t.Fatalf("Register() with pepper %q error = %v", pepper, err)
			}
			if _, err := h.uc.Login(context.Background(), LoginInput{Username: "zoe", Password: password}); err != nil {
				t.Fatalf("Login() with pepper %q error = %v", pepper, err)
			}
			if user.Username != "zoe" {
				t.Fatalf("user = %+v", user)
			}
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, defaultSession())
		h.seedUser(t, 100, "alice", "s3cret-pass")

		_, err := h.uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "another-pass"})

		assertBusinessErr(t, err, entity.ErrUsernameTaken, goerror.CodeConflict)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			in    RegisterInput
			field string
		}{
			{name: "short password", in: RegisterInput{Username: "carol", Password: "short"}, field: "password"},
			{name: "short username", in: RegisterInput{Username: "ab", Password: "long-enough"}, field: "username"},
			{name: "bad username chars", in: RegisterInput{Username: "carol smith", Password: "long-enough"}, field: "username"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				h := newHarness(t, defaultSession())

				_, err := h.uc.Register(context.Background(), tt.in)

				if goerror.CodeOf(err) != goerror.CodeInvalidInput {
					t.Fatalf("expected invalid input, got %v", err)
				}
				verr, ok := asValidation(err)
				if !ok {
					t.Fatalf("expected validation fields in %v", err)
				}
				if _, ok := verr[tt.field]; !ok {
					t.Fatalf("expected error on %q, got %v", tt.field, verr)
				}
			})
		}
	})
}

func asValidation(err error) (validator.V10ValidationError, bool) {
	var v validator.V10ValidationError
	ok := errors.As(err, &v)
	return v, ok
}
