package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

func TestUsecase_Logout(t *testing.T) {
	t.Parallel()

	t.Run("refresh fails after logout", func(t *testing.T) {
		t.Parallel()

		// Arrange
		h := newHarness(t, defaultSession())
		out := loginAlice(t, h)

		// Act
		err := h.uc.Logout(context.Background(), LogoutInput{RefreshToken: out.RefreshToken})

		// Assert
		if err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
		_, err = h.uc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: out.RefreshToken})
		assertBusinessErr(t, err, entity.ErrInvalidRefreshToken, goerror.CodeUnauthorized)

		if len(h.msg.ended) != 1 || h.msg.ended[0].UserID != 100 {
			t.Fatalf("session ended events = %+v", h.msg.ended)
		}
	})

	t.Run("other sessions survive", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, defaultSession())
		first := loginAlice(t, h)
		second, err := h.uc.Login(context.Background(), LoginInput{Username: "alice", Password: "s3cret-pass"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if err := h.uc.Logout(context.Background(), LogoutInput{RefreshToken: first.RefreshToken}); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}

		if _, err := h.uc.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: second.RefreshToken}); err != nil {
			t.Fatalf("second session should survive: %v", err)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, defaultSession())
		out := loginAlice(t, h)

		for range 2 {
			if err := h.uc.Logout(context.Background(), LogoutInput{RefreshToken: out.RefreshToken}); err != nil {
				t.Fatalf("Logout() error = %v", err)
			}
		}
		if err := h.uc.Logout(context.Background(), LogoutInput{}); err != nil {
			t.Fatalf("Logout() with no token error = %v", err)
		}
		if err := h.uc.Logout(context.Background(), LogoutInput{RefreshToken: "unknown"}); err != nil {
			t.Fatalf("Logout() with unknown token error = %v", err)
		}
		if len(h.msg.ended) != 1 {
			t.Fatalf("expected one session ended event, got %d", len(h.msg.ended))
		}
	})

	t.Run("publish failure does not fail logout", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t, defaultSession())
		out := loginAlice(t, h)
		h.msg.err = errors.New("broker down")

		if err := h.uc.Logout(context.Background(), LogoutInput{RefreshToken: out.RefreshToken}); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
	})
}
