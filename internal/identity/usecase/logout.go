package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

type LogoutInput struct {
	RefreshToken string
}

// Logout ends the session behind the refresh token. Unknown or empty tokens
// are not an error; the caller is logged out either way.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if in.RefreshToken == "" {
		return nil
	}

	digest, err := s.digest.Hash(in.RefreshToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "error", err)
		return goerror.NewServer(err)
	}

	rec, err := s.repoToken.GetRefreshToken(ctx, string(digest))
	if errors.Is(err, goerror.ErrNotFound) {
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get refresh token", "error", err)
		return goerror.NewServer(err)
	}

	deleted, err := s.repoToken.DeleteRefreshToken(ctx, string(digest))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete refresh token", "user_id", rec.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if !deleted {
		return nil
	}

	if err := s.repoMessaging.PublishSessionEnded(ctx, SessionEndedEvent{
		UserID:  rec.UserID,
		EndedAt: s.clock.Now(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish session ended", "user_id", rec.UserID, "error", err)
	}

	return nil
}
