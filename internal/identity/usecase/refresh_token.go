package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

type RefreshTokenInput struct {
	RefreshToken string `validate:"required"`
}

// RefreshTokenOutput carries a new access token. RefreshToken is empty when
// rotation is disabled.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

func (s *Usecase) RefreshToken(ctx context.Context, in RefreshTokenInput) (*RefreshTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "RefreshToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, errInvalidRefreshToken()
	}

	userID, ok := s.decodeRefreshToken(in.RefreshToken)
	if !ok {
		slog.WarnContext(ctx, "refresh token rejected by codec")
		return nil, errInvalidRefreshToken()
	}

	digest, err := s.digest.Hash(in.RefreshToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "error", err)
		return nil, goerror.NewServer(err)
	}

	rec, err := s.repoToken.GetRefreshToken(ctx, string(digest))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token not found", "user_id", userID)
		return nil, errInvalidRefreshToken()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get refresh token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if rec.UserID != userID {
		slog.WarnContext(ctx, "refresh token owner mismatch", "user_id", userID, "owner_id", rec.UserID)
		return nil, errInvalidRefreshToken()
	}

	valid, err := s.repoToken.IsRefreshTokenValid(ctx, userID, string(digest))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check refresh token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !valid {
		slog.WarnContext(ctx, "refresh token expired", "user_id", userID)
		return nil, errInvalidRefreshToken()
	}

	user, err := s.repoUser.GetUserByID(ctx, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token for unknown user", "user_id", userID)
		return nil, errInvalidRefreshTokenUserGone()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	access, err := s.mintAccessToken(user.Public())
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode access token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &RefreshTokenOutput{AccessToken: access, AccessTTL: s.session.AccessTTL}
	if !s.session.RotateRefreshToken {
		return out, nil
	}

	refresh, newRec, err := s.mintRefreshToken(userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mint refresh token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	err = s.repoToken.RotateRefreshToken(ctx, string(digest), newRec)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "refresh token already rotated or revoked", "user_id", userID)
		return nil, errInvalidRefreshToken()
	}
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "refresh token collision", "user_id", userID)
		return nil, errDuplicateToken()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo rotate refresh token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out.RefreshToken = refresh
	out.RefreshTTL = s.session.RefreshTTL
	return out, nil
}
