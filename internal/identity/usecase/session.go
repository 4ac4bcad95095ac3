package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/pkg/jwt"
)

func (s *Usecase) mintAccessToken(user entity.PublicUser) (string, error) {
	return s.codec.Encode(jwt.Claims{
		entity.ClaimUserID:   user.ID,
		entity.ClaimUsername: user.Username,
	}, s.session.AccessTTL)
}

// mintRefreshToken returns the token for the client and the record to
// persist for it.
func (s *Usecase) mintRefreshToken(userID int64) (string, entity.RefreshToken, error) {
	token, err := s.codec.Encode(jwt.Claims{
		entity.ClaimUserID:  userID,
		entity.ClaimSubject: entity.SubjectRefresh,
	}, s.session.RefreshTTL)
	if err != nil {
		return "", entity.RefreshToken{}, err
	}

	digest, err := s.digest.Hash(token)
	if err != nil {
		return "", entity.RefreshToken{}, err
	}

	now := s.clock.Now()
	return token, entity.RefreshToken{
		ID:        s.uid.Generate(),
		UserID:    userID,
		Token:     string(digest),
		ExpiresAt: now.Add(s.session.RefreshTTL),
		CreatedAt: now,
	}, nil
}

// issueSession mints a token pair for user and stores the refresh record.
func (s *Usecase) issueSession(ctx context.Context, user entity.PublicUser) (*entity.TokenPair, error) {
	access, err := s.mintAccessToken(user)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	refresh, rec, err := s.mintRefreshToken(user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mint refresh token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	err = s.repoToken.CreateRefreshToken(ctx, rec)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "refresh token collision", "user_id", user.ID)
		return nil, errDuplicateToken()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create refresh token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// decodeRefreshToken returns the user id of a well formed, unexpired refresh
// token.
func (s *Usecase) decodeRefreshToken(token string) (int64, bool) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return 0, false
	}

	if sub, _ := claims.String(entity.ClaimSubject); sub != entity.SubjectRefresh {
		return 0, false
	}

	return claims.Int64(entity.ClaimUserID)
}
