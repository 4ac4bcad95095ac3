package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/authn"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

// Authenticate resolves an access token into the user it was issued to.
// Refresh tokens are rejected.
func (s *Usecase) Authenticate(ctx context.Context, accessToken string) (authn.Identity, error) {
	ctx, span := s.startSpan(ctx, "Authenticate")
	defer span.End()

	if accessToken == "" {
		return authn.Identity{}, errUnauthenticated()
	}

	claims, err := s.codec.Decode(accessToken)
	if err != nil {
		slog.WarnContext(ctx, "access token rejected", "error", err)
		return authn.Identity{}, errUnauthenticated()
	}

	if _, ok := claims[entity.ClaimSubject]; ok {
		slog.WarnContext(ctx, "refresh token used as access token")
		return authn.Identity{}, errUnauthenticated()
	}

	userID, ok := claims.Int64(entity.ClaimUserID)
	if !ok {
		slog.WarnContext(ctx, "access token without user id")
		return authn.Identity{}, errUnauthenticated()
	}

	user, err := s.repoUser.GetUserByID(ctx, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "access token for unknown user", "user_id", userID)
		return authn.Identity{}, errUnauthenticatedUserGone()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", userID, "error", err)
		return authn.Identity{}, goerror.NewServer(err)
	}

	return authn.Identity{UserID: user.ID, Username: user.Username}, nil
}
