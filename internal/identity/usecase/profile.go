package usecase

import (
	"context"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/authn"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

// Profile returns the caller resolved by the authentication middleware.
func (s *Usecase) Profile(ctx context.Context) (*entity.PublicUser, error) {
	_, span := s.startSpan(ctx, "Profile")
	defer span.End()

	id := authn.GetAuth(ctx)
	if id == nil {
		return nil, goerror.NewBusinessErr(entity.ErrUnauthenticated, "Not authenticated", goerror.CodeUnauthorized)
	}

	return &entity.PublicUser{ID: id.UserID, Username: id.Username}, nil
}
