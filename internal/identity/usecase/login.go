package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

type LoginInput struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,max=72"`
}

type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoUser.GetUserByUsername(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "username", in.Username)
		return nil, errInvalidCredentials()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.password.Verify(user.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, errInvalidCredentials()
	}

	pair, err := s.issueSession(ctx, user.Public())
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		AccessTTL:    s.session.AccessTTL,
		RefreshTTL:   s.session.RefreshTTL,
	}, nil
}
