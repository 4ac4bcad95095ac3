package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

type RegisterInput struct {
	Username string `validate:"required,username"`
	Password string `validate:"required,password"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*entity.PublicUser, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	_, err := s.repoUser.GetUserByUsername(ctx, in.Username)
	if err == nil {
		return nil, errUsernameTaken()
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	hashed, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	user := entity.User{
		ID:           s.uid.Generate(),
		Username:     in.Username,
		PasswordHash: string(hashed),
		CreatedAt:    s.clock.Now(),
	}

	err = s.repoUser.CreateUser(ctx, user)
	if errors.Is(err, goerror.ErrConflict) {
		// lost a race with a concurrent registration
		return nil, errUsernameTaken()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "username", in.Username, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:       user.ID,
		Username:     user.Username,
		RegisteredAt: user.CreatedAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", user.ID, "error", err)
	}

	pub := user.Public()
	return &pub, nil
}
