package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/task/entity"
)

type ConsumeUserRegisteredInput struct {
	UserID   int64 `validate:"required,gt=0"`
	Username string
}

// ConsumeUserRegistered seeds the welcome task for a new account.
// Redelivery of the same event is a no-op.
func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "drop invalid user registered event", "user_id", in.UserID, "error", err)
		return nil
	}

	// welcome task id is derived from the user id
	task := entity.WelcomeTask(in.UserID, in.UserID, in.Username, s.clock.Now())

	err := s.repoDB.CreateTask(ctx, task)
	if errors.Is(err, goerror.ErrConflict) {
		slog.InfoContext(ctx, "welcome task already exists", "user_id", in.UserID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create welcome task", "user_id", in.UserID, "error", err)
		return err
	}

	slog.InfoContext(ctx, "welcome task created", "user_id", in.UserID, "task_id", task.ID)
	return nil
}
