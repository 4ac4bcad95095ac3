package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

type DeleteTaskInput struct {
	ID int64
}

func (s *Usecase) DeleteTask(ctx context.Context, in DeleteTaskInput) error {
	ctx, span := s.startSpan(ctx, "DeleteTask")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	ok, err := s.repoDB.DeleteTask(ctx, userID, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete task", "user_id", userID, "task_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		return errTaskNotFound()
	}

	return nil
}
