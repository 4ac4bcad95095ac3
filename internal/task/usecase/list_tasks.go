package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/task/entity"
)

type ListTasksInput struct {
	Completed *bool
}

func (s *Usecase) ListTasks(ctx context.Context, in ListTasksInput) ([]entity.Task, error) {
	ctx, span := s.startSpan(ctx, "ListTasks")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repoDB.ListTasks(ctx, entity.TaskFilter{UserID: userID, Completed: in.Completed})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list tasks", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return tasks, nil
}
