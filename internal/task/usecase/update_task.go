package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/task/entity"
)

type UpdateTaskInput struct {
	ID          int64     `validate:"required,gt=0"`
	Name        string    `validate:"required,max=255"`
	Description string    `validate:"max=2000"`
	DueDate     time.Time `validate:"required"`
	IsCompleted bool
}

// UpdateTask replaces every mutable field of a task owned by the caller.
func (s *Usecase) UpdateTask(ctx context.Context, in UpdateTaskInput) (*entity.Task, error) {
	ctx, span := s.startSpan(ctx, "UpdateTask")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	task, err := s.repoDB.GetTask(ctx, userID, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errTaskNotFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get task", "user_id", userID, "task_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	task.Name = in.Name
	task.Description = in.Description
	task.DueDate = in.DueDate
	task.IsCompleted = in.IsCompleted
	task.UpdatedAt = s.clock.Now()

	ok, err := s.repoDB.UpdateTask(ctx, *task)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update task", "user_id", userID, "task_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		// deleted between read and write
		return nil, errTaskNotFound()
	}

	return task, nil
}
