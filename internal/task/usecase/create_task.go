package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotask/internal/task/entity"
)

type CreateTaskInput struct {
	// IdempotencyKey is optional. It is scoped to the caller.
	IdempotencyKey string
	Name           string    `validate:"required,max=255"`
	Description    string    `validate:"max=2000"`
	DueDate        time.Time `validate:"required"`
	IsCompleted    bool
}

func (s *Usecase) CreateTask(ctx context.Context, in CreateTaskInput) (*entity.Task, error) {
	ctx, span := s.startSpan(ctx, "CreateTask")
	defer span.End()

	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	task := entity.Task{
		ID:          s.uid.Generate(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		DueDate:     in.DueDate,
		IsCompleted: in.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	create := func(ctx context.Context) error {
		if err := s.repoDB.CreateTask(ctx, task); err != nil {
			slog.ErrorContext(ctx, "failed to repo create task", "user_id", userID, "error", err)
			return goerror.NewServer(err)
		}
		return nil
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		if err := create(ctx); err != nil {
			return nil, err
		}
		return &task, nil
	}

	err = s.idempotency.Exec(ctx, "create_task:"+strconv.FormatInt(userID, 10)+":"+key, create)
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return nil, errDuplicateRequest("A request with this Idempotency-Key is still in progress")
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil, errDuplicateRequest("A request with this Idempotency-Key was already processed")
	case errors.Is(err, idempotency.ErrAlreadyFailed):
		return nil, errDuplicateRequest("A request with this Idempotency-Key already failed")
	}

	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		return nil, err
	}

	slog.ErrorContext(ctx, "failed to run idempotent create task", "user_id", userID, "error", err)
	return nil, goerror.NewServer(err)
}
