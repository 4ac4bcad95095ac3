package usecase

import (
	"context"

	"github.com/shandysiswandi/gotask/internal/pkg/authn"
	"github.com/shandysiswandi/gotask/internal/pkg/clock"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"github.com/shandysiswandi/gotask/internal/pkg/uid"
	"github.com/shandysiswandi/gotask/internal/pkg/validator"
	"github.com/shandysiswandi/gotask/internal/task/entity"
	"go.opentelemetry.io/otel/trace"
)

// repoDB scopes every read and write by owner. Update and Delete report
// false when no row of that owner matched.
type repoDB interface {
	CreateTask(ctx context.Context, task entity.Task) error
	ListTasks(ctx context.Context, filter entity.TaskFilter) ([]entity.Task, error)
	GetTask(ctx context.Context, userID, id int64) (*entity.Task, error)
	UpdateTask(ctx context.Context, task entity.Task) (bool, error)
	DeleteTask(ctx context.Context, userID, id int64) (bool, error)
}

type Usecase struct {
	repoDB      repoDB
	idempotency idempotency.Idempotency
	validator   validator.Validator
	uid         uid.NumberID
	clock       clock.Clocker
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoDB repoDB
	// Idempotency guards create requests that carry an Idempotency-Key.
	// Nil disables the guard.
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	UID         uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return &Usecase{
		repoDB:      dep.RepoDB,
		idempotency: dep.Idempotency,
		validator:   dep.Validator,
		uid:         dep.UID,
		clock:       dep.Clock,
		ins:         ins,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("task.usecase").Start(ctx, name)
}

func currentUserID(ctx context.Context) (int64, error) {
	id := authn.GetAuth(ctx)
	if id == nil {
		return 0, goerror.NewBusiness("Not authenticated", goerror.CodeUnauthorized)
	}
	return id.UserID, nil
}

func errTaskNotFound() error {
	return goerror.NewBusinessErr(entity.ErrTaskNotFound, "Task not found", goerror.CodeNotFound)
}

func errDuplicateRequest(msg string) error {
	return goerror.NewBusinessErr(entity.ErrDuplicateRequest, msg, goerror.CodeConflict)
}
