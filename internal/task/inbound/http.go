package inbound

import (
	"context"

	"github.com/shandysiswandi/gotask/internal/pkg/router"
	"github.com/shandysiswandi/gotask/internal/task/entity"
	"github.com/shandysiswandi/gotask/internal/task/usecase"
)

type uc interface {
	CreateTask(ctx context.Context, in usecase.CreateTaskInput) (*entity.Task, error)
	ListTasks(ctx context.Context, in usecase.ListTasksInput) ([]entity.Task, error)
	UpdateTask(ctx context.Context, in usecase.UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, in usecase.DeleteTaskInput) error

	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/users/me/tasks", end.CreateTask)
	r.GET("/users/me/tasks", end.ListTasks)
	r.PUT("/users/me/tasks/:id", end.UpdateTask)
	r.DELETE("/users/me/tasks/:id", end.DeleteTask)
}
