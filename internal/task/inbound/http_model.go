package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gotask/internal/task/entity"
)

const headerIdempotencyKey = "Idempotency-Key"

type TaskRequest struct {
	TaskName        string    `json:"taskName"`
	TaskDescription string    `json:"taskDescription"`
	DueDate         time.Time `json:"dueDate"`
	IsCompleted     bool      `json:"isCompleted"`
}

type TaskResponse struct {
	ID              int64     `json:"id,string"`
	TaskName        string    `json:"taskName"`
	TaskDescription string    `json:"taskDescription"`
	DueDate         time.Time `json:"dueDate"`
	IsCompleted     bool      `json:"isCompleted"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toTaskResponse(t entity.Task) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		TaskName:        t.Name,
		TaskDescription: t.Description,
		DueDate:         t.DueDate,
		IsCompleted:     t.IsCompleted,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

type CreateTaskResponse struct {
	TaskResponse
}

func (CreateTaskResponse) StatusCode() int {
	return http.StatusCreated
}

func (CreateTaskResponse) Message() string {
	return "Task created"
}

type ListTasksResponse []TaskResponse

func (r ListTasksResponse) Meta() map[string]any {
	return map[string]any{"total": len(r)}
}

func toListTasksResponse(tasks []entity.Task) ListTasksResponse {
	return lo.Map(tasks, func(t entity.Task, _ int) TaskResponse { return toTaskResponse(t) })
}

type DeleteTaskResponse struct {
	Detail string `json:"detail"`
}
