package inbound

import (
	"github.com/shandysiswandi/gotask/internal/pkg/router"
	"github.com/shandysiswandi/gotask/internal/task/usecase"
)

// HTTPEndpoint serves the caller's tasks. Every route requires authentication.
type HTTPEndpoint struct {
	uc uc
}

// CreateTask adds a task for the caller.
func (h *HTTPEndpoint) CreateTask(r *router.Request) (any, error) {
	var req TaskRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	task, err := h.uc.CreateTask(r.Context(), usecase.CreateTaskInput{
		IdempotencyKey: r.Header.Get(headerIdempotencyKey),
		Name:           req.TaskName,
		Description:    req.TaskDescription,
		DueDate:        req.DueDate,
		IsCompleted:    req.IsCompleted,
	})
	if err != nil {
		return nil, err
	}

	return CreateTaskResponse{TaskResponse: toTaskResponse(*task)}, nil
}

// ListTasks returns the caller's tasks, optionally filtered by ?completed=.
func (h *HTTPEndpoint) ListTasks(r *router.Request) (any, error) {
	completed, err := r.GetQueryBool("completed")
	if err != nil {
		return nil, err
	}

	tasks, err := h.uc.ListTasks(r.Context(), usecase.ListTasksInput{Completed: completed})
	if err != nil {
		return nil, err
	}

	return toListTasksResponse(tasks), nil
}

func (h *HTTPEndpoint) UpdateTask(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req TaskRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	task, err := h.uc.UpdateTask(r.Context(), usecase.UpdateTaskInput{
		ID:          id,
		Name:        req.TaskName,
		Description: req.TaskDescription,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		return nil, err
	}

	return toTaskResponse(*task), nil
}

func (h *HTTPEndpoint) DeleteTask(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteTask(r.Context(), usecase.DeleteTaskInput{ID: id}); err != nil {
		return nil, err
	}

	return DeleteTaskResponse{Detail: "Task deleted successfully"}, nil
}
