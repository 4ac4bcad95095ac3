package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gotask/internal/pkg/authn"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/pkg/router"
	"github.com/shandysiswandi/gotask/internal/task/entity"
	"github.com/shandysiswandi/gotask/internal/task/usecase"
)

var due = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type fakeUC struct {
	createIn usecase.CreateTaskInput
	listIn   usecase.ListTasksInput
	updateIn usecase.UpdateTaskInput
	deleteIn usecase.DeleteTaskInput
	consumed []usecase.ConsumeUserRegisteredInput
	caller   int64
	err      error
}

func (f *fakeUC) CreateTask(ctx context.Context, in usecase.CreateTaskInput) (*entity.Task, error) {
	f.createIn = in
	f.caller = authn.GetAuth(ctx).UserID
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Task{ID: 1234567890123456789, UserID: f.caller, Name: in.Name, DueDate: in.DueDate}, nil
}

func (f *fakeUC) ListTasks(_ context.Context, in usecase.ListTasksInput) ([]entity.Task, error) {
	f.listIn = in
	return []entity.Task{
		{ID: 1, Name: "a", DueDate: due},
		{ID: 2, Name: "b", DueDate: due, IsCompleted: true},
	}, f.err
}

func (f *fakeUC) UpdateTask(_ context.Context, in usecase.UpdateTaskInput) (*entity.Task, error) {
	f.updateIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Task{ID: in.ID, Name: in.Name, DueDate: in.DueDate, IsCompleted: in.IsCompleted}, nil
}

func (f *fakeUC) DeleteTask(_ context.Context, in usecase.DeleteTaskInput) error {
	f.deleteIn = in
	return f.err
}

func (f *fakeUC) ConsumeUserRegistered(_ context.Context, in usecase.ConsumeUserRegisteredInput) error {
	f.consumed = append(f.consumed, in)
	return f.err
}

type fakeAuth struct{}

func (fakeAuth) Authenticate(_ context.Context, token string) (authn.Identity, error) {
	if token != "good" {
		return authn.Identity{}, goerror.NewBusiness("Invalid or expired token", goerror.CodeUnauthorized)
	}
	return authn.Identity{UserID: 7, Username: "alice"}, nil
}

func newServer(uc *fakeUC) *router.Router {
	r := router.NewRouter(router.Config{Authenticator: fakeAuth{}})
	RegisterHTTPEndpoint(r, uc)
	return r
}

func do(srv http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer good")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	// Arrange
	uc := &fakeUC{}
	srv := newServer(uc)
	body := `{"taskName":"write","taskDescription":"report","dueDate":"2026-05-10T09:00:00Z","isCompleted":false}`

	// Act
	rec := do(srv, http.MethodPost, "/users/me/tasks", body, map[string]string{"Idempotency-Key": "abc"})

	// Assert
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if uc.caller != 7 {
		t.Fatalf("caller = %d, want 7", uc.caller)
	}
	if uc.createIn.IdempotencyKey != "abc" || uc.createIn.Name != "write" || !uc.createIn.DueDate.Equal(due) {
		t.Fatalf("create input = %+v", uc.createIn)
	}

	env := decode(t, rec)
	var data map[string]any
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if data["id"] != "1234567890123456789" || data["taskName"] != "write" {
		t.Fatalf("data = %v", data)
	}
}

func TestCreateTask_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	uc := &fakeUC{}
	rec := do(newServer(uc), http.MethodPost, "/users/me/tasks", `{"name":"x"}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if uc.createIn.Name != "" {
		t.Fatalf("usecase should not be called")
	}
}

func TestTasks_RequireAuthentication(t *testing.T) {
	t.Parallel()

	srv := newServer(&fakeUC{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me/tasks", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	t.Run("no filter", func(t *testing.T) {
		t.Parallel()

		uc := &fakeUC{}
		rec := do(newServer(uc), http.MethodGet, "/users/me/tasks", "", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if uc.listIn.Completed != nil {
			t.Fatalf("Completed = %v, want nil", *uc.listIn.Completed)
		}

		env := decode(t, rec)
		var data []TaskResponse
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("data: %v", err)
		}
		if len(data) != 2 || !data[1].IsCompleted {
			t.Fatalf("data = %+v", data)
		}
		if env.Meta["total"] != float64(2) {
			t.Fatalf("meta = %v", env.Meta)
		}
	})

	t.Run("completed filter", func(t *testing.T) {
		t.Parallel()

		uc := &fakeUC{}
		rec := do(newServer(uc), http.MethodGet, "/users/me/tasks?completed=true", "", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if uc.listIn.Completed == nil || !*uc.listIn.Completed {
			t.Fatalf("Completed = %v, want true", uc.listIn.Completed)
		}
	})

	t.Run("bad filter", func(t *testing.T) {
		t.Parallel()

		rec := do(newServer(&fakeUC{}), http.MethodGet, "/users/me/tasks?completed=maybe", "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	uc := &fakeUC{}
	body := `{"taskName":"done","taskDescription":"","dueDate":"2026-05-10T09:00:00Z","isCompleted":true}`
	rec := do(newServer(uc), http.MethodPut, "/users/me/tasks/42", body, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if uc.updateIn.ID != 42 || !uc.updateIn.IsCompleted || uc.updateIn.Name != "done" {
		t.Fatalf("update input = %+v", uc.updateIn)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	t.Parallel()

	uc := &fakeUC{err: goerror.NewBusinessErr(entity.ErrTaskNotFound, "Task not found", goerror.CodeNotFound)}
	body := `{"taskName":"done","dueDate":"2026-05-10T09:00:00Z"}`
	rec := do(newServer(uc), http.MethodPut, "/users/me/tasks/42", body, nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env := decode(t, rec); env.Message != "Task not found" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		uc := &fakeUC{}
		rec := do(newServer(uc), http.MethodDelete, "/users/me/tasks/42", "", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if uc.deleteIn.ID != 42 {
			t.Fatalf("delete input = %+v", uc.deleteIn)
		}

		var data DeleteTaskResponse
		if err := json.Unmarshal(decode(t, rec).Data, &data); err != nil {
			t.Fatalf("data: %v", err)
		}
		if data.Detail != "Task deleted successfully" {
			t.Fatalf("detail = %q", data.Detail)
		}
	})

	t.Run("non numeric id", func(t *testing.T) {
		t.Parallel()

		rec := do(newServer(&fakeUC{}), http.MethodDelete, "/users/me/tasks/abc", "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
