package usecase

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gotask/internal/pkg/authn"
	"github.com/shandysiswandi/gotask/internal/pkg/clock"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotask/internal/pkg/validator"
	"github.com/shandysiswandi/gotask/internal/task/entity"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type fakeRepo struct {
	mu        sync.Mutex
	tasks     map[int64]entity.Task
	createErr error
	creates   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: map[int64]entity.Task{}}
}

func (f *fakeRepo) CreateTask(_ context.Context, task entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.tasks[task.ID]; ok {
		return goerror.ErrConflict
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeRepo) ListTasks(_ context.Context, filter entity.TaskFilter) ([]entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entity.Task
	for _, t := range f.tasks {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b entity.Task) int { return int(a.ID - b.ID) })
	return out, nil
}

func (f *fakeRepo) GetTask(_ context.Context, userID, id int64) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return nil, goerror.ErrNotFound
	}
	return &t, nil
}

func (f *fakeRepo) UpdateTask(_ context.Context, task entity.Task) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[task.ID]
	if !ok || t.UserID != task.UserID {
		return false, nil
	}
	f.tasks[task.ID] = task
	return true, nil
}

func (f *fakeRepo) DeleteTask(_ context.Context, userID, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(f.tasks, id)
	return true, nil
}

type seqID struct {
	n atomic.Int64
}

func (s *seqID) Generate() int64 {
	return 1000 + s.n.Add(1)
}

type harness struct {
	uc    *Usecase
	repo  *fakeRepo
	clock *clock.Frozen
	redis *miniredis.Miniredis
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := &harness{
		repo:  newFakeRepo(),
		clock: clock.NewFrozen(testNow),
		redis: mr,
	}
	h.uc = New(Dependency{
		RepoDB:      h.repo,
		Idempotency: idempotency.New(client, "idempotency:task:"),
		Validator:   v,
		UID:         &seqID{},
		Clock:       h.clock,
	})
	return h
}

func asUser(id int64) context.Context {
	return authn.SetAuth(context.Background(), authn.Identity{UserID: id, Username: "user"})
}
