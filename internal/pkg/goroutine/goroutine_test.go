package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestManager_CollectsErrors(t *testing.T) {
	t.Parallel()

	// Arrange
	m := NewManager(4)
	errBoom := errors.New("boom")
	var ran atomic.Int32

	// Act
	for i := range 3 {
		m.Go(context.Background(), func(context.Context) error {
			ran.Add(1)
			if i == 1 {
				return errBoom
			}
			return nil
		})
	}
	err := m.Wait()

	// Assert
	if ran.Load() != 3 {
		t.Fatalf("expected 3 runs, got %d", ran.Load())
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected joined error to contain errBoom, got %v", err)
	}
}

func TestManager_RecoversPanic(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	m.Go(context.Background(), func(context.Context) error { panic("kaboom") })

	if err := m.Wait(); err != nil {
		t.Fatalf("expected nil error after panic, got %v", err)
	}
}

func TestManager_ClosedAndSaturated(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	if !m.Go(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	}) {
		t.Fatalf("expected first Go to be accepted")
	}
	<-started

	if m.Go(context.Background(), func(context.Context) error { return nil }) {
		t.Fatalf("expected Go to be rejected while saturated")
	}

	close(release)
	if err := m.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if m.Go(context.Background(), func(context.Context) error { return nil }) {
		t.Fatalf("expected Go to be rejected after Wait")
	}
}

func TestManager_CanceledContext(t *testing.T) {
	t.Parallel()

	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	m.Go(ctx, func(context.Context) error {
		called = true
		return nil
	})
	_ = m.Wait()

	if called {
		t.Fatalf("expected canceled context to skip the function")
	}
}

func TestManager_Nil(t *testing.T) {
	t.Parallel()

	var m *Manager
	if m.Go(context.Background(), func(context.Context) error { return nil }) {
		t.Fatalf("expected nil manager to reject work")
	}
	if err := m.Wait(); err != nil {
		t.Fatalf("expected nil error from nil manager")
	}
}
