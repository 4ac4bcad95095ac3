// Package goroutine runs fire-and-forget work with a concurrency cap and a
// graceful drain on shutdown.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"

	"github.com/shandysiswandi/gotask/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by the CPU count when NewManager receives
// a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs functions in goroutines with a bounded concurrency.
//
// Errors returned by the functions are collected and reported by Wait. Once
// Wait has been called the manager refuses new work.
type Manager struct {
	mu     sync.Mutex
	errs   []error
	wg     sync.WaitGroup
	sema   chan struct{}
	closed atomic.Bool

	// gate keeps Wait from racing an Add that is already past the closed check.
	gate sync.RWMutex
}

// NewManager creates a Manager that runs at most maxGoroutine functions at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go runs f in a new goroutine. It reports false, and does not run f, when
// the manager is closed or saturated.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.gate.RLock()
	defer g.gate.RUnlock()

	if g.closed.Load() {
		slog.WarnContext(ctx, "goroutine manager is closed, dropping work")
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, dropping work", "limit", cap(g.sema))
		return false
	}

	g.wg.Go(func() {
		defer func() { <-g.sema }()
		defer g.recover(ctx)

		if err := ctx.Err(); err != nil {
			slog.WarnContext(ctx, "goroutine canceled before start", "because", err)
			return
		}

		if err := f(ctx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	})

	return true
}

// Wait closes the manager, blocks until running functions return and joins
// their errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.gate.Lock()
	g.closed.Store(true)
	g.gate.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}

func (g *Manager) recover(ctx context.Context) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "panic in goroutine", "panic", rvr, "stack", paths)
		return
	}
	slog.ErrorContext(ctx, "panic in goroutine", "panic", rvr, "stack", string(stack))
}
