package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/shandysiswandi/gotask/internal/pkg/stacktrace"
)

// responder is the ack bookkeeping embedded by every driver message.
type responder struct {
	responded atomic.Bool
}

func (r *responder) hasResponded() bool { return r.responded.Load() }

// claim marks the message as answered and reports whether this call won.
func (r *responder) claim() bool { return !r.responded.Swap(true) }

type deliverable interface {
	Message
	hasResponded() bool
}

// deliver runs handler for msg, converting a panic into an error, and then
// applies auto ack if the handler did not answer the message itself.
func deliver(ctx context.Context, driver string, msg deliverable, handler Handler, autoAck bool) error {
	herr := callHandlerWithRecover(ctx, driver, func() error { return handler(ctx, msg) })
	if herr != nil {
		slog.WarnContext(ctx, "messaging handler failed", "driver", driver, "topic", msg.Topic(), "error", herr)
	}

	if !autoAck || msg.hasResponded() {
		return nil
	}
	if herr == nil {
		return msg.Ack(ctx)
	}
	return msg.Nack(ctx)
}

func callHandlerWithRecover(ctx context.Context, driver string, fn func() error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: panic in %s handler: %v", driver, rvr)
	}()

	return fn()
}
