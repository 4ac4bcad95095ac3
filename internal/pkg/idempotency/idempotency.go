// Package idempotency guards side effects behind a client supplied key stored
// in Redis, so a retried request runs its operation at most once.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid idempotency state")
	ErrEmptyKey          = errors.New("idempotency key is empty")
)

// State is the lifecycle of one key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

func (s State) String() string {
	return string(s)
}

// Idempotency runs fn at most once per key.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
)

// Option tunes a single Exec call.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long a key stays in_progress if the process
// dies before recording the outcome.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lockDuration = d }
}

// WithStateTTL sets how long the completed or failed outcome is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.stateTTL = d }
}

// StateTracker implements Idempotency on Redis with SETNX.
type StateTracker struct {
	client redis.UniversalClient
	prefix string
}

// New creates a tracker whose keys live under prefix, e.g. "idempotency:task:".
func New(client redis.UniversalClient, prefix string) *StateTracker {
	if prefix == "" {
		prefix = "idempotency:"
	}
	return &StateTracker{client: client, prefix: prefix}
}

// Acquire moves key to in_progress if it is unknown and reports StateNone.
// Otherwise it reports the state already recorded.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	for range 2 {
		acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return "", fmt.Errorf("idempotency: acquire %q: %w", key, err)
		}
		if acquired {
			return StateNone, nil
		}

		current, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return "", fmt.Errorf("idempotency: read %q: %w", key, err)
		}

		switch State(current) {
		case StateInProgress, StateCompleted, StateFailed:
			return State(current), nil
		default:
			return "", ErrInvalidState
		}
	}

	return "", ErrInvalidState
}

func (s *StateTracker) mark(ctx context.Context, key string, state State, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, state.String(), ttl).Err()
}

// Exec runs fn when key has never been seen. A repeated key returns
// ErrAlreadyInProgress, ErrAlreadyCompleted or ErrAlreadyFailed without
// calling fn.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	if key == "" {
		return ErrEmptyKey
	}

	o := execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}

	state, err := s.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		return errors.Join(err, s.mark(ctx, key, StateFailed, o.stateTTL))
	}

	return s.mark(ctx, key, StateCompleted, o.stateTTL)
}
