// Package cache keeps refresh token records in Redis as an alternative to
// the PostgreSQL store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/clock"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "refresh_token:"

// expiryGrace keeps a key alive slightly past its record expiry so the
// expiry instant itself is still answered from the record.
const expiryGrace = time.Second

type record struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Cache struct {
	client redis.UniversalClient
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

func NewCache(client redis.UniversalClient, clk clock.Clocker, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, clock: clk, ins: ins}
}

func key(token string) string {
	return keyPrefix + token
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("identity.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (c *Cache) encode(rec entity.RefreshToken) ([]byte, time.Duration, error) {
	body, err := json.Marshal(record{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Token:     rec.Token,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
	})
	if err != nil {
		return nil, 0, err
	}

	ttl := rec.ExpiresAt.Sub(c.clock.Now()) + expiryGrace
	if ttl < expiryGrace {
		ttl = expiryGrace
	}

	return body, ttl, nil
}

func (c *Cache) CreateRefreshToken(ctx context.Context, rec entity.RefreshToken) (err error) {
	ctx, span := c.startSpan(ctx, "CreateRefreshToken")
	defer func() { c.endSpan(span, err) }()

	body, ttl, err := c.encode(rec)
	if err != nil {
		return err
	}

	ok, err := c.client.SetNX(ctx, key(rec.Token), body, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return goerror.ErrConflict
	}

	return nil
}

func (c *Cache) GetRefreshToken(ctx context.Context, token string) (_ *entity.RefreshToken, err error) {
	ctx, span := c.startSpan(ctx, "GetRefreshToken")
	defer func() { c.endSpan(span, err) }()

	body, err := c.client.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var r record
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, err
	}

	return &entity.RefreshToken{
		ID:        r.ID,
		UserID:    r.UserID,
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (c *Cache) IsRefreshTokenValid(ctx context.Context, userID int64, token string) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "IsRefreshTokenValid")
	defer func() { c.endSpan(span, err) }()

	rec, err := c.GetRefreshToken(ctx, token)
	if errors.Is(err, goerror.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return rec.UserID == userID && rec.ValidAt(c.clock.Now()), nil
}

func (c *Cache) DeleteRefreshToken(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "DeleteRefreshToken")
	defer func() { c.endSpan(span, err) }()

	n, err := c.client.Del(ctx, key(token)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// RotateRefreshToken replaces oldToken with rec under WATCH so a concurrent
// rotation of the same token makes exactly one caller win.
func (c *Cache) RotateRefreshToken(ctx context.Context, oldToken string, rec entity.RefreshToken) (err error) {
	ctx, span := c.startSpan(ctx, "RotateRefreshToken")
	defer func() { c.endSpan(span, err) }()

	body, ttl, err := c.encode(rec)
	if err != nil {
		return err
	}

	oldKey, newKey := key(oldToken), key(rec.Token)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		oldExists, err := tx.Exists(ctx, oldKey).Result()
		if err != nil {
			return err
		}
		if oldExists == 0 {
			return goerror.ErrNotFound
		}

		newExists, err := tx.Exists(ctx, newKey).Result()
		if err != nil {
			return err
		}
		if newExists > 0 {
			return goerror.ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, oldKey)
			pipe.Set(ctx, newKey, body, ttl)
			return nil
		})
		return err
	}, oldKey, newKey)
	if errors.Is(err, redis.TxFailedErr) {
		return goerror.ErrNotFound
	}

	return err
}
