package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

const (
	insertRefreshToken = "insert into refresh_tokens (id, user_id, token, expires_at, created_at) values ($1, $2, $3, $4, $5)"
	selectRefreshToken = "select id, user_id, token, expires_at, created_at from refresh_tokens where token = $1"
	validRefreshToken  = "select exists (select 1 from refresh_tokens where user_id = $1 and token = $2 and expires_at >= $3)"
	deleteRefreshToken = "delete from refresh_tokens where token = $1"
)

func (s *DB) CreateRefreshToken(ctx context.Context, rec entity.RefreshToken) (err error) {
	ctx, span := s.startSpan(ctx, "CreateRefreshToken")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, insertRefreshToken,
		rec.ID,
		rec.UserID,
		rec.Token,
		pgtype.Timestamptz{Valid: true, Time: rec.ExpiresAt},
		pgtype.Timestamptz{Valid: true, Time: rec.CreatedAt},
	)
	err = s.mapError(err)
	return err
}

func (s *DB) GetRefreshToken(ctx context.Context, token string) (_ *entity.RefreshToken, err error) {
	ctx, span := s.startSpan(ctx, "GetRefreshToken")
	defer func() { s.endSpan(span, err) }()

	var rec entity.RefreshToken
	err = s.conn.QueryRow(ctx, selectRefreshToken, token).Scan(&rec.ID, &rec.UserID, &rec.Token, &rec.ExpiresAt, &rec.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &rec, nil
}

// IsRefreshTokenValid compares against the injected clock, not the database
// server time.
func (s *DB) IsRefreshTokenValid(ctx context.Context, userID int64, token string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "IsRefreshTokenValid")
	defer func() { s.endSpan(span, err) }()

	var ok bool
	err = s.conn.QueryRow(ctx, validRefreshToken, userID, token, s.clock.Now()).Scan(&ok)
	if err != nil {
		return false, s.mapError(err)
	}

	return ok, nil
}

func (s *DB) DeleteRefreshToken(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeleteRefreshToken")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, deleteRefreshToken, token)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

// RotateRefreshToken swaps oldToken for rec in one transaction. Whoever
// deletes the old row first wins; the loser gets goerror.ErrNotFound.
func (s *DB) RotateRefreshToken(ctx context.Context, oldToken string, rec entity.RefreshToken) (err error) {
	ctx, span := s.startSpan(ctx, "RotateRefreshToken")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	tag, err := tx.Exec(ctx, deleteRefreshToken, oldToken)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	if _, err := tx.Exec(ctx, insertRefreshToken,
		rec.ID,
		rec.UserID,
		rec.Token,
		pgtype.Timestamptz{Valid: true, Time: rec.ExpiresAt},
		pgtype.Timestamptz{Valid: true, Time: rec.CreatedAt},
	); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
