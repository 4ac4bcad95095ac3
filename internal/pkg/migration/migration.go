// Package migration applies the embedded PostgreSQL schema.
//
// Files under sql/ run in lexical order, each inside its own transaction.
// Applied versions are recorded in schema_migrations, and a transaction
// level advisory lock keeps concurrent instances from racing.
package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
)

//go:embed sql/*.sql
var files embed.FS

const (
	lockKey = 7_301_221_001

	createVersionTable = "create table if not exists schema_migrations (version text primary key, applied_at timestamptz not null default now())"
	lockVersionTable   = "select pg_advisory_xact_lock($1)"
	selectVersion      = "select exists (select 1 from schema_migrations where version = $1)"
	insertVersion      = "insert into schema_migrations (version) values ($1)"
)

var (
	ErrReadMigrations = errors.New("migration: read embedded files")
	ErrApply          = errors.New("migration: apply")
)

// Commander is the subset of pgx used to run migrations. *pgxpool.Pool
// satisfies it.
type Commander interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Versions lists the embedded migrations in the order they are applied.
func Versions() ([]string, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, errors.Join(ErrReadMigrations, err)
	}

	versions := lo.FilterMap(entries, func(e fs.DirEntry, _ int) (string, bool) {
		return strings.TrimSuffix(e.Name(), ".sql"), !e.IsDir() && strings.HasSuffix(e.Name(), ".sql")
	})
	slices.Sort(versions)

	return versions, nil
}

// Up applies every migration that has not run yet and returns the versions
// it applied.
func Up(ctx context.Context, db Commander) ([]string, error) {
	if _, err := db.Exec(ctx, createVersionTable); err != nil {
		return nil, errors.Join(ErrApply, err)
	}

	versions, err := Versions()
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, v := range versions {
		ok, err := apply(ctx, db, v)
		if err != nil {
			return applied, fmt.Errorf("%w %s: %w", ErrApply, v, err)
		}
		if ok {
			applied = append(applied, v)
		}
	}

	return applied, nil
}

func apply(ctx context.Context, db Commander, version string) (applied bool, err error) {
	body, err := files.ReadFile(path.Join("sql", version+".sql"))
	if err != nil {
		return false, errors.Join(ErrReadMigrations, err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rErr)
		}
	}()

	if _, err := tx.Exec(ctx, lockVersionTable, lockKey); err != nil {
		return false, err
	}

	var done bool
	if err := tx.QueryRow(ctx, selectVersion, version).Scan(&done); err != nil {
		return false, err
	}
	if done {
		return false, nil
	}

	if _, err := tx.Exec(ctx, string(body)); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, insertVersion, version); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}
