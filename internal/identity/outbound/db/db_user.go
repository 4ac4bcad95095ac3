package db

import (
	"context"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
)

const (
	selectUserByID       = "select id, username, password_hash, created_at from users where id = $1"
	selectUserByUsername = "select id, username, password_hash, created_at from users where username = $1"
	insertUser           = "insert into users (id, username, password_hash, created_at) values ($1, $2, $3, $4)"
)

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	var u entity.User
	err = s.conn.QueryRow(ctx, selectUserByID, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	var u entity.User
	err = s.conn.QueryRow(ctx, selectUserByUsername, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, insertUser, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	err = s.mapError(err)
	return err
}
