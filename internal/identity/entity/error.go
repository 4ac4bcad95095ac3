package entity

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUsernameTaken       = errors.New("username already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateToken      = errors.New("refresh token already exists")
)
