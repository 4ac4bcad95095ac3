package usecase

import (
	"fmt"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/goerror"
)

func errInvalidCredentials() error {
	return goerror.NewBusinessErr(entity.ErrInvalidCredentials, "Incorrect username or password", goerror.CodeUnauthorized)
}

func errUnauthenticated() error {
	return goerror.NewBusinessErr(entity.ErrUnauthenticated, "Invalid or expired token", goerror.CodeUnauthorized)
}

func errUnauthenticatedUserGone() error {
	return goerror.NewBusinessErr(
		fmt.Errorf("%w: %w", entity.ErrUnauthenticated, entity.ErrUserNotFound),
		"User not found",
		goerror.CodeUnauthorized,
	)
}

func errInvalidRefreshToken() error {
	return goerror.NewBusinessErr(entity.ErrInvalidRefreshToken, "Invalid or expired refresh token", goerror.CodeUnauthorized)
}

func errInvalidRefreshTokenUserGone() error {
	return goerror.NewBusinessErr(
		fmt.Errorf("%w: %w", entity.ErrInvalidRefreshToken, entity.ErrUserNotFound),
		"Invalid or expired refresh token",
		goerror.CodeUnauthorized,
	)
}

func errUsernameTaken() error {
	return goerror.NewBusinessErr(entity.ErrUsernameTaken, "Username already registered", goerror.CodeConflict)
}

func errDuplicateToken() error {
	return goerror.NewBusinessErr(entity.ErrDuplicateToken, "Session could not be created, try again", goerror.CodeConflict)
}
