package inbound

import (
	"context"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/identity/usecase"
	"github.com/shandysiswandi/gotask/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.PublicUser, error)
	Profile(ctx context.Context) (*entity.PublicUser, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/auth/register", end.Register)
	r.POST("/auth/login", end.Login)
	r.POST("/auth/refresh", end.RefreshToken)
	r.POST("/auth/logout", end.Logout)

	r.GET("/auth/get-user", end.Profile) // need authenticated
}
