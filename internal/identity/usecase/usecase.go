package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/pkg/clock"
	"github.com/shandysiswandi/gotask/internal/pkg/hash"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"github.com/shandysiswandi/gotask/internal/pkg/jwt"
	"github.com/shandysiswandi/gotask/internal/pkg/uid"
	"github.com/shandysiswandi/gotask/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 10080 * time.Minute
)

// SessionConfig holds the session lifetimes. It is resolved once at startup.
type SessionConfig struct {
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	RotateRefreshToken bool
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.AccessTTL <= 0 {
		c.AccessTTL = DefaultAccessTTL
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = DefaultRefreshTTL
	}
	return c
}

type UserRegisteredEvent struct {
	UserID       int64
	Username     string
	RegisteredAt time.Time
}

type SessionEndedEvent struct {
	UserID  int64
	EndedAt time.Time
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishSessionEnded(ctx context.Context, msg SessionEndedEvent) error
}

type repoUser interface {
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	CreateUser(ctx context.Context, user entity.User) error
}

// repoRefreshToken persists sessions. Every token argument is already a
// digest.
type repoRefreshToken interface {
	CreateRefreshToken(ctx context.Context, rec entity.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	IsRefreshTokenValid(ctx context.Context, userID int64, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, token string) (bool, error)
	RotateRefreshToken(ctx context.Context, oldToken string, rec entity.RefreshToken) error
}

type Usecase struct {
	repoUser      repoUser
	repoToken     repoRefreshToken
	repoMessaging repoMessaging
	validator     validator.Validator
	password      hash.Hash
	digest        hash.Hash
	codec         jwt.Codec
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	session       SessionConfig
}

type Dependency struct {
	RepoUser      repoUser
	RepoToken     repoRefreshToken
	RepoMessaging repoMessaging
	Validator     validator.Validator
	// Password hashes user credentials.
	Password hash.Hash
	// Digest turns refresh tokens into their stored form.
	Digest     hash.Hash
	Codec      jwt.Codec
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Session    SessionConfig
}

func New(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return &Usecase{
		repoUser:      dep.RepoUser,
		repoToken:     dep.RepoToken,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		password:      dep.Password,
		digest:        dep.Digest,
		codec:         dep.Codec,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           ins,
		session:       dep.Session.withDefaults(),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}
