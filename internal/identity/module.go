package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/shandysiswandi/gotask/internal/identity/entity"
	"github.com/shandysiswandi/gotask/internal/identity/inbound"
	"github.com/shandysiswandi/gotask/internal/identity/outbound/cache"
	"github.com/shandysiswandi/gotask/internal/identity/outbound/db"
	"github.com/shandysiswandi/gotask/internal/identity/outbound/mq"
	"github.com/shandysiswandi/gotask/internal/identity/usecase"
	"github.com/shandysiswandi/gotask/internal/pkg/clock"
	"github.com/shandysiswandi/gotask/internal/pkg/config"
	"github.com/shandysiswandi/gotask/internal/pkg/hash"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"github.com/shandysiswandi/gotask/internal/pkg/jwt"
	"github.com/shandysiswandi/gotask/internal/pkg/messaging"
	"github.com/shandysiswandi/gotask/internal/pkg/router"
	"github.com/shandysiswandi/gotask/internal/pkg/uid"
	"github.com/shandysiswandi/gotask/internal/pkg/validator"
)

// Refresh token store drivers.
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// refreshTokenStore is implemented by both outbound stores.
type refreshTokenStore interface {
	CreateRefreshToken(ctx context.Context, rec entity.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*entity.RefreshToken, error)
	IsRefreshTokenValid(ctx context.Context, userID int64, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, token string) (bool, error)
	RotateRefreshToken(ctx context.Context, oldToken string, rec entity.RefreshToken) error
}

var ErrCacheRequired = errors.New("identity: redis store selected without a cache connection")

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Publisher        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Password   hash.Hash                  `validate:"required"`
	Digest     hash.Hash                  `validate:"required"`
	Codec      jwt.Codec                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`

	// CacheConn is required when modules.identity.refresh_token_store is redis.
	CacheConn redis.UniversalClient
}

// SessionConfigFrom reads the session settings under modules.identity.
func SessionConfigFrom(cfg config.Config) usecase.SessionConfig {
	return usecase.SessionConfig{
		AccessTTL:          cfg.GetMinute("modules.identity.access_token_ttl_minutes"),
		RefreshTTL:         cfg.GetMinute("modules.identity.refresh_token_ttl_minutes"),
		RotateRefreshToken: cfg.GetBool("modules.identity.rotate_refresh_token"),
	}
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbIdentity := db.NewDB(dep.DBConn, dep.Clock, dep.Instrument)

	var repoToken refreshTokenStore = dbIdentity

	store := strings.ToLower(strings.TrimSpace(dep.Config.GetString("modules.identity.refresh_token_store")))
	switch store {
	case "", StorePostgres:
	case StoreRedis:
		if dep.CacheConn == nil {
			return ErrCacheRequired
		}
		repoToken = cache.NewCache(dep.CacheConn, dep.Clock, dep.Instrument)
	default:
		return fmt.Errorf("identity: unknown refresh token store %q", store)
	}
	slog.Info("identity refresh token store selected", "store", lo.CoalesceOrEmpty(store, StorePostgres))

	uc := usecase.New(usecase.Dependency{
		RepoUser:      dbIdentity,
		RepoToken:     repoToken,
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Validator:     dep.Validator,
		Password:      dep.Password,
		Digest:        dep.Digest,
		Codec:         dep.Codec,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Session:       SessionConfigFrom(dep.Config),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	dep.Router.SetAuthenticator(uc)

	return nil
}
