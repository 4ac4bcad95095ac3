package app

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/gotask/internal/pkg/clock"
	"github.com/shandysiswandi/gotask/internal/pkg/config"
	"github.com/shandysiswandi/gotask/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotask/internal/pkg/hash"
	"github.com/shandysiswandi/gotask/internal/pkg/idempotency"
	"github.com/shandysiswandi/gotask/internal/pkg/instrument"
	"github.com/shandysiswandi/gotask/internal/pkg/jwt"
	"github.com/shandysiswandi/gotask/internal/pkg/messaging"
	"github.com/shandysiswandi/gotask/internal/pkg/migration"
	"github.com/shandysiswandi/gotask/internal/pkg/router"
	"github.com/shandysiswandi/gotask/internal/pkg/uid"
	"github.com/shandysiswandi/gotask/internal/pkg/validator"
)

var defaultCORSOrigins = []string{"http://localhost:5173"}

func (a *App) initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.digest = hash.NewHMACSHA256(a.config.GetString("hash.hmac.secret"))

	password, err := hash.NewPassword(hash.Config{
		Driver:     a.config.GetString("hash.password.driver"),
		BcryptCost: a.config.GetInt("hash.password.bcrypt_cost"),
		Pepper:     a.config.GetString("hash.password.pepper"),
	})
	if err != nil {
		slog.Error("failed to init password hash", "error", err)
		os.Exit(1)
	}
	a.password = password

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator

	snow, err := uid.NewSnowflake(a.config.GetInt64("app.node_id"))
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow
}

func (a *App) initJWT() {
	codec, err := jwt.NewHS256(jwt.Config{
		Secret: []byte(a.config.GetString("jwt.secret")),
		Issuer: a.config.GetString("jwt.issuer"),
		Clock:  a.clock,
		UUID:   a.uuid,
	})
	if err != nil {
		slog.Error("failed to init jwt codec", "error", err)
		os.Exit(1)
	}
	a.codec = codec
}

// connectBackoff retries startup pings on a capped Fibonacci schedule.
func (a *App) connectBackoff() retry.Backoff {
	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	return retry.WithMaxRetries(uint64(max(a.config.GetInt("app.connect_max_retries"), 0)), b)
}

func (a *App) initDatabase() {
	config, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		slog.Error("failed to parse DB connection string.", "error", err)
		os.Exit(1)
	}

	if v := a.config.GetInt("database.pool.max_conns"); v > 0 {
		config.MaxConns = int32(v) //nolint:gosec // bounded by config
	}
	if v := a.config.GetInt("database.pool.min_conns"); v > 0 {
		config.MinConns = int32(v) //nolint:gosec // bounded by config
	}
	if v := a.config.GetSecond("database.pool.max_conn_lifetime_seconds"); v > 0 {
		config.MaxConnLifetime = v
	}
	if v := a.config.GetSecond("database.pool.max_conn_idle_seconds"); v > 0 {
		config.MaxConnIdleTime = v
	}
	if v := a.config.GetSecond("database.pool.health_check_period_seconds"); v > 0 {
		config.HealthCheckPeriod = v
	}

	pool, err := pgxpool.NewWithConfig(a.ctx, config)
	if err != nil {
		slog.Error("failed to create DB connection pool", "error", err)
		os.Exit(1)
	}

	if err := retry.Do(a.ctx, a.connectBackoff(), func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			slog.Warn("DB not reachable yet", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		slog.Error("failed to ping DB", "error", err)
		os.Exit(1)
	}

	a.dbConn = pool
}

func (a *App) initMigration() {
	if !a.config.GetBool("database.auto_migrate") {
		return
	}

	applied, err := migration.Up(a.ctx, a.dbConn)
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrated", "applied", applied)
}

// initCache connects Redis when redis.url is set. Without it the idempotency
// guard is off and the refresh token store must be postgres.
func (a *App) initCache() {
	url := strings.TrimSpace(a.config.GetString("redis.url"))
	if url == "" {
		slog.Warn("redis.url is empty, idempotency keys are ignored")
		return
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	if err := retry.Do(a.ctx, a.connectBackoff(), func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.Warn("redis not reachable yet", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
	a.idemp = idempotency.New(rdb, "idempotency:task:")
}

func (a *App) initMessaging() {
	driver := a.config.GetString("messaging.driver")
	client, err := messaging.NewFromDriver(driver, messaging.FactoryOptions{
		Kafka: messaging.KafkaConfig{
			Brokers:      a.config.GetArray("messaging.kafka.brokers"),
			ClientID:     a.config.GetString("messaging.kafka.client_id"),
			BatchTimeout: time.Duration(a.config.GetInt64("messaging.kafka.batch_timeout_ms")) * time.Millisecond,
		},
		NATS: messaging.NATSConfig{
			URL:  a.config.GetString("messaging.nats.url"),
			Name: a.config.GetString("messaging.nats.name"),
			Options: []nats.Option{
				nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
				nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
				nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
				nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
			},
		},
		NSQ: messaging.NSQConfig{
			ProducerAddr:         a.config.GetString("messaging.nsq.producer_addr"),
			ConsumerNSQDAddrs:    a.config.GetArray("messaging.nsq.consumer_nsqd_addrs"),
			ConsumerLookupdAddrs: a.config.GetArray("messaging.nsq.consumer_lookupd_addrs"),
			ConsumerConfig:       a.nsqConsumerConfig(),
		},
	})
	if err != nil {
		slog.Error("failed to init messaging", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.messaging = client
}

func (a *App) nsqConsumerConfig() *nsq.Config {
	cfg := nsq.NewConfig()
	if v := a.config.GetInt("messaging.nsq.max_in_flight"); v > 0 {
		cfg.MaxInFlight = v
	}
	if v := a.config.GetSecond("messaging.nsq.dial_timeout_seconds"); v > 0 {
		cfg.DialTimeout = v
	}
	if v := a.config.GetInt("messaging.nsq.max_attempts"); v > 0 && v <= math.MaxUint16 {
		cfg.MaxAttempts = uint16(v)
	}
	return cfg
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})
	a.router.GET("/health", a.health)

	origins := a.config.GetArray("app.server.cors")
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				return a.messaging.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				if a.cacheConn == nil {
					return nil
				}
				return a.cacheConn.Close()
			},
		},
		{
			name: "Database",
			fn: func(context.Context) error {
				a.dbConn.Close()

				return nil
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
