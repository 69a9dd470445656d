package pg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/pkg/retry"
)

// Config is the PostgreSQL connection configuration.
type Config struct {
	DSN      string `env:"DB_DSN"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASS"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	Name     string `env:"DB_NAME"`

	MaxConns      int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	Timeout       time.Duration `env:"DB_TIMEOUT" envDefault:"100s"`
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"5s"`
}

// ConnString returns DSN, or a postgres:// URL built from the parts.
func (c Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	port := c.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Path:   "/" + c.Name,
	}
	return u.String()
}

// Connect opens a pool and waits until the database answers a ping.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*pgxpool.Pool, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With(logger.Component("pg"))

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 100 * time.Second
	}

	log.InfoContext(ctx, "connecting to database", logger.Key("host", poolCfg.ConnConfig.Host))
	err = retry.Until(ctx, cfg.RetryInterval, timeout, pool.Ping,
		func(attempt int, err error) {
			log.InfoContext(ctx, "waiting for database", logger.RetryCount(attempt), logger.Error(err))
		},
	)
	if err != nil {
		pool.Close()
		log.ErrorContext(ctx, "failed to connect to database", logger.Error(err))
		return nil, errors.Join(ErrNotReady, err)
	}

	log.InfoContext(ctx, "connected to database")
	return pool, nil
}

// Migrate applies the goose SQL migrations found at the root of fsys.
func Migrate(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(database.DialectPostgres, db, fsys)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			logger.Component("pg"),
			logger.Key("version", r.Source.Version),
			logger.Duration(r.Duration),
		)
	}
	return nil
}

// Healthcheck returns a probe that pings the pool.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, fmt.Errorf("ping: %w", err))
		}
		return nil
	}
}
