package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/pkg/retry"
)

var (
	ErrOpen            = errors.New("sqlite: failed to open database")
	ErrNotReady        = errors.New("sqlite: database did not become ready within the timeout")
	ErrMigrationFailed = errors.New("sqlite: migration failed")
)

type Config struct {
	Path          string        `env:"SQLITE_PATH" envDefault:"test.db"`
	Timeout       time.Duration `env:"SQLITE_TIMEOUT" envDefault:"100s"`
	RetryInterval time.Duration `env:"SQLITE_RETRY_INTERVAL" envDefault:"1s"`
}

// Open opens the database at cfg.Path with foreign keys enforced.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*sql.DB, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With(logger.Component("sqlite"))

	path := cfg.Path
	if path == "" {
		path = "test.db"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 100 * time.Second
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Join(ErrOpen, err)
	}

	err = retry.Until(ctx, cfg.RetryInterval, timeout,
		func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				return err
			}
			_, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`)
			return err
		},
		func(attempt int, err error) {
			log.InfoContext(ctx, "waiting for database", logger.RetryCount(attempt), logger.Error(err))
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrNotReady, err)
	}

	log.DebugContext(ctx, "database opened", logger.Key("path", path))
	return db, nil
}

// Migrate applies the goose SQL migrations found at the root of fsys.
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	provider, err := goose.NewProvider(database.DialectSQLite3, db, fsys)
	if err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
}
