package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/pkg/retry"
)

// Config is the Redis connection configuration.
type Config struct {
	URL      string `env:"REDIS_URL"`
	Host     string `env:"SESSION_STORE_HOST"`
	Port     int    `env:"SESSION_STORE_PORT" envDefault:"6379"`
	Password string `env:"SESSION_PASS"`

	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"100s"`
}

// Options builds client options from the URL or the host settings.
func (c Config) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, errors.Join(ErrFailedToParseConnString, err)
		}
		return opts, nil
	}
	if c.Host == "" {
		return nil, ErrEmptyConnection
	}

	port := c.Port
	if port == 0 {
		port = 6379
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Password: c.Password,
	}, nil
}

// Connect creates a client and waits until it answers PING. On timeout the
// client is closed and the error matches ErrNotReady.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*redis.Client, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = log.With(logger.Component("redis"))

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 100 * time.Second
	}

	log.InfoContext(ctx, "connecting to redis", logger.Key("addr", opts.Addr))
	err = retry.Until(ctx, cfg.RetryInterval, timeout,
		func(ctx context.Context) error { return client.Ping(ctx).Err() },
		func(attempt int, err error) {
			log.InfoContext(ctx, "waiting for redis", logger.RetryCount(attempt), logger.Error(err))
		},
	)
	if err != nil {
		_ = client.Close()
		return nil, errors.Join(ErrNotReady, err)
	}

	log.InfoContext(ctx, "connected to redis")
	return client, nil
}

// Healthcheck returns a probe that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, fmt.Errorf("ping: %w", err))
		}
		return nil
	}
}
