package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/webutils/core/config"
	"github.com/dmitrymomot/webutils/core/cookie"
	"github.com/dmitrymomot/webutils/core/csrf"
	"github.com/dmitrymomot/webutils/core/email"
	"github.com/dmitrymomot/webutils/core/health"
	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/server"
	"github.com/dmitrymomot/webutils/core/session"
	"github.com/dmitrymomot/webutils/core/tokenstore"
	"github.com/dmitrymomot/webutils/core/verification"
	"github.com/dmitrymomot/webutils/integration/database/redis"
	"github.com/dmitrymomot/webutils/integration/email/postmark"
	"github.com/dmitrymomot/webutils/integration/email/smtp"
	"github.com/dmitrymomot/webutils/middleware"
	"github.com/dmitrymomot/webutils/pkg/ratelimiter"
)

var (
	ErrUnknownDriver = errors.New("app: unknown driver")
	ErrNilDependency = errors.New("app: dependency cannot be nil")
)

// App holds the managers a web application needs, built from one Config.
// Handlers reach them through the App value instead of global state.
type App struct {
	Config Config
	Logger *slog.Logger

	Store        tokenstore.Store
	Sessions     *session.Manager
	CSRF         *csrf.Manager
	Verification *verification.Manager
	Limiter      ratelimiter.Limiter
	Cookies      *cookie.Manager
	Mailer       *email.Mailer

	sender   email.Sender
	checks   []health.Check
	cancel   context.CancelFunc
	hasCfg   bool
	closeFns []func() error
}

type Option func(*App) error

// WithConfig uses cfg instead of loading it from the environment.
func WithConfig(cfg Config) Option {
	return func(a *App) error {
		a.Config = cfg
		a.hasCfg = true
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		if l == nil {
			return fmt.Errorf("%w: logger", ErrNilDependency)
		}
		a.Logger = l
		return nil
	}
}

// WithStore uses store and skips the STORE_DRIVER connection.
func WithStore(store tokenstore.Store) Option {
	return func(a *App) error {
		if store == nil {
			return fmt.Errorf("%w: store", ErrNilDependency)
		}
		a.Store = store
		return nil
	}
}

// WithSender uses sender and skips MAIL_DRIVER.
func WithSender(sender email.Sender) Option {
	return func(a *App) error {
		if sender == nil {
			return fmt.Errorf("%w: email sender", ErrNilDependency)
		}
		a.sender = sender
		return nil
	}
}

// New builds the application container. Without WithConfig the Config is
// loaded from the environment (and .env). Background workers started here
// stop on Close or when ctx is cancelled.
func New(ctx context.Context, opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if !a.hasCfg {
		if err := config.Load(&a.Config); err != nil {
			return nil, err
		}
	}
	cfg := a.Config

	if a.Logger == nil {
		a.Logger = newLogger(cfg)
	}
	log := a.Logger.With(logger.Component("app"))

	ctx, a.cancel = context.WithCancel(ctx)

	if err := a.initStore(ctx, cfg); err != nil {
		a.cancel()
		return nil, err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Cookies = cookies

	a.Sessions = session.NewFromConfig(a.Store, cfg.Session,
		session.WithLogger(a.Logger),
		session.WithCookies(cookies),
	)
	a.CSRF = csrf.NewFromConfig(a.Store, cfg.CSRF, csrf.WithLogger(a.Logger))
	a.Verification = verification.NewFromConfig(a.Store, cfg.Verification, verification.WithLogger(a.Logger))

	if err := a.initLimiter(ctx, cfg); err != nil {
		_ = a.Close()
		return nil, err
	}
	if err := a.initMailer(cfg); err != nil {
		_ = a.Close()
		return nil, err
	}

	log.InfoContext(ctx, "application initialised",
		logger.Key("store", cfg.StoreDriver),
		logger.Key("mail", cfg.MailDriver),
	)
	return a, nil
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{logger.WithContextExtractors(middleware.RequestIDExtractor)}
	if cfg.production() {
		opts = append(opts, logger.WithProduction(cfg.AppName))
	} else {
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}

func (a *App) initStore(ctx context.Context, cfg Config) error {
	if a.Store != nil {
		return nil
	}

	switch cfg.StoreDriver {
	case StoreMemory:
		mem := tokenstore.NewMemoryStore(tokenstore.WithMemoryLogger(a.Logger))
		mem.Start(ctx)
		a.Store = mem
		a.closeFns = append(a.closeFns, mem.Close)
	case StoreRedis, "":
		client, err := redis.Connect(ctx, cfg.Redis, a.Logger)
		if err != nil {
			return err
		}
		a.Store = tokenstore.NewRedisStore(client)
		a.checks = append(a.checks, redis.Healthcheck(client))
		a.closeFns = append(a.closeFns, client.Close)
	default:
		return fmt.Errorf("%w: store %q", ErrUnknownDriver, cfg.StoreDriver)
	}
	return nil
}

func (a *App) initLimiter(ctx context.Context, cfg Config) error {
	switch cfg.LimiterDriver {
	case LimiterStore, "":
		a.Limiter = ratelimiter.NewCounterLimiter(a.Store, cfg.RateLimit)
	case LimiterMemory:
		l := ratelimiter.NewMemoryLimiter(cfg.RateLimit, ratelimiter.WithLogger(a.Logger))
		go l.Start(ctx)
		a.Limiter = l
	default:
		return fmt.Errorf("%w: rate limiter %q", ErrUnknownDriver, cfg.LimiterDriver)
	}
	return nil
}

func (a *App) initMailer(cfg Config) error {
	if a.sender == nil {
		switch cfg.MailDriver {
		case MailLog, "":
			a.sender = email.NewLogSender(a.Logger)
		case MailDev:
			a.sender = email.NewDevSender(cfg.MailDir)
		case MailPostmark:
			client, err := postmark.New(cfg.Postmark)
			if err != nil {
				return err
			}
			a.sender = client
		case MailSMTP:
			client, err := smtp.New(cfg.SMTP)
			if err != nil {
				return err
			}
			a.sender = client
		default:
			return fmt.Errorf("%w: mail %q", ErrUnknownDriver, cfg.MailDriver)
		}
	}
	a.Mailer = email.NewMailer(a.sender, cfg.BaseURL)
	return nil
}

// Run serves h on the configured address until ctx is cancelled.
func (a *App) Run(ctx context.Context, h http.Handler) error {
	return server.New(a.Config.Server, server.WithLogger(a.Logger)).Run(ctx, h)
}

// HealthChecks returns readiness checks for the connected backends.
func (a *App) HealthChecks() []health.Check {
	return a.checks
}

// Close stops background workers and releases connections.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	var errs []error
	for i := len(a.closeFns) - 1; i >= 0; i-- {
		errs = append(errs, a.closeFns[i]())
	}
	a.closeFns = nil
	return errors.Join(errs...)
}
