package app

import (
	"github.com/dmitrymomot/webutils/core/cookie"
	"github.com/dmitrymomot/webutils/core/csrf"
	"github.com/dmitrymomot/webutils/core/server"
	"github.com/dmitrymomot/webutils/core/session"
	"github.com/dmitrymomot/webutils/core/verification"
	"github.com/dmitrymomot/webutils/integration/database/redis"
	"github.com/dmitrymomot/webutils/integration/email/postmark"
	"github.com/dmitrymomot/webutils/integration/email/smtp"
	"github.com/dmitrymomot/webutils/pkg/ratelimiter"
)

// Store drivers.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Limiter drivers.
const (
	LimiterStore  = "store"
	LimiterMemory = "memory"
)

// Mail drivers.
const (
	MailLog      = "log"
	MailDev      = "dev"
	MailPostmark = "postmark"
	MailSMTP     = "smtp"
)

type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"webutils"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// BaseURL is the public address used in email links.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"redis"`
	LimiterDriver string `env:"RATE_LIMIT_DRIVER" envDefault:"store"`
	MailDriver    string `env:"MAIL_DRIVER" envDefault:"log"`
	MailDir       string `env:"MAIL_DEV_DIR" envDefault:"./tmp/emails"`

	Server       server.Config
	Redis        redis.Config
	Postmark     postmark.Config
	SMTP         smtp.Config
	Cookie       cookie.Config
	Session      session.Config
	CSRF         csrf.Config
	Verification verification.Config
	RateLimit    ratelimiter.Config
}

func (c Config) production() bool {
	return c.Env == "production"
}
