package session

import "time"

const (
	DefaultLength      = 36
	DefaultTTL         = 7200 * time.Second
	DefaultPrefix      = "session"
	DefaultIndexPrefix = "user_to_sess"
	DefaultLockPrefix  = "session-lock"
	DefaultCookieName  = "SESSIONID"
	DefaultCSRFLength  = 36
)

// Config holds session settings. Zero fields fall back to the defaults.
type Config struct {
	Length      int           `env:"SESSION_TOKEN_LENGTH" envDefault:"36"`
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"7200s"`
	Prefix      string        `env:"SESSION_PREFIX" envDefault:"session"`
	IndexPrefix string        `env:"SESSION_INDEX_PREFIX" envDefault:"user_to_sess"`
	CookieName  string        `env:"SESSION_COOKIE_NAME" envDefault:"SESSIONID"`
	// CookieSecure adds the Secure attribute; enable behind HTTPS.
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	CSRFLength   int  `env:"CSRF_TOKEN_LENGTH" envDefault:"36"`
	// ActivationLockTTL enables the activation lock when positive.
	ActivationLockTTL time.Duration `env:"SESSION_ACTIVATION_LOCK_TTL" envDefault:"0s"`
}

func (c Config) withDefaults() Config {
	if c.Length <= 0 {
		c.Length = DefaultLength
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.IndexPrefix == "" {
		c.IndexPrefix = DefaultIndexPrefix
	}
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.CSRFLength <= 0 {
		c.CSRFLength = DefaultCSRFLength
	}
	return c
}

