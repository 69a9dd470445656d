package csrf

import "time"

// FieldName is the form field and JSON key carrying the token.
const FieldName = "CSRFToken"

const (
	DefaultLength = 36
	DefaultTTL    = 600 * time.Second
	DefaultPrefix = "temp-csrf"
)

// Config holds CSRF token settings. Zero fields fall back to the defaults.
type Config struct {
	Length int           `env:"CSRF_TOKEN_LENGTH" envDefault:"36"`
	TTL    time.Duration `env:"CSRF_TTL" envDefault:"600s"`
	Prefix string        `env:"CSRF_PREFIX" envDefault:"temp-csrf"`
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
	return c
}
