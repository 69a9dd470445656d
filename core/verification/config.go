package verification

import "time"

const (
	DefaultLength = 20
	DefaultTTL    = 86400 * time.Second
	DefaultPrefix = "email-verification"
)

// Config holds verification token settings. Zero fields fall back to the
// defaults.
type Config struct {
	Length int           `env:"VERIFICATION_TOKEN_LENGTH" envDefault:"20"`
	TTL    time.Duration `env:"VERIFICATION_TTL" envDefault:"24h"`
	Prefix string        `env:"VERIFICATION_PREFIX" envDefault:"email-verification"`
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
