package csrf

import (
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/token"
	"github.com/dmitrymomot/webutils/core/tokenstore"
)

// Manager issues and validates CSRF tokens. Safe for concurrent use.
type Manager struct {
	tokens *token.Manager
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. ExpireSessionless reports its failures there.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a CSRF manager with the default settings.
func NewManager(store tokenstore.Store, opts ...Option) *Manager {
	return NewFromConfig(store, Config{}, opts...)
}

// NewFromConfig creates a CSRF manager from cfg.
func NewFromConfig(store tokenstore.Store, cfg Config, opts ...Option) *Manager {
	m := &Manager{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("csrf"))

	cfg = cfg.withDefaults()
	m.tokens = token.NewManager(store, token.Config{
		Length: cfg.Length,
		TTL:    cfg.TTL,
		Prefix: cfg.Prefix,
	}, token.WithLogger(m.logger))
	return m
}

// Generate returns a new token without storing it. Used to embed a
// session-bound token into a session record.
func (m *Manager) Generate() string {
	return m.tokens.Generate()
}

// CreateSessionless generates a token and stores it with the CSRF TTL.
func (m *Manager) CreateSessionless(ctx context.Context) (string, error) {
	tok := m.tokens.Generate()
	if err := m.tokens.Write(ctx, tok, ""); err != nil {
		return "", err
	}
	return tok, nil
}

// ValidateSessionless returns ErrInvalid if tok is empty or has no live
// record. Store failures are returned as token.ErrRead.
func (m *Manager) ValidateSessionless(ctx context.Context, tok string) error {
	if tok == "" {
		return ErrInvalid
	}
	ok, err := m.tokens.Exists(ctx, tok)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalid
	}
	return nil
}

// ValidateSessionBound returns ErrInvalid unless tok is non-empty and equal
// to bound. It never touches the store.
func (m *Manager) ValidateSessionBound(tok, bound string) error {
	if tok == "" || bound == "" {
		return ErrInvalid
	}
	if subtle.ConstantTimeCompare([]byte(tok), []byte(bound)) != 1 {
		return ErrInvalid
	}
	return nil
}

// ExpireSessionless deletes a valid session-less token. Invalid tokens are
// ignored and store failures are logged, so callers can fire and forget.
func (m *Manager) ExpireSessionless(ctx context.Context, tok string) {
	if err := m.ValidateSessionless(ctx, tok); err != nil {
		if !errors.Is(err, ErrInvalid) {
			m.logger.WarnContext(ctx, "csrf token validation failed before expiration",
				logger.Token(tok), logger.Error(err))
		}
		return
	}
	if err := m.tokens.Expire(ctx, tok); err != nil {
		m.logger.WarnContext(ctx, "csrf token expiration failed",
			logger.Token(tok), logger.Error(err))
	}
}
