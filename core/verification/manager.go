package verification

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/token"
	"github.com/dmitrymomot/webutils/core/tokenstore"
)

type record struct {
	UserID uuid.UUID `json:"user_id"`
}

// Manager issues and resolves verification tokens.
type Manager struct {
	tokens *token.Manager
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a verification manager with the default settings.
func NewManager(store tokenstore.Store, opts ...Option) *Manager {
	return NewFromConfig(store, Config{}, opts...)
}

// NewFromConfig creates a verification manager from cfg.
func NewFromConfig(store tokenstore.Store, cfg Config, opts ...Option) *Manager {
	m := &Manager{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("verification"))

	cfg = cfg.withDefaults()
	m.tokens = token.NewManager(store, token.Config{
		Length: cfg.Length,
		TTL:    cfg.TTL,
		Prefix: cfg.Prefix,
	}, token.WithLogger(m.logger))
	return m
}

// CreateForUser issues a token for userID.
func (m *Manager) CreateForUser(ctx context.Context, userID uuid.UUID) (string, error) {
	tok := m.tokens.Generate()
	if err := m.tokens.Write(ctx, tok, record{UserID: userID}); err != nil {
		return "", err
	}

	m.logger.DebugContext(ctx, "verification token issued", logger.UserID(userID), logger.Token(tok))
	return tok, nil
}

// Resolve returns the user the token was issued for, or ErrInvalidToken.
func (m *Manager) Resolve(ctx context.Context, tok string) (uuid.UUID, error) {
	if tok == "" {
		return uuid.Nil, ErrInvalidToken
	}

	var rec record
	found, err := m.tokens.Read(ctx, tok, &rec)
	if err != nil {
		return uuid.Nil, err
	}
	if !found || rec.UserID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return rec.UserID, nil
}

// IsValid reports whether tok has a live record.
func (m *Manager) IsValid(ctx context.Context, tok string) (bool, error) {
	if tok == "" {
		return false, nil
	}
	return m.tokens.Exists(ctx, tok)
}

// Expire deletes the token. Unknown tokens are ignored.
func (m *Manager) Expire(ctx context.Context, tok string) error {
	if tok == "" {
		return nil
	}
	return m.tokens.Expire(ctx, tok)
}

// Consume resolves tok and deletes it, so it cannot be used twice.
func (m *Manager) Consume(ctx context.Context, tok string) (uuid.UUID, error) {
	userID, err := m.Resolve(ctx, tok)
	if err != nil {
		return uuid.Nil, err
	}
	if err := m.tokens.Expire(ctx, tok); err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}
