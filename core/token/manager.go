package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/tokenstore"
)

// Config describes one token namespace.
type Config struct {
	// Length of generated tokens. Zero is allowed for managers that only
	// read tokens issued elsewhere; Generate panics in that case.
	Length int
	// TTL applied on Write and Refresh.
	TTL time.Duration
	// Prefix namespaces keys as "{Prefix}:{token}".
	Prefix string
}

// Manager performs record CRUD for a single namespace.
// It holds no state besides its configuration and is safe for concurrent use.
type Manager struct {
	store  tokenstore.Store
	cfg    Config
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a token manager. It panics if store is nil.
func NewManager(store tokenstore.Store, cfg Config, opts ...Option) *Manager {
	if store == nil {
		panic("token: store is required")
	}
	if cfg.Length < 0 {
		panic("token: length must not be negative")
	}

	m := &Manager{
		store:  store,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("token"), logger.Prefix(cfg.Prefix))
	return m
}

// Config returns the namespace configuration.
func (m *Manager) Config() Config { return m.cfg }

// Key returns the store key for tok.
func (m *Manager) Key(tok string) string {
	return tokenstore.Key(m.cfg.Prefix, tok)
}

// Generate returns a fresh random token of the configured length.
func (m *Manager) Generate() string {
	return Random(m.cfg.Length)
}

// Exists reports whether a live record is stored for tok.
func (m *Manager) Exists(ctx context.Context, tok string) (bool, error) {
	ok, err := m.store.Exists(ctx, m.Key(tok))
	if err != nil {
		return false, errors.Join(ErrRead, err)
	}
	return ok, nil
}

// Write stores payload as JSON under tok with the configured TTL,
// replacing any previous record.
func (m *Manager) Write(ctx context.Context, tok string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := m.store.Set(ctx, m.Key(tok), data, m.cfg.TTL); err != nil {
		return errors.Join(ErrWrite, err)
	}

	m.logger.DebugContext(ctx, "token record written", logger.Token(tok))
	return nil
}

// WriteRaw stores data under tok unchanged, with the configured TTL.
func (m *Manager) WriteRaw(ctx context.Context, tok string, data []byte) error {
	if err := m.store.Set(ctx, m.Key(tok), data, m.cfg.TTL); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return nil
}

// ReadRaw returns the stored bytes for tok, or nil if there is no record.
func (m *Manager) ReadRaw(ctx context.Context, tok string) ([]byte, error) {
	data, err := m.store.Get(ctx, m.Key(tok))
	if err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	return data, nil
}

// Read decodes the record for tok into dest. It returns false with a nil
// error when there is no record.
func (m *Manager) Read(ctx context.Context, tok string, dest any) (bool, error) {
	data, err := m.ReadRaw(ctx, tok)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrDecode, m.Key(tok), err)
	}
	return true, nil
}

// Refresh resets the record's TTL to the configured value. A missing record
// is left missing.
func (m *Manager) Refresh(ctx context.Context, tok string) error {
	if err := m.store.Expire(ctx, m.Key(tok), m.cfg.TTL); err != nil {
		return errors.Join(ErrRefresh, err)
	}
	return nil
}

// Expire deletes the record for tok. Deleting a missing record is a no-op.
func (m *Manager) Expire(ctx context.Context, tok string) error {
	if err := m.store.Delete(ctx, m.Key(tok)); err != nil {
		return errors.Join(ErrExpiration, err)
	}

	m.logger.DebugContext(ctx, "token record expired", logger.Token(tok))
	return nil
}
