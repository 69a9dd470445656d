package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/webutils/core/cookie"
	"github.com/dmitrymomot/webutils/core/logger"
	"github.com/dmitrymomot/webutils/core/token"
	"github.com/dmitrymomot/webutils/core/tokenstore"
)

// Manager creates, resolves and terminates sessions.
// It is safe for concurrent use.
type Manager struct {
	cfg      Config
	store    tokenstore.Store
	sessions *token.Manager
	index    *token.Manager
	cookies  *cookie.Manager
	logger   *slog.Logger

	lockTTL time.Duration
	locker  tokenstore.Locker
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithCookies sets the cookie manager used by SetCookie and ClearCookie.
func WithCookies(c *cookie.Manager) Option {
	return func(m *Manager) {
		if c != nil {
			m.cookies = c
		}
	}
}

// WithActivationLock serialises CreateAndActivate per user with a SET NX
// lock held for at most ttl. The store must implement tokenstore.Locker.
func WithActivationLock(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// NewManager creates a session manager with the default settings.
func NewManager(store tokenstore.Store, opts ...Option) *Manager {
	return NewFromConfig(store, Config{}, opts...)
}

// NewFromConfig creates a session manager from cfg. It panics if store is
// nil, or if the activation lock is requested on a store without SetNX.
func NewFromConfig(store tokenstore.Store, cfg Config, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}

	cfg = cfg.withDefaults()
	m := &Manager{
		cfg:     cfg,
		store:   store,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		lockTTL: cfg.ActivationLockTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("session"))

	if m.cookies == nil {
		// New only fails on short secrets.
		m.cookies, _ = cookie.New(nil)
	}

	if m.lockTTL > 0 {
		locker, ok := store.(tokenstore.Locker)
		if !ok {
			panic("session: activation lock requires a store implementing tokenstore.Locker")
		}
		m.locker = locker
	}

	m.sessions = token.NewManager(store, token.Config{
		Length: cfg.Length,
		TTL:    cfg.TTL,
		Prefix: cfg.Prefix,
	}, token.WithLogger(m.logger))
	m.index = token.NewManager(store, token.Config{
		TTL:    cfg.TTL,
		Prefix: cfg.IndexPrefix,
	}, token.WithLogger(m.logger))

	return m
}

// Config returns the effective configuration.
func (m *Manager) Config() Config { return m.cfg }

// CreateAndActivate makes a new session the user's only live session.
// Any session referenced by the user index is deleted, together with the
// index entry, before the new session record and index entry are written.
func (m *Manager) CreateAndActivate(ctx context.Context, user User) (Session, error) {
	if m.locker != nil {
		unlock, err := m.lock(ctx, user.ID)
		if err != nil {
			return Session{}, err
		}
		defer unlock()
	}

	if err := m.teardownPrevious(ctx, user.ID); err != nil {
		return Session{}, err
	}

	sess := Session{
		Token:     m.sessions.Generate(),
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CSRFToken: token.Random(m.cfg.CSRFLength),
		Settings:  user.Settings,
	}
	if sess.Settings == nil {
		sess.Settings = map[string]any{}
	}

	if err := m.sessions.Write(ctx, sess.Token, sess); err != nil {
		return Session{}, err
	}
	if err := m.index.WriteRaw(ctx, indexKey(user.ID), []byte(sess.Token)); err != nil {
		// Without an index entry the session could outlive the next login.
		if derr := m.sessions.Expire(ctx, sess.Token); derr != nil {
			m.logger.ErrorContext(ctx, "failed to roll back unindexed session",
				logger.UserID(user.ID), logger.Token(sess.Token), logger.Error(derr))
		}
		return Session{}, err
	}

	m.logger.InfoContext(ctx, "session activated", logger.UserID(user.ID), logger.Token(sess.Token))
	return sess, nil
}

// Resolve loads the session for tok and slides its expiration.
// It returns ErrInvalidSession for an empty, unknown or expired token.
func (m *Manager) Resolve(ctx context.Context, tok string) (Session, error) {
	if tok == "" {
		return Session{}, ErrInvalidSession
	}

	var sess Session
	found, err := m.sessions.Read(ctx, tok, &sess)
	if err != nil {
		return Session{}, err
	}
	if !found {
		return Session{}, ErrInvalidSession
	}
	sess.Token = tok

	if err := m.sessions.Refresh(ctx, tok); err != nil {
		return Session{}, err
	}
	// The index follows the session so a later login still finds it.
	if err := m.index.Refresh(ctx, indexKey(sess.UserID)); err != nil {
		m.logger.WarnContext(ctx, "failed to refresh session index",
			logger.UserID(sess.UserID), logger.Error(err))
	}

	return sess, nil
}

// Terminate deletes the session record and, if it still points at this
// session, the user's index entry. Both steps are attempted. A failure to
// delete the record is returned (joined with any index failure) since the
// session would stay usable; an index-only failure is logged, as an index
// entry naming a dead token is harmless.
func (m *Manager) Terminate(ctx context.Context, sess Session) error {
	recErr := m.sessions.Expire(ctx, sess.Token)
	idxErr := m.expireIndexIfCurrent(ctx, sess)

	if recErr != nil {
		err := errors.Join(recErr, idxErr)
		m.logger.ErrorContext(ctx, "session termination failed",
			logger.UserID(sess.UserID), logger.Token(sess.Token), logger.Error(err))
		return err
	}
	if idxErr != nil {
		m.logger.WarnContext(ctx, "session terminated, index entry left behind",
			logger.UserID(sess.UserID), logger.Token(sess.Token), logger.Error(idxErr))
		return nil
	}

	m.logger.InfoContext(ctx, "session terminated", logger.UserID(sess.UserID), logger.Token(sess.Token))
	return nil
}

// ActiveToken returns the token of the user's live session, if any.
func (m *Manager) ActiveToken(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	data, err := m.index.ReadRaw(ctx, indexKey(userID))
	if err != nil || data == nil {
		return "", false, err
	}
	return string(data), true, nil
}

// expireIndexIfCurrent leaves an index entry that names a newer session.
func (m *Manager) expireIndexIfCurrent(ctx context.Context, sess Session) error {
	current, found, err := m.ActiveToken(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if !found || current != sess.Token {
		return nil
	}
	return m.index.Expire(ctx, indexKey(sess.UserID))
}

func (m *Manager) teardownPrevious(ctx context.Context, userID uuid.UUID) error {
	prev, found, err := m.ActiveToken(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	if err := m.sessions.Expire(ctx, prev); err != nil {
		return err
	}
	if err := m.index.Expire(ctx, indexKey(userID)); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "previous session expired", logger.UserID(userID), logger.Token(prev))
	return nil
}

func (m *Manager) lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	key := tokenstore.Key(DefaultLockPrefix, userID.String())
	ok, err := m.locker.SetNX(ctx, key, []byte("1"), m.lockTTL)
	if err != nil {
		return nil, errors.Join(token.ErrWrite, err)
	}
	if !ok {
		return nil, ErrActivationInProgress
	}

	return func() {
		// The request context may already be done; release regardless.
		if err := m.store.Delete(context.WithoutCancel(ctx), key); err != nil {
			m.logger.WarnContext(ctx, "failed to release activation lock",
				logger.UserID(userID), logger.Error(err))
		}
	}, nil
}

func indexKey(userID uuid.UUID) string {
	return userID.String()
}
