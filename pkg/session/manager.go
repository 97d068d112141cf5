package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/shopreviews/pkg/logger"
)

// Manager loads, creates and persists sessions.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	logger    *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

func WithTransport(transport Transport) Option {
	return func(m *Manager) { m.transport = transport }
}

func WithConfig(config Config) Option {
	return func(m *Manager) { m.config = config }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Manager. Without options it keeps sessions in memory and
// transports the token in the configured cookie.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		m.transport = NewCookieTransport(m.config.CookieName, m.config.SecureCookies)
	}
	return m
}

// Get returns the live session referenced by the request.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, token)
}

// Ensure returns the request's session, starting an anonymous one when the
// request has none.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if session, err := m.Get(ctx, r); err == nil {
		return session, nil
	}

	session, err := m.create(ctx, false)
	if err != nil {
		return nil, err
	}
	idle, _ := m.config.Timeouts(false)
	if err := m.transport.SetToken(w, session.Token, idle); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}
	return session, nil
}

// Authenticate logs userID in. The session token and challenge are rotated
// so values issued before login stop working.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID string, admin bool) (*Session, error) {
	if userID == "" {
		return nil, ErrInvalidSession
	}

	session, err := m.Get(ctx, r)
	if err != nil {
		if session, err = m.create(ctx, true); err != nil {
			return nil, err
		}
	} else {
		_ = m.store.Delete(ctx, session.Token)
		if session.Token, err = generateToken(); err != nil {
			return nil, err
		}
		if session.Challenge, err = generateToken(); err != nil {
			return nil, err
		}
		idle, lifetime := m.config.Timeouts(true)
		session.ExpiresAt = expiry(session.CreatedAt, time.Now(), idle, lifetime)
		session.Touch()
		if err := m.store.Create(ctx, session); err != nil {
			return nil, err
		}
	}

	session.UserID = userID
	session.Admin = admin
	if err := m.store.Update(ctx, session); err != nil {
		return nil, err
	}

	idle, _ := m.config.Timeouts(true)
	return session, m.transport.SetToken(w, session.Token, idle)
}

// Destroy removes the session and clears the token on the client.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

// Save persists the session and extends its idle expiry.
func (m *Manager) Save(ctx context.Context, session *Session) error {
	if session == nil {
		return ErrInvalidSession
	}
	idle, lifetime := m.config.Timeouts(session.IsAuthenticated())
	session.Touch()
	session.ExpiresAt = expiry(session.CreatedAt, session.LastActivityAt, idle, lifetime)
	if err := m.store.Update(ctx, session); err != nil {
		return err
	}
	session.modified = false
	return nil
}

func (m *Manager) create(ctx context.Context, authenticated bool) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	challenge, err := generateToken()
	if err != nil {
		return nil, err
	}

	idle, lifetime := m.config.Timeouts(authenticated)
	now := time.Now()
	session := NewSession(token, challenge, expiry(now, now, idle, lifetime).Sub(now))
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// expiry is the earlier of the idle deadline and the absolute lifetime.
func expiry(createdAt, now time.Time, idle, lifetime time.Duration) time.Time {
	idleExpiry := now.Add(idle)
	maxExpiry := createdAt.Add(lifetime)
	if maxExpiry.Before(idleExpiry) {
		return maxExpiry
	}
	return idleExpiry
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
