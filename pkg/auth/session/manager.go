package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/simplefs/catalog-backend/pkg/config"
	redisclient "github.com/simplefs/catalog-backend/pkg/redis"
)

// ErrInvalidSession covers bad signatures, expired tokens, and sessions
// revoked server-side.
var ErrInvalidSession = errors.New("invalid session")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager issues and validates admin session tokens. The token itself is a
// signed JWT; its jti keys a Redis entry so sessions can be revoked before
// the token expires.
type Manager struct {
	store       sessionStore
	keyer       sessionKeyer
	secret      []byte
	issuer      string
	ttl         time.Duration
	rememberTTL time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	Validate(ctx context.Context, token string) (string, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	return &Manager{
		store:       client,
		keyer:       client,
		secret:      []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		ttl:         cfg.TTL(),
		rememberTTL: cfg.RememberTTL(),
	}, nil
}

// Issue creates a session for the given subject and returns the signed token
// with its expiry. remember stretches the lifetime.
func (m *Manager) Issue(ctx context.Context, subject string, remember bool) (string, time.Time, error) {
	if strings.TrimSpace(subject) == "" {
		return "", time.Time{}, fmt.Errorf("subject is required")
	}

	ttl := m.ttl
	if remember && m.rememberTTL > ttl {
		ttl = m.rememberTTL
	}

	now := time.Now()
	expires := now.Add(ttl)
	sessionID := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}

	if err := m.store.Set(ctx, m.keyer.SessionKey(sessionID), subject, ttl); err != nil {
		return "", time.Time{}, fmt.Errorf("storing session: %w", err)
	}

	return token, expires, nil
}

// Validate checks the token signature and the server-side session entry,
// returning the session subject.
func (m *Manager) Validate(ctx context.Context, token string) (string, error) {
	claims, err := m.parse(token)
	if err != nil {
		return "", ErrInvalidSession
	}

	subject, err := m.store.Get(ctx, m.keyer.SessionKey(claims.ID))
	if err != nil {
		if redisclient.IsNil(err) {
			return "", ErrInvalidSession
		}
		return "", fmt.Errorf("looking up session: %w", err)
	}
	if subject != claims.Subject {
		return "", ErrInvalidSession
	}
	return subject, nil
}

// Revoke deletes the server-side session entry. Tokens that no longer parse
// are treated as already revoked.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.store.Del(ctx, m.keyer.SessionKey(claims.ID))
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
