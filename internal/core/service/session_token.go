package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gnanalytica/website/internal/core/domain"
)

const (
	// DefaultSessionTTL is the fixed lifetime of a portal session.
	DefaultSessionTTL = 30 * 24 * time.Hour

	tokenIssuer = "gnanalytica-portal"
)

type sessionClaims struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Applications []string `json:"applications"`
	jwt.RegisteredClaims
}

// SessionTokens issues and verifies HS256 session tokens.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of t that reads the time from now.
func (t *SessionTokens) WithClock(now func() time.Time) *SessionTokens {
	clone := *t
	clone.now = now
	return &clone
}

// TTL is the session lifetime.
func (t *SessionTokens) TTL() time.Duration {
	return t.ttl
}

// Now is the token clock.
func (t *SessionTokens) Now() time.Time {
	return t.now()
}

// Issue creates a new session for user and its signed token.
func (t *SessionTokens) Issue(user *domain.User) (string, *domain.Session, error) {
	// JWT numeric dates carry whole seconds only.
	now := t.now().UTC().Truncate(time.Second)
	sess := domain.NewSession(uuid.NewString(), user, now, t.ttl)

	claims := sessionClaims{
		Name:         sess.Name,
		Email:        sess.Email,
		Role:         string(sess.Role),
		Applications: sess.Applications,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.UserID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, sess, nil
}

// Parse verifies signature, issuer and expiry and returns the session the
// token carries.
func (t *SessionTokens) Parse(token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionInvalid, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing session identity", domain.ErrSessionInvalid)
	}

	sess := &domain.Session{
		ID:           claims.ID,
		UserID:       claims.Subject,
		Name:         claims.Name,
		Email:        claims.Email,
		Role:         domain.Role(claims.Role),
		Applications: claims.Applications,
		ExpiresAt:    claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return sess, nil
}
