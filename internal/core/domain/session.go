package domain

import (
	"slices"
	"time"
)

// Session is the authenticated state carried by a signed session token.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Applications []string  `json:"applications"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewSession builds a session for u valid for ttl from now.
func NewSession(id string, u *User, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:           id,
		UserID:       u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Applications: slices.Clone(u.Applications),
		IssuedAt:     now,
		ExpiresAt:    now.Add(ttl),
	}
}

// ExpiredAt reports whether the session has expired at t.
func (s *Session) ExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// Remaining is the lifetime left at t, never negative.
func (s *Session) Remaining(t time.Time) time.Duration {
	d := s.ExpiresAt.Sub(t)
	if d < 0 {
		return 0
	}
	return d
}

// Initial is the first letter of the display name, used as an avatar.
func (s *Session) Initial() string {
	for _, r := range s.Name {
		return string(r)
	}
	return "U"
}
