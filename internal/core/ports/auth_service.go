package ports

import (
	"context"

	"github.com/gnanalytica/website/internal/core/domain"
)

// ClientMeta carries request details recorded with a sign-in attempt.
type ClientMeta struct {
	RemoteIP  string
	UserAgent string
}

type AuthService interface {
	// Authenticate verifies credentials and returns the user without
	// credential material. Every failure is domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	SignIn(ctx context.Context, email, password string, meta ClientMeta) (string, *domain.Session, error)
	ParseSession(ctx context.Context, token string) (*domain.Session, error)
	SignOut(ctx context.Context, session *domain.Session) error
}
