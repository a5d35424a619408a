package ports

import (
	"context"

	"github.com/gnanalytica/website/internal/core/domain"
)

// UserDirectory looks up portal accounts. Implementations must match the
// email exactly and return domain.ErrUserNotFound on a miss.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
