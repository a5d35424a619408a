// Package memory holds process-local adapters used when no external store is
// configured.
package memory

import (
	"context"

	"github.com/gnanalytica/website/internal/core/domain"
)

// UserDirectory is a read-only email index over a fixed set of users.
type UserDirectory struct {
	byEmail map[string]*domain.User
}

func NewUserDirectory(users []*domain.User) *UserDirectory {
	d := &UserDirectory{byEmail: make(map[string]*domain.User, len(users))}
	for _, u := range users {
		d.byEmail[u.Email] = u
	}
	return d
}

// FindByEmail matches the email exactly, without case folding.
func (d *UserDirectory) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := d.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	cp.Applications = append([]string(nil), u.Applications...)
	return &cp, nil
}
