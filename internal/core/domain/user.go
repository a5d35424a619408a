package domain

import "slices"

// Role tags the commercial tier of a portal account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RolePremium    Role = "premium"
	RoleEnterprise Role = "enterprise"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RolePremium, RoleEnterprise:
		return true
	}
	return false
}

// User models a portal account. Users are defined at start-up and never
// mutated afterwards.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         Role     `json:"role"`
	Applications []string `json:"applications"`
}

// Public returns a copy of u without credential material.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Applications: slices.Clone(u.Applications),
	}
}
