package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/core/domain"
)

// RequireRole allows the request only when the session role is one of roles.
// It must run after RequireSession.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[sess.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
