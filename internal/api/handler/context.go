package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/api/middleware"
	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

// ctxSession returns the session loaded by the session middleware, failing
// fast when the route was mounted without RequireSession.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}

// clientMeta collects the request details recorded with a sign-in attempt.
func clientMeta(c echo.Context) ports.ClientMeta {
	return ports.ClientMeta{
		RemoteIP:  c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
