package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/core/domain"
)

// SessionCookie carries the signed session token for browser clients.
const SessionCookie = "gn_session"

const (
	sessionKey    = "session"
	sessionErrKey = "session_error"
)

// SessionParser validates a session token.
type SessionParser interface {
	ParseSession(ctx context.Context, token string) (*domain.Session, error)
}

// LoadSession resolves the caller's session from a Bearer header or the
// session cookie and stores it in the context. Requests without a valid
// session pass through unchanged; the parse failure is kept for
// RequireSession to report.
func LoadSession(parser SessionParser) echo.MiddlewareFunc {
	return loadSession(parser, true)
}

// LoadBearerSession is LoadSession restricted to the Authorization header.
// State-changing API routes use it, so an ambient cookie sent by a
// cross-site form never authenticates them.
func LoadBearerSession(parser SessionParser) echo.MiddlewareFunc {
	return loadSession(parser, false)
}

func loadSession(parser SessionParser, withCookie bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := sessionToken(c, withCookie)
			if err != nil {
				c.Set(sessionErrKey, err)
				return next(c)
			}
			if token == "" {
				return next(c)
			}

			sess, err := parser.ParseSession(c.Request().Context(), token)
			if err != nil {
				c.Set(sessionErrKey, err)
				return next(c)
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// RequireSession rejects requests that LoadSession could not authenticate.
// With a non-empty redirect the caller is sent there with 303 See Other;
// otherwise the session error is returned for the error handler.
func RequireSession(redirect string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFrom(c); ok {
				return next(c)
			}
			if redirect != "" {
				return c.Redirect(http.StatusSeeOther, redirect)
			}
			if err, ok := c.Get(sessionErrKey).(error); ok && !errors.Is(err, domain.ErrUnauthenticated) {
				return err
			}
			return domain.ErrUnauthenticated
		}
	}
}

// SessionFrom returns the session stored by LoadSession.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(sessionKey).(*domain.Session)
	return sess, ok && sess != nil
}

func sessionToken(c echo.Context, withCookie bool) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", domain.ErrSessionInvalid
		}
		return parts[1], nil
	}
	if !withCookie {
		return "", nil
	}
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return "", nil
	}
	return cookie.Value, nil
}
