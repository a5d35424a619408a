package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/api/middleware"
	"github.com/gnanalytica/website/internal/core/domain"
)

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
}

func (cc CookieConfig) set(c echo.Context, token string, sess *domain.Session) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (cc CookieConfig) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
