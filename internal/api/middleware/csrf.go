package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/core/domain"
)

const (
	// CSRFCookie holds the per-visitor nonce the form token is derived from.
	CSRFCookie = "gn_csrf"
	// CSRFField is the hidden form field carrying the token.
	CSRFField = "csrf_token"

	csrfKey = "csrf"
)

// CSRF protects HTML form posts with an HMAC-SHA256 token bound to a nonce
// cookie. Safe methods get a nonce (issued on first visit) and the derived
// token in the context; unsafe methods must echo the token back.
type CSRF struct {
	secret []byte
	secure bool
}

func NewCSRF(secret string, secure bool) *CSRF {
	return &CSRF{secret: []byte(secret), secure: secure}
}

// Token derives the form token for a nonce.
func (g *CSRF) Token(nonce string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte("csrf:" + nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (g *CSRF) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce := ""
			if cookie, err := c.Cookie(CSRFCookie); err == nil {
				nonce = cookie.Value
			}

			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				if nonce == "" {
					nonce = uuid.NewString()
					c.SetCookie(&http.Cookie{
						Name:     CSRFCookie,
						Value:    nonce,
						Path:     "/",
						HttpOnly: true,
						Secure:   g.secure,
						SameSite: http.SameSiteStrictMode,
					})
				}
				c.Set(csrfKey, g.Token(nonce))
				return next(c)
			}

			if nonce == "" {
				return domain.ErrCSRFMismatch
			}
			want := g.Token(nonce)
			if !hmac.Equal([]byte(c.FormValue(CSRFField)), []byte(want)) {
				return domain.ErrCSRFMismatch
			}
			c.Set(csrfKey, want)
			return next(c)
		}
	}
}

// CSRFToken returns the form token stored by the CSRF middleware.
func CSRFToken(c echo.Context) string {
	token, _ := c.Get(csrfKey).(string)
	return token
}
