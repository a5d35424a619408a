package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gnanalytica/website/internal/api/metrics"
	"github.com/gnanalytica/website/internal/api/middleware"
	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

const (
	// SignInPath is where unauthenticated portal visitors are sent.
	SignInPath = "/auth/signin"
	portalPath = "/portal"

	// invalidCredentialsMessage is shown for every failed form sign-in.
	invalidCredentialsMessage = "Invalid email or password"
)

// DemoAccount is a login listed on the sign-in page.
type DemoAccount struct {
	Label    string
	Email    string
	Password string
}

// PageHandler serves the server-rendered pages.
type PageHandler struct {
	site   ports.SiteService
	auth   ports.AuthService
	portal ports.PortalService
	cookie CookieConfig
	demo   []DemoAccount
	log    zerolog.Logger
}

func NewPageHandler(
	site ports.SiteService,
	auth ports.AuthService,
	portal ports.PortalService,
	cookie CookieConfig,
	demo []DemoAccount,
	log zerolog.Logger,
) *PageHandler {
	return &PageHandler{
		site:   site,
		auth:   auth,
		portal: portal,
		cookie: cookie,
		demo:   demo,
		log:    log,
	}
}

type signInView struct {
	Error        string
	Email        string
	DemoAccounts []DemoAccount
}

type errorView struct {
	Heading string
	Message string
}

func (h *PageHandler) page(c echo.Context, title string, data any) Page {
	landing := h.site.Landing("")
	p := Page{
		Title:       landing.Content.Title,
		Description: landing.Content.Description,
		Site:        landing.Content,
		CSRF:        middleware.CSRFToken(c),
		Data:        data,
	}
	if title != "" {
		p.Title = title + " | Gnanalytica"
	}
	if sess, ok := middleware.SessionFrom(c); ok {
		p.Session = sess
	}
	return p
}

// Landing renders the marketing home page. A tz query parameter overrides
// the calendar timezone.
func (h *PageHandler) Landing(c echo.Context) error {
	landing := h.site.Landing(c.QueryParam("tz"))
	return c.Render(http.StatusOK, "landing", h.page(c, "", landing))
}

// SignInForm renders the credential form. Visitors with a live session go
// straight to the portal.
func (h *PageHandler) SignInForm(c echo.Context) error {
	if _, ok := middleware.SessionFrom(c); ok {
		return c.Redirect(http.StatusSeeOther, portalPath)
	}
	return c.Render(http.StatusOK, "signin", h.page(c, "Sign In", signInView{DemoAccounts: h.demo}))
}

// SignIn handles the form post.
func (h *PageHandler) SignIn(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	token, sess, err := h.auth.SignIn(c.Request().Context(), email, password, clientMeta(c))
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.RecordSignIn(domain.OutcomeError)
			return err
		}
		metrics.RecordSignIn(domain.OutcomeInvalidCredentials)
		return c.Render(http.StatusUnauthorized, "signin", h.page(c, "Sign In", signInView{
			Error:        invalidCredentialsMessage,
			Email:        email,
			DemoAccounts: h.demo,
		}))
	}

	metrics.RecordSignIn(domain.OutcomeSuccess)
	h.cookie.set(c, token, sess)
	return c.Redirect(http.StatusSeeOther, portalPath)
}

// SignOut revokes the current session, if any, and clears the cookie.
func (h *PageHandler) SignOut(c echo.Context) error {
	if sess, ok := middleware.SessionFrom(c); ok {
		if err := h.auth.SignOut(c.Request().Context(), sess); err != nil {
			h.log.Error().Err(err).Str("session_id", sess.ID).Msg("sign-out revocation failed")
		} else {
			metrics.SessionsRevokedTotal.Inc()
		}
	}
	h.cookie.clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

// AuthError renders the message for an authentication error code.
func (h *PageHandler) AuthError(c echo.Context) error {
	return c.Render(http.StatusOK, "error", h.page(c, "Authentication Error", errorView{
		Heading: "Authentication Error",
		Message: domain.AuthErrorMessage(c.QueryParam("error")),
	}))
}

// Portal renders the application dashboard for the signed-in user.
func (h *PageHandler) Portal(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	view, err := h.portal.View(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	metrics.RecordPortalView(sess.Role, view.Total)
	return c.Render(http.StatusOK, "portal", h.page(c, "Client Portal", view))
}

// ErrorPage renders a generic error page. Used by the HTTP error handler.
func (h *PageHandler) ErrorPage(c echo.Context, status int, message string) error {
	return c.Render(status, "error", h.page(c, http.StatusText(status), errorView{
		Heading: http.StatusText(status),
		Message: message,
	}))
}
