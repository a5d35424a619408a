package api

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gnanalytica/website/docs"
	"github.com/gnanalytica/website/internal/api/handler"
	"github.com/gnanalytica/website/internal/api/metrics"
	"github.com/gnanalytica/website/internal/api/middleware"
	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth   ports.AuthService
	Portal ports.PortalService
	Site   ports.SiteService
	// Audit receives rate-limited sign-in attempts. Optional.
	Audit ports.AuditSink

	Limiter  *middleware.RateLimiter
	CSRF     *middleware.CSRF
	Cookie   handler.CookieConfig
	Security middleware.SecurityConfig
	Demo     []handler.DemoAccount
	Health   map[string]handler.Pinger

	Templates fs.FS
	Static    fs.FS
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := handler.NewRenderer(d.Templates)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()

	// --- Handlers ---
	pageHandler := handler.NewPageHandler(d.Site, d.Auth, d.Portal, d.Cookie, d.Demo, d.Log)
	authHandler := handler.NewAuthHandler(d.Auth)
	portalHandler := handler.NewPortalHandler(d.Portal)
	healthHandler := handler.NewHealthHandler(d.Health)

	e.HTTPErrorHandler = NewHTTPErrorHandler(pageHandler, d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.SecurityHeaders(d.Security))

	d.Limiter.OnLimited = func(c echo.Context) {
		metrics.RecordSignIn(domain.OutcomeRateLimited)
		if d.Audit != nil {
			d.Audit.Enqueue(domain.SignInEvent{
				Email:     c.FormValue("email"),
				Outcome:   domain.OutcomeRateLimited,
				RemoteIP:  c.RealIP(),
				UserAgent: c.Request().UserAgent(),
				Timestamp: time.Now().UTC(),
			})
		}
	}

	loadSession := middleware.LoadSession(d.Auth)
	csrf := d.CSRF.Middleware()
	noStore := middleware.NoStore()
	throttle := d.Limiter.Middleware()

	// --- Pages ---
	e.GET("/", pageHandler.Landing, loadSession, csrf)
	e.GET(handler.SignInPath, pageHandler.SignInForm, noStore, loadSession, csrf)
	e.POST(handler.SignInPath, pageHandler.SignIn, noStore, throttle, csrf)
	e.GET("/auth/error", pageHandler.AuthError, noStore, loadSession, csrf)
	e.POST("/auth/signout", pageHandler.SignOut, noStore, loadSession, csrf)
	e.GET("/portal", pageHandler.Portal, noStore, loadSession, middleware.RequireSession(handler.SignInPath), csrf)

	// --- JSON API ---
	requireSession := middleware.RequireSession("")
	v1 := e.Group("/api/v1", noStore)
	v1.POST("/auth/signin", authHandler.SignIn, throttle)
	v1.GET("/auth/errors/:code", authHandler.AuthError)
	v1.POST("/auth/signout", authHandler.SignOut, middleware.LoadBearerSession(d.Auth), requireSession)
	v1.GET("/session", authHandler.Session, loadSession, requireSession)
	v1.GET("/portal/applications", portalHandler.Applications, loadSession, requireSession)
	v1.GET("/catalog", portalHandler.Catalog, loadSession, requireSession, middleware.RequireRole(domain.RoleAdmin))

	// --- Ops (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness: are configured dependencies up?
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.StaticFS("/static", d.Static)

	return e, nil
}
