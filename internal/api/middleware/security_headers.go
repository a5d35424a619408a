package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SecurityConfig tunes the headers set by SecurityHeaders.
type SecurityConfig struct {
	// HSTS enables Strict-Transport-Security; only meaningful behind TLS.
	HSTS bool
	// FrameSources are the origins allowed in iframes, e.g. the booking calendar.
	FrameSources []string
}

// SecurityHeaders adds security-related HTTP headers to all responses.
func SecurityHeaders(cfg SecurityConfig) echo.MiddlewareFunc {
	frameSrc := "'none'"
	if len(cfg.FrameSources) > 0 {
		frameSrc = strings.Join(cfg.FrameSources, " ")
	}
	csp := strings.Join([]string{
		"default-src 'self'",
		"img-src 'self' data:",
		"style-src 'self'",
		"script-src 'self'",
		"frame-src " + frameSrc,
		"frame-ancestors 'none'",
		"form-action 'self'",
		"base-uri 'none'",
	}, "; ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			if cfg.HSTS {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", csp)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			return next(c)
		}
	}
}

// NoStore marks responses as private and uncacheable. Applied to every route
// that reads or writes a session.
func NoStore() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
			return next(c)
		}
	}
}
