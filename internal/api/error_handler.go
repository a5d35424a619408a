package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gnanalytica/website/internal/api/handler"
	"github.com/gnanalytica/website/internal/core/domain"
)

const apiPrefix = "/api/"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// ErrorPageRenderer renders the HTML error page.
type ErrorPageRenderer interface {
	ErrorPage(c echo.Context, status int, message string) error
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders {"error": "<message>"} under /api and the HTML error page elsewhere.
func NewHTTPErrorHandler(pages ErrorPageRenderer, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if pages == nil || strings.HasPrefix(c.Request().URL.Path, apiPrefix) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}
		if rerr := pages.ErrorPage(c, code, pageMessage(code, msg)); rerr != nil {
			log.Error().Err(rerr).Str("path", c.Path()).Msg("render error page")
			if !c.Response().Committed {
				_ = c.String(code, msg)
			}
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired"
	case errors.Is(err, domain.ErrSessionRevoked):
		return http.StatusUnauthorized, "session revoked"
	case errors.Is(err, domain.ErrSessionInvalid):
		return http.StatusUnauthorized, "invalid session"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrCSRFMismatch):
		return http.StatusForbidden, "invalid form token"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "too many sign-in attempts"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// pageMessage turns an API message into copy for the HTML error page.
func pageMessage(code int, msg string) string {
	switch code {
	case http.StatusNotFound:
		return "The page you are looking for does not exist."
	case http.StatusForbidden:
		if msg == "invalid form token" {
			return "Your form has expired. Please go back and try again."
		}
		return "You do not have permission to view this page."
	case http.StatusTooManyRequests:
		return "Too many sign-in attempts. Please wait a moment and try again."
	case http.StatusInternalServerError:
		return domain.AuthErrorMessage(domain.AuthErrorDefault)
	}
	return msg
}
