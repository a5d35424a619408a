package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/gnanalytica/website/internal/api/handler"
	"github.com/gnanalytica/website/internal/core/domain"
)

type stubPages struct {
	status  int
	message string
}

func (p *stubPages) ErrorPage(c echo.Context, status int, message string) error {
	p.status, p.message = status, message
	return c.HTML(status, message)
}

func TestResolveError(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{&handler.ValidationError{Message: "email is required"}, http.StatusBadRequest, "email is required"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{fmt.Errorf("parse: %w", domain.ErrSessionExpired), http.StatusUnauthorized, "session expired"},
		{domain.ErrSessionRevoked, http.StatusUnauthorized, "session revoked"},
		{domain.ErrSessionInvalid, http.StatusUnauthorized, "invalid session"},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrCSRFMismatch, http.StatusForbidden, "invalid form token"},
		{domain.ErrRateLimited, http.StatusTooManyRequests, "too many sign-in attempts"},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	for _, tc := range cases {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		code, msg := resolveError(tc.err, zerolog.Nop(), c)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.Equal(t, tc.msg, msg, tc.err.Error())
	}
}

func TestHTTPErrorHandler_APIUsesJSON(t *testing.T) {
	pages := &stubPages{}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/session", nil), rec)

	NewHTTPErrorHandler(pages, zerolog.Nop())(domain.ErrUnauthenticated, c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
	assert.Zero(t, pages.status)
}

func TestHTTPErrorHandler_PagesRenderHTML(t *testing.T) {
	pages := &stubPages{}
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/portal", nil), rec)

	NewHTTPErrorHandler(pages, zerolog.Nop())(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, pages.status)
	assert.Equal(t, domain.AuthErrorMessage(domain.AuthErrorDefault), pages.message)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/missing", nil), rec)

	NewHTTPErrorHandler(&stubPages{}, zerolog.Nop())(echo.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
