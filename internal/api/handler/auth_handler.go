package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/api/metrics"
	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

// AuthHandler serves the JSON session API.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Applications []string  `json:"applications"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type signInResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   sessionResponse `json:"session"`
}

type authErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	apps := s.Applications
	if apps == nil {
		apps = []string{}
	}
	return sessionResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		Name:         s.Name,
		Email:        s.Email,
		Role:         string(s.Role),
		Applications: apps,
		IssuedAt:     s.IssuedAt,
		ExpiresAt:    s.ExpiresAt,
	}
}

// SignIn verifies credentials and returns a bearer session token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/v1/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, sess, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password, clientMeta(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.RecordSignIn(domain.OutcomeInvalidCredentials)
		} else {
			metrics.RecordSignIn(domain.OutcomeError)
		}
		return err
	}
	metrics.RecordSignIn(domain.OutcomeSuccess)

	return c.JSON(http.StatusOK, signInResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Session:   toSessionResponse(sess),
	})
}

// SignOut revokes the caller's session.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.SignOut(c.Request().Context(), sess); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Session returns the caller's session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// AuthError describes an authentication error code.
//
// @Summary      Authentication error message
// @Tags         auth
// @Produce      json
// @Param        code  path      string  true  "Error code (Configuration, AccessDenied, Verification)"
// @Success      200   {object}  authErrorResponse
// @Router       /api/v1/auth/errors/{code} [get]
func (h *AuthHandler) AuthError(c echo.Context) error {
	code := c.Param("code")
	return c.JSON(http.StatusOK, authErrorResponse{Code: code, Message: domain.AuthErrorMessage(code)})
}
