package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

type stubAuthService struct {
	signInFn  func(ctx context.Context, email, password string, meta ports.ClientMeta) (string, *domain.Session, error)
	parseFn   func(ctx context.Context, token string) (*domain.Session, error)
	signOutFn func(ctx context.Context, sess *domain.Session) error
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return nil, errors.New("not used")
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string, meta ports.ClientMeta) (string, *domain.Session, error) {
	return s.signInFn(ctx, email, password, meta)
}

func (s *stubAuthService) ParseSession(ctx context.Context, token string) (*domain.Session, error) {
	if s.parseFn == nil {
		return nil, domain.ErrSessionInvalid
	}
	return s.parseFn(ctx, token)
}

func (s *stubAuthService) SignOut(ctx context.Context, sess *domain.Session) error {
	if s.signOutFn == nil {
		return nil
	}
	return s.signOutFn(ctx, sess)
}

func testSession() *domain.Session {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Session{
		ID:           "sid-1",
		UserID:       "2",
		Name:         "IGVPL Client",
		Email:        "client@igvpl.com",
		Role:         domain.RoleClient,
		Applications: []string{"igvpl"},
		IssuedAt:     issued,
		ExpiresAt:    issued.Add(30 * 24 * time.Hour),
	}
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string, meta ports.ClientMeta) (string, *domain.Session, error) {
			if email != "client@igvpl.com" || password != "igvpl123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", testSession(), nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/v1/auth/signin", `{"email":"client@igvpl.com","password":"igvpl123"}`)
	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	sess, ok := resp["session"].(map[string]any)
	if !ok || sess["role"] != "client" || sess["email"] != "client@igvpl.com" {
		t.Fatalf("unexpected session payload: %+v", sess)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not mention credentials: %s", rec.Body.String())
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string, meta ports.ClientMeta) (string, *domain.Session, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/v1/auth/signin", `{"email":"client@igvpl.com","password":"bad"}`)
	if err := handler.SignIn(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_SignIn_Validation(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string, meta ports.ClientMeta) (string, *domain.Session, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	cases := map[string]string{
		`{"password":"x"}`:          "email is required",
		`{"email":"a@example.com"}`: "password is required",
	}
	for body, want := range cases {
		c, _ := newJSONContext(http.MethodPost, "/api/v1/auth/signin", body)
		err := handler.SignIn(c)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Message != want {
			t.Fatalf("%s: expected %q, got %v", body, want, err)
		}
	}
}

func TestAuthHandler_SignIn_MalformedEmailIsInvalidCredentials(t *testing.T) {
	var called bool
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string, meta ports.ClientMeta) (string, *domain.Session, error) {
			called = true
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/api/v1/auth/signin", `{"email":"nope","password":"x"}`)
	if err := handler.SignIn(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if !called {
		t.Fatalf("credentials must reach the auth service")
	}
}

func TestAuthHandler_SignIn_InvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodPost, "/api/v1/auth/signin", "{")
	err := handler.SignIn(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	var revoked *domain.Session
	stub := &stubAuthService{
		signOutFn: func(ctx context.Context, sess *domain.Session) error {
			revoked = sess
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/api/v1/auth/signout", "")
	c.Set("session", testSession())
	if err := handler.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked == nil || revoked.ID != "sid-1" {
		t.Fatalf("session not revoked")
	}
}

func TestAuthHandler_Session_RequiresSession(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(http.MethodGet, "/api/v1/session", "")
	if err := handler.Session(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	c, rec := newJSONContext(http.MethodGet, "/api/v1/session", "")
	c.Set("session", testSession())
	if err := handler.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "sid-1" || len(resp.Applications) != 1 {
		t.Fatalf("unexpected session: %+v", resp)
	}
}

func TestAuthHandler_AuthError(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	for code, want := range map[string]string{
		"AccessDenied": "You do not have permission to sign in.",
		"Bogus":        "An error occurred during authentication.",
	} {
		c, rec := newJSONContext(http.MethodGet, "/api/v1/auth/errors/"+code, "")
		c.SetParamNames("code")
		c.SetParamValues(code)
		if err := handler.AuthError(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		var resp authErrorResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Code != code || resp.Message != want {
			t.Fatalf("%s: unexpected response %+v", code, resp)
		}
	}
}
