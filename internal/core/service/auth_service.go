package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeTiming burns one bcrypt comparison so that an unknown email costs
// the same as a wrong password.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("gnanalytica-timing-pad"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// AuthService implements credential verification and session lifecycle.
type AuthService struct {
	users   ports.UserDirectory
	tokens  *SessionTokens
	revoker ports.SessionRevoker
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserDirectory,
	tokens *SessionTokens,
	revoker ports.SessionRevoker,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, tokens: tokens, revoker: revoker, audit: audit, log: log}
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			equalizeTiming(password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user.Public(), nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string, meta ports.ClientMeta) (string, *domain.Session, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		outcome := domain.OutcomeInvalidCredentials
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			outcome = domain.OutcomeError
			s.log.Error().Err(err).Msg("sign-in failed")
		}
		s.record(email, outcome, "", meta)
		return "", nil, err
	}

	token, sess, err := s.tokens.Issue(user)
	if err != nil {
		s.record(email, domain.OutcomeError, "", meta)
		return "", nil, err
	}

	s.record(email, domain.OutcomeSuccess, sess.ID, meta)
	s.log.Info().
		Str("user_id", sess.UserID).
		Str("role", string(sess.Role)).
		Str("session_id", sess.ID).
		Time("expires_at", sess.ExpiresAt).
		Msg("session issued")

	return token, sess, nil
}

func (s *AuthService) ParseSession(ctx context.Context, token string) (*domain.Session, error) {
	sess, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoker.IsRevoked(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}
	return sess, nil
}

func (s *AuthService) SignOut(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return domain.ErrUnauthenticated
	}

	ttl := sess.Remaining(s.tokens.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, sess.ID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info().Str("session_id", sess.ID).Str("user_id", sess.UserID).Msg("session revoked")
	return nil
}

func (s *AuthService) record(email string, outcome domain.SignInOutcome, sessionID string, meta ports.ClientMeta) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.SignInEvent{
		Email:     email,
		Outcome:   outcome,
		SessionID: sessionID,
		RemoteIP:  meta.RemoteIP,
		UserAgent: meta.UserAgent,
		Timestamp: time.Now().UTC(),
	})
}
