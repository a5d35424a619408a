package memory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gnanalytica/website/internal/core/domain"
)

// LogAudit writes sign-in events to the structured log instead of a store.
type LogAudit struct {
	log zerolog.Logger
}

func NewLogAudit(log zerolog.Logger) *LogAudit {
	return &LogAudit{log: log.With().Str("component", "audit").Logger()}
}

func (a *LogAudit) RecordSignIn(_ context.Context, e domain.SignInEvent) error {
	a.log.Info().
		Str("email", e.Email).
		Str("outcome", string(e.Outcome)).
		Str("session_id", e.SessionID).
		Str("remote_ip", e.RemoteIP).
		Time("at", e.Timestamp).
		Msg("sign-in attempt")
	return nil
}
