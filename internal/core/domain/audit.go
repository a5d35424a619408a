package domain

import "time"

// SignInOutcome classifies a credential submission.
type SignInOutcome string

const (
	OutcomeSuccess            SignInOutcome = "success"
	OutcomeInvalidCredentials SignInOutcome = "invalid_credentials"
	OutcomeRateLimited        SignInOutcome = "rate_limited"
	OutcomeError              SignInOutcome = "error"
)

// SignInEvent is an audit record of one sign-in attempt.
type SignInEvent struct {
	Email     string        `json:"email" bson:"email"`
	Outcome   SignInOutcome `json:"outcome" bson:"outcome"`
	SessionID string        `json:"session_id,omitempty" bson:"session_id,omitempty"`
	RemoteIP  string        `json:"remote_ip,omitempty" bson:"remote_ip,omitempty"`
	UserAgent string        `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
}
