package ports

import (
	"context"

	"github.com/gnanalytica/website/internal/core/domain"
)

// AuditLog persists sign-in attempts.
type AuditLog interface {
	RecordSignIn(ctx context.Context, event domain.SignInEvent) error
}

// AuditSink accepts sign-in events without blocking the caller.
type AuditSink interface {
	Enqueue(event domain.SignInEvent)
}
