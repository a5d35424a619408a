package ports

import (
	"context"

	"github.com/gnanalytica/website/internal/core/domain"
)

// PortalView is everything the portal page renders for one session.
type PortalView struct {
	Session      *domain.Session
	Applications []domain.Application
	Total        int
	Active       int
}

type PortalService interface {
	View(ctx context.Context, session *domain.Session) (*PortalView, error)
	// Catalog lists every application in catalog order.
	Catalog() []domain.Application
}
