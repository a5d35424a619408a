package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

// PortalService builds the role-gated application dashboard.
type PortalService struct {
	catalog domain.Catalog
	log     zerolog.Logger
}

func NewPortalService(catalog domain.Catalog, log zerolog.Logger) *PortalService {
	return &PortalService{catalog: catalog, log: log}
}

func (s *PortalService) View(_ context.Context, sess *domain.Session) (*ports.PortalView, error) {
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}

	apps := ResolveApplications(sess.Applications, s.catalog)
	if dropped := len(sess.Applications) - len(apps); dropped > 0 {
		s.log.Debug().Str("user_id", sess.UserID).Int("dropped", dropped).Msg("ignored unknown application ids")
	}

	active := 0
	for _, a := range apps {
		if a.Status == domain.StatusActive {
			active++
		}
	}

	return &ports.PortalView{
		Session:      sess,
		Applications: apps,
		Total:        len(apps),
		Active:       active,
	}, nil
}

func (s *PortalService) Catalog() []domain.Application {
	return s.catalog.Applications()
}
