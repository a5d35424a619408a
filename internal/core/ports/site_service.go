package ports

import "github.com/gnanalytica/website/internal/core/domain"

// LandingPage is the data behind the marketing home page.
type LandingPage struct {
	Content    domain.SiteContent
	Scheduling domain.Scheduling
}

type SiteService interface {
	// Landing returns the landing page. A non-empty timezone overrides the
	// configured calendar timezone.
	Landing(timezone string) LandingPage
	Scheduling(timezone string) domain.Scheduling
}
