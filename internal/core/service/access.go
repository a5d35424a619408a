package service

import "github.com/gnanalytica/website/internal/core/domain"

// ResolveApplications maps authorized application ids to catalog entries.
// Ids without a catalog entry are dropped silently; every other id yields
// one entry, in the order of ids.
func ResolveApplications(ids []string, catalog domain.Catalog) []domain.Application {
	apps := make([]domain.Application, 0, len(ids))
	for _, id := range ids {
		if app, ok := catalog.Lookup(id); ok {
			apps = append(apps, app)
		}
	}
	return apps
}
