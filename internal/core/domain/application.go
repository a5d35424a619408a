package domain

import (
	"fmt"
	"slices"
)

// ApplicationStatus is the availability of a catalog entry.
type ApplicationStatus string

const (
	StatusActive     ApplicationStatus = "active"
	StatusBeta       ApplicationStatus = "beta"
	StatusComingSoon ApplicationStatus = "coming-soon"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusActive, StatusBeta, StatusComingSoon:
		return true
	}
	return false
}

// Label is the badge text shown for the status.
func (s ApplicationStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusBeta:
		return "Beta"
	default:
		return "Coming Soon"
	}
}

// Application describes a launchable product in the catalog.
type Application struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	URL         string            `json:"url,omitempty"`
	Status      ApplicationStatus `json:"status"`
}

// Launchable reports whether the application has a launch URL.
func (a Application) Launchable() bool {
	return a.URL != ""
}

// Catalog is an ordered, immutable registry of applications.
type Catalog struct {
	apps  []Application
	index map[string]int
}

// NewCatalog validates apps and builds a Catalog preserving their order.
func NewCatalog(apps []Application) (Catalog, error) {
	c := Catalog{
		apps:  make([]Application, 0, len(apps)),
		index: make(map[string]int, len(apps)),
	}
	for i, a := range apps {
		if a.ID == "" {
			return Catalog{}, fmt.Errorf("%w: application #%d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.index[a.ID]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate application id %q", ErrInvalidCatalog, a.ID)
		}
		if !a.Status.Valid() {
			return Catalog{}, fmt.Errorf("%w: application %q has unknown status %q", ErrInvalidCatalog, a.ID, a.Status)
		}
		c.index[a.ID] = len(c.apps)
		c.apps = append(c.apps, a)
	}
	return c, nil
}

// Lookup returns the application with the given id.
func (c Catalog) Lookup(id string) (Application, bool) {
	i, ok := c.index[id]
	if !ok {
		return Application{}, false
	}
	return c.apps[i], true
}

// Applications returns the catalog entries in catalog order.
func (c Catalog) Applications() []Application {
	return slices.Clone(c.apps)
}

// Len is the number of catalog entries.
func (c Catalog) Len() int {
	return len(c.apps)
}
