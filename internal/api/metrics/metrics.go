// Package metrics defines and registers all custom Prometheus metrics for the
// Gnanalytica website. It is the single source of truth for metric names,
// labels, and help strings. Metrics are registered with the default registry
// on package load through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gnanalytica/website/internal/core/domain"
)

const namespace = "portal"

// ── Authentication ────────────────────────────────────────────────────────────

// SignInsTotal counts credential submissions.
// Label:
//   - outcome: "success", "invalid_credentials", "rate_limited" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsRevokedTotal counts explicit sign-outs.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked by sign-out.",
	},
)

// ── Portal ────────────────────────────────────────────────────────────────────

// PortalViewsTotal counts rendered portal pages and API listings.
// Label:
//   - role: the session role (e.g. "client", "admin")
var PortalViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "portal_views_total",
		Help:      "Total number of portal views, by account role.",
	},
	[]string{"role"},
)

// PortalApplicationsRendered observes how many applications one view lists.
var PortalApplicationsRendered = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "portal_applications_rendered",
		Help:      "Number of applications listed per portal view.",
		Buckets:   []float64{0, 1, 2, 4, 8, 16},
	},
)

// ── Audit ─────────────────────────────────────────────────────────────────────

// AuditEventsDroppedTotal counts sign-in audit events lost to a full queue.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of sign-in audit events dropped before persistence.",
	},
)

// AuditErrorsTotal counts audit events the store failed to persist.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of sign-in audit events that failed to persist.",
	},
)

// RecordSignIn counts a sign-in attempt.
func RecordSignIn(outcome domain.SignInOutcome) {
	SignInsTotal.WithLabelValues(string(outcome)).Inc()
}

// RecordPortalView counts a portal view and the size of its listing.
func RecordPortalView(role domain.Role, applications int) {
	PortalViewsTotal.WithLabelValues(string(role)).Inc()
	PortalApplicationsRendered.Observe(float64(applications))
}

// AuditObserver feeds the audit dispatcher's drop and failure signals into
// the audit counters.
type AuditObserver struct{}

func (AuditObserver) AuditDropped() { AuditEventsDroppedTotal.Inc() }
func (AuditObserver) AuditFailed()  { AuditErrorsTotal.Inc() }
