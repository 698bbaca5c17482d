// Package metrics defines and registers all custom Prometheus metrics for
// the timesheet API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timesheet"

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthRejectionsTotal counts requests refused by the auth middleware.
// Label:
//   - reason: "missing_header", "malformed_header", "invalid_token",
//     "missing_subject", or "revoked"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected during authentication.",
	},
	[]string{"reason"},
)

// EntriesCreatedTotal counts newly logged timesheet entries.
var EntriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of timesheet entries created.",
	},
)

// DecisionsTotal counts admin approve/reject decisions.
// Label:
//   - status: the status applied ("approved", "rejected", or "pending")
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total number of admin status decisions, by resulting status.",
	},
	[]string{"status"},
)
