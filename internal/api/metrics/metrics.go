// Package metrics defines and registers all custom Prometheus metrics for the
// membership API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "membership"

// SessionsIssuedTotal counts minted sessions.
// Label:
//   - kind: "user" or "admin"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued, by principal kind.",
	},
	[]string{"kind"},
)

// SessionsValidatedTotal counts validation outcomes.
// Labels:
//   - kind: "user" or "admin"
//   - result: "valid", "invalid" (not found / expired / orphaned) or "error" (transient)
var SessionsValidatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_validated_total",
		Help:      "Total number of session validations, by kind and result.",
	},
	[]string{"kind", "result"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - kind: "user" or "admin" ("unknown" when credentials matched nothing)
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// PaymentsVerifiedTotal counts payment verification outcomes.
// Label:
//   - result: "success" or "failure"
var PaymentsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_verified_total",
		Help:      "Total number of payment verifications, by result.",
	},
	[]string{"result"},
)
