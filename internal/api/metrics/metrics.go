// Package metrics defines the custom Prometheus metrics of the health record
// API. HTTP request metrics come from echoprometheus; these cover the
// authentication flow.
//
// All metrics are registered with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "health_records"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate", "invalid_role", "invalid_input" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token checks on protected routes.
// Label:
//   - result: "valid", "missing" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// RoleDeniedTotal counts requests rejected by a role gate.
// Label:
//   - role: the caller's role
var RoleDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denied_total",
		Help:      "Total number of authenticated requests rejected for insufficient role.",
	},
	[]string{"role"},
)
