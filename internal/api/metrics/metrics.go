// Package metrics defines and registers all custom Prometheus metrics for the
// identity system. It is the single source of truth for metric names, labels,
// and help strings. Metrics are registered with the default registry via
// promauto at package load time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful self-service registrations.
// Label:
//   - role: "Employee" or "Manager"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by role.",
	},
	[]string{"role"},
)

// AdminMutationsTotal counts administrative directory mutations.
// Label:
//   - action: "update" or "delete"
var AdminMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_mutations_total",
		Help:      "Total number of administrative directory mutations, by action.",
	},
	[]string{"action"},
)

// AuditEventsTotal counts audit events that were persisted successfully.
// Label:
//   - action: the audit action (e.g. "login_failed", "user_updated")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events persisted, by action.",
	},
	[]string{"action"},
)

// AuditErrorsTotal counts audit events that failed processing.
// Label:
//   - reason: short failure description (e.g. "insert_failed", "queue_full")
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit events that failed processing.",
	},
	[]string{"reason"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker
// channel of the dispatcher.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
