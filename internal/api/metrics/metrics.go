// Package metrics defines and registers all custom Prometheus metrics for the
// FounderFlow API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "founderflow"

// ── Email metrics ─────────────────────────────────────────────────────────────

// EmailsSentTotal counts outbound emails by kind.
// Label:
//   - kind: "confirmation", "recovery", or "task_assigned"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of emails handed to the provider, by kind.",
	},
	[]string{"kind"},
)

// EmailErrorsTotal counts emails the provider rejected or that failed to send.
var EmailErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_errors_total",
		Help:      "Total number of email sends that failed, by kind.",
	},
	[]string{"kind"},
)

// ── Webhook metrics ───────────────────────────────────────────────────────────

// WebhookDeliveriesTotal counts inbound send-email hook deliveries. Redelivered
// duplicates are absorbed by the dedup store and count as "processed".
// Label:
//   - result: "processed", "invalid_signature", or "error"
var WebhookDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "Total number of send-email webhook deliveries, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsEnqueuedTotal counts task-assignment notifications accepted by
// the dispatcher.
var NotificationsEnqueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_enqueued_total",
		Help:      "Total number of task-assignment notifications enqueued.",
	},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// UsersDeletedTotal counts completed privileged user deletions.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted through the admin endpoint.",
	},
)

// DeleteUserDeniedTotal counts delete attempts rejected for lack of the admin
// role.
var DeleteUserDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delete_user_denied_total",
		Help:      "Total number of user delete attempts denied to non-admins.",
	},
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
// Label:
//   - status: "active", "ongoing", or "completed"
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by initial status.",
	},
	[]string{"status"},
)
