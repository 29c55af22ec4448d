// Package metrics defines and registers all custom Prometheus metrics for the
// user registration service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userreg"

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRequestsTotal counts auth workflow calls.
// Labels:
//   - operation: register, login, forgot_password, reset_password, logout
//   - outcome: success, rejected (caller-correctable), error (internal)
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_requests_total",
		Help:      "Total number of auth workflow requests by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ResetTokensIssuedTotal counts reset tokens handed to the notifier.
var ResetTokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_tokens_issued_total",
		Help:      "Total number of password reset tokens issued.",
	},
)

// Session event label values.
const (
	SessionCreated   = "created"
	SessionDestroyed = "destroyed"
)

// SessionsTotal counts session lifecycle events.
// Label:
//   - event: created (login), destroyed (logout)
var SessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Total number of sessions created at login and destroyed at logout.",
	},
	[]string{"event"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts delivery attempts.
// Label:
//   - outcome: success, error, dropped (queue full)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of out-of-band notifications by delivery outcome.",
	},
	[]string{"outcome"},
)

// NotificationQueueDepth tracks pending messages per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Weather metrics ───────────────────────────────────────────────────────────

// WeatherCacheTotal counts cache lookups.
// Label:
//   - result: "hit" or "miss"
var WeatherCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "weather_cache_total",
		Help:      "Total number of weather cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// PasswordHashDuration measures bcrypt work, which dominates login latency.
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hash and verify operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)
