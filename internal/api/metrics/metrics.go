// Package metrics defines and registers the custom Prometheus metrics of the
// booking service. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agenda"

// BookingsTotal counts booking attempts by outcome.
// Label:
//   - result: "booked", "slot_taken", "outside_hours", "invalid_format", "invalid_input", "error"
var BookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_total",
		Help:      "Total number of booking attempts, by result.",
	},
	[]string{"result"},
)

// BookingDuration measures the booking orchestration latency, lock wait included.
var BookingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "booking_duration_seconds",
		Help:      "Duration of a booking request from parse to notification hand-off.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// RegistrationsTotal counts sign-up attempts.
// Label:
//   - result: "created", "duplicate", "invalid", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// NotificationsTotal counts admin notifications handed to the sinks.
// Label:
//   - result: "delivered" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of admin notifications processed by the dispatcher.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
