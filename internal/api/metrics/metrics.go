// Package metrics defines and registers all custom Prometheus metrics for the
// TelemedPro booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "telemed"

// ── Scheduling metrics ────────────────────────────────────────────────────────

// AppointmentsBookedTotal counts successfully booked appointments.
// Label:
//   - service_type: the clinic service requested (e.g. "primary-care")
var AppointmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked, by service type.",
	},
	[]string{"service_type"},
)

// BookingConflictsTotal counts booking attempts rejected because the slot was
// already taken, whether by the pre-check or by the store's uniqueness
// constraint.
var BookingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of booking attempts rejected due to a slot collision.",
	},
)

// AppointmentsCancelledTotal counts appointments cancelled by their owner.
var AppointmentsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_cancelled_total",
		Help:      "Total number of appointments cancelled through the API.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"; failures are not broken down further to
//     keep the metric as uninformative as the login error itself.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsRegisteredTotal counts newly registered accounts.
var AccountsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// ── Contact metrics ───────────────────────────────────────────────────────────

// ContactMessagesTotal counts accepted contact form submissions.
// Label:
//   - subject: the message subject category (e.g. "billing")
var ContactMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact messages accepted, by subject.",
	},
	[]string{"subject"},
)
