// Package metrics defines all custom Prometheus metrics for the dashboard
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure" (failures are indistinguishable by
//     cause on purpose; the metric must not leak more than the API does)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
// Label:
//   - profile: "login", "write" or "read"
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_rejections_total",
		Help:      "Total number of requests rejected with 429, by profile.",
	},
	[]string{"profile"},
)

// InvoicesPaidTotal counts invoices transitioned to PAID.
// Label:
//   - mode: "single" or "bulk"
var InvoicesPaidTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_paid_total",
		Help:      "Total number of invoices marked paid, by mode.",
	},
	[]string{"mode"},
)

// LicensesGeneratedTotal counts licenses created by the auto-generation
// endpoint.
var LicensesGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "licenses_generated_total",
		Help:      "Total number of licenses created by auto-generation.",
	},
)
