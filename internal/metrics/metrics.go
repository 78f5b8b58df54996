// Package metrics defines Prometheus metrics for the OANCA pricing service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "oanca"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Liveness probe state (1 = passing).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Readiness probe state (1 = passing).",
	})
)

// Pricing metrics.
var (
	PricingRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_requests_total",
		Help:      "Total pricing requests by final verdict.",
	}, []string{"verdict"})

	PricingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pricing_duration_seconds",
		Help:      "Duration of pricing engine runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	PricingCompCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pricing_comp_count",
		Help:      "Distribution of usable comparable counts per request.",
		Buckets:   prometheus.LinearBuckets(0, 2, 11), // 0, 2, 4, ..., 20
	})

	PricingEscalationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_escalations_total",
		Help:      "Total pricing requests forced to ESCALATE.",
	})
)

// Ledger metrics.
var (
	LedgerRecordsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_records_total",
		Help:      "Sales records in the ledger at last audit.",
	})

	LedgerGrossMismatches = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_gross_mismatches",
		Help:      "Records whose stored gross profit disagrees with sell - owe.",
	})

	LedgerAuditDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_audit_duration_seconds",
		Help:      "Duration of ledger audit sweeps in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Notification metrics.
var (
	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total escalation notification send failures.",
	})
)
