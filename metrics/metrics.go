// Package metrics provides Prometheus observability metrics for the
// plan/penetration service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// AttemptRowsRecorded counts attempt rows appended to the ledger.
var AttemptRowsRecorded = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "salesplan",
	Name:      "attempt_rows_recorded_total",
	Help:      "Total attempt rows appended to the attempts ledger",
})

// MeetingsCreated counts meeting rows created.
var MeetingsCreated = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "salesplan",
	Name:      "meetings_created_total",
	Help:      "Total meeting rows created",
})

// MonthPlansCreated counts month plans lazily materialized with the default.
var MonthPlansCreated = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "salesplan",
	Name:      "month_plans_created_total",
	Help:      "Total month plan rows created lazily on first read",
})

// BreakdownDurationSeconds tracks time to compute a plan breakdown,
// including the month-to-date fact query.
var BreakdownDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "salesplan",
	Name:      "breakdown_duration_seconds",
	Help:      "Time taken to compute a plan breakdown",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// PenetrationRequestsTotal counts penetration summaries by period kind.
var PenetrationRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "salesplan",
	Name:      "penetration_requests_total",
	Help:      "Penetration summaries computed, by period kind",
}, []string{"period"})
