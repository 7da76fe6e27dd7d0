// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"iwms-dashboard/internal/common/boundary"
)

var (
	OperationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iwms_operation_calls_total",
			Help: "Total number of wrapped service calls by outcome",
		},
		[]string{"operation", "outcome"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "iwms_operation_duration_seconds",
			Help:    "Duration of wrapped service calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	BoundaryTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iwms_boundary_transitions_total",
			Help: "Total number of render boundary state transitions",
		},
		[]string{"boundary", "state"},
	)

	BoundaryErrored = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "iwms_boundary_errored",
			Help: "1 while a render boundary shows its fallback",
		},
		[]string{"boundary"},
	)
)

// Recorder feeds wrapped-call outcomes and boundary transitions into the
// package collectors.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) RecordOutcome(operation, outcome string, d time.Duration) {
	OperationCalls.WithLabelValues(operation, outcome).Inc()
	OperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (r *Recorder) RecordTransition(name string, to boundary.State) {
	BoundaryTransitions.WithLabelValues(name, to.String()).Inc()
	if to == boundary.Errored {
		BoundaryErrored.WithLabelValues(name).Set(1)
		return
	}
	BoundaryErrored.WithLabelValues(name).Set(0)
}
