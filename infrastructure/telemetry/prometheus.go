// Package telemetry provides the Prometheus-backed implementation of
// the core's metrics port.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/openfreestyle/scorekeep/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks the latency of the file-bound operations and
// counts registration and import outcomes.
type PrometheusMetrics struct {
	operationLatency *prometheus.HistogramVec
	eventCounters    *prometheus.CounterVec
	stateGauges      *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a collector registered in the global
// Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWith(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWith creates a collector registered in reg.
// Tests pass an isolated registry to avoid duplicate registration.
func NewPrometheusMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scorekeep_operation_duration_seconds",
				Help:    "Execution time of persistence and interchange operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		eventCounters: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scorekeep_events_total",
				Help: "Counts of scoring-core events such as imported or skipped roster rows.",
			},
			[]string{"metric", "outcome"},
		),
		stateGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scorekeep_state",
				Help: "Current scoring-core state values such as the registered rider count.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// operation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration) {
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by
// incrementing the named event counter.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	outcome, ok := labels["outcome"]
	if !ok {
		outcome = "unknown"
	}
	pm.eventCounters.WithLabelValues(metric, outcome).Add(value)
}

// RecordGauge implements the MetricsCollector interface by setting the
// named state gauge.
func (pm *PrometheusMetrics) RecordGauge(metric string, value float64) {
	pm.stateGauges.WithLabelValues(metric).Set(value)
}
