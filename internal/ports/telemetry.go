// Package ports defines the interfaces between the competition core and
// its infrastructure collaborators.
package ports

import "time"

// MetricsCollector defines the interface for recording operational
// metrics from the scoring core's file-bound operations. Implementations
// should integrate with observability platforms such as Prometheus.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation such as
	// "save_event" or "export_results".
	RecordLatency(operation string, duration time.Duration)

	// RecordCounter adds value to a named counter, e.g. the number of
	// imported or skipped CSV rows.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric, e.g. the
	// registered rider count after an import.
	RecordGauge(metric string, value float64)
}

// NoopMetrics is a MetricsCollector that discards every observation.
// It is the default when metrics are not wired up.
type NoopMetrics struct{}

var _ MetricsCollector = NoopMetrics{}

// RecordLatency implements MetricsCollector as a no-op.
func (NoopMetrics) RecordLatency(string, time.Duration) {}

// RecordCounter implements MetricsCollector as a no-op.
func (NoopMetrics) RecordCounter(string, float64, map[string]string) {}

// RecordGauge implements MetricsCollector as a no-op.
func (NoopMetrics) RecordGauge(string, float64) {}
