// Package metrics holds the Prometheus collectors for validation runs.
//
// Collectors live on a private registry so that a process can run several
// independent pipelines (and tests can assert on exact values). The CLI
// exports the registry in text format for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "topocheck"

// Result label values.
const (
	ResultPassed = "passed"
	ResultFailed = "failed"
	ResultError  = "error"
)

// Metrics records validation outcomes. It implements validation.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal          *prometheus.CounterVec
	duration           *prometheus.HistogramVec
	invalidConfigTypes *prometheus.CounterVec
	requestsTotal      *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "validation",
				Name:      "runs_total",
				Help:      "Total number of validator runs by result",
			},
			[]string{"validator", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "validation",
				Name:      "duration_seconds",
				Help:      "Duration of validator runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
			},
			[]string{"validator"},
		),
		invalidConfigTypes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "validation",
				Name:      "invalid_config_types_total",
				Help:      "Total number of unknown config types reported",
			},
			[]string{"validator"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of topology requests checked by result",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(m.runsTotal, m.duration, m.invalidConfigTypes, m.requestsTotal)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordValidation records one validator outcome.
func (m *Metrics) RecordValidation(validator string, passed bool, invalid int, duration time.Duration) {
	result := ResultPassed
	if !passed {
		result = ResultFailed
	}
	m.runsTotal.WithLabelValues(validator, result).Inc()
	m.duration.WithLabelValues(validator).Observe(duration.Seconds())
	if invalid > 0 {
		m.invalidConfigTypes.WithLabelValues(validator).Add(float64(invalid))
	}
}

// RecordRequest records the outcome of one request file: passed, failed
// validation, or could not be checked at all.
func (m *Metrics) RecordRequest(result string) {
	m.requestsTotal.WithLabelValues(result).Inc()
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
