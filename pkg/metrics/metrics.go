// Package metrics exposes envelope validation outcomes as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
)

// Metrics provides observability for envelope readers.
type Metrics struct {
	// Validation failures by flavor and error code
	Failures *prometheus.CounterVec

	// Successfully read envelopes by flavor
	Successes *prometheus.CounterVec

	// Read latency by flavor, including decompression and parsing
	ReadLatency *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance registered with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sbdh_validation_failures_total",
			Help: "Total envelope validation failures by flavor and error code",
		}, []string{"flavor", "code"}),

		Successes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sbdh_envelopes_read_total",
			Help: "Total envelopes read and validated successfully by flavor",
		}, []string{"flavor"}),

		ReadLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sbdh_read_duration_seconds",
			Help:    "Duration of reading and validating one envelope",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"flavor"}),

		registry: registry,
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Init creates zero-valued series for every error code of a flavor, so
// exported files list all codes even when none occurred.
func (m *Metrics) Init(flavor string) {
	if m == nil {
		return
	}
	for _, code := range envelope.ErrorCodes {
		m.Failures.WithLabelValues(flavor, string(code))
	}
	m.Successes.WithLabelValues(flavor)
}

// Observer returns an envelope observer counting failures.
func (m *Metrics) Observer() envelope.Observer {
	return func(flavor string, err *envelope.Error) {
		m.IncrementFailure(flavor, err.Code)
	}
}

// IncrementFailure records a validation failure.
func (m *Metrics) IncrementFailure(flavor string, code envelope.ErrorCode) {
	if m != nil {
		m.Failures.WithLabelValues(flavor, string(code)).Inc()
	}
}

// IncrementSuccess records a successfully validated envelope.
func (m *Metrics) IncrementSuccess(flavor string) {
	if m != nil {
		m.Successes.WithLabelValues(flavor).Inc()
	}
}

// ObserveReadLatency records the duration of one read.
func (m *Metrics) ObserveReadLatency(flavor string, d time.Duration) {
	if m != nil {
		m.ReadLatency.WithLabelValues(flavor).Observe(d.Seconds())
	}
}

// WriteToTextfile writes all metrics in the text exposition format, for
// collection by the node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
