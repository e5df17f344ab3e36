package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics records the outcome of evaluation runs in its own registry.
type Metrics struct {
	registry   *prometheus.Registry
	prometheus Prometheus
}

// New creates a new set of metrics.
func New() *Metrics {
	p := NewPrometheusMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.Error, p.Examples, p.Evaluations)
	return &Metrics{
		registry:   registry,
		prometheus: p,
	}
}

// Observe records the calibration error of the dataset for the given metric.
func (m *Metrics) Observe(dataset, metric string, value float64) {
	m.prometheus.Error.WithLabelValues(dataset, metric).Set(value)
}

// Examples records the size of the dataset.
func (m *Metrics) Examples(dataset string, n int) {
	m.prometheus.Examples.WithLabelValues(dataset).Set(float64(n))
}

// Increment counts an evaluation with the given status.
func (m *Metrics) Increment(dataset, status string) {
	m.prometheus.Evaluations.WithLabelValues(dataset, status).Inc()
}

// Registry returns the registry the metrics are registered in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile exports the metrics in the text exposition format,
// e.g. for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics to '%s': %w", path, err)
	}
	return nil
}
