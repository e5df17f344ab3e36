package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "calibration"

// Prometheus holds the collectors of an evaluation run.
type Prometheus struct {
	Error       *prometheus.GaugeVec
	Examples    *prometheus.GaugeVec
	Evaluations *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Error: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "error",
				Help:      "Calibration error of the dataset for the named metric.",
			}, []string{"dataset", "metric"}),
		Examples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "examples",
				Help:      "Number of examples in the evaluated dataset.",
			}, []string{"dataset"}),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Number of evaluations by outcome.",
			}, []string{"dataset", "status"}),
	}
}
