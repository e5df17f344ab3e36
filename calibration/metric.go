package calibration

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Metric accumulates predictions batch by batch and computes the calibration error over all of them.
// It is safe for concurrent use.
type Metric struct {
	mutex  *sync.RWMutex
	cfg    Config
	width  int
	probs  []float64
	labels []int
}

// NewMetric creates a new metric for the given config.
func NewMetric(cfg Config) (*Metric, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Metric{
		mutex: new(sync.RWMutex),
		cfg:   cfg,
	}, nil
}

// Config returns the config of the metric.
func (m *Metric) Config() Config {
	return m.cfg
}

// Update adds a batch of probability rows and their labels.
// All batches must have the same number of columns.
func (m *Metric) Update(probs [][]float64, labels []int) error {
	if len(probs) != len(labels) {
		return fmt.Errorf("%d labels for %d predictions: %w", len(labels), len(probs), ErrShapeMismatch)
	}
	if len(probs) == 0 {
		return nil
	}
	k := len(probs[0])
	data := make([]float64, 0, len(probs)*k)
	for i, row := range probs {
		if len(row) != k || k == 0 {
			return fmt.Errorf("row %d has %d classes instead of %d: %w", i, len(row), k, ErrShapeMismatch)
		}
		data = append(data, row...)
	}
	return m.push(data, labels, k)
}

// UpdateBinary adds a batch of positive class probabilities and their labels.
func (m *Metric) UpdateBinary(probs []float64, labels []int) error {
	if len(probs) != len(labels) {
		return fmt.Errorf("%d labels for %d predictions: %w", len(labels), len(probs), ErrShapeMismatch)
	}
	if len(probs) == 0 {
		return nil
	}
	data := make([]float64, len(probs))
	copy(data, probs)
	return m.push(data, labels, 1)
}

func (m *Metric) push(data []float64, labels []int, k int) error {
	if err := checkProbabilities(data, k); err != nil {
		return fmt.Errorf("invalid predictions: %w", err)
	}
	classes := k
	if k == 1 {
		classes = 2
	}
	if err := checkLabels(labels, len(labels), classes); err != nil {
		return fmt.Errorf("invalid labels: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.width != 0 && m.width != k {
		return fmt.Errorf("batch has %d classes instead of %d: %w", k, m.width, ErrShapeMismatch)
	}
	m.width = k
	m.probs = append(m.probs, data...)
	m.labels = append(m.labels, labels...)
	return nil
}

// Count returns the number of accumulated examples.
func (m *Metric) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.labels)
}

// Result computes the calibration error over all accumulated examples.
func (m *Metric) Result() (float64, error) {
	result, err := m.Calibrate()
	return result.Value, err
}

// Calibrate computes the calibration result over all accumulated examples.
func (m *Metric) Calibrate() (Result, error) {
	m.mutex.RLock()
	if len(m.labels) == 0 {
		m.mutex.RUnlock()
		return calibrate(nil, nil, m.cfg)
	}
	data := make([]float64, len(m.probs))
	copy(data, m.probs)
	labels := make([]int, len(m.labels))
	copy(labels, m.labels)
	width := m.width
	m.mutex.RUnlock()

	return calibrate(binary(mat.NewDense(len(labels), width, data)), labels, m.cfg)
}

// Reset drops all accumulated examples.
func (m *Metric) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.width = 0
	m.probs = nil
	m.labels = nil
}
