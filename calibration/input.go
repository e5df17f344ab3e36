package calibration

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// denseFromRows copies the rows into a prediction matrix.
// An empty input results in a nil matrix.
func denseFromRows(probs [][]float64) (*mat.Dense, error) {
	if len(probs) == 0 {
		return nil, nil
	}
	k := len(probs[0])
	if k == 0 {
		return nil, fmt.Errorf("row 0 has no classes: %w", ErrShapeMismatch)
	}
	data := make([]float64, 0, len(probs)*k)
	for i, row := range probs {
		if len(row) != k {
			return nil, fmt.Errorf("row %d has %d classes instead of %d: %w", i, len(row), k, ErrShapeMismatch)
		}
		data = append(data, row...)
	}
	if err := checkProbabilities(data, k); err != nil {
		return nil, err
	}
	return binary(mat.NewDense(len(probs), k, data)), nil
}

// denseFromBinary creates the prediction matrix for positive class probabilities.
func denseFromBinary(probs []float64) (*mat.Dense, error) {
	if len(probs) == 0 {
		return nil, nil
	}
	if err := checkProbabilities(probs, 1); err != nil {
		return nil, err
	}
	data := make([]float64, len(probs))
	copy(data, probs)
	return binary(mat.NewDense(len(probs), 1, data)), nil
}

// denseFromMatrix copies the matrix into a prediction matrix.
func denseFromMatrix(probs mat.Matrix) (*mat.Dense, error) {
	if probs == nil {
		return nil, nil
	}
	if d, ok := probs.(*mat.Dense); ok && d.IsEmpty() {
		return nil, nil
	}
	r, c := probs.Dims()
	if r == 0 {
		return nil, nil
	}
	m := mat.DenseCopyOf(probs)
	for i := 0; i < r; i++ {
		if err := checkProbabilities(m.RawRowView(i), c); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return binary(m), nil
}

// binary expands a single column of positive class probabilities into the [1-p, p] two-class form.
// Matrices with more columns are returned as is.
func binary(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	if c != 1 {
		return m
	}
	out := mat.NewDense(r, 2, nil)
	for i := 0; i < r; i++ {
		p := m.At(i, 0)
		out.Set(i, 0, 1-p)
		out.Set(i, 1, p)
	}
	return out
}

func checkProbabilities(data []float64, k int) error {
	for i, p := range data {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("'%v' at [%d,%d] is not within [0,1]: %w", p, i/k, i%k, ErrInvalidProbability)
		}
	}
	return nil
}

func checkLabels(labels []int, n, k int) error {
	if len(labels) != n {
		return fmt.Errorf("%d labels for %d predictions: %w", len(labels), n, ErrShapeMismatch)
	}
	for i, label := range labels {
		if label < 0 || label >= k {
			return fmt.Errorf("label '%d' at %d is not within [0,%d): %w", label, i, k, ErrInvalidLabel)
		}
	}
	return nil
}
