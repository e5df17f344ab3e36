// Package calibration computes the generalized calibration error of probabilistic classifiers.
//
// The calibration error compares the predicted confidence with the observed accuracy
// across bins of the unit interval. Binning scheme, the probability mass under evaluation,
// class conditioning, thresholding and norm are all configurable through Config,
// which covers the well known metrics (ECE, RMSCE, SCE, ACE, TACE) as special cases.
//
// Every computation is a pure function of its inputs.
package calibration

import (
	"fmt"

	calmath "github.com/drakos74/go-calibration/internal/math"
	"gonum.org/v1/gonum/mat"
)

// Track is the calibration result for one set of bins.
type Track struct {
	// Class is the class the track calibrates, or AllClasses.
	Class int `json:"class"`
	// Size is the number of predictions in the track.
	Size  int       `json:"size"`
	Value float64   `json:"value"`
	Bins  []BinStat `json:"bins"`
}

// Result is the calibration error along with the tracks it was computed from.
type Result struct {
	Value  float64 `json:"value"`
	Tracks []Track `json:"tracks"`
}

// GCE computes the calibration error with the default configuration, adjusted by the given options.
func GCE(probs [][]float64, labels []int, opts ...Option) (float64, error) {
	return GeneralCalibrationError(probs, labels, DefaultConfig().With(opts...))
}

// GeneralCalibrationError computes the calibration error of the predictions for the given labels.
// probs holds one row of class probabilities per example. A single column is taken as the
// positive class probability of a binary problem.
func GeneralCalibrationError(probs [][]float64, labels []int, cfg Config) (float64, error) {
	result, err := Calibrate(probs, labels, cfg)
	return result.Value, err
}

// GeneralCalibrationErrorBinary computes the calibration error for positive class probabilities.
func GeneralCalibrationErrorBinary(probs []float64, labels []int, cfg Config) (float64, error) {
	result, err := CalibrateBinary(probs, labels, cfg)
	return result.Value, err
}

// GeneralCalibrationErrorMatrix computes the calibration error for an N x K probability matrix.
func GeneralCalibrationErrorMatrix(probs mat.Matrix, labels []int, cfg Config) (float64, error) {
	result, err := CalibrateMatrix(probs, labels, cfg)
	return result.Value, err
}

// Calibrate computes the calibration error and returns it along with the per-bin statistics.
func Calibrate(probs [][]float64, labels []int, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}
	if len(probs) != len(labels) {
		return Result{}, fmt.Errorf("%d labels for %d predictions: %w", len(labels), len(probs), ErrShapeMismatch)
	}
	m, err := denseFromRows(probs)
	if err != nil {
		return Result{}, fmt.Errorf("invalid predictions: %w", err)
	}
	return calibrate(m, labels, cfg)
}

// CalibrateBinary is Calibrate for positive class probabilities.
func CalibrateBinary(probs []float64, labels []int, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}
	if len(probs) != len(labels) {
		return Result{}, fmt.Errorf("%d labels for %d predictions: %w", len(labels), len(probs), ErrShapeMismatch)
	}
	m, err := denseFromBinary(probs)
	if err != nil {
		return Result{}, fmt.Errorf("invalid predictions: %w", err)
	}
	return calibrate(m, labels, cfg)
}

// CalibrateMatrix is Calibrate for an N x K probability matrix.
func CalibrateMatrix(probs mat.Matrix, labels []int, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}
	n := 0
	if probs != nil {
		if d, ok := probs.(*mat.Dense); !ok || !d.IsEmpty() {
			n, _ = probs.Dims()
		}
	}
	if n != len(labels) {
		return Result{}, fmt.Errorf("%d labels for %d predictions: %w", len(labels), n, ErrShapeMismatch)
	}
	m, err := denseFromMatrix(probs)
	if err != nil {
		return Result{}, fmt.Errorf("invalid predictions: %w", err)
	}
	return calibrate(m, labels, cfg)
}

// calibrate runs the pipeline on a validated config and a prediction matrix of at least two classes.
func calibrate(probs *mat.Dense, labels []int, cfg Config) (Result, error) {
	if probs == nil {
		return Result{Tracks: []Track{}}, nil
	}
	n, k := probs.Dims()
	if err := checkLabels(labels, n, k); err != nil {
		return Result{}, fmt.Errorf("invalid labels: %w", err)
	}

	extract := cfg.mode().extractor(cfg.Threshold)
	bin := cfg.Scheme.binner(cfg.bins(n))
	norm := cfg.Norm.reducer()

	tracks := extract(probs, labels)
	result := Result{Tracks: make([]Track, len(tracks))}
	values := make([]float64, len(tracks))
	for i, t := range tracks {
		stats := aggregate(t, bin(t.confidence))
		values[i] = norm(stats)
		result.Tracks[i] = Track{
			Class: t.class,
			Size:  t.size(),
			Value: values[i],
			Bins:  stats,
		}
	}
	result.Value = calmath.Clamp(mean(values), 0, 1)
	return result, nil
}
