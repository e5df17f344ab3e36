package calibration

import (
	"fmt"
	"sort"
	"strings"
)

// RMSCEDatapointsPerBin is the default bin population of the root mean squared calibration error.
const RMSCEDatapointsPerBin = 100

var presets = map[string]func() Config{
	"ece":   ECEConfig,
	"rmsce": RMSCEConfig,
	"sce":   SCEConfig,
	"ace":   ACEConfig,
	"tace":  TACEConfig,
}

// ECEConfig is the expected calibration error: top label, even bins, l1.
func ECEConfig() Config {
	return DefaultConfig()
}

// RMSCEConfig is the root mean squared calibration error: top label, adaptive bins of 100 examples, l2.
func RMSCEConfig() Config {
	return Config{
		Scheme:           Adaptive,
		MaxProb:          true,
		Norm:             L2,
		Bins:             DefaultBins,
		DatapointsPerBin: RMSCEDatapointsPerBin,
	}
}

// SCEConfig is the static calibration error: every class, even bins, class conditional, l1.
func SCEConfig() Config {
	return Config{
		Scheme:           Even,
		ClassConditional: true,
		Norm:             L1,
		Bins:             DefaultBins,
	}
}

// ACEConfig is the adaptive calibration error: every class, adaptive bins, class conditional, l1.
func ACEConfig() Config {
	return Config{
		Scheme:           Adaptive,
		ClassConditional: true,
		Norm:             L1,
		Bins:             DefaultBins,
	}
}

// TACEConfig is the thresholded adaptive calibration error, ignoring predictions below 0.01.
func TACEConfig() Config {
	cfg := ACEConfig()
	cfg.Threshold = 0.01
	return cfg
}

// Preset returns the config of the named metric e.g. 'ece' or 'tace'.
func Preset(name string) (Config, error) {
	if preset, ok := presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return preset(), nil
	}
	return Config{}, fmt.Errorf("'%s': %w", name, ErrUnknownPreset)
}

// Presets returns the names of all presets in alphabetical order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ECE computes the expected calibration error.
func ECE(probs [][]float64, labels []int, opts ...Option) (float64, error) {
	return GeneralCalibrationError(probs, labels, ECEConfig().With(opts...))
}

// RMSCE computes the root mean squared calibration error.
func RMSCE(probs [][]float64, labels []int, opts ...Option) (float64, error) {
	return GeneralCalibrationError(probs, labels, RMSCEConfig().With(opts...))
}

// SCE computes the static calibration error.
func SCE(probs [][]float64, labels []int, opts ...Option) (float64, error) {
	return GeneralCalibrationError(probs, labels, SCEConfig().With(opts...))
}

// ACE computes the adaptive calibration error.
func ACE(probs [][]float64, labels []int, opts ...Option) (float64, error) {
	return GeneralCalibrationError(probs, labels, ACEConfig().With(opts...))
}

// TACE computes the thresholded adaptive calibration error.
func TACE(probs [][]float64, labels []int, opts ...Option) (float64, error) {
	return GeneralCalibrationError(probs, labels, TACEConfig().With(opts...))
}
