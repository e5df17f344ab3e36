package calibration

import "errors"

var (
	// ErrShapeMismatch is returned when probabilities and labels disagree on the number of examples,
	// or when the probability rows are ragged.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidBins is returned for a non-positive bin count or an unusable datapoints-per-bin setting.
	ErrInvalidBins = errors.New("invalid number of bins")
	// ErrUnknownScheme is returned for an unrecognized binning scheme.
	ErrUnknownScheme = errors.New("unknown binning scheme")
	// ErrUnknownNorm is returned for an unrecognized norm.
	ErrUnknownNorm = errors.New("unknown norm")
	// ErrUnknownReduction is returned for an unrecognized class reduction.
	ErrUnknownReduction = errors.New("unknown reduction")
	// ErrInvalidThreshold is returned for a threshold outside [0,1].
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrInvalidLabel is returned for a label that is not a valid class index.
	ErrInvalidLabel = errors.New("invalid label")
	// ErrInvalidProbability is returned for a probability outside [0,1].
	ErrInvalidProbability = errors.New("invalid probability")
	// ErrUnknownPreset is returned when looking up a preset that does not exist.
	ErrUnknownPreset = errors.New("unknown preset")
)
