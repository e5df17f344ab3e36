package calibration

import (
	"math"

	calmath "github.com/drakos74/go-calibration/internal/math"
)

// normFunc reduces the bin statistics of a track into one value.
type normFunc func(stats []BinStat) float64

func (n Norm) reducer() normFunc {
	if n == L2 {
		return l2
	}
	return l1
}

func l1(stats []BinStat) float64 {
	terms := make([]float64, len(stats))
	for i, s := range stats {
		terms[i] = s.Weight * math.Abs(s.Gap())
	}
	return calmath.Sum(terms)
}

func l2(stats []BinStat) float64 {
	terms := make([]float64, len(stats))
	for i, s := range stats {
		gap := s.Gap()
		terms[i] = s.Weight * gap * gap
	}
	return math.Sqrt(calmath.Sum(terms))
}

// mean averages the track values, each track weighted equally.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return calmath.Sum(values) / float64(len(values))
}
