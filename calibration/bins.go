package calibration

import (
	"sort"

	calmath "github.com/drakos74/go-calibration/internal/math"
)

// Bins partitions [0,1] into consecutive bins.
// Bin i covers [edges[i-1], edges[i]), the first bin starts at 0 and the last bin is closed at 1.
type Bins struct {
	// edges are the internal upper bounds, one less than the number of bins
	edges []float64
}

// EvenBins creates n bins of equal width.
func EvenBins(n int) Bins {
	all := calmath.Linspace(0, 1, n+1, true)
	edges := make([]float64, n-1)
	copy(edges, all[1:n])
	return Bins{edges: edges}
}

// AdaptiveBins creates n bins at the empirical quantiles of the given values,
// so that each bin holds about the same number of them.
// Equal values always fall into the same bin, so heavily tied data leaves some bins empty.
func AdaptiveBins(values []float64, n int) Bins {
	edges := make([]float64, n-1)
	if len(values) == 0 {
		return Bins{edges: edges}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	last := len(sorted) - 1
	positions := calmath.Linspace(0, float64(len(sorted)), n, false)
	// the first position is always 0 and holds the lower bound, which is implicit
	for i := 1; i < n; i++ {
		idx := calmath.RoundIndex(positions[i])
		if idx > last {
			idx = last
		}
		edges[i-1] = sorted[idx]
	}
	return Bins{edges: edges}
}

// Len returns the number of bins.
func (b Bins) Len() int {
	return len(b.edges) + 1
}

// Index returns the bin the value belongs to.
func (b Bins) Index(v float64) int {
	return sort.Search(len(b.edges), func(i int) bool {
		return b.edges[i] > v
	})
}

// Bounds returns the lower and upper bound of the bin at the given index.
func (b Bins) Bounds(i int) (float64, float64) {
	lower, upper := 0.0, 1.0
	if i > 0 {
		lower = b.edges[i-1]
	}
	if i < len(b.edges) {
		upper = b.edges[i]
	}
	return lower, upper
}

// binner creates the bins for the confidences of one track.
type binner func(confidences []float64) Bins

// binner resolves the scheme into a bin factory for n bins.
func (s Scheme) binner(n int) binner {
	if s == Adaptive {
		return func(confidences []float64) Bins {
			return AdaptiveBins(confidences, n)
		}
	}
	even := EvenBins(n)
	return func(confidences []float64) Bins {
		return even
	}
}
