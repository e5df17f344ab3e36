package calibration

import (
	calmath "github.com/drakos74/go-calibration/internal/math"
	"gonum.org/v1/gonum/mat"
)

// AllClasses marks a track that is not bound to a single class.
const AllClasses = -1

// track is a set of confidences and their outcome indicators, calibrated against one set of bins.
type track struct {
	class      int
	confidence []float64
	indicator  []float64
}

func newTrack(class, capacity int) *track {
	return &track{
		class:      class,
		confidence: make([]float64, 0, capacity),
		indicator:  make([]float64, 0, capacity),
	}
}

func (t *track) add(confidence float64, hit bool) {
	t.confidence = append(t.confidence, confidence)
	if hit {
		t.indicator = append(t.indicator, 1)
	} else {
		t.indicator = append(t.indicator, 0)
	}
}

func (t *track) size() int {
	return len(t.confidence)
}

// mode is the way predictions are turned into tracks.
type mode int

const (
	// topLabel keeps the top prediction of each example.
	topLabel mode = iota
	// perClass keeps one track for each class.
	perClass
	// pooled keeps all class predictions in one track.
	pooled
)

func (cfg Config) mode() mode {
	switch {
	case cfg.MaxProb:
		return topLabel
	case !cfg.ClassConditional && cfg.Reduction == Pooled:
		return pooled
	default:
		return perClass
	}
}

// extractor turns a prediction matrix and its labels into calibration tracks.
type extractor func(probs *mat.Dense, labels []int) []*track

func (m mode) extractor(threshold float64) extractor {
	switch m {
	case perClass:
		return func(probs *mat.Dense, labels []int) []*track {
			return classTracks(probs, labels, threshold)
		}
	case pooled:
		return func(probs *mat.Dense, labels []int) []*track {
			return []*track{pooledTrack(probs, labels, threshold)}
		}
	default:
		return func(probs *mat.Dense, labels []int) []*track {
			return []*track{topLabelTrack(probs, labels)}
		}
	}
}

// topLabelTrack keeps the highest probability of each example,
// with a hit if the predicted class is the true one.
func topLabelTrack(probs *mat.Dense, labels []int) *track {
	n, _ := probs.Dims()
	t := newTrack(AllClasses, n)
	for i := 0; i < n; i++ {
		class, p := calmath.ArgMax(probs.RawRowView(i))
		t.add(p, class == labels[i])
	}
	return t
}

// classTracks creates a one-vs-rest track for each class.
// Predictions below the threshold are left out of their class track.
func classTracks(probs *mat.Dense, labels []int, threshold float64) []*track {
	n, k := probs.Dims()
	tracks := make([]*track, k)
	for j := 0; j < k; j++ {
		tracks[j] = newTrack(j, n)
	}
	for i := 0; i < n; i++ {
		for j, p := range probs.RawRowView(i) {
			if p < threshold {
				continue
			}
			tracks[j].add(p, labels[i] == j)
		}
	}
	return tracks
}

// pooledTrack flattens all one-vs-rest predictions into a single track.
func pooledTrack(probs *mat.Dense, labels []int, threshold float64) *track {
	n, k := probs.Dims()
	t := newTrack(AllClasses, n*k)
	for i := 0; i < n; i++ {
		for j, p := range probs.RawRowView(i) {
			if p < threshold {
				continue
			}
			t.add(p, labels[i] == j)
		}
	}
	return t
}
