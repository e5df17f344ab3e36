package calibration

import (
	"github.com/drakos74/go-calibration/internal/buffer"
)

// BinStat holds the statistics of one occupied bin.
type BinStat struct {
	Index int     `json:"index"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
	// Weight is the fraction of the track that fell into the bin.
	Weight float64 `json:"weight"`
	// Confidence is the mean confidence of the bin members.
	Confidence float64 `json:"confidence"`
	// Accuracy is the mean outcome indicator of the bin members.
	Accuracy float64 `json:"accuracy"`
}

// Gap returns the deviation between the confidence and the accuracy of the bin.
func (s BinStat) Gap() float64 {
	return s.Confidence - s.Accuracy
}

// aggregate assigns each member of the track to its bin and returns the statistics of the occupied bins.
func aggregate(t *track, bins Bins) []BinStat {
	buckets := buffer.NewBuckets(bins.Len(), 2)
	for i, c := range t.confidence {
		buckets.Push(bins.Index(c), c, t.indicator[i])
	}

	total := float64(buckets.Total())
	stats := make([]BinStat, 0)
	for i := 0; i < buckets.Len(); i++ {
		bucket := buckets.Bucket(i)
		// empty bins carry no weight
		if bucket.Size() == 0 {
			continue
		}
		values := bucket.Stats()
		lower, upper := bins.Bounds(i)
		stats = append(stats, BinStat{
			Index:      i,
			Lower:      lower,
			Upper:      upper,
			Count:      bucket.Size(),
			Weight:     float64(bucket.Size()) / total,
			Confidence: values[0].Avg(),
			Accuracy:   values[1].Avg(),
		})
	}
	return stats
}
