package buffer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Push(t *testing.T) {

	l := 1001

	type test struct {
		transform func(i int) float64
		avg       float64
		count     int
		sum       float64
		min       float64
		max       float64
	}

	tests := map[string]test{
		"monotonically-increasing-+": {
			transform: func(i int) float64 {
				return float64(i)
			},
			avg:   float64(l / 2),
			count: l,
			sum:   float64(l) * 500,
			min:   0,
			max:   float64(l - 1),
		},
		"monotonically-increasing-0": {
			transform: func(i int) float64 {
				return float64(-1*l/2) + float64(i)
			},
			avg:   0,
			count: l,
			sum:   0,
			min:   float64(-1 * l / 2),
			max:   float64(l / 2),
		},
		"monotonically-decreasing--": {
			transform: func(i int) float64 {
				return -1 * float64(i)
			},
			avg:   -1 * float64(l/2),
			count: l,
			sum:   -1 * float64(l) * 500,
			min:   -1 * float64(l-1),
			max:   0,
		},
		"abs-+": {
			transform: func(i int) float64 {
				return math.Abs(-1*float64(l/2) + float64(i))
			},
			avg:   float64(l / 4),
			count: l,
			sum:   250500,
			min:   0,
			max:   float64(l / 2),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stats := NewStats()
			for i := 0; i < l; i++ {
				stats.Push(tt.transform(i))
			}
			assert.Equal(t, tt.avg, math.Round(stats.Avg()))
			assert.Equal(t, tt.count, stats.Count())
			assert.Equal(t, tt.sum, math.Round(stats.Sum()))
			assert.Equal(t, tt.min, stats.Min())
			assert.Equal(t, tt.max, stats.Max())
		})
	}
}

func TestStats_Empty(t *testing.T) {
	stats := NewStats()
	assert.Equal(t, 0, stats.Count())
	assert.Equal(t, 0.0, stats.Avg())
}

func TestStats_ExactMean(t *testing.T) {
	stats := NewStats()
	for _, v := range []float64{0.57, 0.59} {
		stats.Push(v)
	}
	// the mean is sum / count, not a running approximation
	assert.Equal(t, (0.57+0.59)/2, stats.Avg())
}

func TestStatsCollector_Push(t *testing.T) {
	sc := NewStatsCollector(2)
	sc.Push(0.2, 1)
	sc.Push(0.4, 0)
	assert.Equal(t, 2, sc.Size())
	assert.InDelta(t, 0.3, sc.Stats()[0].Avg(), 1e-12)
	assert.Equal(t, 0.5, sc.Stats()[1].Avg())

	assert.Panics(t, func() {
		sc.Push(1)
	})
}

func TestBuckets(t *testing.T) {
	b := NewBuckets(3, 2)
	b.Push(0, 0.1, 0)
	b.Push(2, 0.9, 1)
	b.Push(2, 0.8, 1)

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 3, b.Total())
	assert.Equal(t, 1, b.Bucket(0).Size())
	assert.Equal(t, 0, b.Bucket(1).Size())
	assert.Equal(t, 2, b.Bucket(2).Size())
	assert.InDelta(t, 0.85, b.Bucket(2).Stats()[0].Avg(), 1e-12)
}
