package buffer

import (
	"fmt"
	"math"
)

// Stats is a set of statistical properties of a set of numbers.
type Stats struct {
	count    int
	sum      float64
	min, max float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{
		min: math.MaxFloat64,
		max: -math.MaxFloat64,
	}
}

// Push adds another element to the set.
func (s *Stats) Push(v float64) {
	s.count++
	s.sum += v
	if s.min > v {
		s.min = v
	}
	if s.max < v {
		s.max = v
	}
}

// Avg returns the average value of the set.
// The average is computed as sum / count, an empty set has an average of 0.
func (s Stats) Avg() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Sum returns the sum of all elements.
func (s Stats) Sum() float64 {
	return s.sum
}

// Count returns the number of elements.
func (s Stats) Count() int {
	return s.count
}

// Min returns the smallest element seen.
func (s Stats) Min() float64 {
	return s.min
}

// Max returns the largest element seen.
func (s Stats) Max() float64 {
	return s.max
}

// StatsCollector is a collection of Stats variables.
// This enables multi-dimensional tracking.
type StatsCollector struct {
	dim   int
	stats []*Stats
}

// NewStatsCollector creates a new Stats collector.
func NewStatsCollector(dim int) *StatsCollector {
	stats := make([]*Stats, dim)
	for i := 0; i < dim; i++ {
		stats[i] = NewStats()
	}
	return &StatsCollector{
		dim:   dim,
		stats: stats,
	}
}

// Push pushes each value to the corresponding dimension.
func (sc *StatsCollector) Push(v ...float64) {
	if len(v) != sc.dim {
		panic(fmt.Sprintf("inconsistent dimensions %d vs %d", len(v), sc.dim))
	}
	for i := 0; i < len(sc.stats); i++ {
		sc.stats[i].Push(v[i])
	}
}

// Stats returns the stats of each dimension.
func (sc StatsCollector) Stats() []*Stats {
	return sc.stats
}

// Size returns the number of elements pushed.
func (sc *StatsCollector) Size() int {
	// all dimensions have the same size
	return sc.stats[0].count
}

// Buckets groups values into a fixed number of indexed buckets,
// each tracking a StatsCollector of the same dimension.
type Buckets struct {
	dim     int
	total   int
	buckets []*StatsCollector
}

// NewBuckets creates size buckets for values of the given dimension.
func NewBuckets(size, dim int) *Buckets {
	buckets := make([]*StatsCollector, size)
	for i := range buckets {
		buckets[i] = NewStatsCollector(dim)
	}
	return &Buckets{
		dim:     dim,
		buckets: buckets,
	}
}

// Push adds the values to the bucket at the given index.
func (b *Buckets) Push(index int, v ...float64) {
	b.buckets[index].Push(v...)
	b.total++
}

// Len returns the number of buckets.
func (b *Buckets) Len() int {
	return len(b.buckets)
}

// Total returns the number of elements pushed across all buckets.
func (b *Buckets) Total() int {
	return b.total
}

// Bucket returns the collector for the given index.
func (b *Buckets) Bucket(index int) *StatsCollector {
	return b.buckets[index]
}
