package math

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Format formats a float based on the given precision
func Format(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// ArgMax returns the index and value of the largest element.
// NOTE : ties resolve to the first maximum
func ArgMax(v []float64) (int, float64) {
	i := floats.MaxIdx(v)
	return i, v[i]
}

// Linspace returns num evenly spaced values over [start, stop].
// When endpoint is false, stop is excluded and the spacing is (stop-start)/num.
// The arithmetic follows start + i*step, so results are reproducible against other numeric stacks.
func Linspace(start, stop float64, num int, endpoint bool) []float64 {
	if num <= 0 {
		return []float64{}
	}
	div := num
	if endpoint {
		div = num - 1
	}
	values := make([]float64, num)
	if div == 0 {
		values[0] = start
		return values
	}
	step := (stop - start) / float64(div)
	for i := range values {
		values[i] = float64(i)*step + start
	}
	if endpoint {
		values[num-1] = stop
	}
	return values
}

// RoundIndex rounds a fractional position to the nearest index, halves go to the even neighbour.
func RoundIndex(f float64) int {
	return int(math.RoundToEven(f))
}

// Clamp limits the value to the [lo, hi] range.
func Clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, f))
}

// Sum sums up the values.
func Sum(v []float64) float64 {
	return floats.Sum(v)
}
