// Package quantile summarizes ratio distributions with order
// statistics. Percentiles use the nearest-rank method, so a reported
// value is always one of the samples.
package quantile

import (
	"errors"
	"math"
	"sort"
)

var ErrEmptyDistribution = errors.New("cannot summarize an empty distribution")

// Bounds returns the minimum and maximum values of xs.
func Bounds(xs []float64) (min float64, max float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	min, max = xs[0], xs[0]
	for _, x := range xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyDistribution
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), nil
}

// Percentile returns the q-th percentile of xs, with q in (0, 1].
// The input does not need to be sorted.
func Percentile(xs []float64, q float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyDistribution
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return PercentileSorted(sorted, q), nil
}

// PercentileSorted returns the q-th percentile of an ascending-sorted,
// non-empty slice.
func PercentileSorted(sorted []float64, q float64) float64 {
	index := int(math.Ceil(float64(len(sorted))*q)) - 1
	if index < 0 {
		index = 0
	}
	return sorted[index]
}
