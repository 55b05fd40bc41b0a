package stats

import (
	"math"
	"sort"
)

// Mean calculates the arithmetic mean of data. Returns NaN for empty input.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// NaNMean calculates the mean of data ignoring NaN entries. Returns NaN when
// every entry is NaN.
func NaNMean(data []float64) float64 {
	sum := 0.0
	count := 0
	for _, v := range data {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// Median calculates the median of data. Returns NaN for empty input.
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// MeanAbs calculates the mean absolute value of data.
func MeanAbs(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range data {
		sum += math.Abs(v)
	}
	return sum / float64(len(data))
}

// MedianAbs calculates the median absolute value of data.
func MedianAbs(data []float64) float64 {
	abs := make([]float64, len(data))
	for i, v := range data {
		abs[i] = math.Abs(v)
	}
	return Median(abs)
}

// Std calculates the sample standard deviation of data ignoring NaN entries.
func Std(data []float64) float64 {
	mean := NaNMean(data)
	if math.IsNaN(mean) {
		return math.NaN()
	}
	sumSq := 0.0
	count := 0
	for _, v := range data {
		if !math.IsNaN(v) {
			d := v - mean
			sumSq += d * d
			count++
		}
	}
	if count < 2 {
		return 0
	}
	return math.Sqrt(sumSq / float64(count-1))
}
