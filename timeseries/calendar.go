package timeseries

import (
	"errors"
	"sort"
	"time"
)

var (
	// ErrUnorderedDates indicates a date array that is not strictly increasing.
	ErrUnorderedDates = errors.New("date index must be ordered and not repeat")
	// ErrNoFrequency indicates a date array too short to infer a frequency from.
	ErrNoFrequency = errors.New("cannot infer frequency from fewer than two dates")
)

// IsOrdered reports whether dates are strictly increasing with no duplicates.
func IsOrdered(dates []time.Time) bool {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return false
		}
	}
	return true
}

// InferFrequency derives the sampling frequency of a date array as the most
// common gap between consecutive dates. Ties resolve to the smaller gap.
func InferFrequency(dates []time.Time) (time.Duration, error) {
	if len(dates) < 2 {
		return 0, ErrNoFrequency
	}
	counts := make(map[time.Duration]int)
	for i := 1; i < len(dates); i++ {
		counts[dates[i].Sub(dates[i-1])]++
	}
	gaps := make([]time.Duration, 0, len(counts))
	for g := range counts {
		gaps = append(gaps, g)
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i] < gaps[j] })

	best := gaps[0]
	for _, g := range gaps[1:] {
		if counts[g] > counts[best] {
			best = g
		}
	}
	if best <= 0 {
		return 0, ErrUnorderedDates
	}
	return best, nil
}

// GapInPeriods returns the signed real-valued number of periods of size freq
// between start and end. The result is fractional when freq does not evenly
// divide the gap.
func GapInPeriods(start, end time.Time, freq time.Duration) float64 {
	return float64(end.Sub(start)) / float64(freq)
}

// TimePositions returns the normalized time positions for n observations:
// (i+1)/n for i in [0, n), so positions live in (0, 1] with the first
// observation at 1/n and the last at 1.
func TimePositions(n int) []float64 {
	tp := make([]float64, n)
	for i := range tp {
		tp[i] = float64(i+1) / float64(n)
	}
	return tp
}

// IndexOf locates target within an ordered date array by exact match and
// reports whether it was found.
func IndexOf(dates []time.Time, target time.Time) (int, bool) {
	i := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(target) })
	if i < len(dates) && dates[i].Equal(target) {
		return i, true
	}
	return 0, false
}
