package knots

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goktr/timeseries"
)

var (
	// ErrNoKnots indicates a placement that resolved to zero knots.
	ErrNoKnots = errors.New("no knots resolved within the training range")
	// ErrBadSpacing indicates a non-positive knot spacing or segment count.
	ErrBadSpacing = errors.New("knot spacing and segment count must be positive")
)

// Placement is an ordered set of knots for one model component. Positions are
// normalized time positions, strictly increasing and within the training time
// range; Indices are the matching integer observation indices used for
// segment-scale bookkeeping; Dates are the calendar dates of the knots.
type Placement struct {
	Dates     []time.Time
	Indices   []int
	Positions []float64
}

// NumKnots returns the number of knots in the placement.
func (p *Placement) NumKnots() int {
	return len(p.Positions)
}

// SpacingFromSegments converts a segment count into a knot spacing over a
// series of cutoff observations: ceil(cutoff / (segments + 1)).
func SpacingFromSegments(cutoff, segments int) int {
	return int(math.Ceil(float64(cutoff) / float64(segments+1)))
}

// EvenIndices places knots every spacing observations starting at the segment
// midpoint, up to but not including cutoff. Anchoring the first knot at the
// midpoint keeps a knot off t=0, where the first kernel row would be
// degenerate. The midpoint rounds half to even, so spacing 17 starts at 8.
func EvenIndices(spacing, cutoff int) []int {
	start := int(math.RoundToEven(float64(spacing) / 2))
	var idx []int
	for i := start; i < cutoff; i += spacing {
		idx = append(idx, i)
	}
	return idx
}

// PlanEven derives a placement with evenly spaced knots over the training
// dates. When spacing is zero it is derived from the segment count.
func PlanEven(dates []time.Time, segments, spacing int) (*Placement, error) {
	cutoff := len(dates)
	if spacing <= 0 {
		if segments <= 0 {
			return nil, ErrBadSpacing
		}
		spacing = SpacingFromSegments(cutoff, segments)
	}
	idx := EvenIndices(spacing, cutoff)
	if len(idx) == 0 {
		return nil, ErrNoKnots
	}

	p := &Placement{
		Dates:     make([]time.Time, len(idx)),
		Indices:   idx,
		Positions: make([]float64, len(idx)),
	}
	for i, j := range idx {
		p.Dates[i] = dates[j]
		p.Positions[i] = float64(j+1) / float64(cutoff)
	}
	return p, nil
}

// PlanFromDates derives a placement from an explicit candidate date list.
// Candidates outside [start, end] of the training dates are filtered out;
// the remainder are converted to time positions via calendar gaps in units
// of freq. Zero surviving candidates yields ErrNoKnots; whether that is
// fatal is the caller's policy.
func PlanFromDates(dates, candidates []time.Time, freq time.Duration) (*Placement, error) {
	if freq <= 0 {
		var err error
		freq, err = timeseries.InferFrequency(dates)
		if err != nil {
			return nil, err
		}
	}
	start := dates[0]
	end := dates[len(dates)-1]

	p := &Placement{}
	total := timeseries.GapInPeriods(start, end, freq)
	for _, d := range candidates {
		if d.Before(start) || d.After(end) {
			continue
		}
		gap := timeseries.GapInPeriods(start, d, freq)
		p.Dates = append(p.Dates, d)
		// fractional gaps truncate toward zero
		p.Indices = append(p.Indices, int(gap))
		p.Positions = append(p.Positions, (gap+1)/(total+1))
	}
	if len(p.Positions) == 0 {
		return nil, fmt.Errorf("explicit dates: %w", ErrNoKnots)
	}
	return p, nil
}
