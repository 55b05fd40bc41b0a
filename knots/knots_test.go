package knots

import (
	"errors"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func dateRange(n int) []time.Time {
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = day(i)
	}
	return dates
}

func TestSpacingFromSegments(t *testing.T) {
	tests := []struct {
		cutoff, segments, expected int
	}{
		{100, 5, 17},
		{100, 9, 10},
		{10, 4, 2},
		{7, 10, 1},
	}
	for _, tt := range tests {
		if got := SpacingFromSegments(tt.cutoff, tt.segments); got != tt.expected {
			t.Errorf("SpacingFromSegments(%d, %d): expected %d, got %d",
				tt.cutoff, tt.segments, tt.expected, got)
		}
	}
}

func TestEvenIndices(t *testing.T) {
	idx := EvenIndices(17, 100)
	expected := []int{8, 25, 42, 59, 76, 93}
	if len(idx) != len(expected) {
		t.Fatalf("Expected %d knots, got %d: %v", len(expected), len(idx), idx)
	}
	for i, want := range expected {
		if idx[i] != want {
			t.Errorf("Expected knot %d at index %d, got %d", i, want, idx[i])
		}
	}
}

func TestPlanEven(t *testing.T) {
	dates := dateRange(100)
	p, err := PlanEven(dates, 5, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.NumKnots() != 6 {
		t.Fatalf("Expected 6 knots, got %d", p.NumKnots())
	}
	if p.Indices[0] != 8 || p.Indices[5] != 93 {
		t.Errorf("Expected indices 8..93, got %v", p.Indices)
	}
	if p.Positions[0] != 9.0/100 {
		t.Errorf("Expected first position 0.09, got %f", p.Positions[0])
	}
	if !p.Dates[0].Equal(day(8)) {
		t.Errorf("Expected first knot date %v, got %v", day(8), p.Dates[0])
	}
}

func TestPlanEvenExplicitSpacing(t *testing.T) {
	p, err := PlanEven(dateRange(30), 0, 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []int{5, 15, 25}
	for i, want := range expected {
		if p.Indices[i] != want {
			t.Errorf("Expected index %d, got %d", want, p.Indices[i])
		}
	}
}

func TestPlanEvenBadSpacing(t *testing.T) {
	if _, err := PlanEven(dateRange(10), 0, 0); !errors.Is(err, ErrBadSpacing) {
		t.Errorf("Expected ErrBadSpacing, got %v", err)
	}
}

func TestPlanFromDates(t *testing.T) {
	dates := dateRange(30)
	candidates := []time.Time{day(-5), day(0), day(10), day(29), day(40)}

	p, err := PlanFromDates(dates, candidates, 24*time.Hour)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// out-of-range candidates are filtered
	if p.NumKnots() != 3 {
		t.Fatalf("Expected 3 knots, got %d", p.NumKnots())
	}
	expectedIdx := []int{0, 10, 29}
	for i, want := range expectedIdx {
		if p.Indices[i] != want {
			t.Errorf("Expected index %d, got %d", want, p.Indices[i])
		}
	}
	// positions are (gap+1)/(total+1)
	if p.Positions[0] != 1.0/30 {
		t.Errorf("Expected first position %f, got %f", 1.0/30, p.Positions[0])
	}
	if p.Positions[2] != 1.0 {
		t.Errorf("Expected last position 1, got %f", p.Positions[2])
	}
}

func TestPlanFromDatesFractionalGap(t *testing.T) {
	dates := dateRange(10)
	// half a day past index 3: the index truncates, the position does not
	offGrid := day(3).Add(12 * time.Hour)

	p, err := PlanFromDates(dates, []time.Time{offGrid}, 24*time.Hour)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Indices[0] != 3 {
		t.Errorf("Expected truncated index 3, got %d", p.Indices[0])
	}
	if p.Positions[0] != 4.5/10 {
		t.Errorf("Expected position %f, got %f", 4.5/10, p.Positions[0])
	}
}

func TestPlanFromDatesAllOutside(t *testing.T) {
	dates := dateRange(10)
	candidates := []time.Time{day(-1), day(20)}
	if _, err := PlanFromDates(dates, candidates, 24*time.Hour); !errors.Is(err, ErrNoKnots) {
		t.Errorf("Expected ErrNoKnots, got %v", err)
	}
}

func TestPlanFromDatesInfersFrequency(t *testing.T) {
	dates := dateRange(10)
	p, err := PlanFromDates(dates, []time.Time{day(4)}, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.Indices[0] != 4 {
		t.Errorf("Expected index 4, got %d", p.Indices[0])
	}
}
