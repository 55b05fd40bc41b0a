package timeseries

import (
	"math"
	"testing"
	"time"
)

func dailyDates(n int) []time.Time {
	dates := make([]time.Time, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func TestIsOrdered(t *testing.T) {
	dates := dailyDates(5)
	if !IsOrdered(dates) {
		t.Error("Expected daily dates to be ordered")
	}

	dates[2], dates[3] = dates[3], dates[2]
	if IsOrdered(dates) {
		t.Error("Expected swapped dates to be unordered")
	}

	dup := dailyDates(3)
	dup[1] = dup[0]
	if IsOrdered(dup) {
		t.Error("Expected duplicate dates to be unordered")
	}
}

func TestInferFrequency(t *testing.T) {
	freq, err := InferFrequency(dailyDates(10))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if freq != 24*time.Hour {
		t.Errorf("Expected daily frequency, got %v", freq)
	}
}

func TestInferFrequencyWithGaps(t *testing.T) {
	// mostly daily with one missing day; the most common gap wins
	dates := dailyDates(10)
	dates = append(dates[:5], dates[6:]...)
	freq, err := InferFrequency(dates)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if freq != 24*time.Hour {
		t.Errorf("Expected daily frequency despite a gap, got %v", freq)
	}
}

func TestInferFrequencyTooShort(t *testing.T) {
	if _, err := InferFrequency(dailyDates(1)); err == nil {
		t.Error("Expected error for a single date")
	}
}

func TestGapInPeriods(t *testing.T) {
	dates := dailyDates(10)
	if gap := GapInPeriods(dates[0], dates[7], 24*time.Hour); gap != 7 {
		t.Errorf("Expected gap 7, got %f", gap)
	}
	// fractional gap when freq does not divide evenly
	if gap := GapInPeriods(dates[0], dates[0].Add(36*time.Hour), 24*time.Hour); gap != 1.5 {
		t.Errorf("Expected gap 1.5, got %f", gap)
	}
}

func TestTimePositions(t *testing.T) {
	tp := TimePositions(4)
	expected := []float64{0.25, 0.5, 0.75, 1.0}
	for i, want := range expected {
		if math.Abs(tp[i]-want) > 1e-12 {
			t.Errorf("Expected tp[%d]=%f, got %f", i, want, tp[i])
		}
	}
}

func TestIndexOf(t *testing.T) {
	dates := dailyDates(10)

	idx, ok := IndexOf(dates, dates[4])
	if !ok || idx != 4 {
		t.Errorf("Expected index 4, got %d found=%v", idx, ok)
	}

	if _, ok := IndexOf(dates, dates[4].Add(time.Hour)); ok {
		t.Error("Expected no match for an off-grid date")
	}
}
