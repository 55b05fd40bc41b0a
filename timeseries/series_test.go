package timeseries

import (
	"math"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}
}

func TestNewWithTimestamps(t *testing.T) {
	timestamps := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	s, err := NewWithTimestamps(timestamps, []float64{1, 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Expected length 2, got %d", s.Len())
	}

	if _, err := NewWithTimestamps(timestamps, []float64{1}); err == nil {
		t.Error("Expected error for mismatched lengths")
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	result := s.Variance()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, result)
	}
}

func TestStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := math.Sqrt(4.571428571428571)

	result := s.Std()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected std %f, got %f", expected, result)
	}
}

func TestSlice(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})

	sliced := s.Slice(1, 4)
	if sliced.Len() != 3 {
		t.Errorf("Expected length 3, got %d", sliced.Len())
	}
	if sliced.Values[0] != 2 || sliced.Values[2] != 4 {
		t.Errorf("Expected values [2 3 4], got %v", sliced.Values)
	}

	// out-of-range bounds are clamped
	clamped := s.Slice(-1, 10)
	if clamped.Len() != 5 {
		t.Errorf("Expected full length 5, got %d", clamped.Len())
	}
}

func TestMovingAverage(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	ma := s.MovingAverage(3)

	if ma.Len() != 5 {
		t.Fatalf("Expected result to keep series length 5, got %d", ma.Len())
	}

	// centered window, shrinking at the edges
	expected := []float64{1.5, 2, 3, 4, 4.5}
	for i, want := range expected {
		if math.Abs(ma.Values[i]-want) > 1e-10 {
			t.Errorf("Expected MA[%d]=%f, got %f", i, want, ma.Values[i])
		}
	}
}

func TestMovingAverageWindowLargerThanSeries(t *testing.T) {
	s := New([]float64{1, 2, 3})
	ma := s.MovingAverage(10)

	if ma.Len() != 3 {
		t.Fatalf("Expected length 3, got %d", ma.Len())
	}
	if math.Abs(ma.Values[1]-2) > 1e-10 {
		t.Errorf("Expected center value 2, got %f", ma.Values[1])
	}
}

