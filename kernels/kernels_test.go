package kernels

import (
	"math"
	"testing"
)

func TestGaussianValues(t *testing.T) {
	x := []float64{0.0, 0.5, 1.0}
	knots := []float64{0.5}
	k := Gaussian(x, knots, 0.5)

	rows, cols := k.Dims()
	if rows != 3 || cols != 1 {
		t.Fatalf("Expected 3x1 kernel, got %dx%d", rows, cols)
	}

	// exp(-(x-0.5)^2 / (2*0.25))
	expected := []float64{math.Exp(-0.5), 1.0, math.Exp(-0.5)}
	for i, want := range expected {
		if math.Abs(k.At(i, 0)-want) > 1e-12 {
			t.Errorf("Expected K[%d,0]=%f, got %f", i, want, k.At(i, 0))
		}
	}
}

func TestGaussianSymmetry(t *testing.T) {
	x := []float64{0.2, 0.8}
	knots := []float64{0.2, 0.8}
	k := Gaussian(x, knots, 0.15)

	if math.Abs(k.At(0, 1)-k.At(1, 0)) > 1e-12 {
		t.Errorf("Expected symmetric off-diagonal, got %f and %f", k.At(0, 1), k.At(1, 0))
	}
	if k.At(0, 0) != 1 || k.At(1, 1) != 1 {
		t.Errorf("Expected unit diagonal, got %f and %f", k.At(0, 0), k.At(1, 1))
	}
}

func TestGaussianEmptyKnots(t *testing.T) {
	if k := Gaussian([]float64{0.1, 0.2}, nil, 0.15); k != nil {
		t.Errorf("Expected nil kernel for empty knots, got %v", k)
	}
}

func TestSandwichRowsSumToOne(t *testing.T) {
	x := []float64{0.05, 0.1, 0.33, 0.5, 0.77, 0.99}
	knots := []float64{0.2, 0.5, 0.8}
	k := Sandwich(x, knots)

	rows, cols := k.Dims()
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			v := k.At(i, j)
			if v < 0 {
				t.Errorf("Negative weight %f at [%d,%d]", v, i, j)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("Expected row %d to sum to 1, got %f", i, sum)
		}
	}
}

func TestSandwichOutsideRange(t *testing.T) {
	knots := []float64{0.3, 0.7}
	k := Sandwich([]float64{0.1, 0.9}, knots)

	if k.At(0, 0) != 1 || k.At(0, 1) != 0 {
		t.Errorf("Expected weight 1 on first knot before range, got [%f %f]", k.At(0, 0), k.At(0, 1))
	}
	if k.At(1, 0) != 0 || k.At(1, 1) != 1 {
		t.Errorf("Expected weight 1 on last knot after range, got [%f %f]", k.At(1, 0), k.At(1, 1))
	}
}

func TestSandwichInterpolation(t *testing.T) {
	knots := []float64{0.0, 1.0}
	k := Sandwich([]float64{0.25}, knots)

	if math.Abs(k.At(0, 0)-0.75) > 1e-12 || math.Abs(k.At(0, 1)-0.25) > 1e-12 {
		t.Errorf("Expected weights [0.75 0.25], got [%f %f]", k.At(0, 0), k.At(0, 1))
	}
}

func TestSandwichKnotPassthrough(t *testing.T) {
	// a query exactly at a knot takes weight 1 on that knot
	knots := []float64{0.2, 0.5, 0.8}
	k := Sandwich(knots, knots)

	for i := range knots {
		for j := range knots {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(k.At(i, j)-want) > 1e-12 {
				t.Errorf("Expected K[%d,%d]=%f, got %f", i, j, want, k.At(i, j))
			}
		}
	}
}

func TestSandwichEmptyKnots(t *testing.T) {
	if k := Sandwich([]float64{0.5}, nil); k != nil {
		t.Errorf("Expected nil kernel for empty knots, got %v", k)
	}
}
