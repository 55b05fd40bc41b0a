package kernels

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Gaussian builds an unnormalized Gaussian kernel matrix between query time
// positions x and knot positions knots:
//
//	K[i,j] = exp(-(x_i - k_j)^2 / (2 * rho^2))
//
// rho is the bandwidth controlling how local each knot's influence is. Rows
// are not guaranteed to sum to one. Returns nil when knots is empty.
func Gaussian(x, knots []float64, rho float64) *mat.Dense {
	if len(knots) == 0 {
		return nil
	}
	k := mat.NewDense(len(x), len(knots), nil)
	denom := 2 * rho * rho
	for i, xi := range x {
		for j, kj := range knots {
			d := xi - kj
			k.Set(i, j, math.Exp(-d*d/denom))
		}
	}
	return k
}

// Sandwich builds the interpolation kernel matrix between query time
// positions x and knot positions knots. Each row splits weight between the
// nearest knot at or before x_i and the nearest knot at or after it, linearly
// by relative distance. Queries outside the knot range take weight 1 on the
// single bracketing knot, so every row sums to one. knots must be strictly
// increasing. Returns nil when knots is empty.
func Sandwich(x, knots []float64) *mat.Dense {
	nCol := len(knots)
	if nCol == 0 {
		return nil
	}
	k := mat.NewDense(len(x), nCol, nil)
	for i, xi := range x {
		// smallest index with knots[idx] >= xi
		idx := sort.SearchFloat64s(knots, xi)
		switch {
		case idx == 0:
			k.Set(i, 0, 1)
		case idx == nCol:
			k.Set(i, nCol-1, 1)
		default:
			width := knots[idx] - knots[idx-1]
			k.Set(i, idx-1, (knots[idx]-xi)/width)
			k.Set(i, idx, (xi-knots[idx-1])/width)
		}
	}
	return k
}
