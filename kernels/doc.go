// Package kernels provides the kernel basis builders for time-varying
// coefficient curves.
//
// A kernel basis matrix maps a small number of knot values to values at
// arbitrary query time positions. Two kernels are provided:
//
//   - Gaussian: smooth, unnormalized weights decaying with squared distance,
//     used for regression coefficient curves.
//   - Sandwich: linear interpolation between the two nearest bracketing
//     knots with nearest-neighbor extrapolation outside the knot range, used
//     for level and seasonal curves. Every row sums to one.
//
// Both accept arbitrary query arrays, so the same builders serve in-sample
// reconstruction and out-of-sample prediction:
//
//	tp := timeseries.TimePositions(n)
//	k := kernels.Sandwich(tp, knotPositions)
package kernels
