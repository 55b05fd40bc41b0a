package timeseries

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FourierSeries builds a length x 2*order matrix of seasonal features for the
// given period: column pairs sin(2*pi*k*t/period), cos(2*pi*k*t/period) for
// k = 1..order, with time indices t = shift+1 .. shift+length. The shift
// anchors out-of-sample features to continue the training phase.
func FourierSeries(length, shift int, period float64, order int) *mat.Dense {
	out := mat.NewDense(length, 2*order, nil)
	for i := 0; i < length; i++ {
		t := float64(shift + i + 1)
		for k := 1; k <= order; k++ {
			x := 2 * math.Pi * float64(k) * t / period
			out.Set(i, 2*(k-1), math.Sin(x))
			out.Set(i, 2*(k-1)+1, math.Cos(x))
		}
	}
	return out
}
