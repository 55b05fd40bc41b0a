package ktrlite

import (
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goktr/knots"
	"github.com/sartorproj/goktr/ktr"
	"github.com/sartorproj/goktr/timeseries"
	"gonum.org/v1/gonum/mat"
)

// ridgePenalty stabilizes the per-segment fourier regressions against
// collinear or short segments.
const ridgePenalty = 1e-4

// Model is the lightweight bootstrap that seeds level and seasonal knots for
// the main model: a smoothed trend sampled at the level knots, and per-segment
// fourier fits of the detrended response at the seasonal knots.
type Model struct {
	levelSegments     int
	levelKnotDistance int
	levelKnotDates    []time.Time

	seasonality  []int
	fsOrders     []int
	seasSegments int
}

// New derives a bootstrap model from the main model configuration.
func New(cfg *ktr.Config) *Model {
	if cfg == nil {
		cfg = ktr.DefaultConfig()
	}
	return &Model{
		levelSegments:     cfg.LevelSegments,
		levelKnotDistance: cfg.LevelKnotDistance,
		levelKnotDates:    cfg.LevelKnotDates,
		seasonality:       cfg.Seasonality,
		fsOrders:          cfg.SeasonalityFSOrders,
		seasSegments:      cfg.SeasonalitySegments,
	}
}

// FitLevelAndSeason produces the level knot point estimates and, when
// seasonality is configured, the seasonal coefficient knots.
func (m *Model) FitLevelAndSeason(table *timeseries.Table, meta *ktr.TrainingMeta) (*ktr.BootstrapFit, error) {
	n := meta.NumObservations
	filled := fillGaps(meta.Response)

	window := m.smoothingWindow(n)
	series, err := timeseries.NewWithTimestamps(meta.Dates, filled)
	if err != nil {
		return nil, err
	}
	trend := series.MovingAverage(window).Values

	fit := &ktr.BootstrapFit{}
	if len(m.levelKnotDates) > 0 {
		placement, err := knots.PlanFromDates(meta.Dates, m.levelKnotDates, meta.Freq)
		if err != nil {
			return nil, err
		}
		fit.LevelKnotDates = placement.Dates
		fit.LevelKnots = valuesAt(trend, placement.Indices)
	} else {
		idx := anchoredIndices(n, m.levelSegments, m.levelKnotDistance)
		fit.LevelKnotDates = datesAt(meta.Dates, idx)
		fit.LevelKnots = valuesAt(trend, idx)
	}

	if len(m.seasonality) == 0 {
		return fit, nil
	}

	detrended := make([]float64, n)
	for i := range detrended {
		detrended[i] = filled[i] - trend[i]
	}

	seasIdx := anchoredIndices(n, m.seasSegments, 0)
	coefKnots, err := m.fitSeasonalKnots(detrended, seasIdx)
	if err != nil {
		return nil, err
	}
	fit.SeasonalKnotDates = datesAt(meta.Dates, seasIdx)
	fit.SeasonalCoefKnots = coefKnots
	return fit, nil
}

// smoothingWindow picks the moving-average window: the longest seasonal
// period when seasonality is configured, so the trend estimate averages whole
// cycles, otherwise one level segment.
func (m *Model) smoothingWindow(n int) int {
	window := 0
	for _, s := range m.seasonality {
		if s > window {
			window = s
		}
	}
	if window == 0 {
		segments := m.levelSegments
		if segments <= 0 {
			segments = 1
		}
		window = knots.SpacingFromSegments(n, segments)
	}
	if window > n {
		window = n
	}
	if window < 1 {
		window = 1
	}
	return window
}

// fitSeasonalKnots regresses each knot's segment of the detrended response on
// the fourier features of that segment. The result is (fourier terms x knots).
func (m *Model) fitSeasonalKnots(detrended []float64, knotIdx []int) (*mat.Dense, error) {
	n := len(detrended)
	numTerms := 0
	for _, order := range m.fsOrders {
		numTerms += 2 * order
	}
	if numTerms == 0 {
		return nil, fmt.Errorf("seasonality configured with zero fourier terms: %w",
			ktr.ErrConfiguration)
	}

	var features *mat.Dense
	for i, period := range m.seasonality {
		f := timeseries.FourierSeries(n, 0, float64(period), m.fsOrders[i])
		if features == nil {
			features = f
			continue
		}
		var grown mat.Dense
		grown.Augment(features, f)
		features = &grown
	}

	numKnots := len(knotIdx)
	coef := mat.NewDense(numTerms, numKnots, nil)
	for k := 0; k < numKnots; k++ {
		lo, hi := segmentBounds(knotIdx, k, n)
		beta, err := ridgeSolve(features.Slice(lo, hi, 0, numTerms), detrended[lo:hi])
		if err != nil {
			return nil, fmt.Errorf("seasonal knot %d: %w", k, err)
		}
		for j := 0; j < numTerms; j++ {
			coef.Set(j, k, beta.AtVec(j))
		}
	}
	return coef, nil
}

// segmentBounds splits the training range at the midpoints between adjacent
// knots so every observation contributes to exactly one knot fit.
func segmentBounds(knotIdx []int, k, n int) (int, int) {
	lo := 0
	if k > 0 {
		lo = (knotIdx[k-1] + knotIdx[k]) / 2
	}
	hi := n
	if k < len(knotIdx)-1 {
		hi = (knotIdx[k] + knotIdx[k+1]) / 2
	}
	return lo, hi
}

// ridgeSolve solves (X'X + rI) b = X'y.
func ridgeSolve(x mat.Matrix, y []float64) (*mat.VecDense, error) {
	_, cols := x.Dims()

	var gram mat.Dense
	gram.Mul(x.T(), x)
	for j := 0; j < cols; j++ {
		gram.Set(j, j, gram.At(j, j)+ridgePenalty)
	}

	var rhs mat.VecDense
	rhs.MulVec(x.T(), mat.NewVecDense(len(y), y))

	var beta mat.VecDense
	if err := beta.SolveVec(&gram, &rhs); err != nil {
		return nil, err
	}
	return &beta, nil
}

// anchoredIndices places knot indices evenly spaced backwards from the last
// observation, so the final knot always sits on the series endpoint.
func anchoredIndices(n, segments, spacing int) []int {
	if spacing <= 0 {
		if segments <= 0 {
			segments = 1
		}
		spacing = knots.SpacingFromSegments(n, segments)
	}
	var idx []int
	for i := n - 1; i >= 0; i -= spacing {
		idx = append(idx, i)
	}
	// reverse into ascending order
	for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

func datesAt(dates []time.Time, idx []int) []time.Time {
	out := make([]time.Time, len(idx))
	for i, j := range idx {
		out[i] = dates[j]
	}
	return out
}

func valuesAt(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}

// fillGaps replaces NaN entries by linear interpolation between the nearest
// valid neighbors; leading and trailing gaps take the nearest valid value.
func fillGaps(values []float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	copy(out, values)

	prev := -1
	for i := 0; i < n; i++ {
		if math.IsNaN(out[i]) {
			continue
		}
		if prev == -1 && i > 0 {
			for j := 0; j < i; j++ {
				out[j] = out[i]
			}
		} else if prev >= 0 && i-prev > 1 {
			step := (out[i] - out[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				out[j] = out[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
	if prev >= 0 && prev < n-1 {
		for j := prev + 1; j < n; j++ {
			out[j] = out[prev]
		}
	}
	return out
}
