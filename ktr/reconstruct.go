package ktr

import (
	"fmt"
	"time"

	"github.com/sartorproj/goktr/kernels"
	"github.com/sartorproj/goktr/timeseries"
	"gonum.org/v1/gonum/mat"
)

// generateTP returns normalized time positions for a date array that starts
// inside or after the training range, continuing the training index.
func generateTP(meta *TrainingMeta, dates []time.Time) ([]float64, error) {
	start, err := meta.startOffset(dates[0])
	if err != nil {
		return nil, err
	}
	tp := make([]float64, len(dates))
	for i := range tp {
		tp[i] = float64(start+i+1) / float64(meta.NumObservations)
	}
	return tp, nil
}

// insampleTP converts dates found inside the training range to their
// normalized time positions by exact date match.
func insampleTP(meta *TrainingMeta, dates []time.Time) ([]float64, error) {
	tp := make([]float64, len(dates))
	for i, d := range dates {
		idx, ok := timeseries.IndexOf(meta.Dates, d)
		if !ok {
			return nil, fmt.Errorf("knot date %s not found in training dates: %w",
				d.Format(time.RFC3339), ErrData)
		}
		tp[i] = float64(idx+1) / float64(meta.NumObservations)
	}
	return tp, nil
}

// generateCoefs reconstructs coefficient curves over a target date array from
// knot values through the sandwich kernel. coefKnots is (curves x knots); the
// result is (time x curves).
func generateCoefs(meta *TrainingMeta, dates []time.Time, knotDates []time.Time,
	coefKnots *mat.Dense) (*mat.Dense, error) {

	newTP, err := generateTP(meta, dates)
	if err != nil {
		return nil, err
	}
	knotTP, err := insampleTP(meta, knotDates)
	if err != nil {
		return nil, err
	}
	kernel := kernels.Sandwich(newTP, knotTP)

	var coefs mat.Dense
	coefs.Mul(kernel, coefKnots.T())
	return &coefs, nil
}

// generateSeas computes the seasonal term for a date array from the bootstrap
// seasonal knot values: fourier features anchored at the start offset,
// weighted by sandwich-kernel reconstructed coefficient curves.
func generateSeas(meta *TrainingMeta, dates []time.Time, s *seasonalInput) ([]float64, error) {
	start, err := meta.startOffset(dates[0])
	if err != nil {
		return nil, err
	}

	length := len(dates)
	var features *mat.Dense
	for i, period := range s.periods {
		f := timeseries.FourierSeries(length, start, float64(period), s.fsOrders[i])
		if features == nil {
			features = f
			continue
		}
		var grown mat.Dense
		grown.Augment(features, f)
		features = &grown
	}

	coefs, err := generateCoefs(meta, dates, s.knotDates, s.coefKnots)
	if err != nil {
		return nil, err
	}

	_, numTerms := features.Dims()
	_, numCurves := coefs.Dims()
	if numTerms != numCurves {
		return nil, fmt.Errorf("%d fourier terms for %d seasonal coefficient curves: %w",
			numTerms, numCurves, ErrConfiguration)
	}

	seas := make([]float64, length)
	for t := 0; t < length; t++ {
		sum := 0.0
		for j := 0; j < numTerms; j++ {
			sum += coefs.At(t, j) * features.At(t, j)
		}
		seas[t] = sum
	}
	return seas, nil
}

// regressionCoefMatrix reconstructs per-draw coefficient curves. With a nil
// date array the cached training kernel is reused; otherwise a fresh Gaussian
// kernel is computed against the same knot set, so out-of-sample dates simply
// extrapolate through the kernel's natural decay. The result holds one
// (time x regressors) matrix per posterior draw, or nil when the model has no
// regressors.
func (f *Fit) regressionCoefMatrix(dates []time.Time) ([]*mat.Dense, error) {
	if f.model.part.numRegressors() == 0 {
		return nil, nil
	}

	numTime := f.meta.NumObservations
	kernel := f.d.kernelCoef
	if dates != nil {
		if !timeseries.IsOrdered(dates) {
			return nil, fmt.Errorf("%v: %w", timeseries.ErrUnorderedDates, ErrData)
		}
		if dates[0].Before(f.meta.TrainingStart) {
			return nil, fmt.Errorf("prediction start must be after training start: %w", ErrData)
		}
		newTP, err := generateTP(f.meta, dates)
		if err != nil {
			return nil, err
		}
		numTime = len(dates)
		kernel = nil
		if f.d.coefPlacement != nil {
			kernel = kernels.Gaussian(newTP, f.d.coefPlacement.Positions, f.model.cfg.RegressionRho)
		}
	}

	draws, err := f.posterior.NumDraws()
	if err != nil {
		return nil, err
	}
	betas := make([]*mat.Dense, draws)

	if kernel == nil {
		// zero regression knots: zero-width contribution
		for s := range betas {
			betas[s] = mat.NewDense(numTime, f.model.part.numRegressors(), nil)
		}
		return betas, nil
	}

	coefKnot, err := f.posterior.Get(ParamCoefKnot)
	if err != nil {
		return nil, err
	}
	for s := 0; s < draws; s++ {
		knotMatrix, err := coefKnot.DrawMatrix(s) // regressors x knots
		if err != nil {
			return nil, err
		}
		var beta mat.Dense
		beta.Mul(kernel, knotMatrix.T())
		betas[s] = &beta
	}
	return betas, nil
}
