package ktr

import (
	"fmt"
	"time"

	"github.com/sartorproj/goktr/timeseries"
	"gonum.org/v1/gonum/mat"
)

// RegressionCoefficients reports the posterior-mean coefficient curve of every
// regressor over the given dates. A nil date slice reports over the training
// dates through the cached training kernel; explicit dates recompute the
// kernel. Columns keep the concatenated regressor order.
func (f *Fit) RegressionCoefficients(dates []time.Time) (*timeseries.Table, error) {
	if f.model.part.numRegressors() == 0 {
		return nil, fmt.Errorf("model has no regressors: %w", ErrConfiguration)
	}

	betas, err := f.regressionCoefMatrix(dates)
	if err != nil {
		return nil, err
	}
	if dates == nil {
		dates = f.meta.Dates
	}

	numTime := len(dates)
	numReg := f.model.part.numRegressors()
	mean := mat.NewDense(numTime, numReg, nil)
	for _, beta := range betas {
		mean.Add(mean, beta)
	}
	mean.Scale(1/float64(len(betas)), mean)

	out := timeseries.NewTable(dates)
	for r, name := range f.model.part.concatCols {
		if err := out.AddColumn(name, mat.Col(nil, r, mean)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RegressionCoefficientKnots reports the posterior-mean knot values of every
// regressor at the regression knot dates, with a "step" column carrying each
// knot's training index. With zero regression knots the table is empty.
func (f *Fit) RegressionCoefficientKnots() (*timeseries.Table, error) {
	if f.model.part.numRegressors() == 0 {
		return nil, fmt.Errorf("model has no regressors: %w", ErrConfiguration)
	}
	if f.d.coefPlacement == nil {
		return timeseries.NewTable(nil), nil
	}

	samples, err := f.posterior.Get(ParamCoefKnot)
	if err != nil {
		return nil, err
	}
	mean, err := samples.MeanMatrix() // regressors x knots
	if err != nil {
		return nil, err
	}

	out := timeseries.NewTable(f.d.coefPlacement.Dates)
	steps := make([]float64, len(f.d.coefPlacement.Indices))
	for i, idx := range f.d.coefPlacement.Indices {
		steps[i] = float64(idx)
	}
	if err := out.AddColumn("step", steps); err != nil {
		return nil, err
	}
	for r, name := range f.model.part.concatCols {
		if err := out.AddColumn(name, mat.Row(nil, r, mean)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// LevelKnots reports the posterior-mean level knot values at the level knot
// dates.
func (f *Fit) LevelKnots() (*timeseries.Table, error) {
	samples, err := f.posterior.Get(ParamLevelKnot)
	if err != nil {
		return nil, err
	}
	mean, err := samples.MeanVector()
	if err != nil {
		return nil, err
	}

	out := timeseries.NewTable(f.d.levelPlacement.Dates)
	if err := out.AddColumn("level_knot", mean); err != nil {
		return nil, err
	}
	return out, nil
}

// Levels reports the posterior-mean level curve over the training dates,
// reconstructed from the level knots through the cached sandwich kernel.
func (f *Fit) Levels() (*timeseries.Table, error) {
	samples, err := f.posterior.Get(ParamLevelKnot)
	if err != nil {
		return nil, err
	}
	meanKnots, err := samples.MeanVector()
	if err != nil {
		return nil, err
	}

	knotVec := mat.NewVecDense(len(meanKnots), meanKnots)
	level := mat.NewVecDense(f.meta.NumObservations, nil)
	level.MulVec(f.d.kernelLevel, knotVec)

	out := timeseries.NewTable(f.meta.Dates)
	if err := out.AddColumn("level", level.RawVector().Data); err != nil {
		return nil, err
	}
	return out, nil
}
