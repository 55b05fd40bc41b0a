package ktr

import (
	"fmt"
	"time"

	"github.com/sartorproj/goktr/kernels"
	"github.com/sartorproj/goktr/knots"
	"github.com/sartorproj/goktr/timeseries"
	"gonum.org/v1/gonum/mat"
)

// Model is a kernel-based time-varying regression model: trend, seasonality
// and regression coefficients are all smooth curves interpolated from a small
// number of knot values. The estimator and bootstrap collaborators are
// injected; the model itself only assembles their inputs and reconstructs
// curves from their outputs.
type Model struct {
	cfg          *Config
	part         *partition
	priorIndices [][]int
	estimator    Estimator
	bootstrap    Bootstrap
}

// NewModel validates the configuration and prepares the static derived state.
func NewModel(cfg *Config, estimator Estimator, bootstrap Bootstrap) (*Model, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if estimator == nil {
		return nil, fmt.Errorf("estimator is required: %w", ErrConfiguration)
	}
	if bootstrap == nil {
		return nil, fmt.Errorf("bootstrap model is required: %w", ErrConfiguration)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	specs, err := cfg.regressorSpecs()
	if err != nil {
		return nil, err
	}
	part := newPartition(specs)
	priorIndices, err := resolvePriorColumns(cfg.CoefPriors, part.concatCols)
	if err != nil {
		return nil, err
	}
	return &Model{
		cfg:          cfg,
		part:         part,
		priorIndices: priorIndices,
		estimator:    estimator,
		bootstrap:    bootstrap,
	}, nil
}

// RegressorColumns returns the concatenated regressor order used by every
// coefficient matrix: unconstrained columns first, then positive ones.
func (m *Model) RegressorColumns() []string {
	dst := make([]string, len(m.part.concatCols))
	copy(dst, m.part.concatCols)
	return dst
}

// Fit derives the knot placements, kernel and design matrices from the input
// table, seeds level and seasonal knots through the bootstrap model, runs the
// estimator and returns the fitted state.
func (m *Model) Fit(table *timeseries.Table) (*Fit, error) {
	meta, err := NewTrainingMeta(table, m.cfg.ResponseCol, m.cfg.DateCol, m.cfg.DateFreq)
	if err != nil {
		return nil, err
	}

	d := &design{part: m.part}
	if err := d.setValidResponse(m.cfg, meta); err != nil {
		return nil, err
	}
	if m.part.numRegressors() > 0 {
		if err := d.setRegressorMatrices(table); err != nil {
			return nil, err
		}
		if err := d.setCoefficientsKernel(m.cfg, meta); err != nil {
			return nil, err
		}
		d.setKnotScaleMatrices(m.cfg, meta)
	}
	if err := m.setLevelsAndSeas(d, table, meta); err != nil {
		return nil, err
	}
	d.priors = filterCoefPriors(m.cfg.CoefPriors, m.priorIndices, meta.NumObservations)

	posterior, err := m.estimator.Estimate(m.assembleInput(meta, d))
	if err != nil {
		return nil, err
	}
	if err := m.checkPosterior(posterior, d); err != nil {
		return nil, err
	}

	return &Fit{
		model:     m,
		meta:      meta,
		d:         d,
		posterior: posterior,
	}, nil
}

// setLevelsAndSeas seeds the level knots and the seasonal term from the
// bootstrap model. Knot dates beyond the training range are trimmed; ending
// up with zero level knots is fatal because the level component must always
// have at least one knot.
func (m *Model) setLevelsAndSeas(d *design, table *timeseries.Table, meta *TrainingMeta) error {
	bf, err := m.bootstrap.FitLevelAndSeason(table, meta)
	if err != nil {
		return err
	}
	if len(bf.LevelKnots) != len(bf.LevelKnotDates) {
		return fmt.Errorf("bootstrap returned %d level knots for %d dates: %w",
			len(bf.LevelKnots), len(bf.LevelKnotDates), ErrConfiguration)
	}

	var dates []time.Time
	var values []float64
	for i, dt := range bf.LevelKnotDates {
		if dt.Before(meta.TrainingStart) || dt.After(meta.TrainingEnd) {
			continue
		}
		dates = append(dates, dt)
		values = append(values, bf.LevelKnots[i])
	}
	if len(dates) == 0 {
		return fmt.Errorf("zero level knots resolved within the training range: %w",
			ErrConfiguration)
	}

	placement, err := knots.PlanFromDates(meta.Dates, dates, meta.Freq)
	if err != nil {
		return fmt.Errorf("level knots: %v: %w", err, ErrConfiguration)
	}
	d.levelPlacement = placement
	d.levelKnotValues = values
	d.kernelLevel = kernels.Sandwich(meta.TimePositions(), placement.Positions)

	if len(m.cfg.Seasonality) > 0 {
		if bf.SeasonalCoefKnots == nil || len(bf.SeasonalKnotDates) == 0 {
			return fmt.Errorf("seasonality configured but bootstrap returned no seasonal knots: %w",
				ErrConfiguration)
		}
		d.seasonal = &seasonalInput{
			knotDates: bf.SeasonalKnotDates,
			coefKnots: bf.SeasonalCoefKnots,
			periods:   m.cfg.Seasonality,
			fsOrders:  m.cfg.SeasonalityFSOrders,
		}
		d.seasTerm, err = generateSeas(meta, meta.Dates, d.seasonal)
		if err != nil {
			return err
		}
	}
	return nil
}

// assembleInput packs the derived state into the estimator's input mapping.
func (m *Model) assembleInput(meta *TrainingMeta, d *design) *EstimatorInput {
	input := &EstimatorInput{
		Response:         meta.Response,
		ResponseOffset:   d.responseOffset,
		ValidResponse:    d.validResponse,
		NumValidResponse: d.numValidResponse,
		DegreeOfFreedom:  m.cfg.DegreeOfFreedom,
		MinResidualsSD:   m.cfg.MinResidualsSD,

		NumLevelKnots:   d.levelPlacement.NumKnots(),
		LevelKnotScale:  m.cfg.LevelKnotScale,
		KernelLevel:     d.kernelLevel,
		LevelKnots:      d.levelKnotValues,
		SeasonalityTerm: d.seasTerm,

		NumRegularRegressors:    len(m.part.regularCols),
		NumPositiveRegressors:   len(m.part.positiveCols),
		RegularRegressorMatrix:  d.regularMatrix,
		PositiveRegressorMatrix: d.positiveMatrix,
		RegularInitKnotLoc:      m.part.regularInitKnotLoc,
		RegularInitKnotScale:    d.regularInitKnotScale,
		RegularKnotScale:        d.regularKnotScale,
		PositiveInitKnotLoc:     m.part.positiveInitKnotLoc,
		PositiveInitKnotScale:   d.positiveInitKnotScale,
		PositiveKnotScale:       d.positiveKnotScale,
		CoefPriors:              d.priors,
	}
	if d.coefPlacement != nil {
		input.RegressionSegments = d.coefPlacement.NumKnots()
		input.KernelCoefficients = d.kernelCoef
	}
	return input
}

// checkPosterior validates the estimator output at the boundary: known keys
// only, required parameters present, consistent draw counts and shapes that
// match the planned knot counts.
func (m *Model) checkPosterior(posterior Posterior, d *design) error {
	if err := posterior.validate(m.part.numRegressors()); err != nil {
		return err
	}

	levKnot, err := posterior.Get(ParamLevelKnot)
	if err != nil {
		return err
	}
	shape := levKnot.Shape()
	if len(shape) != 2 || shape[1] != d.levelPlacement.NumKnots() {
		return fmt.Errorf("%q has shape %v, want draws x %d: %w",
			ParamLevelKnot, shape, d.levelPlacement.NumKnots(), ErrConfiguration)
	}

	if m.part.numRegressors() > 0 && d.coefPlacement != nil {
		coefKnot, err := posterior.Get(ParamCoefKnot)
		if err != nil {
			return err
		}
		shape = coefKnot.Shape()
		if len(shape) != 3 || shape[1] != m.part.numRegressors() ||
			shape[2] != d.coefPlacement.NumKnots() {
			return fmt.Errorf("%q has shape %v, want draws x %d x %d: %w",
				ParamCoefKnot, shape, m.part.numRegressors(), d.coefPlacement.NumKnots(),
				ErrConfiguration)
		}
	}
	return nil
}

// Fit is the read-only result of fitting a Model: the training metadata, the
// derived design state and the estimator's posterior samples. It serves
// repeated prediction and reporting calls.
type Fit struct {
	model     *Model
	meta      *TrainingMeta
	d         *design
	posterior Posterior

	// last prediction array, retained only when requested
	predArray *mat.Dense
}

// Meta returns the training metadata of this fit.
func (f *Fit) Meta() *TrainingMeta {
	return f.meta
}

// Posterior returns the estimator's parameter samples.
func (f *Fit) Posterior() Posterior {
	return f.posterior
}

// LevelKnotDates returns the dates of the level knots in effect.
func (f *Fit) LevelKnotDates() []time.Time {
	dst := make([]time.Time, len(f.d.levelPlacement.Dates))
	copy(dst, f.d.levelPlacement.Dates)
	return dst
}

// RegressionKnotPlacement returns the regression knot placement, or nil when
// no regression knots exist.
func (f *Fit) RegressionKnotPlacement() *knots.Placement {
	return f.d.coefPlacement
}

// StoredPrediction returns the prediction array retained by the last Predict
// call with StorePrediction set, or nil.
func (f *Fit) StoredPrediction() *mat.Dense {
	return f.predArray
}
