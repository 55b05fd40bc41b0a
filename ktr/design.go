package ktr

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goktr/kernels"
	"github.com/sartorproj/goktr/knots"
	"github.com/sartorproj/goktr/stats"
	"github.com/sartorproj/goktr/timeseries"
	"gonum.org/v1/gonum/mat"
)

// partition splits regressors into the unconstrained and positive groups,
// preserving declaration order within each group. The concatenated order is
// always unconstrained first; every downstream coefficient-matrix slice
// depends on it.
type partition struct {
	regularCols  []string
	positiveCols []string
	concatCols   []string

	regularInitKnotLoc   []float64
	regularInitKnotScale []float64
	regularKnotScale     []float64

	positiveInitKnotLoc   []float64
	positiveInitKnotScale []float64
	positiveKnotScale     []float64
}

func newPartition(specs []regressorSpec) *partition {
	p := &partition{}
	for _, spec := range specs {
		if spec.sign == SignPositive {
			p.positiveCols = append(p.positiveCols, spec.name)
			p.positiveInitKnotLoc = append(p.positiveInitKnotLoc, spec.initKnotLoc)
			p.positiveInitKnotScale = append(p.positiveInitKnotScale, spec.initKnotScale)
			p.positiveKnotScale = append(p.positiveKnotScale, spec.knotScale)
		} else {
			p.regularCols = append(p.regularCols, spec.name)
			p.regularInitKnotLoc = append(p.regularInitKnotLoc, spec.initKnotLoc)
			p.regularInitKnotScale = append(p.regularInitKnotScale, spec.initKnotScale)
			p.regularKnotScale = append(p.regularKnotScale, spec.knotScale)
		}
	}
	p.concatCols = append(append([]string{}, p.regularCols...), p.positiveCols...)
	return p
}

func (p *partition) numRegressors() int {
	return len(p.concatCols)
}

// design is the derived read-only state of one fit: knot placements, kernel
// matrices, design matrices, scale priors and the cached seasonal term. It is
// computed once during Fit and reused for every prediction.
type design struct {
	part *partition

	responseOffset   float64
	validResponse    []int
	numValidResponse int

	regularMatrix  *mat.Dense
	positiveMatrix *mat.Dense

	coefPlacement *knots.Placement // nil when no regression knots exist
	kernelCoef    *mat.Dense

	regularKnotScale      *mat.Dense
	positiveKnotScale     *mat.Dense
	regularInitKnotScale  []float64
	positiveInitKnotScale []float64

	levelPlacement  *knots.Placement
	levelKnotValues []float64
	kernelLevel     *mat.Dense

	seasonal *seasonalInput
	seasTerm []float64

	priors []ResolvedPrior
}

// seasonalInput is the bootstrap-fitted seasonal configuration consumed by
// curve reconstruction.
type seasonalInput struct {
	knotDates []time.Time
	coefKnots *mat.Dense // fourier terms x knots
	periods   []int
	fsOrders  []int
}

// setValidResponse derives the NaN bookkeeping and the response offset. The
// offset averages the first max-seasonality observations when seasonality is
// configured so default priors stay scale-insensitive.
func (d *design) setValidResponse(cfg *Config, meta *TrainingMeta) error {
	if len(cfg.Seasonality) > 0 {
		maxSeasonality := 0
		for _, s := range cfg.Seasonality {
			if s > maxSeasonality {
				maxSeasonality = s
			}
		}
		if meta.NumObservations < maxSeasonality {
			return fmt.Errorf("%d observations is less than max seasonality %d: %w",
				meta.NumObservations, maxSeasonality, ErrData)
		}
		d.responseOffset = stats.NaNMean(meta.Response[:maxSeasonality])
	} else {
		d.responseOffset = stats.NaNMean(meta.Response)
	}

	for i, v := range meta.Response {
		if !math.IsNaN(v) {
			d.validResponse = append(d.validResponse, i)
		}
	}
	d.numValidResponse = len(d.validResponse)
	return nil
}

// setRegressorMatrices selects the declared regressor columns from the input
// table. A missing column is a configuration error.
func (d *design) setRegressorMatrices(table *timeseries.Table) error {
	if !table.HasColumns(d.part.concatCols) {
		return fmt.Errorf("table does not contain specified regressor column(s): %w",
			ErrConfiguration)
	}
	var err error
	if len(d.part.regularCols) > 0 {
		if d.regularMatrix, err = table.Matrix(d.part.regularCols); err != nil {
			return fmt.Errorf("%v: %w", err, ErrConfiguration)
		}
	}
	if len(d.part.positiveCols) > 0 {
		if d.positiveMatrix, err = table.Matrix(d.part.positiveCols); err != nil {
			return fmt.Errorf("%v: %w", err, ErrConfiguration)
		}
	}
	return nil
}

// setCoefficientsKernel plans the regression knots and builds the Gaussian
// kernel over the training time positions. Explicit dates that all fall
// outside the training range silently yield zero knots and a zero-width
// regression contribution.
func (d *design) setCoefficientsKernel(cfg *Config, meta *TrainingMeta) error {
	if d.part.numRegressors() == 0 {
		return nil
	}

	var placement *knots.Placement
	var err error
	if len(cfg.RegressionKnotDates) > 0 {
		placement, err = knots.PlanFromDates(meta.Dates, cfg.RegressionKnotDates, meta.Freq)
		if errors.Is(err, knots.ErrNoKnots) {
			return nil
		}
	} else {
		placement, err = knots.PlanEven(meta.Dates, cfg.RegressionSegments, cfg.RegressionKnotDistance)
	}
	if err != nil {
		return fmt.Errorf("regression knots: %v: %w", err, ErrConfiguration)
	}

	d.coefPlacement = placement
	d.kernelCoef = kernels.Gaussian(meta.TimePositions(), placement.Positions, cfg.RegressionRho)
	return nil
}

// setKnotScaleMatrices derives the per-knot scale priors for both regressor
// groups, optionally adjusted by local regressor volume per knot segment.
// Unconstrained regressors compare against their global median absolute
// value, positive ones against their global mean absolute value.
func (d *design) setKnotScaleMatrices(cfg *Config, meta *TrainingMeta) {
	numKnots := 0
	if d.coefPlacement != nil {
		numKnots = d.coefPlacement.NumKnots()
	}
	if numKnots == 0 {
		return
	}

	if len(d.part.positiveCols) > 0 {
		d.positiveKnotScale = knotScaleMatrix(
			d.positiveMatrix, d.part.positiveKnotScale, d.coefPlacement.Indices,
			meta.NumObservations, cfg.FlatMultiplier, stats.MeanAbs,
		)
		d.positiveInitKnotScale = floorScales(d.part.positiveInitKnotScale)
	}
	if len(d.part.regularCols) > 0 {
		d.regularKnotScale = knotScaleMatrix(
			d.regularMatrix, d.part.regularKnotScale, d.coefPlacement.Indices,
			meta.NumObservations, cfg.FlatMultiplier, stats.MedianAbs,
		)
		d.regularInitKnotScale = floorScales(d.part.regularInitKnotScale)
	}
}

// knotScaleMatrix builds the (regressors x knots) scale prior matrix. With a
// flat multiplier every segment keeps multiplier 1; otherwise a segment whose
// local mean absolute value falls below 1% of the regressor's global
// statistic gets the low-bound multiplier, and a regressor whose comparison
// is undefined throughout (zero or NaN global statistic) resets to neutral.
// Final values are floored at a small epsilon.
func knotScaleMatrix(x *mat.Dense, baseScale []float64, knotIdx []int,
	numObservations int, flat bool, globalStat func([]float64) float64) *mat.Dense {

	numReg := len(baseScale)
	numKnots := len(knotIdx)
	scale := mat.NewDense(numReg, numKnots, nil)

	for r := 0; r < numReg; r++ {
		col := mat.Col(nil, r, x)
		multiplier := make([]float64, numKnots)
		for k := range multiplier {
			multiplier[k] = 1.0
		}
		if !flat {
			global := globalStat(col)
			if math.IsNaN(global) || global == 0 {
				// comparison undefined for the whole row, reset to neutral
				for k := range multiplier {
					multiplier[k] = 1.0
				}
			} else {
				for k := 0; k < numKnots; k++ {
					start := knotIdx[k]
					end := numObservations
					if k < numKnots-1 {
						end = knotIdx[k+1]
					}
					local := stats.MeanAbs(col[start:end])
					if local < lowBoundScaleMultiplier*global {
						multiplier[k] = lowBoundScaleMultiplier
					}
				}
			}
		}
		for k := 0; k < numKnots; k++ {
			v := multiplier[k] * baseScale[r]
			if v < scaleEpsilon {
				v = scaleEpsilon
			}
			scale.Set(r, k, v)
		}
	}
	return scale
}

func floorScales(scales []float64) []float64 {
	out := make([]float64, len(scales))
	for i, v := range scales {
		if v < scaleEpsilon {
			v = scaleEpsilon
		}
		out[i] = v
	}
	return out
}
