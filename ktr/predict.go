package ktr

import (
	"fmt"
	"math/rand/v2"

	"github.com/sartorproj/goktr/kernels"
	"github.com/sartorproj/goktr/timeseries"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PredictOptions controls one prediction call.
type PredictOptions struct {
	// IncludeError adds simulated observation noise and, when the horizon
	// runs past the last level knot plus one knot width, extends the level
	// knots by a Laplace random walk per posterior draw.
	IncludeError bool
	// StorePrediction retains the raw prediction array on the Fit.
	StorePrediction bool
	// Source supplies randomness for noise and trend extension. Required
	// when IncludeError is set, so repeated predictions are reproducible
	// when seeded identically.
	Source rand.Source
}

// Decomposition is the output of a prediction call: the total prediction and
// its trend, seasonality and regression components, each (draws x time).
type Decomposition struct {
	Prediction  *mat.Dense
	Trend       *mat.Dense
	Seasonality *mat.Dense
	Regression  *mat.Dense
}

// Predict reconstructs the forecast over the dates of the given table and
// decomposes it into components. Regressor columns declared at configuration
// time must be present in the table. With fewer than two level knots no knot
// width is defined, so error-inclusive prediction degrades to re-evaluating
// the existing level kernel at the new horizon.
func (f *Fit) Predict(table *timeseries.Table, opts *PredictOptions) (*Decomposition, error) {
	if opts == nil {
		opts = &PredictOptions{}
	}
	if opts.IncludeError && opts.Source == nil {
		return nil, fmt.Errorf("error-inclusive prediction needs a random source: %w",
			ErrConfiguration)
	}

	dates := table.Dates()
	if len(dates) == 0 {
		return nil, fmt.Errorf("empty prediction table: %w", ErrData)
	}
	outputLen := len(dates)

	// regressor columns must be resolvable before any reconstruction work
	var regressorMatrix *mat.Dense
	if f.model.part.numRegressors() > 0 {
		var err error
		regressorMatrix, err = table.Matrix(f.model.part.concatCols)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrConfiguration)
		}
	}

	draws, err := f.posterior.NumDraws()
	if err != nil {
		return nil, err
	}
	newTP, err := generateTP(f.meta, dates)
	if err != nil {
		return nil, err
	}

	levKnot, kernelLevel, err := f.levelKnotsFor(newTP, draws, opts)
	if err != nil {
		return nil, err
	}

	var trend mat.Dense
	trend.Mul(levKnot, kernelLevel.T())

	seas := make([]float64, outputLen)
	if f.d.seasonal != nil {
		seas, err = generateSeas(f.meta, dates, f.d.seasonal)
		if err != nil {
			return nil, err
		}
	}
	seasonality := mat.NewDense(draws, outputLen, nil)
	for s := 0; s < draws; s++ {
		seasonality.SetRow(s, seas)
	}

	regression := mat.NewDense(draws, outputLen, nil)
	if regressorMatrix != nil {
		betas, err := f.regressionCoefMatrix(dates)
		if err != nil {
			return nil, err
		}
		numReg := f.model.part.numRegressors()
		for s := 0; s < draws; s++ {
			for t := 0; t < outputLen; t++ {
				sum := 0.0
				for r := 0; r < numReg; r++ {
					sum += betas[s].At(t, r) * regressorMatrix.At(t, r)
				}
				regression.Set(s, t, sum)
			}
		}
	}

	prediction := mat.NewDense(draws, outputLen, nil)
	prediction.Add(&trend, seasonality)
	prediction.Add(prediction, regression)

	if opts.IncludeError {
		obsScale, err := f.obsScale()
		if err != nil {
			return nil, err
		}
		for s := 0; s < draws; s++ {
			noise := distuv.StudentsT{
				Mu:    0,
				Sigma: obsScale[s],
				Nu:    float64(f.model.cfg.DegreeOfFreedom),
				Src:   opts.Source,
			}
			for t := 0; t < outputLen; t++ {
				prediction.Set(s, t, prediction.At(s, t)+noise.Rand())
			}
		}
	}

	if opts.StorePrediction {
		f.predArray = prediction
	} else {
		f.predArray = nil
	}

	return &Decomposition{
		Prediction:  prediction,
		Trend:       &trend,
		Seasonality: seasonality,
		Regression:  regression,
	}, nil
}

// levelKnotsFor returns the level knot sample matrix and the sandwich kernel
// evaluated at the new time positions. For error-inclusive prediction beyond
// the last knot plus one knot width, new knots are synthesized per draw by a
// Laplace random walk appended after the last known knot value.
func (f *Fit) levelKnotsFor(newTP []float64, draws int, opts *PredictOptions) (*mat.Dense, *mat.Dense, error) {
	samples, err := f.posterior.Get(ParamLevelKnot)
	if err != nil {
		return nil, nil, err
	}
	levKnot, err := samples.Matrix()
	if err != nil {
		return nil, nil, err
	}

	positions := f.d.levelPlacement.Positions
	numKnots := len(positions)

	if !opts.IncludeError || numKnots < 2 {
		return levKnot, kernels.Sandwich(newTP, positions), nil
	}

	// knot width estimated from the last two existing knot spacings
	width := positions[numKnots-1] - positions[numKnots-2]
	horizon := newTP[len(newTP)-1]
	if horizon < positions[numKnots-1]+width {
		return levKnot, kernels.Sandwich(newTP, positions), nil
	}

	var outPositions []float64
	for v := positions[numKnots-1] + width; v < horizon; v += width {
		outPositions = append(outPositions, v)
	}
	extended := make([]float64, 0, numKnots+len(outPositions))
	extended = append(extended, positions...)
	extended = append(extended, outPositions...)

	walk := distuv.Laplace{Mu: 0, Scale: f.model.cfg.LevelKnotScale, Src: opts.Source}
	grown := mat.NewDense(draws, len(extended), nil)
	for s := 0; s < draws; s++ {
		for k := 0; k < numKnots; k++ {
			grown.Set(s, k, levKnot.At(s, k))
		}
		cum := levKnot.At(s, numKnots-1)
		for e := range outPositions {
			cum += walk.Rand()
			grown.Set(s, numKnots+e, cum)
		}
	}
	return grown, kernels.Sandwich(newTP, extended), nil
}

// obsScale returns the sampled observation scale, one value per draw.
func (f *Fit) obsScale() ([]float64, error) {
	samples, err := f.posterior.Get(ParamObsScale)
	if err != nil {
		return nil, err
	}
	return samples.Vector()
}
