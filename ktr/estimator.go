package ktr

import (
	"time"

	"github.com/sartorproj/goktr/timeseries"
	"gonum.org/v1/gonum/mat"
)

// Estimator turns an assembled numeric model configuration into posterior (or
// point) parameter samples. The model treats it as opaque and synchronous.
type Estimator interface {
	Estimate(input *EstimatorInput) (Posterior, error)
}

// Bootstrap is the simpler model used only to seed level and seasonal knot
// values before the main estimator runs.
type Bootstrap interface {
	FitLevelAndSeason(table *timeseries.Table, meta *TrainingMeta) (*BootstrapFit, error)
}

// BootstrapFit carries the point estimates produced by the bootstrap model.
// SeasonalKnotDates and SeasonalCoefKnots are nil when no seasonality is
// configured; SeasonalCoefKnots is (fourier terms x knots).
type BootstrapFit struct {
	LevelKnots        []float64
	LevelKnotDates    []time.Time
	SeasonalKnotDates []time.Time
	SeasonalCoefKnots *mat.Dense
}

// EstimatorInput is the assembled numeric configuration handed to the
// estimator: counts, kernel and design matrices, and scale priors. Matrices
// for an absent component are nil.
type EstimatorInput struct {
	// Response bookkeeping.
	Response         []float64
	ResponseOffset   float64
	ValidResponse    []int // indices of non-NaN response entries
	NumValidResponse int
	DegreeOfFreedom  int
	MinResidualsSD   float64

	// Level component.
	NumLevelKnots   int
	LevelKnotScale  float64
	KernelLevel     *mat.Dense
	LevelKnots      []float64 // bootstrap point estimates, one per knot
	SeasonalityTerm []float64 // cached seasonal curve over the training range

	// Regression component.
	RegressionSegments      int
	KernelCoefficients      *mat.Dense
	NumRegularRegressors    int
	NumPositiveRegressors   int
	RegularRegressorMatrix  *mat.Dense
	PositiveRegressorMatrix *mat.Dense
	RegularInitKnotLoc      []float64
	RegularInitKnotScale    []float64
	RegularKnotScale        *mat.Dense // per-regressor x per-knot
	PositiveInitKnotLoc     []float64
	PositiveInitKnotScale   []float64
	PositiveKnotScale       *mat.Dense
	CoefPriors              []ResolvedPrior
}
