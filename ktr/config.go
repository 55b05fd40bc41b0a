package ktr

import (
	"fmt"
	"time"
)

// Sign tags a regressor's coefficient constraint.
type Sign string

const (
	// SignUnconstrained allows free-signed coefficients.
	SignUnconstrained Sign = "="
	// SignPositive constrains coefficients to be non-negative.
	SignPositive Sign = "+"
)

// Default priors for regressor descriptors.
const (
	DefaultInitKnotLoc   = 0.0
	DefaultInitKnotScale = 1.0
	DefaultKnotScale     = 0.1

	// lowBoundScaleMultiplier is assigned to knot segments whose local
	// regressor volume falls below 1% of the global statistic.
	lowBoundScaleMultiplier = 0.01
	// scaleEpsilon floors scale priors to keep downstream variances strictly
	// positive.
	scaleEpsilon = 1e-4
)

// Config is the immutable user-facing model configuration. Derived state
// (knot placements, kernel matrices, partitioned regressors) is computed once
// at fit time and never written back here.
type Config struct {
	ResponseCol string // response column name in the input table
	DateCol     string // date column label used in reporting tables

	// Level (trend) component.
	LevelKnotScale    float64     // sigma of the level random walk between knots
	LevelSegments     int         // segment count when dates/distance not given
	LevelKnotDistance int         // explicit spacing in observations, optional
	LevelKnotDates    []time.Time // explicit knot dates, optional

	// Seasonality component, estimated by the bootstrap model.
	Seasonality              []int // seasonal periods, e.g. 7, 365
	SeasonalityFSOrders      []int // fourier order per period
	SeasonalitySegments      int   // knot segments for seasonal coefficients
	SeasonalInitialKnotScale float64
	SeasonalKnotScale        float64

	// Regression component. The four parallel slices are optional; when nil
	// they default per regressor. Non-nil slices must match RegressorColumns
	// in length.
	RegressorColumns       []string
	RegressorSigns         []Sign
	RegressorInitKnotLoc   []float64
	RegressorInitKnotScale []float64
	RegressorKnotScale     []float64
	RegressionSegments     int
	RegressionKnotDistance int
	RegressionKnotDates    []time.Time
	RegressionRho          float64 // Gaussian kernel bandwidth

	DegreeOfFreedom int                // error t-distribution degrees of freedom
	CoefPriors      []CoefficientPrior // time-windowed coefficient priors

	DateFreq       time.Duration // sampling frequency; zero means infer
	FlatMultiplier bool          // disable local-volume knot scale adjustment
	MinResidualsSD float64       // upper bound of the residual scale parameter
}

// DefaultConfig returns a configuration with the standard defaults.
func DefaultConfig() *Config {
	return &Config{
		ResponseCol:              "y",
		DateCol:                  "ds",
		LevelKnotScale:           0.1,
		LevelSegments:            10,
		SeasonalitySegments:      2,
		SeasonalInitialKnotScale: 1.0,
		SeasonalKnotScale:        0.1,
		RegressionSegments:       5,
		RegressionRho:            0.15,
		DegreeOfFreedom:          30,
		FlatMultiplier:           true,
		MinResidualsSD:           1.0,
	}
}

// regressorSpec is one regressor descriptor after defaulting.
type regressorSpec struct {
	name          string
	sign          Sign
	initKnotLoc   float64
	initKnotScale float64
	knotScale     float64
}

// regressorSpecs validates the parallel descriptor slices and applies
// defaults. Mismatched list lengths are a configuration error.
func (c *Config) regressorSpecs() ([]regressorSpec, error) {
	n := len(c.RegressorColumns)
	if n == 0 {
		return nil, nil
	}

	check := func(name string, length int) error {
		if length != 0 && length != n {
			return fmt.Errorf("%s has length %d for %d regressors: %w",
				name, length, n, ErrConfiguration)
		}
		return nil
	}
	if err := check("RegressorSigns", len(c.RegressorSigns)); err != nil {
		return nil, err
	}
	if err := check("RegressorInitKnotLoc", len(c.RegressorInitKnotLoc)); err != nil {
		return nil, err
	}
	if err := check("RegressorInitKnotScale", len(c.RegressorInitKnotScale)); err != nil {
		return nil, err
	}
	if err := check("RegressorKnotScale", len(c.RegressorKnotScale)); err != nil {
		return nil, err
	}

	specs := make([]regressorSpec, n)
	for i, name := range c.RegressorColumns {
		spec := regressorSpec{
			name:          name,
			sign:          SignUnconstrained,
			initKnotLoc:   DefaultInitKnotLoc,
			initKnotScale: DefaultInitKnotScale,
			knotScale:     DefaultKnotScale,
		}
		if c.RegressorSigns != nil {
			switch c.RegressorSigns[i] {
			case SignUnconstrained, SignPositive:
				spec.sign = c.RegressorSigns[i]
			default:
				return nil, fmt.Errorf("unknown regressor sign %q: %w",
					c.RegressorSigns[i], ErrConfiguration)
			}
		}
		if c.RegressorInitKnotLoc != nil {
			spec.initKnotLoc = c.RegressorInitKnotLoc[i]
		}
		if c.RegressorInitKnotScale != nil {
			spec.initKnotScale = c.RegressorInitKnotScale[i]
		}
		if c.RegressorKnotScale != nil {
			spec.knotScale = c.RegressorKnotScale[i]
		}
		specs[i] = spec
	}
	return specs, nil
}

// validate checks the configuration invariants that do not depend on data.
func (c *Config) validate() error {
	if c.ResponseCol == "" {
		return fmt.Errorf("response column is required: %w", ErrConfiguration)
	}
	if len(c.RegressorColumns) > 0 && c.RegressionRho <= 0 {
		return fmt.Errorf("regression rho must be positive: %w", ErrConfiguration)
	}
	if len(c.Seasonality) > 0 && len(c.SeasonalityFSOrders) != len(c.Seasonality) {
		return fmt.Errorf("seasonality has %d periods but %d fourier orders: %w",
			len(c.Seasonality), len(c.SeasonalityFSOrders), ErrConfiguration)
	}
	for _, prior := range c.CoefPriors {
		if err := prior.validate(); err != nil {
			return err
		}
	}
	return nil
}
