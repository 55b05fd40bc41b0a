package main

import (
	"github.com/sartorproj/goktr/ktr"
	"github.com/sartorproj/goktr/stats"
	"gonum.org/v1/gonum/mat"
)

// mapEstimator is a single-draw point estimator: it keeps the bootstrap level
// knots, fits the coefficient knots jointly by ridge regression on the
// detrended response and sets the observation scale from the final residuals.
// It stands in for a full posterior sampler, which plugs in through the same
// Estimator interface.
type mapEstimator struct {
	// RidgePenalty defaults to 1.0 when zero, shrinking knot coefficients
	// toward zero the way the model's knot scale priors would.
	RidgePenalty float64
}

func (e *mapEstimator) Estimate(input *ktr.EstimatorInput) (ktr.Posterior, error) {
	n := len(input.Response)
	numKnots := input.NumLevelKnots

	trend := make([]float64, n)
	for i := 0; i < n; i++ {
		for k := 0; k < numKnots; k++ {
			trend[i] += input.KernelLevel.At(i, k) * input.LevelKnots[k]
		}
	}

	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		residual[i] = input.Response[i] - trend[i]
		if input.SeasonalityTerm != nil {
			residual[i] -= input.SeasonalityTerm[i]
		}
	}

	posterior := ktr.Posterior{}
	levKnot, err := ktr.NewSamples([]int{1, numKnots}, append([]float64{}, input.LevelKnots...))
	if err != nil {
		return nil, err
	}
	posterior[ktr.ParamLevelKnot] = levKnot

	numReg := input.NumRegularRegressors + input.NumPositiveRegressors
	if numReg > 0 {
		coefKnot, fitted, err := e.fitCoefKnots(input, residual)
		if err != nil {
			return nil, err
		}
		posterior[ktr.ParamCoefKnot] = coefKnot
		for i := range residual {
			residual[i] -= fitted[i]
		}
	}

	obsScale, err := ktr.NewSamples([]int{1}, []float64{e.obsScale(input, residual)})
	if err != nil {
		return nil, err
	}
	posterior[ktr.ParamObsScale] = obsScale
	return posterior, nil
}

// fitCoefKnots solves for all knot coefficients at once: the regression term
// is linear in them through the kernel, so the design expands to one column
// per (regressor, knot) pair.
func (e *mapEstimator) fitCoefKnots(input *ktr.EstimatorInput, residual []float64) (*ktr.Samples, []float64, error) {
	n := len(input.Response)
	numReg := input.NumRegularRegressors + input.NumPositiveRegressors
	numKnots := input.RegressionSegments

	if numKnots == 0 || input.KernelCoefficients == nil {
		samples, err := ktr.NewSamples([]int{1, numReg, 0}, nil)
		return samples, make([]float64, n), err
	}

	x := func(i, r int) float64 {
		if r < input.NumRegularRegressors {
			return input.RegularRegressorMatrix.At(i, r)
		}
		return input.PositiveRegressorMatrix.At(i, r-input.NumRegularRegressors)
	}

	dim := numReg * numKnots
	design := mat.NewDense(len(input.ValidResponse), dim, nil)
	target := mat.NewVecDense(len(input.ValidResponse), nil)
	for row, i := range input.ValidResponse {
		for r := 0; r < numReg; r++ {
			for k := 0; k < numKnots; k++ {
				design.Set(row, r*numKnots+k, input.KernelCoefficients.At(i, k)*x(i, r))
			}
		}
		target.SetVec(row, residual[i])
	}

	penalty := e.RidgePenalty
	if penalty == 0 {
		penalty = 1.0
	}
	var gram mat.Dense
	gram.Mul(design.T(), design)
	for j := 0; j < dim; j++ {
		gram.Set(j, j, gram.At(j, j)+penalty)
	}
	var rhs mat.VecDense
	rhs.MulVec(design.T(), target)

	var beta mat.VecDense
	if err := beta.SolveVec(&gram, &rhs); err != nil {
		return nil, nil, err
	}

	// positive regressors keep non-negative knot coefficients
	data := make([]float64, dim)
	for r := 0; r < numReg; r++ {
		for k := 0; k < numKnots; k++ {
			v := beta.AtVec(r*numKnots + k)
			if r >= input.NumRegularRegressors && v < 0 {
				v = 0
			}
			data[r*numKnots+k] = v
		}
	}
	samples, err := ktr.NewSamples([]int{1, numReg, numKnots}, data)
	if err != nil {
		return nil, nil, err
	}

	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		for r := 0; r < numReg; r++ {
			for k := 0; k < numKnots; k++ {
				fitted[i] += input.KernelCoefficients.At(i, k) * data[r*numKnots+k] * x(i, r)
			}
		}
	}
	return samples, fitted, nil
}

// obsScale estimates the residual scale over valid observations, bounded above
// by the configured fraction of the response scale.
func (e *mapEstimator) obsScale(input *ktr.EstimatorInput, residual []float64) float64 {
	if input.NumValidResponse < 2 {
		return input.MinResidualsSD
	}
	valid := make([]float64, 0, input.NumValidResponse)
	response := make([]float64, 0, input.NumValidResponse)
	for _, i := range input.ValidResponse {
		valid = append(valid, residual[i])
		response = append(response, input.Response[i])
	}
	scale := stats.Std(valid)
	bound := input.MinResidualsSD * stats.Std(response)
	if bound > 0 && scale > bound {
		scale = bound
	}
	if scale < 1e-8 {
		scale = 1e-8
	}
	return scale
}
