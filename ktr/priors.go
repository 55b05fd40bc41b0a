package ktr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CoefficientPrior pins the coefficients of selected regressors inside a time
// window [StartIndex, EndIndex) of the training range. Mean and SD hold one
// value per target column and are broadcast over the window rows at fit time.
type CoefficientPrior struct {
	Name       string
	StartIndex int // inclusive
	EndIndex   int // exclusive
	Mean       []float64
	SD         []float64
	Columns    []string
}

// validate checks the inner list lengths against the target columns.
func (p *CoefficientPrior) validate() error {
	if len(p.Columns) == 0 {
		return fmt.Errorf("coefficient prior %q has no target columns: %w",
			p.Name, ErrConfiguration)
	}
	if len(p.Mean) != len(p.Columns) || len(p.SD) != len(p.Columns) {
		return fmt.Errorf("coefficient prior %q has %d means, %d sds for %d columns: %w",
			p.Name, len(p.Mean), len(p.SD), len(p.Columns), ErrConfiguration)
	}
	return nil
}

// ResolvedPrior is a coefficient prior after window clamping and broadcast:
// Mean and SD are (window length x target columns) matrices and Indices locate
// the target columns within the concatenated regressor order.
type ResolvedPrior struct {
	Name       string
	StartIndex int
	EndIndex   int
	Mean       *mat.Dense
	SD         *mat.Dense
	Columns    []string
	Indices    []int
}

// resolvePriorColumns maps every prior's target columns to indices within the
// concatenated (unconstrained-first) regressor order. An unknown column is a
// configuration error.
func resolvePriorColumns(priors []CoefficientPrior, regressorCols []string) ([][]int, error) {
	pos := make(map[string]int, len(regressorCols))
	for i, name := range regressorCols {
		pos[name] = i
	}
	indices := make([][]int, len(priors))
	for i, prior := range priors {
		indices[i] = make([]int, len(prior.Columns))
		for j, col := range prior.Columns {
			idx, ok := pos[col]
			if !ok {
				return nil, fmt.Errorf("coefficient prior %q targets unknown regressor %q: %w",
					prior.Name, col, ErrConfiguration)
			}
			indices[i][j] = idx
		}
	}
	return indices, nil
}

// filterCoefPriors clamps each prior window to [0, numObservations] and
// broadcasts the scalar means/sds over the surviving window. A window that
// collapses to empty silently drops the prior from the active list.
func filterCoefPriors(priors []CoefficientPrior, indices [][]int, numObservations int) []ResolvedPrior {
	var active []ResolvedPrior
	for i, prior := range priors {
		start := clampIndex(prior.StartIndex, numObservations)
		end := clampIndex(prior.EndIndex, numObservations)
		if start >= end {
			continue
		}
		rows := end - start
		cols := len(prior.Columns)
		mean := mat.NewDense(rows, cols, nil)
		sd := mat.NewDense(rows, cols, nil)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				mean.Set(r, c, prior.Mean[c])
				sd.Set(r, c, prior.SD[c])
			}
		}
		active = append(active, ResolvedPrior{
			Name:       prior.Name,
			StartIndex: start,
			EndIndex:   end,
			Mean:       mean,
			SD:         sd,
			Columns:    prior.Columns,
			Indices:    indices[i],
		})
	}
	return active
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}
