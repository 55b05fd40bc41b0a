package ktr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Param identifies a sampled model parameter by its stable string key. The
// set of keys is closed; posteriors carrying unknown keys are rejected at the
// estimator boundary.
type Param string

// Base model parameters.
const (
	ParamLevelKnot Param = "lev_knot"
	ParamLevel     Param = "lev"
	ParamYHat      Param = "yhat"
	ParamObsScale  Param = "obs_scale"
)

// Regression parameters, present only when regressors are configured.
const (
	ParamCoefKnot     Param = "coef_knot"
	ParamCoefInitKnot Param = "coef_init_knot"
	ParamCoef         Param = "coef"
)

var knownParams = map[Param]bool{
	ParamLevelKnot:    true,
	ParamLevel:        true,
	ParamYHat:         true,
	ParamObsScale:     true,
	ParamCoefKnot:     true,
	ParamCoefInitKnot: true,
	ParamCoef:         true,
}

// Samples is a dense array of posterior draws with an explicit shape. The
// first axis always indexes draws; a point estimate is a single draw.
type Samples struct {
	shape []int
	data  []float64
}

// NewSamples wraps data in the given shape. The data length must equal the
// shape product and the shape must have at least one axis.
func NewSamples(shape []int, data []float64) (*Samples, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("samples need at least one axis: %w", ErrConfiguration)
	}
	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("negative axis in shape %v: %w", shape, ErrConfiguration)
		}
		size *= d
	}
	if size != len(data) {
		return nil, fmt.Errorf("shape %v wants %d values, have %d: %w",
			shape, size, len(data), ErrConfiguration)
	}
	s := &Samples{shape: make([]int, len(shape)), data: data}
	copy(s.shape, shape)
	return s, nil
}

// NumDraws returns the size of the draw axis.
func (s *Samples) NumDraws() int {
	return s.shape[0]
}

// Shape returns a copy of the sample shape.
func (s *Samples) Shape() []int {
	dst := make([]int, len(s.shape))
	copy(dst, s.shape)
	return dst
}

// Vector returns 1-D samples as a slice of length NumDraws.
func (s *Samples) Vector() ([]float64, error) {
	if len(s.shape) != 1 {
		return nil, fmt.Errorf("want 1-D samples, have shape %v: %w", s.shape, ErrConfiguration)
	}
	return s.data, nil
}

// Matrix returns 2-D samples as a draws x k dense matrix.
func (s *Samples) Matrix() (*mat.Dense, error) {
	if len(s.shape) != 2 {
		return nil, fmt.Errorf("want 2-D samples, have shape %v: %w", s.shape, ErrConfiguration)
	}
	return mat.NewDense(s.shape[0], s.shape[1], s.data), nil
}

// DrawMatrix returns draw d of 3-D samples as a rows x cols dense matrix.
func (s *Samples) DrawMatrix(d int) (*mat.Dense, error) {
	if len(s.shape) != 3 {
		return nil, fmt.Errorf("want 3-D samples, have shape %v: %w", s.shape, ErrConfiguration)
	}
	if d < 0 || d >= s.shape[0] {
		return nil, fmt.Errorf("draw %d out of %d: %w", d, s.shape[0], ErrConfiguration)
	}
	rows, cols := s.shape[1], s.shape[2]
	return mat.NewDense(rows, cols, s.data[d*rows*cols:(d+1)*rows*cols]), nil
}

// MeanMatrix averages 3-D samples over the draw axis into rows x cols.
func (s *Samples) MeanMatrix() (*mat.Dense, error) {
	if len(s.shape) != 3 {
		return nil, fmt.Errorf("want 3-D samples, have shape %v: %w", s.shape, ErrConfiguration)
	}
	draws, rows, cols := s.shape[0], s.shape[1], s.shape[2]
	out := mat.NewDense(rows, cols, nil)
	for d := 0; d < draws; d++ {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				out.Set(i, j, out.At(i, j)+s.data[(d*rows+i)*cols+j])
			}
		}
	}
	out.Scale(1/float64(draws), out)
	return out, nil
}

// MeanVector averages 2-D samples over the draw axis into a slice of length k.
func (s *Samples) MeanVector() ([]float64, error) {
	if len(s.shape) != 2 {
		return nil, fmt.Errorf("want 2-D samples, have shape %v: %w", s.shape, ErrConfiguration)
	}
	draws, k := s.shape[0], s.shape[1]
	out := make([]float64, k)
	for d := 0; d < draws; d++ {
		for j := 0; j < k; j++ {
			out[j] += s.data[d*k+j]
		}
	}
	for j := range out {
		out[j] /= float64(draws)
	}
	return out, nil
}

// Posterior maps parameter names to sample arrays. It is produced by the
// external estimator and treated as read-only.
type Posterior map[Param]*Samples

// Get returns the samples for a parameter, or an error when absent.
func (p Posterior) Get(param Param) (*Samples, error) {
	s, ok := p[param]
	if !ok {
		return nil, fmt.Errorf("posterior missing parameter %q: %w", param, ErrConfiguration)
	}
	return s, nil
}

// NumDraws returns the common draw count across all parameters. Mismatched
// draw counts are a configuration error.
func (p Posterior) NumDraws() (int, error) {
	n := -1
	for param, s := range p {
		if n == -1 {
			n = s.NumDraws()
			continue
		}
		if s.NumDraws() != n {
			return 0, fmt.Errorf("parameter %q has %d draws, want %d: %w",
				param, s.NumDraws(), n, ErrConfiguration)
		}
	}
	if n == -1 {
		return 0, fmt.Errorf("empty posterior: %w", ErrConfiguration)
	}
	return n, nil
}

// validate rejects unknown parameter keys and checks that required
// parameters are present with consistent draw counts.
func (p Posterior) validate(numRegressors int) error {
	for param := range p {
		if !knownParams[param] {
			return fmt.Errorf("unknown posterior parameter %q: %w", param, ErrConfiguration)
		}
	}
	required := []Param{ParamLevelKnot, ParamObsScale}
	if numRegressors > 0 {
		required = append(required, ParamCoefKnot)
	}
	for _, param := range required {
		if _, ok := p[param]; !ok {
			return fmt.Errorf("posterior missing parameter %q: %w", param, ErrConfiguration)
		}
	}
	_, err := p.NumDraws()
	return err
}
