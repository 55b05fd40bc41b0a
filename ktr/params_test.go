package ktr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSamplesShapeMismatch(t *testing.T) {
	_, err := NewSamples([]int{2, 3}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewSamples(nil, nil)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestSamplesAccessors(t *testing.T) {
	vec, err := NewSamples([]int{3}, []float64{1, 2, 3})
	require.NoError(t, err)
	v, err := vec.Vector()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, v)
	_, err = vec.Matrix()
	assert.Error(t, err)

	m, err := NewSamples([]int{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	dense, err := m.Matrix()
	require.NoError(t, err)
	assert.Equal(t, 3.0, dense.At(1, 0))

	mean, err := m.MeanVector()
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, mean)
}

func TestSamplesDrawMatrix(t *testing.T) {
	// 2 draws of a 2x3 parameter
	data := []float64{
		1, 2, 3,
		4, 5, 6,

		7, 8, 9,
		10, 11, 12,
	}
	s, err := NewSamples([]int{2, 2, 3}, data)
	require.NoError(t, err)

	d1, err := s.DrawMatrix(1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, d1.At(0, 0))
	assert.Equal(t, 12.0, d1.At(1, 2))

	_, err = s.DrawMatrix(2)
	assert.Error(t, err)

	mean, err := s.MeanMatrix()
	require.NoError(t, err)
	assert.Equal(t, 4.0, mean.At(0, 0))
	assert.Equal(t, 9.0, mean.At(1, 2))
}

func TestPosteriorValidate(t *testing.T) {
	levKnot, _ := NewSamples([]int{2, 3}, make([]float64, 6))
	obsScale, _ := NewSamples([]int{2}, make([]float64, 2))

	t.Run("valid without regressors", func(t *testing.T) {
		p := Posterior{ParamLevelKnot: levKnot, ParamObsScale: obsScale}
		assert.NoError(t, p.validate(0))
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		p := Posterior{ParamLevelKnot: levKnot, ParamObsScale: obsScale, Param("mystery"): obsScale}
		assert.True(t, errors.Is(p.validate(0), ErrConfiguration))
	})

	t.Run("coef_knot required with regressors", func(t *testing.T) {
		p := Posterior{ParamLevelKnot: levKnot, ParamObsScale: obsScale}
		assert.True(t, errors.Is(p.validate(2), ErrConfiguration))
	})

	t.Run("draw count mismatch", func(t *testing.T) {
		shortScale, _ := NewSamples([]int{1}, []float64{1})
		p := Posterior{ParamLevelKnot: levKnot, ParamObsScale: shortScale}
		assert.True(t, errors.Is(p.validate(0), ErrConfiguration))
	})
}

func TestPosteriorGetMissing(t *testing.T) {
	p := Posterior{}
	_, err := p.Get(ParamLevelKnot)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
