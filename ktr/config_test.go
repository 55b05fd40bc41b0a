package ktr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "y", cfg.ResponseCol)
	assert.Equal(t, "ds", cfg.DateCol)
	assert.Equal(t, 0.15, cfg.RegressionRho)
	assert.Equal(t, 30, cfg.DegreeOfFreedom)
	assert.True(t, cfg.FlatMultiplier)
	require.NoError(t, cfg.validate())
}

func TestRegressorSpecsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RegressorColumns = []string{"a", "b"}

	specs, err := cfg.regressorSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 2)

	for _, spec := range specs {
		assert.Equal(t, SignUnconstrained, spec.sign)
		assert.Equal(t, DefaultInitKnotLoc, spec.initKnotLoc)
		assert.Equal(t, DefaultInitKnotScale, spec.initKnotScale)
		assert.Equal(t, DefaultKnotScale, spec.knotScale)
	}
}

func TestRegressorSpecsExplicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RegressorColumns = []string{"a", "b"}
	cfg.RegressorSigns = []Sign{SignPositive, SignUnconstrained}
	cfg.RegressorKnotScale = []float64{0.5, 0.7}

	specs, err := cfg.regressorSpecs()
	require.NoError(t, err)
	assert.Equal(t, SignPositive, specs[0].sign)
	assert.Equal(t, 0.5, specs[0].knotScale)
	assert.Equal(t, SignUnconstrained, specs[1].sign)
	assert.Equal(t, 0.7, specs[1].knotScale)
}

func TestRegressorSpecsLengthMismatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RegressorColumns = []string{"a", "b"}
	cfg.RegressorSigns = []Sign{SignPositive}

	_, err := cfg.regressorSpecs()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestRegressorSpecsUnknownSign(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RegressorColumns = []string{"a"}
	cfg.RegressorSigns = []Sign{"-"}

	_, err := cfg.regressorSpecs()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestValidateErrors(t *testing.T) {
	t.Run("missing response column", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ResponseCol = ""
		assert.True(t, errors.Is(cfg.validate(), ErrConfiguration))
	})

	t.Run("non-positive rho", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RegressorColumns = []string{"a"}
		cfg.RegressionRho = 0
		assert.True(t, errors.Is(cfg.validate(), ErrConfiguration))
	})

	t.Run("fourier order mismatch", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Seasonality = []int{7, 365}
		cfg.SeasonalityFSOrders = []int{2}
		assert.True(t, errors.Is(cfg.validate(), ErrConfiguration))
	})
}
