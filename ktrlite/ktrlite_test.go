package ktrlite

import (
	"math"
	"testing"
	"time"

	"github.com/sartorproj/goktr/ktr"
	"github.com/sartorproj/goktr/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDates(n int) []time.Time {
	dates := make([]time.Time, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func TestFillGaps(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name     string
		in       []float64
		expected []float64
	}{
		{"interior", []float64{1, nan, 3}, []float64{1, 2, 3}},
		{"run", []float64{0, nan, nan, 3}, []float64{0, 1, 2, 3}},
		{"leading", []float64{nan, nan, 4}, []float64{4, 4, 4}},
		{"trailing", []float64{2, nan}, []float64{2, 2}},
		{"clean", []float64{1, 2}, []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fillGaps(tt.in)
			require.Len(t, got, len(tt.expected))
			for i, want := range tt.expected {
				assert.InDelta(t, want, got[i], 1e-12)
			}
		})
	}
}

func TestAnchoredIndices(t *testing.T) {
	idx := anchoredIndices(100, 5, 0)
	require.NotEmpty(t, idx)
	assert.Equal(t, 99, idx[len(idx)-1], "last knot anchors on the endpoint")
	assert.Equal(t, []int{14, 31, 48, 65, 82, 99}, idx)

	explicit := anchoredIndices(30, 0, 10)
	assert.Equal(t, []int{9, 19, 29}, explicit)
}

func TestSegmentBounds(t *testing.T) {
	knotIdx := []int{10, 30, 50}

	lo, hi := segmentBounds(knotIdx, 0, 60)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 20, hi)

	lo, hi = segmentBounds(knotIdx, 1, 60)
	assert.Equal(t, 20, lo)
	assert.Equal(t, 40, hi)

	lo, hi = segmentBounds(knotIdx, 2, 60)
	assert.Equal(t, 40, lo)
	assert.Equal(t, 60, hi)
}

func TestFitLevelOnly(t *testing.T) {
	n := 120
	dates := testDates(n)
	table := timeseries.NewTable(dates)
	y := make([]float64, n)
	for i := range y {
		y[i] = 5 + 0.1*float64(i)
	}
	require.NoError(t, table.AddColumn("y", y))

	cfg := ktr.DefaultConfig()
	meta, err := ktr.NewTrainingMeta(table, "y", "ds", 0)
	require.NoError(t, err)

	fit, err := New(cfg).FitLevelAndSeason(table, meta)
	require.NoError(t, err)

	require.NotEmpty(t, fit.LevelKnots)
	require.Len(t, fit.LevelKnotDates, len(fit.LevelKnots))
	assert.True(t, fit.LevelKnotDates[len(fit.LevelKnotDates)-1].Equal(dates[n-1]))
	assert.Nil(t, fit.SeasonalCoefKnots)

	// knots of a clean linear trend track the line closely
	for i, d := range fit.LevelKnotDates {
		day := d.Sub(dates[0]).Hours() / 24
		assert.InDelta(t, 5+0.1*day, fit.LevelKnots[i], 0.5)
	}
}

func TestFitLevelAndSeason(t *testing.T) {
	n := 140
	dates := testDates(n)
	table := timeseries.NewTable(dates)
	y := make([]float64, n)
	for i := range y {
		y[i] = 20 + 2*math.Sin(2*math.Pi*float64(i+1)/7)
	}
	require.NoError(t, table.AddColumn("y", y))

	cfg := ktr.DefaultConfig()
	cfg.Seasonality = []int{7}
	cfg.SeasonalityFSOrders = []int{2}

	meta, err := ktr.NewTrainingMeta(table, "y", "ds", 0)
	require.NoError(t, err)

	fit, err := New(cfg).FitLevelAndSeason(table, meta)
	require.NoError(t, err)

	require.NotNil(t, fit.SeasonalCoefKnots)
	rows, cols := fit.SeasonalCoefKnots.Dims()
	assert.Equal(t, 4, rows, "two fourier terms per order")
	assert.Equal(t, len(fit.SeasonalKnotDates), cols)

	// the first-order sine coefficient dominates a pure sine seasonality;
	// the shrinking-window trend estimate distorts the series edges, so the
	// tolerances stay loose
	for k := 0; k < cols; k++ {
		assert.InDelta(t, 2.0, fit.SeasonalCoefKnots.At(0, k), 0.5)
		assert.InDelta(t, 0.0, fit.SeasonalCoefKnots.At(1, k), 0.5)
	}

	// level knots sit near the constant base once seasonality is averaged out
	for _, v := range fit.LevelKnots {
		assert.InDelta(t, 20.0, v, 1.5)
	}
}

func TestFitExplicitLevelKnotDates(t *testing.T) {
	n := 60
	dates := testDates(n)
	table := timeseries.NewTable(dates)
	y := make([]float64, n)
	for i := range y {
		y[i] = float64(i)
	}
	require.NoError(t, table.AddColumn("y", y))

	cfg := ktr.DefaultConfig()
	cfg.LevelKnotDates = []time.Time{dates[10], dates[40]}

	meta, err := ktr.NewTrainingMeta(table, "y", "ds", 0)
	require.NoError(t, err)

	fit, err := New(cfg).FitLevelAndSeason(table, meta)
	require.NoError(t, err)
	require.Len(t, fit.LevelKnots, 2)
	assert.True(t, fit.LevelKnotDates[0].Equal(dates[10]))
	assert.True(t, fit.LevelKnotDates[1].Equal(dates[40]))
}
