package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/pkg/errors"
)

func sample(t *testing.T) *data.Dataset {
	t.Helper()
	ds, err := data.FromRows([][]float64{
		{1, 10, 5},
		{2, 20, 5},
		{3, 30, 5},
		{4, 40, 5},
	}, []float64{0, 1, 0, 1}, []string{"a", "b", "const"}, "label")
	require.NoError(t, err)
	return ds
}

func TestStandardScaler(t *testing.T) {
	ds := sample(t)
	scaler := NewStandardScalerDefault()

	scaled, err := scaler.FitTransform(ds)
	require.NoError(t, err)
	assert.True(t, scaler.IsFitted())

	// Labels and names are carried over.
	assert.Equal(t, ds.Features, scaled.Features)
	assert.Equal(t, ds.Label, scaled.Label)
	assert.Equal(t, ds.Labels(), scaled.Labels())

	for j := 0; j < 2; j++ {
		col := mat.Col(nil, j, scaled.X)
		mean, variance := stat.PopMeanVariance(col, nil)
		assert.InDelta(t, 0, mean, 1e-12)
		assert.InDelta(t, 1, variance, 1e-12)
	}
	// Constant feature keeps scale 1.
	assert.Equal(t, 1.0, scaler.Scale[2])
	assert.Equal(t, []float64{0, 0, 0, 0}, mat.Col(nil, 2, scaled.X))

	back, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(ds.X, back.X, 1e-12))
	assert.Contains(t, scaler.String(), "n_features=3")
}

func TestStandardScalerOptions(t *testing.T) {
	ds := sample(t)
	scaler := NewStandardScaler(false, true)
	require.NoError(t, scaler.Fit(ds))
	assert.Equal(t, []float64{0, 0, 0}, scaler.Mean)
	assert.InDelta(t, math.Sqrt(1.25), scaler.Scale[0], 1e-12)
}

func TestStandardScalerErrors(t *testing.T) {
	scaler := NewStandardScalerDefault()
	_, err := scaler.Transform(sample(t))
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	require.NoError(t, scaler.Fit(sample(t)))
	narrow, err := data.FromRows([][]float64{{1}}, nil, nil, "")
	require.NoError(t, err)
	_, err = scaler.Transform(narrow)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	withNaN, err := data.FromRows([][]float64{{1}, {math.NaN()}}, nil, nil, "")
	require.NoError(t, err)
	assert.Error(t, scaler.Fit(withNaN))
	assert.False(t, scaler.IsFitted())
}

func TestMinMaxScaler(t *testing.T) {
	ds := sample(t)
	scaler := NewMinMaxScalerDefault()
	scaled, err := scaler.FitTransform(ds)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 1.0 / 3, 2.0 / 3, 1}, mat.Col(nil, 0, scaled.X), 1e-12)
	assert.Equal(t, []float64{0, 0, 0, 0}, mat.Col(nil, 2, scaled.X))

	custom := NewMinMaxScaler([2]float64{-1, 1})
	scaled, err = custom.FitTransform(ds)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, -1.0 / 3, 1.0 / 3, 1}, mat.Col(nil, 1, scaled.X), 1e-12)

	bad := NewMinMaxScaler([2]float64{1, 0})
	assert.Error(t, bad.Fit(ds))
}
