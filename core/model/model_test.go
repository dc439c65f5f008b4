package model

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/sigo/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("LogisticRegression", "Predict")
	var nfe *errors.NotFittedError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "LogisticRegression", nfe.ModelName)
	assert.Equal(t, "Predict", nfe.Method)

	s.SetDimensions(3, 10)
	s.SetFitted()
	assert.NoError(t, s.RequireFitted("LogisticRegression", "Predict"))
	assert.NoError(t, s.RequireFeatures("Predict", 3))

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(s.RequireFeatures("Predict", 4), &dimErr))

	state := s.GetState()
	assert.Equal(t, ModelState{Fitted: true, NFeatures: 3, NSamples: 10}, state)

	s.Reset()
	assert.False(t, s.IsFitted())
	nf, ns := s.GetDimensions()
	assert.Zero(t, nf)
	assert.Zero(t, ns)

	s.SetState(state)
	assert.True(t, s.IsFitted())
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	s := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.SetDimensions(n, n)
			s.SetFitted()
		}(i)
		go func() {
			defer wg.Done()
			_ = s.IsFitted()
			_, _ = s.GetDimensions()
		}()
	}
	wg.Wait()
	assert.True(t, s.IsFitted())
}

func fittedWeights() *ModelWeights {
	return &ModelWeights{
		ModelType:       "LogisticRegression",
		Version:         WeightsVersion,
		Coefficients:    []float64{0.5, -1.25},
		Intercept:       0.1,
		Features:        []string{"a", "b"},
		Hyperparameters: map[string]float64{"l2_penalty": 1, "alpha": 0.001, "max_iter": 1000},
		CostHistory:     []float64{0.69, 0.6},
		IsFitted:        true,
	}
}

func TestModelWeightsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *ModelWeights)
	}{
		{"missing type", func(w *ModelWeights) { w.ModelType = "" }},
		{"missing version", func(w *ModelWeights) { w.Version = "" }},
		{"unfitted with coefficients", func(w *ModelWeights) { w.IsFitted = false }},
		{"fitted without coefficients", func(w *ModelWeights) { w.Coefficients = nil; w.Features = nil }},
		{"feature count", func(w *ModelWeights) { w.Features = []string{"a"} }},
	}
	require.NoError(t, fittedWeights().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := fittedWeights()
			tt.mutate(w)
			assert.Error(t, w.Validate())
		})
	}
}

func TestModelWeightsClone(t *testing.T) {
	w := fittedWeights()
	c := w.Clone()
	assert.Equal(t, w, c)

	c.Coefficients[0] = 99
	c.Hyperparameters["alpha"] = 1
	assert.Equal(t, 0.5, w.Coefficients[0])
	assert.Equal(t, 0.001, w.Hyperparameters["alpha"])
}

func TestWeightsPersistence(t *testing.T) {
	w := fittedWeights()
	path := filepath.Join(t.TempDir(), "weights.json")

	require.NoError(t, SaveWeights(w, path))
	loaded, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, w, loaded)

	var buf bytes.Buffer
	require.NoError(t, WriteWeights(w, &buf))
	assert.Contains(t, buf.String(), `"model_type": "LogisticRegression"`)

	_, err = ReadWeights(strings.NewReader(`{"model_type": ""}`))
	assert.Error(t, err)
	_, err = ReadWeights(strings.NewReader(`not json`))
	assert.Error(t, err)
	_, err = LoadWeights(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := fittedWeights()
	bad.Version = ""
	assert.Error(t, SaveWeights(bad, path))
}
