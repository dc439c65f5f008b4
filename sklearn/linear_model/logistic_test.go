package linear_model

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/core/model"
	"github.com/YuminosukeSato/sigo/core/statistics"
	"github.com/YuminosukeSato/sigo/pkg/errors"
	"github.com/YuminosukeSato/sigo/pkg/log"
)

func init() {
	// Keep convergence warnings out of the test output.
	errors.SetWarningHandler(func(error) {})
}

func separableDataset(t *testing.T) *data.Dataset {
	t.Helper()
	// Class 0 around (-2, -2), class 1 around (2, 2)
	ds, err := data.FromRows([][]float64{
		{-2.0, -1.5},
		{-1.5, -2.5},
		{-2.5, -2.0},
		{-1.0, -2.0},
		{2.0, 1.5},
		{1.5, 2.5},
		{2.5, 2.0},
		{1.0, 2.0},
	}, []float64{0, 0, 0, 0, 1, 1, 1, 1}, []string{"x1", "x2"}, "class")
	require.NoError(t, err)
	return ds
}

func TestDefaultConfig(t *testing.T) {
	lr := NewLogisticRegression()
	cfg := lr.Config()
	assert.Equal(t, 1.0, cfg.L2Penalty)
	assert.Equal(t, 0.001, cfg.Alpha)
	assert.Equal(t, 1000, cfg.MaxIter)
	assert.Equal(t, 1e-4, cfg.Tolerance)
	assert.Equal(t, LogisticResidual, cfg.Gradient)
	assert.False(t, lr.IsFitted())
	assert.Nil(t, lr.Theta())
}

func TestLogisticRegression_FitPredict(t *testing.T) {
	ds := separableDataset(t)
	lr := NewLogisticRegression(WithAlpha(0.1), WithL2Penalty(0))
	require.NoError(t, lr.Fit(ds))
	require.True(t, lr.IsFitted())

	pred, err := lr.Predict(ds)
	require.NoError(t, err)
	require.Equal(t, ds.NSamples(), pred.Len())
	for i := 0; i < pred.Len(); i++ {
		assert.Equal(t, ds.Y.AtVec(i), pred.AtVec(i), "sample %d", i)
	}

	score, err := lr.Score(ds)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	proba, err := lr.PredictProba(ds)
	require.NoError(t, err)
	for i := 0; i < proba.Len(); i++ {
		p := proba.AtVec(i)
		assert.True(t, p > 0 && p < 1)
		assert.Equal(t, p >= 0.5, pred.AtVec(i) == 1)
	}

	assert.Len(t, lr.Theta(), 2)
	assert.Contains(t, lr.String(), "fitted=true")
}

func TestLogisticRegression_SingleStep(t *testing.T) {
	ds, err := data.FromRows([][]float64{{1}, {2}}, []float64{0, 1}, nil, "")
	require.NoError(t, err)

	tests := []struct {
		name          string
		gradient      GradientKind
		wantTheta     float64
		wantThetaZero float64
	}{
		// r = sigmoid(0) - y = [0.5, -0.5]; Xᵀr = -0.5; Σr = 0
		{"logistic residual", LogisticResidual, 0.025, 0},
		// r = 0 - y = [0, -1]; Xᵀr = -2; Σr = -1
		{"linear residual", LinearResidual, 0.1, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLogisticRegression(
				WithAlpha(0.1),
				WithL2Penalty(1),
				WithMaxIter(1),
				WithGradient(tt.gradient),
			)
			require.NoError(t, lr.Fit(ds))
			assert.InDelta(t, tt.wantTheta, lr.Theta()[0], 1e-12)
			assert.InDelta(t, tt.wantThetaZero, lr.ThetaZero(), 1e-12)
			require.Len(t, lr.CostHistory(), 1)

			theta, b := lr.Theta()[0], lr.ThetaZero()
			p1 := statistics.Sigmoid(theta*1 + b)
			p2 := statistics.Sigmoid(theta*2 + b)
			want := (-math.Log(1-p1)-math.Log(p2))/2 + theta*theta/4
			assert.InDelta(t, want, lr.CostHistory()[0], 1e-12)

			cost, err := lr.Cost(ds)
			require.NoError(t, err)
			assert.InDelta(t, want, cost, 1e-12)
		})
	}
}

func TestLogisticRegression_EarlyStopping(t *testing.T) {
	ds, err := data.FromRandom(100, 5, 2, 42)
	require.NoError(t, err)

	for _, maxIter := range []int{1, 10, 1000} {
		lr := NewLogisticRegression(WithMaxIter(maxIter))
		require.NoError(t, lr.Fit(ds))

		history := lr.CostHistory()
		require.NotEmpty(t, history)
		assert.LessOrEqual(t, len(history), maxIter)
		assert.Equal(t, len(history), lr.NIter())

		// Every step before the last improved by at least the tolerance.
		for i := 1; i < len(history)-1; i++ {
			assert.GreaterOrEqual(t, history[i-1]-history[i], DefaultTolerance, "iteration %d", i)
		}
		if lr.Converged() {
			last := len(history) - 1
			assert.Less(t, history[last-1]-history[last], DefaultTolerance)
		} else {
			assert.Len(t, history, maxIter)
		}
	}
}

func TestLogisticRegression_RefitResetsState(t *testing.T) {
	first := separableDataset(t)
	second, err := data.FromRandom(30, 2, 2, 7)
	require.NoError(t, err)

	reused := NewLogisticRegression(WithAlpha(0.05))
	require.NoError(t, reused.Fit(first))
	require.NoError(t, reused.Fit(second))

	fresh := NewLogisticRegression(WithAlpha(0.05))
	require.NoError(t, fresh.Fit(second))

	assert.Equal(t, fresh.Theta(), reused.Theta())
	assert.Equal(t, fresh.ThetaZero(), reused.ThetaZero())
	assert.Equal(t, fresh.CostHistory(), reused.CostHistory())
}

func TestLogisticRegression_NotFitted(t *testing.T) {
	ds := separableDataset(t)
	lr := NewLogisticRegression()

	_, err := lr.Predict(ds)
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	_, err = lr.Score(ds)
	assert.True(t, errors.As(err, &nfe))

	_, err = lr.Cost(ds)
	assert.True(t, errors.As(err, &nfe))

	_, err = lr.ExportWeights()
	assert.True(t, errors.As(err, &nfe))
}

func TestLogisticRegression_FitErrors(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, 2})
	unlabeled, err := data.New(X, nil, nil, "")
	require.NoError(t, err)
	multiclass, err := data.New(X, mat.NewVecDense(2, []float64{0, 2}), nil, "")
	require.NoError(t, err)
	good := separableDataset(t)

	t.Run("unlabeled", func(t *testing.T) {
		var valErr *errors.ValueError
		assert.True(t, errors.As(NewLogisticRegression().Fit(unlabeled), &valErr))
	})
	t.Run("non-binary labels", func(t *testing.T) {
		var vErr *errors.ValidationError
		assert.True(t, errors.As(NewLogisticRegression().Fit(multiclass), &vErr))
	})

	invalid := []struct {
		name string
		opt  LogisticRegressionOption
	}{
		{"negative l2", WithL2Penalty(-1)},
		{"zero alpha", WithAlpha(0)},
		{"zero max_iter", WithMaxIter(0)},
		{"negative tolerance", WithTolerance(-1)},
		{"unknown gradient", WithGradient(GradientKind(9))},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLogisticRegression(tt.opt)
			var vErr *errors.ValidationError
			assert.True(t, errors.As(lr.Fit(good), &vErr))
			assert.False(t, lr.IsFitted())
		})
	}
}

func TestLogisticRegression_FailedFitLeavesModelUnfitted(t *testing.T) {
	ds := separableDataset(t)
	lr := NewLogisticRegression()
	require.NoError(t, lr.Fit(ds))

	unlabeled, err := data.New(ds.X, nil, nil, "")
	require.NoError(t, err)
	require.Error(t, lr.Fit(unlabeled))
	assert.False(t, lr.IsFitted())
	assert.Empty(t, lr.CostHistory())
}

func TestLogisticRegression_NumericalInstability(t *testing.T) {
	ds, err := data.FromRows([][]float64{{1}, {2}}, []float64{0, 1}, nil, "")
	require.NoError(t, err)

	lr := NewLogisticRegression(WithAlpha(1e308), WithL2Penalty(1))
	err = lr.Fit(ds)
	var nie *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &nie), "got %v", err)
	assert.Equal(t, 0, nie.Iteration)
	assert.False(t, lr.IsFitted())
}

func TestLogisticRegression_SaturatedCostStaysFinite(t *testing.T) {
	// 線形残差と大きな入力で確率が 0 や 1 に張り付く
	ds, err := data.FromRows([][]float64{{50}, {-50}, {60}, {-60}}, []float64{0, 1, 0, 1}, nil, "")
	require.NoError(t, err)

	lr := NewLogisticRegression(
		WithGradient(LinearResidual),
		WithAlpha(1),
		WithL2Penalty(0),
		WithMaxIter(50),
	)
	require.NoError(t, lr.Fit(ds))

	history := lr.CostHistory()
	require.NotEmpty(t, history)
	for i, c := range history {
		assert.False(t, math.IsNaN(c) || math.IsInf(c, 0), "cost[%d] = %v", i, c)
	}
	cost, err := lr.Cost(ds)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(cost) || math.IsInf(cost, 0), "cost = %v", cost)
}

func TestLogisticRegression_ColumnOrderInvariance(t *testing.T) {
	ds, err := data.FromRandom(100, 5, 2, 7)
	require.NoError(t, err)

	order := []int{4, 2, 0, 3, 1}
	m, n := ds.Shape()
	permuted := mat.NewDense(m, n, nil)
	for j, src := range order {
		permuted.SetCol(j, mat.Col(nil, src, ds.X))
	}
	pds, err := data.New(permuted, ds.Y, nil, "")
	require.NoError(t, err)

	lr := NewLogisticRegression()
	require.NoError(t, lr.Fit(ds))
	plr := NewLogisticRegression()
	require.NoError(t, plr.Fit(pds))

	score, err := lr.Score(ds)
	require.NoError(t, err)
	pscore, err := plr.Score(pds)
	require.NoError(t, err)
	assert.Equal(t, score, pscore)

	theta, ptheta := lr.Theta(), plr.Theta()
	for j, src := range order {
		assert.InDelta(t, theta[src], ptheta[j], 1e-9)
	}
	assert.InDelta(t, lr.ThetaZero(), plr.ThetaZero(), 1e-9)
}

func TestLogisticRegression_FeatureMismatch(t *testing.T) {
	lr := NewLogisticRegression()
	require.NoError(t, lr.Fit(separableDataset(t)))

	other, err := data.FromRows([][]float64{{1, 2, 3}}, nil, nil, "")
	require.NoError(t, err)
	_, err = lr.Predict(other)
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestLogisticRegression_Params(t *testing.T) {
	lr := NewLogisticRegression()
	assert.Equal(t, []string{"l2_penalty", "alpha", "max_iter"}, lr.ParamNames())
	assert.Equal(t, map[string]float64{"l2_penalty": 1, "alpha": 0.001, "max_iter": 1000}, lr.GetParams())

	tuned, err := lr.WithParams(map[string]float64{"alpha": 0.01, "max_iter": 50})
	require.NoError(t, err)
	assert.Equal(t, 0.01, tuned.GetParams()["alpha"])
	assert.Equal(t, 50.0, tuned.GetParams()["max_iter"])
	assert.Equal(t, 1.0, tuned.GetParams()["l2_penalty"])
	// The receiver keeps its configuration.
	assert.Equal(t, 0.001, lr.GetParams()["alpha"])

	_, err = lr.WithParams(map[string]float64{"learning_rate": 1})
	var upe *errors.UnknownParameterError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, "learning_rate", upe.Param)
	assert.Equal(t, "LogisticRegression", upe.ModelName)

	var vErr *errors.ValidationError
	_, err = lr.WithParams(map[string]float64{"max_iter": 1.5})
	assert.True(t, errors.As(err, &vErr))
	_, err = lr.WithParams(map[string]float64{"alpha": -1})
	assert.True(t, errors.As(err, &vErr))
}

func TestLogisticRegression_WithParamsIsUnfitted(t *testing.T) {
	lr := NewLogisticRegression(WithAlpha(0.1))
	require.NoError(t, lr.Fit(separableDataset(t)))

	tuned, err := lr.WithParams(nil)
	require.NoError(t, err)
	_, err = tuned.Predict(separableDataset(t))
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))
	assert.True(t, lr.IsFitted())
}

func TestLogisticRegression_WeightsRoundTrip(t *testing.T) {
	ds := separableDataset(t)
	lr := NewLogisticRegression(WithAlpha(0.1), WithMaxIter(200))
	require.NoError(t, lr.Fit(ds))

	w, err := lr.ExportWeights()
	require.NoError(t, err)
	assert.Equal(t, "LogisticRegression", w.ModelType)
	assert.Equal(t, []string{"x1", "x2"}, w.Features)
	assert.Equal(t, 200.0, w.Hyperparameters["max_iter"])

	path := filepath.Join(t.TempDir(), "lr.json")
	require.NoError(t, model.SaveWeights(w, path))
	loaded, err := model.LoadWeights(path)
	require.NoError(t, err)

	restored := NewLogisticRegression()
	require.NoError(t, restored.ImportWeights(loaded))
	assert.Equal(t, lr.Config().MaxIter, restored.Config().MaxIter)
	assert.Equal(t, lr.Theta(), restored.Theta())

	want, err := lr.PredictProba(ds)
	require.NoError(t, err)
	got, err := restored.PredictProba(ds)
	require.NoError(t, err)
	assert.True(t, mat.Equal(want, got))

	w.ModelType = "LinearRegression"
	assert.Error(t, restored.ImportWeights(w))
	assert.Error(t, restored.ImportWeights(nil))
}

func TestLogisticRegression_Logging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	lr := NewLogisticRegression(WithLogger(logger), WithAlpha(0.1))
	require.NoError(t, lr.Fit(separableDataset(t)))

	entries := logger.EntriesWithMessage("Training finished")
	require.Len(t, entries, 1)
	assert.Equal(t, "LogisticRegression", entries[0][log.ModelNameKey])
	assert.Equal(t, float64(lr.NIter()), entries[0][log.IterationKey])
	assert.Equal(t, lr.Converged(), entries[0][log.ConvergedKey])
}

func TestParseGradientKind(t *testing.T) {
	g, err := ParseGradientKind("linear")
	require.NoError(t, err)
	assert.Equal(t, LinearResidual, g)
	assert.Equal(t, "linear", g.String())

	g, err = ParseGradientKind("")
	require.NoError(t, err)
	assert.Equal(t, LogisticResidual, g)

	_, err = ParseGradientKind("newton")
	assert.Error(t, err)
}
