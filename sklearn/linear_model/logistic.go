// Package linear_model は線形モデルの推定器を提供します。
package linear_model

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/core/model"
	"github.com/YuminosukeSato/sigo/core/statistics"
	"github.com/YuminosukeSato/sigo/metrics"
	"github.com/YuminosukeSato/sigo/pkg/errors"
	"github.com/YuminosukeSato/sigo/pkg/log"
)

const modelName = "LogisticRegression"

// LogisticRegression is a binary logistic model with L2 regularization,
// trained by batch gradient descent.
//
// Each iteration updates
//
//	theta      <- theta - (alpha/m)·Xᵀ·r - alpha·(l2_penalty/m)·theta
//	theta_zero <- theta_zero - (alpha/m)·Σr
//
// where r is the residual selected by Config.Gradient, and records the
// regularized cross-entropy cost. Training stops after max_iter iterations
// or as soon as the cost decreases by less than Config.Tolerance.
type LogisticRegression struct {
	state  *model.StateManager // State management (composition)
	config Config
	logger log.Logger

	// Learned parameters
	theta       *mat.VecDense
	thetaZero   float64
	costHistory []float64
	converged   bool
	features    []string
}

// NewLogisticRegression creates a new LogisticRegression classifier
//
//	lr := linear_model.NewLogisticRegression(
//	    linear_model.WithL2Penalty(1),
//	    linear_model.WithAlpha(0.001),
//	    linear_model.WithMaxIter(1000),
//	)
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:  model.NewStateManager(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(lr)
	}
	if lr.logger == nil {
		lr.logger = log.GetLoggerWithName("linear_model")
	}
	lr.logger = lr.logger.With(log.ModelNameKey, modelName)
	return lr
}

// Fit trains the model on ds from zero-initialized parameters. Any
// previously learned state is discarded first, so a failed Fit leaves the
// model unfitted.
func (lr *LogisticRegression) Fit(ds *data.Dataset) error {
	lr.reset()

	if err := lr.config.Validate(); err != nil {
		return err
	}
	if ds == nil {
		return errors.Wrap(errors.ErrEmptyData, "LogisticRegression.Fit")
	}
	if !ds.HasLabel() {
		return errors.NewValueError("LogisticRegression.Fit", "dataset does not have a label")
	}
	if err := checkBinaryLabels(ds.Y); err != nil {
		return err
	}

	m, n := ds.Shape()
	cfg := lr.config
	start := time.Now()
	lr.logger.Debug("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, m,
		log.FeaturesKey, n,
		log.RegularizationKey, cfg.L2Penalty,
		log.LearningRateKey, cfg.Alpha,
		log.MaxIterKey, cfg.MaxIter,
	)

	theta := mat.NewVecDense(n, nil)
	thetaZero := 0.0
	history := make([]float64, 0, min(cfg.MaxIter, 1024))

	scale := cfg.Alpha / float64(m)
	decay := 1 - cfg.Alpha*cfg.L2Penalty/float64(m)
	residual := mat.NewVecDense(m, nil)
	grad := mat.NewVecDense(n, nil)
	converged := false

	for i := 0; i < cfg.MaxIter; i++ {
		// r = act(X·theta + theta_zero) - y
		linearScore(residual, ds.X, theta, thetaZero)
		if cfg.Gradient == LogisticResidual {
			statistics.SigmoidVec(residual, residual)
		}
		residual.SubVec(residual, ds.Y)

		grad.MulVec(ds.X.T(), residual)
		theta.ScaleVec(decay, theta)
		theta.AddScaledVec(theta, -scale, grad)
		thetaZero -= scale * floats.Sum(residual.RawVector().Data)

		cost := computeCost(ds.X, ds.Y, theta, thetaZero, cfg.L2Penalty)
		if err := errors.CheckScalar("LogisticRegression.Fit", cost, i); err != nil {
			return err
		}
		history = append(history, cost)

		if i > 0 && history[i-1]-cost < cfg.Tolerance {
			converged = true
			break
		}
	}

	lr.theta = theta
	lr.thetaZero = thetaZero
	lr.costHistory = history
	lr.converged = converged
	lr.features = append([]string(nil), ds.Features...)
	lr.state.SetDimensions(n, m)
	lr.state.SetFitted()

	lr.logger.Debug("Training finished",
		log.OperationKey, log.OperationFit,
		log.IterationKey, len(history),
		log.LossKey, history[len(history)-1],
		log.ConvergedKey, converged,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	if !converged {
		errors.Warn(errors.NewConvergenceWarning(modelName, cfg.MaxIter, ""))
	}
	return nil
}

func (lr *LogisticRegression) reset() {
	lr.state.Reset()
	lr.theta = nil
	lr.thetaZero = 0
	lr.costHistory = nil
	lr.converged = false
	lr.features = nil
}

func checkBinaryLabels(y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValidationError(
				"y",
				fmt.Sprintf("labels must be 0 or 1, found %g at index %d", v, i),
				v,
			)
		}
	}
	return nil
}

// linearScore stores X·theta + thetaZero in dst.
func linearScore(dst *mat.VecDense, X mat.Matrix, theta *mat.VecDense, thetaZero float64) {
	dst.MulVec(X, theta)
	raw := dst.RawVector()
	for i := 0; i < raw.N; i++ {
		raw.Data[i*raw.Inc] += thetaZero
	}
}

// computeCost returns the mean binary cross-entropy of the sigmoid score
// plus l2·Σθ²/(2m). Probabilities are clipped so the cost stays finite.
func computeCost(X mat.Matrix, y, theta *mat.VecDense, thetaZero, l2 float64) float64 {
	m, _ := X.Dims()
	z := mat.NewVecDense(m, nil)
	linearScore(z, X, theta, thetaZero)

	sum := 0.0
	for i := 0; i < m; i++ {
		p := errors.ClipProbability(statistics.Sigmoid(z.AtVec(i)))
		yi := y.AtVec(i)
		sum -= yi*errors.StabilizeLog(p) + (1-yi)*errors.StabilizeLog(1-p)
	}
	cost := sum / float64(m)
	return cost + l2*mat.Dot(theta, theta)/(2*float64(m))
}

// checkInput verifies the fitted state and the feature count of ds.
func (lr *LogisticRegression) checkInput(method string, ds *data.Dataset) error {
	if err := lr.state.RequireFitted(modelName, method); err != nil {
		return err
	}
	if ds == nil {
		return errors.Wrapf(errors.ErrEmptyData, "LogisticRegression.%s", method)
	}
	return lr.state.RequireFeatures("LogisticRegression."+method, ds.NFeatures())
}

// PredictProba returns sigmoid(X·theta + theta_zero) for every sample.
func (lr *LogisticRegression) PredictProba(ds *data.Dataset) (*mat.VecDense, error) {
	if err := lr.checkInput("PredictProba", ds); err != nil {
		return nil, err
	}
	z := mat.NewVecDense(ds.NSamples(), nil)
	linearScore(z, ds.X, lr.theta, lr.thetaZero)
	return statistics.SigmoidVec(z, z), nil
}

// Predict returns hard 0/1 labels: 1 where the probability is >= 0.5.
func (lr *LogisticRegression) Predict(ds *data.Dataset) (*mat.VecDense, error) {
	if err := lr.checkInput("Predict", ds); err != nil {
		return nil, err
	}
	z := mat.NewVecDense(ds.NSamples(), nil)
	linearScore(z, ds.X, lr.theta, lr.thetaZero)
	for i := 0; i < z.Len(); i++ {
		if statistics.Sigmoid(z.AtVec(i)) >= 0.5 {
			z.SetVec(i, 1)
		} else {
			z.SetVec(i, 0)
		}
	}
	return z, nil
}

// Score returns the accuracy of Predict(ds) against ds's labels.
func (lr *LogisticRegression) Score(ds *data.Dataset) (float64, error) {
	pred, err := lr.Predict(ds)
	if err != nil {
		return 0, err
	}
	if !ds.HasLabel() {
		return 0, errors.NewValueError("LogisticRegression.Score", "dataset does not have a label")
	}
	return metrics.Accuracy(ds.Y, pred)
}

// Cost returns the regularized cross-entropy of the fitted model on ds.
func (lr *LogisticRegression) Cost(ds *data.Dataset) (float64, error) {
	if err := lr.checkInput("Cost", ds); err != nil {
		return 0, err
	}
	if !ds.HasLabel() {
		return 0, errors.NewValueError("LogisticRegression.Cost", "dataset does not have a label")
	}
	return computeCost(ds.X, ds.Y, lr.theta, lr.thetaZero, lr.config.L2Penalty), nil
}

// Theta returns a copy of the learned coefficients, or nil before Fit.
func (lr *LogisticRegression) Theta() []float64 {
	if lr.theta == nil {
		return nil
	}
	return mat.Col(nil, 0, lr.theta)
}

// ThetaZero returns the learned intercept.
func (lr *LogisticRegression) ThetaZero() float64 {
	return lr.thetaZero
}

// CostHistory returns the cost recorded at each iteration of the last Fit,
// indexed by iteration.
func (lr *LogisticRegression) CostHistory() []float64 {
	return append([]float64(nil), lr.costHistory...)
}

// NIter returns the number of iterations run by the last Fit.
func (lr *LogisticRegression) NIter() int {
	return len(lr.costHistory)
}

// Converged reports whether the last Fit stopped on the tolerance check.
func (lr *LogisticRegression) Converged() bool {
	return lr.converged
}

// IsFitted returns whether the model has been fitted
func (lr *LogisticRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// Config returns the current configuration.
func (lr *LogisticRegression) Config() Config {
	return lr.config
}

// Name returns the estimator name.
func (lr *LogisticRegression) Name() string {
	return modelName
}

// ParamNames returns the tunable hyperparameter names.
func (lr *LogisticRegression) ParamNames() []string {
	return append([]string(nil), paramNames...)
}

// GetParams returns the model hyperparameters
func (lr *LogisticRegression) GetParams() map[string]float64 {
	return lr.config.Params()
}

// WithParams returns a new, unfitted LogisticRegression whose configuration
// is lr's with params applied. lr is not modified.
func (lr *LogisticRegression) WithParams(params map[string]float64) (model.Tunable, error) {
	cfg, err := lr.config.WithParams(params)
	if err != nil {
		return nil, err
	}
	return &LogisticRegression{
		state:  model.NewStateManager(),
		config: cfg,
		logger: lr.logger,
	}, nil
}

// String returns the string representation of the model
func (lr *LogisticRegression) String() string {
	c := lr.config
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LogisticRegression(l2_penalty=%g, alpha=%g, max_iter=%d)", c.L2Penalty, c.Alpha, c.MaxIter)
	}
	nFeatures, _ := lr.state.GetDimensions()
	return fmt.Sprintf("LogisticRegression(l2_penalty=%g, alpha=%g, max_iter=%d, n_features=%d, n_iter=%d, fitted=true)",
		c.L2Penalty, c.Alpha, c.MaxIter, nFeatures, lr.NIter())
}
