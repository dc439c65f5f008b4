package linear_model

import (
	"math"

	"github.com/YuminosukeSato/sigo/pkg/errors"
	"github.com/YuminosukeSato/sigo/pkg/log"
)

// Default hyperparameters of LogisticRegression.
const (
	DefaultL2Penalty = 1.0
	DefaultAlpha     = 0.001
	DefaultMaxIter   = 1000

	// DefaultTolerance is the minimum decrease of the cost between two
	// successive iterations below which gradient descent stops.
	DefaultTolerance = 1e-4
)

// Tunable hyperparameter names.
const (
	ParamL2Penalty = "l2_penalty"
	ParamAlpha     = "alpha"
	ParamMaxIter   = "max_iter"
)

var paramNames = []string{ParamL2Penalty, ParamAlpha, ParamMaxIter}

// GradientKind selects the residual used in the weight update.
type GradientKind int

const (
	// LogisticResidual uses sigmoid(z) - y, the gradient of the
	// cross-entropy cost.
	LogisticResidual GradientKind = iota

	// LinearResidual uses the raw linear score z - y.
	LinearResidual
)

func (g GradientKind) String() string {
	switch g {
	case LogisticResidual:
		return "logistic"
	case LinearResidual:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseGradientKind parses "logistic" or "linear".
func ParseGradientKind(s string) (GradientKind, error) {
	switch s {
	case "logistic", "":
		return LogisticResidual, nil
	case "linear":
		return LinearResidual, nil
	default:
		return LogisticResidual, errors.NewValidationError("gradient", "must be logistic or linear", s)
	}
}

// Config holds the hyperparameters of LogisticRegression.
type Config struct {
	// L2Penalty is the L2 regularization strength (>= 0).
	L2Penalty float64

	// Alpha is the gradient descent learning rate (> 0).
	Alpha float64

	// MaxIter caps the number of gradient descent iterations (>= 1).
	MaxIter int

	// Tolerance is the early-stopping threshold on the cost decrease.
	Tolerance float64

	// Gradient selects the residual of the weight update.
	Gradient GradientKind
}

// DefaultConfig returns l2_penalty=1, alpha=0.001, max_iter=1000.
func DefaultConfig() Config {
	return Config{
		L2Penalty: DefaultL2Penalty,
		Alpha:     DefaultAlpha,
		MaxIter:   DefaultMaxIter,
		Tolerance: DefaultTolerance,
		Gradient:  LogisticResidual,
	}
}

// Validate checks the hyperparameter ranges.
func (c Config) Validate() error {
	if c.L2Penalty < 0 || math.IsNaN(c.L2Penalty) || math.IsInf(c.L2Penalty, 0) {
		return errors.NewValidationError(ParamL2Penalty, "must be a finite value >= 0", c.L2Penalty)
	}
	if !(c.Alpha > 0) || math.IsInf(c.Alpha, 0) {
		return errors.NewValidationError(ParamAlpha, "must be a finite value > 0", c.Alpha)
	}
	if c.MaxIter < 1 {
		return errors.NewValidationError(ParamMaxIter, "must be at least 1", c.MaxIter)
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return errors.NewValidationError("tolerance", "must be >= 0", c.Tolerance)
	}
	if c.Gradient != LogisticResidual && c.Gradient != LinearResidual {
		return errors.NewValidationError("gradient", "unknown gradient kind", int(c.Gradient))
	}
	return nil
}

// Params returns the tunable hyperparameters keyed by name.
func (c Config) Params() map[string]float64 {
	return map[string]float64{
		ParamL2Penalty: c.L2Penalty,
		ParamAlpha:     c.Alpha,
		ParamMaxIter:   float64(c.MaxIter),
	}
}

// WithParams returns a copy of c with params applied. Unknown names and a
// non-integral max_iter are rejected; ranges are checked by Validate.
func (c Config) WithParams(params map[string]float64) (Config, error) {
	for name, v := range params {
		switch name {
		case ParamL2Penalty:
			c.L2Penalty = v
		case ParamAlpha:
			c.Alpha = v
		case ParamMaxIter:
			if v != math.Trunc(v) || math.IsInf(v, 0) {
				return c, errors.NewValidationError(ParamMaxIter, "must be an integer", v)
			}
			c.MaxIter = int(v)
		default:
			return c, errors.NewUnknownParameterError(modelName, name, paramNames)
		}
	}
	return c, c.Validate()
}

// LogisticRegressionOption is a functional option for LogisticRegression
type LogisticRegressionOption func(*LogisticRegression)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.config = cfg
	}
}

// WithL2Penalty sets the L2 regularization strength.
func WithL2Penalty(l2 float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.config.L2Penalty = l2
	}
}

// WithAlpha sets the learning rate.
func WithAlpha(alpha float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.config.Alpha = alpha
	}
}

// WithMaxIter sets the maximum number of iterations
func WithMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.config.MaxIter = maxIter
	}
}

// WithTolerance sets the early-stopping threshold.
func WithTolerance(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.config.Tolerance = tol
	}
}

// WithGradient selects the residual of the weight update.
func WithGradient(kind GradientKind) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.config.Gradient = kind
	}
}

// WithLogger sets the logger used for training diagnostics.
func WithLogger(logger log.Logger) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.logger = logger
	}
}
