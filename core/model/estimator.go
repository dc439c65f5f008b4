package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/core/data"
)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。
	// 以前の学習結果は破棄され、毎回ゼロから学習する
	Fit(ds *data.Dataset) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測ラベルを返す
	Predict(ds *data.Dataset) (*mat.VecDense, error)
}

// Scorer is implemented by estimators that evaluate themselves on labeled data.
type Scorer interface {
	// Score returns the estimator's default metric on ds (accuracy for
	// classifiers).
	Score(ds *data.Dataset) (float64, error)
}

// Estimator is a supervised model that model-selection routines can refit
// and evaluate.
type Estimator interface {
	Fitter
	Predictor
	Scorer
}

// Tunable is an Estimator with a fixed, named hyperparameter schema.
//
// WithParams never mutates the receiver: it returns a new, unfitted
// estimator whose configuration is the receiver's with params applied.
// Names outside ParamNames yield an UnknownParameterError.
type Tunable interface {
	Estimator

	// ParamNames returns the tunable hyperparameter names.
	ParamNames() []string

	// GetParams returns the current value of every tunable hyperparameter.
	GetParams() map[string]float64

	// WithParams returns a fresh estimator configured with params.
	WithParams(params map[string]float64) (Tunable, error)
}
