// Package sigo is a small supervised-learning toolkit for Go: tabular
// datasets, L2-regularized logistic regression trained by batch gradient
// descent, k-mer sequence descriptors, and model selection by repeated
// random train/test splits and grid search.
//
// The API follows scikit-learn naming so that a Python workflow maps onto
// it directly.
//
// # Packages
//
//   - core/data: Dataset (feature matrix, optional label, names), CSV I/O,
//     NA handling, descriptive statistics, random datasets
//   - core/model: estimator interfaces, fitted-state tracking, weight export
//   - sklearn/linear_model: LogisticRegression
//   - sklearn/feature_extraction: KMer
//   - sklearn/model_selection: TrainTestSplit, CrossValidate, GridSearch
//   - preprocessing: StandardScaler, MinMaxScaler
//   - metrics: Accuracy, ClassificationError, BinaryLogLoss
//   - plotting: cost history and fold score plots
//   - cmd/sigo: command line front end
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/YuminosukeSato/sigo/core/data"
//	    "github.com/YuminosukeSato/sigo/sklearn/linear_model"
//	    "github.com/YuminosukeSato/sigo/sklearn/model_selection"
//	)
//
//	func main() {
//	    ds, _ := data.FromRandom(100, 5, 2, 42)
//	    train, test, _ := model_selection.TrainTestSplit(ds, 0.2, 42)
//
//	    lr := linear_model.NewLogisticRegression(
//	        linear_model.WithL2Penalty(1),
//	        linear_model.WithAlpha(0.001),
//	        linear_model.WithMaxIter(1000),
//	    )
//	    if err := lr.Fit(train); err != nil {
//	        panic(err)
//	    }
//	    acc, _ := lr.Score(test)
//	    fmt.Printf("test accuracy: %.2f after %d iterations\n", acc, lr.NIter())
//	}
//
// # Model Selection
//
// CrossValidate refits an estimator on cv random splits, each with its own
// seed. GridSearch builds a fresh estimator per grid point through
// model.Tunable, so the estimator passed in is never modified:
//
//	grid := model_selection.ParameterGrid{
//	    {Name: "alpha", Values: []float64{0.1, 0.01}},
//	    {Name: "l2_penalty", Values: []float64{0, 1}},
//	}
//	result, err := model_selection.GridSearch(lr, ds, grid,
//	    model_selection.WithCV(5),
//	    model_selection.WithRandomState(1),
//	)
//	best, _ := result.Best()
//
// # Errors and Logging
//
// Errors are built on github.com/cockroachdb/errors and carry stack traces;
// use errors.As with the types in pkg/errors (NotFittedError,
// DimensionError, ValidationError, ValueError, UnknownParameterError).
// Structured logs go through pkg/log, backed by zerolog; call
// log.SetupLogger to choose the level and to route ConvergenceWarning
// through the logger.
package sigo
