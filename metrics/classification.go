// Package metrics は分類器の評価指標を提供します。
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// checkPair validates that yTrue and yPred are non-empty and aligned.
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError(op, "input vectors cannot be nil")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "input vectors cannot be empty")
	}
	if n != yPred.Len() {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// BinaryLogLoss calculates the binary cross-entropy loss for binary classification.
//
// Predicted probabilities are clipped to [1e-15, 1-1e-15] so the loss stays
// finite when a prediction saturates at 0 or 1.
//
// Example:
//
//	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
//	yPred := mat.NewVecDense(4, []float64{0.1, 0.2, 0.8, 0.9})
//	loss, err := metrics.BinaryLogLoss(yTrue, yPred)
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	loss := 0.0
	for i := 0; i < n; i++ {
		y := yTrue.AtVec(i)
		if y != 0.0 && y != 1.0 {
			return 0, errors.NewValidationError(
				"yTrue",
				fmt.Sprintf("must contain only binary values (0 or 1), found %f at index %d", y, i),
				y,
			)
		}
		p := errors.ClipProbability(yPred.AtVec(i))
		if y == 1.0 {
			loss -= errors.StabilizeLog(p)
		} else {
			loss -= errors.StabilizeLog(1 - p)
		}
	}
	return loss / float64(n), nil
}

// ClassificationError calculates the classification error rate, the fraction
// of positions where yPred differs from yTrue.
//
//	yTrue := mat.NewVecDense(5, []float64{0, 1, 2, 1, 0})
//	yPred := mat.NewVecDense(5, []float64{0, 1, 1, 1, 0})
//	errorRate, _ := metrics.ClassificationError(yTrue, yPred) // 0.2
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("ClassificationError", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	wrong := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != yPred.AtVec(i) {
			wrong++
		}
	}
	return float64(wrong) / float64(n), nil
}

// Accuracy calculates the fraction of exact matches between yTrue and yPred.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}
