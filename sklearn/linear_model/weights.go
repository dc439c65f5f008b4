package linear_model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sigo/core/model"
	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// ExportWeights はモデルの重みをエクスポート（完全な再現性を保証）
func (lr *LogisticRegression) ExportWeights() (*model.ModelWeights, error) {
	if err := lr.state.RequireFitted(modelName, "ExportWeights"); err != nil {
		return nil, err
	}
	return &model.ModelWeights{
		ModelType:       modelName,
		Version:         model.WeightsVersion,
		Coefficients:    lr.Theta(),
		Intercept:       lr.thetaZero,
		Features:        append([]string(nil), lr.features...),
		Hyperparameters: lr.config.Params(),
		CostHistory:     lr.CostHistory(),
		IsFitted:        true,
	}, nil
}

// ImportWeights はモデルの重みをインポート
// ハイパーパラメータも復元され、モデルは学習済み状態になる
func (lr *LogisticRegression) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("LogisticRegression.ImportWeights", "weights cannot be nil")
	}
	if weights.ModelType != modelName {
		return errors.NewValueError("LogisticRegression.ImportWeights",
			fmt.Sprintf("model type mismatch: expected %s, got %s", modelName, weights.ModelType))
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	if !weights.IsFitted {
		return errors.NewValueError("LogisticRegression.ImportWeights", "weights are not fitted")
	}
	cfg, err := lr.config.WithParams(weights.Hyperparameters)
	if err != nil {
		return err
	}

	lr.reset()
	lr.config = cfg
	n := len(weights.Coefficients)
	lr.theta = mat.NewVecDense(n, append([]float64(nil), weights.Coefficients...))
	lr.thetaZero = weights.Intercept
	lr.costHistory = append([]float64(nil), weights.CostHistory...)
	lr.features = append([]string(nil), weights.Features...)
	lr.state.SetDimensions(n, 0)
	lr.state.SetFitted()
	return nil
}
