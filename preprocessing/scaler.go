// Package preprocessing はデータセットの特徴量スケーリングを提供します。
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/core/model"
	"github.com/YuminosukeSato/sigo/pkg/errors"
)

var (
	_ model.Transformer = (*StandardScaler)(nil)
	_ model.Transformer = (*MinMaxScaler)(nil)
)

// StandardScaler はscikit-learn互換の標準化スケーラー
// データを平均0、標準偏差1に変換する
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差
	Scale []float64

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	scaled, err := scaler.FitTransform(ds)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから統計情報（平均、標準偏差）を計算する
func (s *StandardScaler) Fit(ds *data.Dataset) error {
	s.state.Reset()
	if ds == nil {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	r, c := ds.Shape()

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, ds.X)
		mean, variance := stat.PopMeanVariance(col, nil)
		if math.IsNaN(mean) {
			return errors.NewValueError("StandardScaler.Fit", fmt.Sprintf("feature %q contains NaN", ds.Features[j]))
		}
		if s.WithMean {
			s.Mean[j] = mean
		}
		s.Scale[j] = 1.0
		// 標準偏差が0に近い場合は1のまま（ゼロ除算を避ける）
		if std := math.Sqrt(variance); s.WithStd && std >= 1e-8 {
			s.Scale[j] = std
		}
	}

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
// ラベルと特徴量名は引き継がれる
func (s *StandardScaler) Transform(ds *data.Dataset) (*data.Dataset, error) {
	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	if err := s.state.RequireFeatures("StandardScaler.Transform", ds.NFeatures()); err != nil {
		return nil, err
	}
	r, c := ds.Shape()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(_, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, ds.X)
	return ds.WithX(result)
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(ds *data.Dataset) (*data.Dataset, error) {
	if err := s.Fit(ds); err != nil {
		return nil, err
	}
	return s.Transform(ds)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(ds *data.Dataset) (*data.Dataset, error) {
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	if err := s.state.RequireFeatures("StandardScaler.InverseTransform", ds.NFeatures()); err != nil {
		return nil, err
	}
	r, c := ds.Shape()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(_, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, ds.X)
	return ds.WithX(result)
}

// IsFitted returns whether the scaler has been fitted.
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	nFeatures, _ := s.state.GetDimensions()
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, nFeatures)
}

// MinMaxScaler はscikit-learn互換のMin-Maxスケーラー
// データを指定した範囲（デフォルト[0,1]）にスケーリングする
type MinMaxScaler struct {
	state *model.StateManager

	// DataMin は学習データの最小値
	DataMin []float64

	// DataMax は学習データの最大値
	DataMax []float64

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		state:        model.NewStateManager(),
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault は[0, 1]へスケーリングするMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0, 1})
}

// Fit は各特徴量の最小値と最大値を記録する
func (m *MinMaxScaler) Fit(ds *data.Dataset) error {
	m.state.Reset()
	if ds == nil {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if m.FeatureRange[0] >= m.FeatureRange[1] {
		return errors.NewValidationError("feature_range", "min must be less than max", m.FeatureRange)
	}
	r, c := ds.Shape()
	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, ds.X)
		if floats.HasNaN(col) {
			return errors.NewValueError("MinMaxScaler.Fit", fmt.Sprintf("feature %q contains NaN", ds.Features[j]))
		}
		m.DataMin[j] = floats.Min(col)
		m.DataMax[j] = floats.Max(col)
	}
	m.state.SetDimensions(c, r)
	m.state.SetFitted()
	return nil
}

// Transform はデータを FeatureRange にスケーリングする
// 定数の特徴量は範囲の下限に写像される
func (m *MinMaxScaler) Transform(ds *data.Dataset) (*data.Dataset, error) {
	if err := m.state.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return nil, err
	}
	if err := m.state.RequireFeatures("MinMaxScaler.Transform", ds.NFeatures()); err != nil {
		return nil, err
	}
	lo, hi := m.FeatureRange[0], m.FeatureRange[1]
	r, c := ds.Shape()
	result := mat.NewDense(r, c, nil)
	result.Apply(func(_, j int, v float64) float64 {
		span := m.DataMax[j] - m.DataMin[j]
		if span == 0 {
			return lo
		}
		return lo + (v-m.DataMin[j])/span*(hi-lo)
	}, ds.X)
	return ds.WithX(result)
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(ds *data.Dataset) (*data.Dataset, error) {
	if err := m.Fit(ds); err != nil {
		return nil, err
	}
	return m.Transform(ds)
}
