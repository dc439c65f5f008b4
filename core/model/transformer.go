package model

import "github.com/YuminosukeSato/sigo/core/data"

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(ds *data.Dataset) error

	// Transform はデータを変換した新しい Dataset を返す。ラベルは引き継がれる
	Transform(ds *data.Dataset) (*data.Dataset, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(ds *data.Dataset) (*data.Dataset, error)
}
