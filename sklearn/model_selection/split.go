// Package model_selection はデータ分割、交差検証、グリッドサーチを提供します。
package model_selection

import (
	"fmt"
	"math/rand/v2"

	"github.com/YuminosukeSato/sigo/core/data"
	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// DefaultTestSize はテストサイズ未指定時に取り置くサンプルの割合です。
const DefaultTestSize = 0.2

// TrainTestSplit はデータセットを訓練用とテスト用にランダム分割する
//
// 行は seed で初期化した乱数で並べ替えられ、先頭の int(n*testSize) 行が
// テストセット、残りが訓練セットになります。同じ seed なら常に同じ分割です。
func TrainTestSplit(ds *data.Dataset, testSize float64, seed int64) (train, test *data.Dataset, err error) {
	if ds == nil {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "TrainTestSplit")
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}

	n := ds.NSamples()
	nTest := int(float64(n) * testSize)
	if nTest < 1 || nTest >= n {
		return nil, nil, errors.NewValueError("TrainTestSplit",
			fmt.Sprintf("test_size=%g with n_samples=%d leaves an empty train or test set", testSize, n))
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	perm := rng.Perm(n)

	test, err = ds.Subset(perm[:nTest])
	if err != nil {
		return nil, nil, err
	}
	train, err = ds.Subset(perm[nTest:])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}
