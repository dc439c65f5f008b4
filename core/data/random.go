package data

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/sigo/pkg/errors"
)

// FromRandom creates a dataset with features drawn uniformly from [0, 1) and
// integer labels drawn uniformly from [0, nClasses). The same seed always
// produces the same dataset.
func FromRandom(nSamples, nFeatures, nClasses int, seed uint64) (*Dataset, error) {
	if nSamples < 1 {
		return nil, errors.NewValidationError("n_samples", "must be at least 1", nSamples)
	}
	if nFeatures < 1 {
		return nil, errors.NewValidationError("n_features", "must be at least 1", nFeatures)
	}
	if nClasses < 1 {
		return nil, errors.NewValidationError("n_classes", "must be at least 1", nClasses)
	}

	src := rand.NewPCG(seed, seed)
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	rng := rand.New(src)

	X := mat.NewDense(nSamples, nFeatures, nil)
	y := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		for j := 0; j < nFeatures; j++ {
			X.Set(i, j, uniform.Rand())
		}
		y.SetVec(i, float64(rng.IntN(nClasses)))
	}
	return New(X, y, nil, "")
}
