// Package statistics は推定器が共有する数値プリミティブを提供します。
package statistics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sigmoid computes 1 / (1 + exp(-z)) without overflowing for large |z|.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}

// SigmoidVec applies Sigmoid element-wise to z and stores the result in dst.
// dst may alias z. When dst is nil a new vector is allocated.
func SigmoidVec(dst *mat.VecDense, z mat.Vector) *mat.VecDense {
	n := z.Len()
	if dst == nil {
		dst = mat.NewVecDense(n, nil)
	}
	for i := 0; i < n; i++ {
		dst.SetVec(i, Sigmoid(z.AtVec(i)))
	}
	return dst
}
