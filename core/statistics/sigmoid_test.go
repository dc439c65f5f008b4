package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSigmoid(t *testing.T) {
	tests := []struct {
		z    float64
		want float64
	}{
		{0, 0.5},
		{2, 1 / (1 + math.Exp(-2))},
		{-2, 1 / (1 + math.Exp(2))},
		{800, 1},
		{-800, 0},
	}
	for _, tt := range tests {
		got := Sigmoid(tt.z)
		assert.InDelta(t, tt.want, got, 1e-12, "Sigmoid(%v)", tt.z)
		assert.False(t, math.IsNaN(got))
	}
}

func TestSigmoidSymmetry(t *testing.T) {
	for _, z := range []float64{0.1, 1, 5, 30} {
		assert.InDelta(t, 1.0, Sigmoid(z)+Sigmoid(-z), 1e-12)
	}
}

func TestSigmoidVec(t *testing.T) {
	z := mat.NewVecDense(3, []float64{-1, 0, 1})
	got := SigmoidVec(nil, z)
	assert.Equal(t, 0.5, got.AtVec(1))
	assert.InDelta(t, Sigmoid(1), got.AtVec(2), 1e-15)

	// in place
	SigmoidVec(z, z)
	assert.True(t, mat.EqualApprox(got, z, 1e-15))
}
