package errors

import (
	"math"
)

// Probability clip bound used by log-loss style computations.
const ProbEpsilon = 1e-15

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64, iteration int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, iteration)
	}
	return nil
}

// ClipValue clips a value to the range [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClipProbability clips p into [ProbEpsilon, 1-ProbEpsilon] so that both
// log(p) and log(1-p) stay finite.
func ClipProbability(p float64) float64 {
	return ClipValue(p, ProbEpsilon, 1-ProbEpsilon)
}

// StabilizeLog computes log with protection against log(0).
func StabilizeLog(value float64) float64 {
	if value < ProbEpsilon {
		return math.Log(ProbEpsilon)
	}
	return math.Log(value)
}
