//go:build fastmath

package ladder

import (
	"github.com/meko-christian/algo-approx"
)

// mathTanh computes the stage saturation via the identity
// tanh(x) = 1 - 2/(e^(2x)+1) using fast exponential approximation.
//
// The approximation error stays well below the audible floor for the
// argument ranges the ladder produces (inputs are pre-bounded by the
// drive tanh and the +-32 state clip).
func mathTanh(x float64) float64 {
	if x > 20 {
		return 1
	}

	if x < -20 {
		return -1
	}

	return 1 - 2/(approx.FastExp(2*x)+1)
}

// mathExp computes e^x using fast exponential approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
