//go:build !fastmath

package ladder

import "math"

// mathTanh computes the stage saturation using exact tanh.
func mathTanh(x float64) float64 {
	return math.Tanh(x)
}

// mathExp computes e^x using the standard library.
func mathExp(x float64) float64 {
	return math.Exp(x)
}
