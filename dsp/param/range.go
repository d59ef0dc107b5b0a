package param

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ladder/dsp/core"
)

// Range maps between plain parameter values and normalized [0, 1]
// control positions.
type Range interface {
	// Normalize maps a plain value to [0, 1], clamping out-of-range input.
	Normalize(plain float64) float64
	// Denormalize maps a normalized [0, 1] position to a plain value.
	Denormalize(normalized float64) float64
	// ClampPlain limits a plain value to the range bounds.
	ClampPlain(plain float64) float64
}

// LinearRange maps [Min, Max] linearly onto [0, 1].
type LinearRange struct {
	Min float64
	Max float64
}

// NewLinearRange constructs a linear range. Min must be < Max and both finite.
func NewLinearRange(min, max float64) (LinearRange, error) {
	if !core.IsFinite(min) || !core.IsFinite(max) || min >= max {
		return LinearRange{}, fmt.Errorf("param: invalid linear range [%g, %g]", min, max)
	}

	return LinearRange{Min: min, Max: max}, nil
}

// Normalize maps a plain value to [0, 1], clamping out-of-range input.
func (r LinearRange) Normalize(plain float64) float64 {
	return core.Clamp((plain-r.Min)/(r.Max-r.Min), 0, 1)
}

// Denormalize maps a normalized [0, 1] position to a plain value.
func (r LinearRange) Denormalize(normalized float64) float64 {
	return r.Min + (r.Max-r.Min)*core.Clamp(normalized, 0, 1)
}

// ClampPlain limits a plain value to the range bounds.
func (r LinearRange) ClampPlain(plain float64) float64 {
	return core.Clamp(plain, r.Min, r.Max)
}

// SkewedRange maps [Min, Max] onto [0, 1] through a power-law skew, so
// that a Factor < 1 allocates more control travel to the low end. A
// frequency control spanning 20 Hz to 20 kHz typically uses Factor 0.25.
type SkewedRange struct {
	Min    float64
	Max    float64
	Factor float64
}

// NewSkewedRange constructs a skewed range. Factor must be in (0, 1].
func NewSkewedRange(min, max, factor float64) (SkewedRange, error) {
	if !core.IsFinite(min) || !core.IsFinite(max) || min >= max {
		return SkewedRange{}, fmt.Errorf("param: invalid skewed range [%g, %g]", min, max)
	}

	if !core.IsFinite(factor) || factor <= 0 || factor > 1 {
		return SkewedRange{}, fmt.Errorf("param: skew factor must be in (0, 1]: %g", factor)
	}

	return SkewedRange{Min: min, Max: max, Factor: factor}, nil
}

// Normalize maps a plain value to [0, 1], clamping out-of-range input.
func (r SkewedRange) Normalize(plain float64) float64 {
	lin := core.Clamp((plain-r.Min)/(r.Max-r.Min), 0, 1)
	return math.Pow(lin, r.Factor)
}

// Denormalize maps a normalized [0, 1] position to a plain value.
func (r SkewedRange) Denormalize(normalized float64) float64 {
	n := core.Clamp(normalized, 0, 1)
	return r.Min + (r.Max-r.Min)*math.Pow(n, 1/r.Factor)
}

// ClampPlain limits a plain value to the range bounds.
func (r SkewedRange) ClampPlain(plain float64) float64 {
	return core.Clamp(plain, r.Min, r.Max)
}
