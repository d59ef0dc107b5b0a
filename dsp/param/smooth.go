package param

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ladder/dsp/core"
)

// Smoother produces a per-sample ramp from the current value toward a
// target, for click-free parameter changes. Implementations are
// allocation-free per sample once configured.
type Smoother interface {
	// Configure sets the sample rate and recomputes ramp coefficients.
	Configure(sampleRate float64) error
	// SetTarget starts a ramp from the current value to v.
	SetTarget(v float64)
	// SetImmediate jumps to v without ramping.
	SetImmediate(v float64)
	// Next advances the ramp by one sample and returns the new value.
	Next() float64
	// Current returns the present value without advancing.
	Current() float64
	// Done reports whether the ramp has reached its target.
	Done() bool
}

// LinearSmoother ramps linearly over a fixed duration in milliseconds,
// regardless of step size.
type LinearSmoother struct {
	durationMs float64
	sampleRate float64

	current   float64
	target    float64
	step      float64
	remaining int
}

// NewLinearSmoother constructs a linear ramp smoother. Duration must be
// finite and >= 0; 0 disables smoothing.
func NewLinearSmoother(durationMs float64) (*LinearSmoother, error) {
	if !core.IsFinite(durationMs) || durationMs < 0 {
		return nil, fmt.Errorf("param: smoothing duration must be >= 0 and finite: %f", durationMs)
	}

	return &LinearSmoother{durationMs: durationMs}, nil
}

// Configure sets the sample rate. An in-flight ramp is restarted from the
// current value at the new rate.
func (s *LinearSmoother) Configure(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("param: sample rate must be > 0 and finite: %f", sampleRate)
	}

	s.sampleRate = sampleRate
	s.SetTarget(s.target)

	return nil
}

// SetTarget starts a ramp from the current value to v.
func (s *LinearSmoother) SetTarget(v float64) {
	s.target = v

	steps := int(s.durationMs / 1000 * s.sampleRate)
	if steps <= 0 || s.current == v {
		s.SetImmediate(v)
		return
	}

	s.step = (v - s.current) / float64(steps)
	s.remaining = steps
}

// SetImmediate jumps to v without ramping.
func (s *LinearSmoother) SetImmediate(v float64) {
	s.current = v
	s.target = v
	s.step = 0
	s.remaining = 0
}

// Next advances the ramp by one sample and returns the new value.
func (s *LinearSmoother) Next() float64 {
	if s.remaining <= 0 {
		return s.current
	}

	s.remaining--
	if s.remaining == 0 {
		s.current = s.target
	} else {
		s.current += s.step
	}

	return s.current
}

// Current returns the present value without advancing.
func (s *LinearSmoother) Current() float64 { return s.current }

// Done reports whether the ramp has reached its target.
func (s *LinearSmoother) Done() bool { return s.remaining <= 0 }

// ExponentialSmoother approaches the target with a one-pole lag. The
// time constant is the time to decay the remaining distance by 1/e.
type ExponentialSmoother struct {
	timeConstantMs float64

	coeff   float64
	current float64
	target  float64
}

// exponentialSnap is the remaining-distance threshold below which the
// ramp snaps to its target exactly.
const exponentialSnap = 1e-9

// NewExponentialSmoother constructs a one-pole lag smoother. The time
// constant must be finite and >= 0; 0 disables smoothing.
func NewExponentialSmoother(timeConstantMs float64) (*ExponentialSmoother, error) {
	if !core.IsFinite(timeConstantMs) || timeConstantMs < 0 {
		return nil, fmt.Errorf("param: time constant must be >= 0 and finite: %f", timeConstantMs)
	}

	return &ExponentialSmoother{timeConstantMs: timeConstantMs}, nil
}

// Configure sets the sample rate and recomputes the lag coefficient.
func (s *ExponentialSmoother) Configure(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("param: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if s.timeConstantMs == 0 {
		s.coeff = 0
		return nil
	}

	tauSamples := s.timeConstantMs / 1000 * sampleRate
	s.coeff = math.Exp(-1 / tauSamples)

	return nil
}

// SetTarget starts a lag from the current value to v.
func (s *ExponentialSmoother) SetTarget(v float64) {
	s.target = v

	if s.coeff == 0 {
		s.current = v
	}
}

// SetImmediate jumps to v without ramping.
func (s *ExponentialSmoother) SetImmediate(v float64) {
	s.current = v
	s.target = v
}

// Next advances the lag by one sample and returns the new value.
func (s *ExponentialSmoother) Next() float64 {
	diff := s.target - s.current
	if math.Abs(diff) <= exponentialSnap {
		s.current = s.target
		return s.current
	}

	s.current = s.target - diff*s.coeff

	return s.current
}

// Current returns the present value without advancing.
func (s *ExponentialSmoother) Current() float64 { return s.current }

// Done reports whether the lag has effectively reached its target.
func (s *ExponentialSmoother) Done() bool {
	return math.Abs(s.target-s.current) <= exponentialSnap
}
