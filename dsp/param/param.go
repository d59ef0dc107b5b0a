package param

import (
	"fmt"

	"github.com/cwbudde/algo-ladder/dsp/core"
)

// Float is a named continuous parameter bundling a value range with a
// smoother. Set* methods accept new targets at control rate; Next reads
// one smoothed plain value per audio sample.
type Float struct {
	name     string
	rng      Range
	smoother Smoother
}

// NewFloat constructs a named parameter. The smoother may be nil, in
// which case values change instantaneously.
func NewFloat(name string, rng Range, smoother Smoother, defaultPlain float64) (*Float, error) {
	if name == "" {
		return nil, fmt.Errorf("param: name must not be empty")
	}

	if rng == nil {
		return nil, fmt.Errorf("param: %s: range must not be nil", name)
	}

	if !core.IsFinite(defaultPlain) {
		return nil, fmt.Errorf("param: %s: default must be finite: %v", name, defaultPlain)
	}

	if smoother == nil {
		smoother = &immediate{}
	}

	smoother.SetImmediate(rng.ClampPlain(defaultPlain))

	return &Float{name: name, rng: rng, smoother: smoother}, nil
}

// Name returns the display name.
func (p *Float) Name() string { return p.name }

// Range returns the plain value range.
func (p *Float) Range() Range { return p.rng }

// Configure sets the sample rate on the underlying smoother.
func (p *Float) Configure(sampleRate float64) error {
	return p.smoother.Configure(sampleRate)
}

// Set ramps toward a plain value, clamped to the range.
func (p *Float) Set(plain float64) {
	if !core.IsFinite(plain) {
		return
	}

	p.smoother.SetTarget(p.rng.ClampPlain(plain))
}

// SetNormalized ramps toward a normalized [0, 1] control position.
func (p *Float) SetNormalized(normalized float64) {
	if !core.IsFinite(normalized) {
		return
	}

	p.smoother.SetTarget(p.rng.Denormalize(normalized))
}

// SetImmediate jumps to a plain value without ramping.
func (p *Float) SetImmediate(plain float64) {
	if !core.IsFinite(plain) {
		return
	}

	p.smoother.SetImmediate(p.rng.ClampPlain(plain))
}

// Next returns the next smoothed plain value. Call once per sample.
func (p *Float) Next() float64 { return p.smoother.Next() }

// Value returns the current smoothed plain value without advancing.
func (p *Float) Value() float64 { return p.smoother.Current() }

// Normalized returns the current control position in [0, 1].
func (p *Float) Normalized() float64 { return p.rng.Normalize(p.smoother.Current()) }

// Done reports whether the smoother has settled on its target.
func (p *Float) Done() bool { return p.smoother.Done() }

// immediate is the no-op smoother used when none is supplied.
type immediate struct {
	value float64
}

func (s *immediate) Configure(float64) error { return nil }
func (s *immediate) SetTarget(v float64)     { s.value = v }
func (s *immediate) SetImmediate(v float64)  { s.value = v }
func (s *immediate) Next() float64           { return s.value }
func (s *immediate) Current() float64        { return s.value }
func (s *immediate) Done() bool              { return true }
