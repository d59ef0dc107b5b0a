package param

import (
	"math"
	"testing"
)

func TestLinearSmootherRampDuration(t *testing.T) {
	s, err := NewLinearSmoother(10)
	if err != nil {
		t.Fatalf("NewLinearSmoother() error = %v", err)
	}

	if err := s.Configure(48000); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	s.SetImmediate(0)
	s.SetTarget(1)

	// 10 ms at 48 kHz is 480 samples.
	steps := 0
	for !s.Done() {
		s.Next()

		steps++
		if steps > 481 {
			t.Fatal("ramp did not finish in expected step count")
		}
	}

	if steps != 480 {
		t.Fatalf("ramp finished in %d steps, want 480", steps)
	}

	if s.Current() != 1 {
		t.Fatalf("Current() after ramp = %v, want 1", s.Current())
	}
}

func TestLinearSmootherMonotone(t *testing.T) {
	s, err := NewLinearSmoother(5)
	if err != nil {
		t.Fatalf("NewLinearSmoother() error = %v", err)
	}

	if err := s.Configure(44100); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	s.SetImmediate(2)
	s.SetTarget(-1)

	prev := s.Current()
	for !s.Done() {
		v := s.Next()
		if v > prev {
			t.Fatalf("downward ramp went up: %v after %v", v, prev)
		}

		prev = v
	}

	if prev != -1 {
		t.Fatalf("ramp ended at %v, want -1", prev)
	}
}

func TestLinearSmootherZeroDurationIsImmediate(t *testing.T) {
	s, err := NewLinearSmoother(0)
	if err != nil {
		t.Fatalf("NewLinearSmoother() error = %v", err)
	}

	if err := s.Configure(48000); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	s.SetTarget(3.5)

	if !s.Done() || s.Next() != 3.5 {
		t.Fatal("zero-duration smoother should jump immediately")
	}
}

func TestLinearSmootherValidation(t *testing.T) {
	if _, err := NewLinearSmoother(-1); err == nil {
		t.Fatal("expected error for negative duration")
	}

	s, err := NewLinearSmoother(10)
	if err != nil {
		t.Fatalf("NewLinearSmoother() error = %v", err)
	}

	if err := s.Configure(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestExponentialSmootherConverges(t *testing.T) {
	s, err := NewExponentialSmoother(1)
	if err != nil {
		t.Fatalf("NewExponentialSmoother() error = %v", err)
	}

	if err := s.Configure(48000); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	s.SetImmediate(0)
	s.SetTarget(1)

	// After one time constant (48 samples at 1 ms) the remaining distance
	// should be close to 1/e.
	var v float64
	for range 48 {
		v = s.Next()
	}

	if math.Abs((1-v)-1/math.E) > 0.02 {
		t.Fatalf("after one time constant remaining = %v, want ~1/e", 1-v)
	}

	for range 48 * 40 {
		s.Next()
	}

	if !s.Done() || s.Current() != 1 {
		t.Fatalf("smoother did not settle: %v", s.Current())
	}
}

func TestExponentialSmootherZeroTimeConstantIsImmediate(t *testing.T) {
	s, err := NewExponentialSmoother(0)
	if err != nil {
		t.Fatalf("NewExponentialSmoother() error = %v", err)
	}

	if err := s.Configure(48000); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	s.SetTarget(-2)

	if s.Next() != -2 {
		t.Fatal("zero time constant should jump immediately")
	}
}
