package ladder

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ladder/internal/testutil"
)

func TestStereoMatchesTwoMonoFilters(t *testing.T) {
	s, err := NewStereo(48000, WithCutoffHz(1500), WithResonance(0.4))
	if err != nil {
		t.Fatalf("NewStereo() error = %v", err)
	}

	left, err := New(48000, WithCutoffHz(1500), WithResonance(0.4))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	right, err := New(48000, WithCutoffHz(1500), WithResonance(0.4))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := range 256 {
		l := math.Sin(2 * math.Pi * float64(i) / 37)
		r := math.Sin(2 * math.Pi * float64(i) / 23)

		gotL, gotR := s.ProcessSample(l, r)

		wantL := left.ProcessSample(l)
		wantR := right.ProcessSample(r)

		if gotL != wantL || gotR != wantR {
			t.Fatalf("sample %d: stereo mismatch: (%v, %v) vs (%v, %v)", i, gotL, gotR, wantL, wantR)
		}
	}
}

func TestStereoChannelIsolation(t *testing.T) {
	s, err := NewStereo(48000, WithCutoffHz(800), WithResonance(0.7))
	if err != nil {
		t.Fatalf("NewStereo() error = %v", err)
	}

	noise := testutil.DeterministicNoise(23, 1, 512)
	for _, x := range noise {
		s.ProcessSample(x, 0)
	}

	// A silent right channel must stay silent regardless of left activity.
	if st := s.Right().State(); st != (State{}) {
		t.Fatalf("right channel state disturbed by left input: %+v", st)
	}

	s.Reset()

	if st := s.Left().State(); st != (State{}) {
		t.Fatalf("left channel state not cleared by Reset: %+v", st)
	}
}

func TestStereoFrames(t *testing.T) {
	s1, err := NewStereo(48000, WithCutoffHz(2500))
	if err != nil {
		t.Fatalf("NewStereo() error = %v", err)
	}

	s2, err := NewStereo(48000, WithCutoffHz(2500))
	if err != nil {
		t.Fatalf("NewStereo() error = %v", err)
	}

	left := testutil.DeterministicSine(220, 48000, 0.7, 128)
	right := testutil.DeterministicSine(440, 48000, 0.7, 128)

	frames := make([][2]float64, len(left))
	for i := range frames {
		frames[i] = [2]float64{left[i], right[i]}
	}

	s1.ProcessInPlace(left, right)
	s2.ProcessFramesInPlace(frames)

	for i := range frames {
		if frames[i][0] != left[i] || frames[i][1] != right[i] {
			t.Fatalf("frame %d: interleaved mismatch: %v vs (%v, %v)",
				i, frames[i], left[i], right[i])
		}
	}
}
