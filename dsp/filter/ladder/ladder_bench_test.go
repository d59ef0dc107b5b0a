package ladder

import (
	"math"
	"testing"
)

func BenchmarkProcessSample(b *testing.B) {
	tests := []struct {
		name     string
		topology Topology
	}{
		{name: "four_pole", topology: TopologyFourPole},
		{name: "two_pole", topology: TopologyTwoPole},
	}

	for _, tc := range tests {
		b.Run(tc.name, func(b *testing.B) {
			f, err := New(48000,
				WithTopology(tc.topology),
				WithCutoffHz(1800),
				WithResonance(0.6),
				WithDrive(0.4),
			)
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			in := 0.0
			step := 2 * math.Pi * 220 / 48000

			b.ReportAllocs()
			b.ResetTimer()

			var sink float64
			for range b.N {
				sink = f.ProcessSample(math.Sin(in))
				in += step
			}

			_ = sink
		})
	}
}

func BenchmarkProcessSampleAt(b *testing.B) {
	f, err := New(48000, WithCutoffHz(1800), WithResonance(0.6))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	in := 0.0
	step := 2 * math.Pi * 220 / 48000

	b.ReportAllocs()
	b.ResetTimer()

	var sink float64
	for i := range b.N {
		cutoff := 500 + float64(i%1000)
		sink = f.ProcessSampleAt(math.Sin(in), cutoff)
		in += step
	}

	_ = sink
}

func BenchmarkProcessInPlace(b *testing.B) {
	f, err := New(48000, WithCutoffHz(1800), WithResonance(0.6))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	buf := make([]float64, 1024)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * 220 * float64(i) / 48000)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		f.ProcessInPlace(buf)
	}
}
