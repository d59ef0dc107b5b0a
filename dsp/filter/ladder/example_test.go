package ladder_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ladder/dsp/filter/ladder"
)

func ExampleNew_filterSweep() {
	f, err := ladder.New(48000,
		ladder.WithCutoffHz(200),
		ladder.WithResonance(0.6),
		ladder.WithDrive(0.3),
	)
	if err != nil {
		panic(err)
	}

	// Open the filter over one second, sample-accurately.
	peak := 0.0
	for i := range 48000 {
		cutoff := 200 + float64(i)/48000*7800
		saw := 2*math.Mod(float64(i)*110/48000, 1) - 1

		y := f.ProcessSampleAt(saw, cutoff)
		if a := math.Abs(y); a > peak {
			peak = a
		}
	}

	fmt.Println("bounded:", peak < 1)
	// Output:
	// bounded: true
}

func ExampleNewStereo() {
	s, err := ladder.NewStereo(48000,
		ladder.WithCutoffHz(1200),
		ladder.WithTopology(ladder.TopologyTwoPole),
	)
	if err != nil {
		panic(err)
	}

	left := make([]float64, 64)
	right := make([]float64, 64)
	for i := range left {
		left[i] = math.Sin(2 * math.Pi * 220 * float64(i) / 48000)
		right[i] = math.Sin(2 * math.Pi * 330 * float64(i) / 48000)
	}

	s.ProcessInPlace(left, right)

	fmt.Println("channels independent:", left[32] != right[32])
	// Output:
	// channels independent: true
}

func ExampleFilter_Reset() {
	f, err := ladder.New(48000, ladder.WithCutoffHz(800), ladder.WithResonance(0.9))
	if err != nil {
		panic(err)
	}

	for i := range 256 {
		f.ProcessSample(math.Sin(2 * math.Pi * 440 * float64(i) / 48000))
	}

	f.Reset()

	fmt.Println("silent after reset:", f.ProcessSample(0) == 0)
	// Output:
	// silent after reset: true
}
