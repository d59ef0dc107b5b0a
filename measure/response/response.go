// Package response measures steady-state magnitude responses of
// sample-by-sample processors by driving them with sinusoids and reading
// the driven bin from a windowed FFT.
//
// The measurement includes whatever nonlinearity the processor applies at
// the chosen excitation amplitude; keep the amplitude small to probe the
// near-linear small-signal response.
package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ladder/dsp/core"
)

// Errors returned by measurement functions.
var (
	ErrNilProcessor      = errors.New("response: processor must not be nil")
	ErrInvalidFrequency  = errors.New("response: frequency must be positive and below Nyquist")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

const (
	defaultFFTSize   = 8192
	defaultAmplitude = 0.01
	defaultWarmup    = 2 * defaultFFTSize
)

// Processor is one audio channel of per-sample DSP under measurement.
type Processor interface {
	ProcessSample(input float64) float64
	Reset()
}

// Option mutates measurement configuration.
type Option func(*config) error

type config struct {
	fftSize   int
	amplitude float64
	warmup    int
}

func defaultMeasureConfig() config {
	return config{
		fftSize:   defaultFFTSize,
		amplitude: defaultAmplitude,
		warmup:    defaultWarmup,
	}
}

// WithFFTSize sets the analysis window length. Must be a power of two >= 64.
func WithFFTSize(size int) Option {
	return func(cfg *config) error {
		if size < 64 || size&(size-1) != 0 {
			return fmt.Errorf("response: fft size must be a power of two >= 64: %d", size)
		}

		cfg.fftSize = size

		return nil
	}
}

// WithAmplitude sets the excitation sine amplitude. Must be > 0 and finite.
func WithAmplitude(amplitude float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(amplitude) || amplitude <= 0 {
			return fmt.Errorf("response: amplitude must be > 0 and finite: %f", amplitude)
		}

		cfg.amplitude = amplitude

		return nil
	}
}

// WithWarmup sets the number of samples processed and discarded before
// the analysis window, letting the processor reach steady state.
func WithWarmup(samples int) Option {
	return func(cfg *config) error {
		if samples < 0 {
			return fmt.Errorf("response: warmup must be >= 0: %d", samples)
		}

		cfg.warmup = samples

		return nil
	}
}

// MagnitudeAt measures the magnitude response of p at freqHz: the ratio
// of steady-state output to input amplitude at the excitation frequency.
//
// The processor is Reset before measurement. The excitation frequency is
// snapped to the nearest FFT bin so the driven component lands on a bin
// center; the snapped deviation is below 1% for the default window at
// audio rates.
func MagnitudeAt(p Processor, freqHz, sampleRate float64, opts ...Option) (float64, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return 0, err
	}

	if p == nil {
		return 0, ErrNilProcessor
	}

	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	if !core.IsFinite(freqHz) || freqHz <= 0 || freqHz >= sampleRate/2 {
		return 0, ErrInvalidFrequency
	}

	n := cfg.fftSize

	bin := int(math.Round(freqHz * float64(n) / sampleRate))
	if bin < 1 {
		bin = 1
	}

	if bin > n/2-1 {
		bin = n/2 - 1
	}

	binFreq := float64(bin) * sampleRate / float64(n)
	step := 2 * math.Pi * binFreq / sampleRate

	p.Reset()

	phase := 0.0
	for range cfg.warmup {
		p.ProcessSample(cfg.amplitude * math.Sin(phase))
		phase += step
	}

	captured := make([]complex128, n)
	for i := range captured {
		y := p.ProcessSample(cfg.amplitude * math.Sin(phase))
		phase += step

		// Hann window.
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
		captured[i] = complex(y*w, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	bins := make([]complex128, n)
	if err := plan.Forward(bins, captured); err != nil {
		return 0, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	half := n/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)

	for i := range half {
		re[i] = real(bins[i])
		im[i] = imag(bins[i])
	}

	mags := make([]float64, half)
	vecmath.Magnitude(mags, re, im)

	// Single-sided amplitude with Hann coherent gain 0.5.
	outAmp := mags[bin] * 2 / (float64(n) * 0.5)

	return outAmp / cfg.amplitude, nil
}

// Sweep measures the magnitude response of p over a frequency grid,
// resetting the processor before each point.
func Sweep(p Processor, freqs []float64, sampleRate float64, opts ...Option) ([]float64, error) {
	out := make([]float64, len(freqs))

	for i, freq := range freqs {
		mag, err := MagnitudeAt(p, freq, sampleRate, opts...)
		if err != nil {
			return nil, fmt.Errorf("response: sweep point %d (%g Hz): %w", i, freq, err)
		}

		out[i] = mag
	}

	return out, nil
}

// LogFrequencies returns count log-spaced frequencies in [startHz, endHz].
func LogFrequencies(startHz, endHz float64, count int) ([]float64, error) {
	if !core.IsFinite(startHz) || !core.IsFinite(endHz) || startHz <= 0 || startHz >= endHz {
		return nil, fmt.Errorf("response: invalid frequency span [%g, %g]", startHz, endHz)
	}

	if count < 2 {
		return nil, fmt.Errorf("response: count must be >= 2: %d", count)
	}

	out := make([]float64, count)
	ratio := math.Log(endHz / startHz)

	for i := range out {
		out[i] = startHz * math.Exp(ratio*float64(i)/float64(count-1))
	}

	return out, nil
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultMeasureConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}
