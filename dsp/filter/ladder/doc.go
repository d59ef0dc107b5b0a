// Package ladder provides a nonlinear transistor-ladder low-pass filter
// with switchable 2-pole and 4-pole topologies.
//
// The model is the classic Moog ladder: a cascade of one-pole integrator
// stages with tanh saturation between stages and a resonance feedback tap
// from the last active stage back to the input. Feedback uses an explicit
// one-sample-delayed approximation rather than a zero-delay-feedback
// solver, trading a small amount of tuning accuracy for a cheap,
// allocation-free per-sample update.
//
// Parameters follow the normalized control layout of the hardware-style
// effect this package models: cutoff in Hz, resonance/drive/output in
// [0, 1]. Drive acts as a tanh pre-amp into the ladder and is re-applied
// at the output stage; the exact mappings are documented on the setters.
//
// All processing is stateful, deterministic, and single-threaded per
// Filter instance. Use Stereo (or one Filter per channel) for
// multi-channel audio.
package ladder
