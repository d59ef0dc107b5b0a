// Package param provides host-side parameter plumbing for real-time DSP
// controls: plain/normalized range mapping (linear and log-skewed),
// per-sample value smoothing, and display formatting.
//
// The DSP cores in this module deliberately consume already-smoothed
// scalar values; this package is the collaborator that produces them.
// Smoothers are allocation-free per sample and safe to call from the
// audio path once configured.
package param
