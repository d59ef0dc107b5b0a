package ladder

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ladder/dsp/core"
)

const (
	// thermalVoltage is the transistor thermal voltage Vt of the
	// differential-pair model. Fixed circuit constant, not a user control.
	thermalVoltage = 0.026
	twoVt          = 2 * thermalVoltage
	twoVtRecip     = 1 / twoVt

	defaultCutoffHz  = 1000.0
	defaultResonance = 0.0
	defaultDrive     = 0.0
	defaultOutput    = 0.0

	minCutoffHz = 20.0

	// driveGainSpan and outputGainSpan map the normalized [0,1] controls
	// onto [1,15] linear gains; resonanceGainMax maps resonance onto the
	// [0,4] feedback scale of the ladder equations.
	driveGainSpan    = 14.0
	outputGainSpan   = 14.0
	resonanceGainMax = 4.0

	stateLimit = 32.0
)

// Topology selects the number of active ladder stages.
type Topology int

const (
	// TopologyFourPole runs all four cascaded stages (24 dB/octave).
	TopologyFourPole Topology = iota
	// TopologyTwoPole runs only the first two stages (12 dB/octave) with
	// the resonance tap moved to stage 2.
	TopologyTwoPole
)

func (t Topology) String() string {
	switch t {
	case TopologyFourPole:
		return "four_pole"
	case TopologyTwoPole:
		return "two_pole"
	default:
		return "unknown"
	}
}

// Poles returns the number of active stages.
func (t Topology) Poles() int {
	if t == TopologyTwoPole {
		return 2
	}

	return 4
}

// Pass selects the filter response type. Only PassLow is implemented;
// PassHigh is reserved for a future high-pass ladder arrangement and is
// rejected by constructors and setters until then.
type Pass int

const (
	PassLow Pass = iota
	PassHigh
)

func (p Pass) String() string {
	switch p {
	case PassLow:
		return "lowpass"
	case PassHigh:
		return "highpass"
	default:
		return "unknown"
	}
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	cutoffHz  float64
	resonance float64
	drive     float64
	output    float64
	topology  Topology
	pass      Pass
	bypassed  bool
}

func defaultConfig() config {
	return config{
		cutoffHz:  defaultCutoffHz,
		resonance: defaultResonance,
		drive:     defaultDrive,
		output:    defaultOutput,
		topology:  TopologyFourPole,
		pass:      PassLow,
	}
}

// WithCutoffHz sets the cutoff frequency in Hz. Must be finite and >= 20;
// the constructor additionally requires cutoff < Nyquist.
func WithCutoffHz(cutoffHz float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
			return err
		}

		cfg.cutoffHz = cutoffHz

		return nil
	}
}

// WithResonance sets normalized resonance in [0, 1].
func WithResonance(resonance float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(resonance, 0, 1, "resonance"); err != nil {
			return err
		}

		cfg.resonance = resonance

		return nil
	}
}

// WithDrive sets normalized input drive in [0, 1].
func WithDrive(drive float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(drive, 0, 1, "drive"); err != nil {
			return err
		}

		cfg.drive = drive

		return nil
	}
}

// WithOutput sets normalized output level in [0, 1].
func WithOutput(output float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(output, 0, 1, "output"); err != nil {
			return err
		}

		cfg.output = output

		return nil
	}
}

// WithTopology selects the 2-pole or 4-pole ladder arrangement.
func WithTopology(topology Topology) Option {
	return func(cfg *config) error {
		if !validTopology(topology) {
			return fmt.Errorf("ladder: invalid topology: %d", topology)
		}

		cfg.topology = topology

		return nil
	}
}

// WithPass selects the response type. Only PassLow is accepted.
func WithPass(pass Pass) Option {
	return func(cfg *config) error {
		if err := validatePass(pass); err != nil {
			return err
		}

		cfg.pass = pass

		return nil
	}
}

// WithBypassed sets the trivial pass-through mode.
func WithBypassed(bypassed bool) Option {
	return func(cfg *config) error {
		cfg.bypassed = bypassed
		return nil
	}
}

// State contains explicit ladder runtime state for save/restore workflows.
//
// Stage holds the output of each cascaded one-pole stage. TanhLast caches
// the saturated value of stages 1-3 only; the final stage's saturation is
// always recomputed inline, never cached. The asymmetry is part of the
// model and load-bearing for its pole placement.
type State struct {
	Stage    [4]float64
	TanhLast [3]float64
}

// Filter is a nonlinear transistor-ladder low-pass processor for one
// audio channel. Methods must not be called concurrently.
type Filter struct {
	sampleRate float64

	cutoffHz  float64
	resonance float64
	drive     float64
	output    float64
	topology  Topology
	pass      Pass
	bypassed  bool

	g             float64
	stageGain     float64
	driveGain     float64
	resonanceGain float64
	outputGain    float64

	state State
}

// New constructs a ladder filter for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("ladder: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		sampleRate: sampleRate,
		cutoffHz:   cfg.cutoffHz,
		resonance:  cfg.resonance,
		drive:      cfg.drive,
		output:     cfg.output,
		topology:   cfg.topology,
		pass:       cfg.pass,
		bypassed:   cfg.bypassed,
	}

	if err := f.rebuild(); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the cutoff frequency in Hz.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns normalized resonance in [0, 1].
func (f *Filter) Resonance() float64 { return f.resonance }

// Drive returns normalized drive in [0, 1].
func (f *Filter) Drive() float64 { return f.drive }

// Output returns normalized output level in [0, 1].
func (f *Filter) Output() float64 { return f.output }

// Topology returns the active ladder arrangement.
func (f *Filter) Topology() Topology { return f.topology }

// PassMode returns the response type (always PassLow for now).
func (f *Filter) PassMode() Pass { return f.pass }

// Bypassed reports whether pass-through mode is active.
func (f *Filter) Bypassed() bool { return f.bypassed }

// IntegratorGain returns the current one-pole integrator coefficient g.
func (f *Filter) IntegratorGain() float64 { return f.g }

// SetSampleRate updates the sample rate and rebuilds coefficients.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("ladder: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate

	return f.rebuild()
}

// SetCutoffHz updates the cutoff frequency and rebuilds coefficients.
func (f *Filter) SetCutoffHz(cutoffHz float64) error {
	if err := validateFiniteRange(cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
		return err
	}

	f.cutoffHz = cutoffHz

	return f.rebuild()
}

// SetResonance updates normalized resonance. The ladder feedback scale is
// 4*resonance.
func (f *Filter) SetResonance(resonance float64) error {
	if err := validateFiniteRange(resonance, 0, 1, "resonance"); err != nil {
		return err
	}

	f.resonance = resonance
	f.resonanceGain = resonanceGainMax * resonance

	return nil
}

// SetDrive updates normalized drive. The tanh pre-amp gain is 1+14*drive.
func (f *Filter) SetDrive(drive float64) error {
	if err := validateFiniteRange(drive, 0, 1, "drive"); err != nil {
		return err
	}

	f.drive = drive
	f.driveGain = 1 + driveGainSpan*drive

	return nil
}

// SetOutput updates normalized output level. The linear output gain is
// 1+14*output.
func (f *Filter) SetOutput(output float64) error {
	if err := validateFiniteRange(output, 0, 1, "output"); err != nil {
		return err
	}

	f.output = output
	f.outputGain = 1 + outputGainSpan*output

	return nil
}

// SetTopology switches between 2-pole and 4-pole operation. Stages the new
// topology does not advance are zeroed so that stale energy from the old
// topology cannot re-enter the feedback path later.
func (f *Filter) SetTopology(topology Topology) error {
	if !validTopology(topology) {
		return fmt.Errorf("ladder: invalid topology: %d", topology)
	}

	if topology == f.topology {
		return nil
	}

	f.topology = topology
	f.state.Stage[2] = 0
	f.state.Stage[3] = 0
	f.state.TanhLast[1] = 0
	f.state.TanhLast[2] = 0

	return nil
}

// SetPass updates the response type. Only PassLow is accepted.
func (f *Filter) SetPass(pass Pass) error {
	if err := validatePass(pass); err != nil {
		return err
	}

	f.pass = pass

	return nil
}

// SetBypassed enables or disables the trivial pass-through mode. Ladder
// state is left untouched so toggling bypass is click-free apart from the
// filter's own transient.
func (f *Filter) SetBypassed(bypassed bool) {
	f.bypassed = bypassed
}

// Reset clears ladder state. Call on stream (de)activation boundaries.
func (f *Filter) Reset() {
	f.state = State{}
}

// State returns a copy of the current processor state.
func (f *Filter) State() State {
	return f.state
}

// SetState restores an externally saved processor state.
func (f *Filter) SetState(state State) error {
	if !stateIsFinite(state) {
		return fmt.Errorf("ladder: state contains NaN or Inf")
	}

	f.state = state

	return nil
}

// ProcessSample processes one sample with the current coefficients.
func (f *Filter) ProcessSample(input float64) float64 {
	if !core.IsFinite(input) {
		input = 0
	}

	if f.bypassed {
		return input
	}

	return sanitizeOutput(f.processCore(input))
}

// ProcessSampleAt processes one sample with a per-sample cutoff value, for
// sample-accurate cutoff automation. The cutoff is clamped into
// [20 Hz, 0.49*sampleRate] instead of reported as an error, keeping the
// call allocation- and branch-misuse-free on the audio path; prefer
// SetCutoffHz + ProcessSample when cutoff changes at block rate.
func (f *Filter) ProcessSampleAt(input, cutoffHz float64) float64 {
	if !core.IsFinite(cutoffHz) {
		cutoffHz = f.cutoffHz
	}

	cutoffHz = core.Clamp(cutoffHz, minCutoffHz, 0.49*f.sampleRate)
	if cutoffHz != f.cutoffHz {
		f.cutoffHz = cutoffHz
		f.g = 1 - mathExp(-2*math.Pi*cutoffHz/f.sampleRate)
		f.stageGain = twoVt * f.g
	}

	return f.ProcessSample(input)
}

// ProcessInPlace processes a mono buffer in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// ProcessTo processes src into dst. Both slices must have the same length.
func (f *Filter) ProcessTo(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

func (f *Filter) processCore(input float64) float64 {
	s := &f.state

	x := mathTanh(input * f.driveGain)

	if f.topology == TopologyTwoPole {
		// Two active stages; resonance taps stage 2. The unused upper
		// stages are neither read nor written here.
		tanhStage1 := mathTanh(x - 4*f.resonanceGain*s.Stage[1]*twoVtRecip)
		s.Stage[0] = clipState(s.Stage[0] + f.stageGain*(tanhStage1-s.TanhLast[0]))
		s.TanhLast[0] = mathTanh(s.Stage[0] * twoVtRecip)

		s.Stage[1] = clipState(s.Stage[1] + f.stageGain*(s.TanhLast[0]-mathTanh(s.Stage[1]*twoVtRecip)))

		return mathTanh(f.outputGain * s.Stage[1] * f.driveGain)
	}

	tanhStage1 := mathTanh(x - 4*f.resonanceGain*s.Stage[3]*twoVtRecip)
	s.Stage[0] = clipState(s.Stage[0] + f.stageGain*(tanhStage1-s.TanhLast[0]))
	s.TanhLast[0] = mathTanh(s.Stage[0] * twoVtRecip)

	s.Stage[1] = clipState(s.Stage[1] + f.stageGain*(s.TanhLast[0]-s.TanhLast[1]))
	s.TanhLast[1] = mathTanh(s.Stage[1] * twoVtRecip)

	s.Stage[2] = clipState(s.Stage[2] + f.stageGain*(s.TanhLast[1]-s.TanhLast[2]))
	s.TanhLast[2] = mathTanh(s.Stage[2] * twoVtRecip)

	// The last stage's saturation is computed inline; only the raw stage
	// output feeds back into the next sample's resonance term.
	s.Stage[3] = clipState(s.Stage[3] + f.stageGain*(s.TanhLast[2]-mathTanh(s.Stage[3]*twoVtRecip)))

	return mathTanh(f.outputGain * s.Stage[3] * f.driveGain)
}

func (f *Filter) rebuild() error {
	if err := validateFiniteRange(f.cutoffHz, minCutoffHz, math.Inf(1), "cutoff"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.resonance, 0, 1, "resonance"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.drive, 0, 1, "drive"); err != nil {
		return err
	}

	if err := validateFiniteRange(f.output, 0, 1, "output"); err != nil {
		return err
	}

	if !validTopology(f.topology) {
		return fmt.Errorf("ladder: invalid topology: %d", f.topology)
	}

	if err := validatePass(f.pass); err != nil {
		return err
	}

	nyquist := f.sampleRate * 0.5
	if f.cutoffHz >= nyquist {
		return fmt.Errorf("ladder: cutoff must be < Nyquist (%f Hz): %f", nyquist, f.cutoffHz)
	}

	f.g = 1 - mathExp(-2*math.Pi*f.cutoffHz/f.sampleRate)
	f.stageGain = twoVt * f.g
	f.driveGain = 1 + driveGainSpan*f.drive
	f.resonanceGain = resonanceGainMax * f.resonance
	f.outputGain = 1 + outputGainSpan*f.output

	return nil
}

func validTopology(topology Topology) bool {
	return topology == TopologyFourPole || topology == TopologyTwoPole
}

func validatePass(pass Pass) error {
	switch pass {
	case PassLow:
		return nil
	case PassHigh:
		return fmt.Errorf("ladder: high-pass response is not implemented")
	default:
		return fmt.Errorf("ladder: invalid pass mode: %d", pass)
	}
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !core.IsFinite(value) {
		return fmt.Errorf("ladder: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("ladder: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}

func sanitizeOutput(value float64) float64 {
	if !core.IsFinite(value) {
		return 0
	}

	return value
}

func clipState(value float64) float64 {
	if value > stateLimit {
		return stateLimit
	}

	if value < -stateLimit {
		return -stateLimit
	}

	return value
}

func stateIsFinite(state State) bool {
	for _, v := range state.Stage {
		if !core.IsFinite(v) {
			return false
		}
	}

	for _, v := range state.TanhLast {
		if !core.IsFinite(v) {
			return false
		}
	}

	return true
}
