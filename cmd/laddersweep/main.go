// Command laddersweep renders the transistor-ladder filter offline.
//
// In its default mode it drives the filter with a linear chirp, optionally
// automating the cutoff with a smoothed log-skewed ramp, and writes the
// result to a 16-bit WAV file. With --table it prints the filter's
// small-signal magnitude response over a log frequency grid instead.
//
// Examples:
//
//	laddersweep --cutoff 800 --resonance 0.6 --out sweep.wav
//	laddersweep --cutoff 200 --cutoff-end 8000 --drive 0.5
//	laddersweep --table --cutoff 1000 --two-pole
package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-ladder/dsp/core"
	"github.com/cwbudde/algo-ladder/dsp/filter/ladder"
	"github.com/cwbudde/algo-ladder/dsp/param"
	"github.com/cwbudde/algo-ladder/dsp/signal"
	"github.com/cwbudde/algo-ladder/measure/response"
)

type cli struct {
	SampleRate float64 `help:"Sample rate in Hz." default:"48000"`
	Cutoff     float64 `help:"Cutoff frequency in Hz." default:"1000"`
	CutoffEnd  float64 `help:"Automate cutoff toward this target in Hz (0 disables)." default:"0"`
	Resonance  float64 `help:"Resonance in [0, 1]." default:"0.3"`
	Drive      float64 `help:"Drive in [0, 1]." default:"0.2"`
	Output     float64 `help:"Output level in [0, 1]." default:"0"`
	TwoPole    bool    `help:"Use the 12 dB/octave two-pole topology."`
	Duration   float64 `help:"Render length in seconds." default:"4"`
	Out        string  `help:"Output WAV path." type:"path" default:"laddersweep.wav"`
	Table      bool    `help:"Print a magnitude response table instead of rendering."`
	Points     int     `help:"Number of response table points." default:"25"`
}

func main() {
	args := &cli{}
	kong.Parse(args,
		kong.Name("laddersweep"),
		kong.Description("Offline renderer and response inspector for the transistor-ladder filter."),
		kong.UsageOnError(),
	)

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, "laddersweep:", err)
		os.Exit(1)
	}
}

func run(args *cli) error {
	topology := ladder.TopologyFourPole
	if args.TwoPole {
		topology = ladder.TopologyTwoPole
	}

	filter, err := ladder.New(args.SampleRate,
		ladder.WithCutoffHz(args.Cutoff),
		ladder.WithResonance(args.Resonance),
		ladder.WithDrive(args.Drive),
		ladder.WithOutput(args.Output),
		ladder.WithTopology(topology),
	)
	if err != nil {
		return err
	}

	if args.Table {
		return printResponseTable(filter, args)
	}

	return render(filter, args)
}

func printResponseTable(filter *ladder.Filter, args *cli) error {
	freqs, err := response.LogFrequencies(20, 0.45*args.SampleRate, args.Points)
	if err != nil {
		return err
	}

	mags, err := response.Sweep(filter, freqs, args.SampleRate)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "frequency\tmagnitude\tgain\t")

	for i, freq := range freqs {
		fmt.Fprintf(w, "%s\t%.5f\t%.2f dB\t\n",
			param.FormatHzThenKHz(freq, 1), mags[i], core.LinearToDB(mags[i]))
	}

	return w.Flush()
}

func render(filter *ladder.Filter, args *cli) error {
	if args.Duration <= 0 {
		return fmt.Errorf("duration must be > 0: %f", args.Duration)
	}

	samples := int(args.Duration * args.SampleRate)

	gen := signal.NewGenerator(core.WithSampleRate(args.SampleRate))

	input, err := gen.Chirp(30, 0.35*args.SampleRate, 0.8, samples)
	if err != nil {
		return err
	}

	out := make([]float64, samples)

	if args.CutoffEnd > 0 {
		out, err = renderAutomated(filter, args, input)
		if err != nil {
			return err
		}
	} else {
		filter.ProcessTo(out, input)
	}

	return writeWAV(args.Out, out, int(args.SampleRate))
}

// renderAutomated ramps the cutoff from its initial value to the
// requested target over the whole render, sample-accurately, through a
// log-skewed smoothed parameter.
func renderAutomated(filter *ladder.Filter, args *cli, input []float64) ([]float64, error) {
	rng, err := param.NewSkewedRange(20, 0.45*args.SampleRate, 0.25)
	if err != nil {
		return nil, err
	}

	smoother, err := param.NewExponentialSmoother(args.Duration * 1000 / 4)
	if err != nil {
		return nil, err
	}

	cutoff, err := param.NewFloat("cutoff", rng, smoother, args.Cutoff)
	if err != nil {
		return nil, err
	}

	if err := cutoff.Configure(args.SampleRate); err != nil {
		return nil, err
	}

	cutoff.Set(args.CutoffEnd)

	out := make([]float64, len(input))
	for i, x := range input {
		out[i] = filter.ProcessSampleAt(x, cutoff.Next())
	}

	return out, nil
}

func writeWAV(path string, data []float64, sampleRate int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := wav.NewEncoder(file, sampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(data)),
	}

	for i, v := range data {
		buf.Data[i] = int(math.Round(core.Clamp(v, -1, 1) * 32767))
	}

	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}
