package main

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/cwbudde/algo-fdn/dsp/frame"
	"github.com/cwbudde/algo-fdn/measure/ir"
	"github.com/cwbudde/algo-fdn/measure/level"
)

// maxSpectrumFFT bounds the FFT used for the spectral flatness figure.
const maxSpectrumFFT = 1 << 17

// RenderCmd renders the response to a unit impulse on channel 0.
type RenderCmd struct {
	ReverbFlags `embed:""`

	SampleRate int     `name:"sample-rate" default:"48000" help:"Sample rate in Hz"`
	Seconds    float64 `default:"3" help:"Length of the rendered response in seconds"`
	BitDepth   int     `name:"bit-depth" default:"24" enum:"16,24,32" help:"PCM bit depth (16, 24 or 32)"`
	Normalize  float64 `default:"-1" help:"Peak level in dBFS after normalization; 0 or above disables"`

	Output string `arg:"" name:"out.wav" type:"path" help:"Output WAV file"`
}

// renderResult is the rendered response and what was measured on it.
type renderResult struct {
	left, right []float64
	mono        []float64
	envelope    []float64
	metrics     ir.Metrics
	crossing    float64
	flatness    float64
	tailLength  int
	decayGain   float64
	gain        float64
	levels      [2]level.Stats
}

func (c *RenderCmd) Run() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}

	if !(c.Seconds > 0) {
		return fmt.Errorf("length must be positive, got %g s", c.Seconds)
	}

	res, err := c.render()
	if err != nil {
		return err
	}

	if c.Normalize < 0 {
		peak := math.Max(res.levels[0].Peak, res.levels[1].Peak)
		g := level.NormalizeGain(peak, c.Normalize)
		scaleInPlace(res.left, g)
		scaleInPlace(res.right, g)
		res.gain = g
		res.levels[0] = level.Calculate(res.left)
		res.levels[1] = level.Calculate(res.right)
	}

	if err := writeWAV(c.Output, c.SampleRate, c.BitDepth, res.left, res.right); err != nil {
		return err
	}

	printRenderReport(c, res)

	return nil
}

func (c *RenderCmd) render() (*renderResult, error) {
	sr := float64(c.SampleRate)

	r, err := c.build(sr)
	if err != nil {
		return nil, err
	}

	n := int(math.Round(c.Seconds * sr))
	res := &renderResult{
		left:       make([]float64, n),
		right:      make([]float64, n),
		mono:       make([]float64, n),
		envelope:   make([]float64, n),
		tailLength: r.TailLength(),
		decayGain:  r.DecayGain(),
		gain:       1,
	}

	var in frame.Frame
	in[0] = 1

	for i := range n {
		out := r.Process(in)
		in[0] = 0

		res.left[i], res.right[i] = out.Stereo()
		res.mono[i] = out.Mono()
		res.envelope[i] = math.Sqrt(frame.Energy(out))
	}

	res.levels[0] = level.Calculate(res.left)
	res.levels[1] = level.Calculate(res.right)

	a := ir.NewAnalyzer(sr)

	// A short render may not decay far enough; the report shows what it can.
	if m, err := a.Analyze(res.mono); err == nil {
		res.metrics = m
	}

	if res.tailLength <= n {
		if t, err := a.DecayCrossingTime(res.envelope, res.tailLength, 1e-3); err == nil {
			res.crossing = t
		}
	}

	if pow, err := ir.PowerResponse(res.mono, spectrumSize(n)); err == nil {
		res.flatness = ir.SpectralFlatness(pow)
	}

	return res, nil
}

// spectrumSize returns the smallest power of two covering n samples,
// capped at maxSpectrumFFT.
func spectrumSize(n int) int {
	if n <= 2 {
		return 2
	}

	size := 1 << bits.Len(uint(n-1))

	return min(size, maxSpectrumFFT)
}

func scaleInPlace(x []float64, g float64) {
	for i := range x {
		x[i] *= g
	}
}
