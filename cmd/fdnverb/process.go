package main

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/frame"
	"github.com/cwbudde/algo-fdn/measure/level"
)

// ProcessCmd runs a WAV file through the reverb and writes a stereo result.
type ProcessCmd struct {
	ReverbFlags `embed:""`

	Tail      float64 `default:"2" help:"Seconds of silence appended so the tail can ring out"`
	BitDepth  int     `name:"bit-depth" default:"0" enum:"0,16,24,32" help:"Output bit depth; 0 picks the smallest of 16, 24 or 32 that holds the input depth"`
	Normalize float64 `default:"0" help:"Peak level in dBFS after normalization; 0 or above disables"`

	Input  string `arg:"" name:"in.wav" type:"existingfile" help:"Input WAV file (mono or stereo)"`
	Output string `arg:"" name:"out.wav" type:"path" help:"Output WAV file"`
}

func (c *ProcessCmd) Run() error {
	if c.Tail < 0 || math.IsNaN(c.Tail) {
		return fmt.Errorf("tail must not be negative, got %g s", c.Tail)
	}

	src, err := readWAV(c.Input)
	if err != nil {
		return err
	}

	r, err := c.build(float64(src.sampleRate))
	if err != nil {
		return err
	}

	n := src.frames() + int(math.Round(c.Tail*float64(src.sampleRate)))
	left := make([]float64, n)
	right := make([]float64, n)

	for i := range n {
		out := r.Process(src.at(i))
		left[i], right[i] = out.Stereo()
	}

	gain := 1.0
	if c.Normalize < 0 {
		gain = level.NormalizeGain(math.Max(level.Calculate(left).Peak, level.Calculate(right).Peak), c.Normalize)
		scaleInPlace(left, gain)
		scaleInPlace(right, gain)
	}

	depth := c.BitDepth
	if depth == 0 {
		depth = outputDepth(src.bitDepth)
	}

	if err := writeWAV(c.Output, src.sampleRate, depth, left, right); err != nil {
		return err
	}

	printProcessReport(c, src, r.TailLength(), gain, [2]level.Stats{
		level.Calculate(left),
		level.Calculate(right),
	})

	return nil
}

// at returns input frame i upmixed to frame.Channels. Past the end of
// the input it returns silence.
func (s *source) at(i int) frame.Frame {
	if i >= s.frames() {
		return frame.Frame{}
	}

	if len(s.channels) == 1 {
		return frame.FromMono(s.channels[0][i])
	}

	return frame.FromStereo(s.channels[0][i], s.channels[1][i])
}
