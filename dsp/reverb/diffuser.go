package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/delay"
	"github.com/cwbudde/algo-fdn/dsp/frame"
	"github.com/cwbudde/algo-fdn/dsp/mix"
)

// goldenRatioConjugate spreads the per-channel jitter evenly over [0, 1).
const goldenRatioConjugate = 0.6180339887498949

// Fixed channel routing applied between cascaded diffusion stages.
var (
	stageShuffle  = mix.Permutation{3, 6, 1, 4, 7, 2, 5, 0}
	stagePolarity = mix.Polarity{false, true, true, false, true, false, false, true}
)

type diffusionStage struct {
	lines  [frame.Channels]*delay.Line
	mixing bool
}

func (s *diffusionStage) process(in frame.Frame) frame.Frame {
	var out frame.Frame
	for c, l := range s.lines {
		out[c] = l.Process(in[c])
	}

	if s.mixing {
		mix.Shuffle(&out, stageShuffle)
		mix.FlipPolarity(&out, stagePolarity)
		mix.Hadamard(&out)
	}

	return out
}

// Diffuser spreads each channel over time with one delay per channel before
// the signal enters the feedback loop.
//
// Channel c of a stage spanning R samples is delayed by the smallest prime
// not below R·(c+φc)/C, where φc = frac((c+1)·0.618…) places each channel
// at a different point inside its own R/C slot. Lengths within a stage are
// strictly increasing primes, so no two channels share a common factor.
type Diffuser struct {
	roomSizeMs float64
	sampleRate float64
	stages     []diffusionStage
}

// NewDiffuser builds a single-stage diffuser whose delays span roomSizeMs.
func NewDiffuser(roomSizeMs, sampleRate float64) (*Diffuser, error) {
	return NewDiffuserSteps(roomSizeMs, sampleRate, 1)
}

// NewDiffuserSteps builds a cascade of steps diffusion stages. Stage i spans
// roomSizeMs/2^i. When steps > 1 every stage mixes its channels after the
// delays; a single stage is a plain delay bank.
func NewDiffuserSteps(roomSizeMs, sampleRate float64, steps int) (*Diffuser, error) {
	if !core.IsPositive(roomSizeMs) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidRoomSize, roomSizeMs)
	}

	if !core.IsPositive(sampleRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	if steps < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSteps, steps)
	}

	d := &Diffuser{
		roomSizeMs: roomSizeMs,
		sampleRate: sampleRate,
		stages:     make([]diffusionStage, steps),
	}

	spanMs := roomSizeMs
	for i := range d.stages {
		lengths := diffusionLengths(spanMs * 0.001 * sampleRate)
		for c, n := range lengths {
			l, err := delay.New(n)
			if err != nil {
				return nil, fmt.Errorf("reverb: diffusion stage %d channel %d: %w", i, c, err)
			}
			d.stages[i].lines[c] = l
		}
		d.stages[i].mixing = steps > 1
		spanMs *= 0.5
	}

	return d, nil
}

// Process runs one frame through every stage.
func (d *Diffuser) Process(in frame.Frame) frame.Frame {
	out := in
	for i := range d.stages {
		out = d.stages[i].process(out)
	}

	return out
}

// Reset clears all delay buffers.
func (d *Diffuser) Reset() {
	for i := range d.stages {
		for _, l := range d.stages[i].lines {
			l.Reset()
		}
	}
}

// Steps returns the number of diffusion stages.
func (d *Diffuser) Steps() int { return len(d.stages) }

// RoomSize returns the span of the first stage in milliseconds.
func (d *Diffuser) RoomSize() float64 { return d.roomSizeMs }

// Lengths returns the per-channel delay lengths of stage step in samples.
// It returns zeros when step is out of range.
func (d *Diffuser) Lengths(step int) [frame.Channels]int {
	var out [frame.Channels]int
	if step < 0 || step >= len(d.stages) {
		return out
	}

	for c, l := range d.stages[step].lines {
		out[c] = l.Len()
	}

	return out
}

func diffusionLengths(spanSamples float64) [frame.Channels]int {
	var out [frame.Channels]int

	prev := 1
	for c := range out {
		_, jitter := math.Modf(float64(c+1) * goldenRatioConjugate)
		target := int(spanSamples * (float64(c) + jitter) / frame.Channels)
		out[c] = nextPrime(max(target, prev+1))
		prev = out[c]
	}

	return out
}

// nextPrime returns the smallest prime >= n.
func nextPrime(n int) int {
	if n <= 2 {
		return 2
	}

	if n%2 == 0 {
		n++
	}

	for !isPrime(n) {
		n += 2
	}

	return n
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}

	if n%2 == 0 {
		return n == 2
	}

	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}

	return true
}
