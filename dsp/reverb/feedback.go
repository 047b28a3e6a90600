package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/delay"
	"github.com/cwbudde/algo-fdn/dsp/frame"
	"github.com/cwbudde/algo-fdn/dsp/mix"
)

// Feedback is the recirculating core of the reverb: one delay line per
// channel, mixed through a Householder reflection and scaled by the decay
// gain on the way back in.
//
// Channel c is delayed by floor(2^(c/C)·base)+1 samples, where base is the
// requested delay in samples. The exponential stagger keeps channel lengths
// at irrational-looking ratios to each other; the extra sample is the write
// guard of the delay line.
//
// Because the mix is orthogonal, energy stored in the loop shrinks by at
// least decayGain² per pass: |decayGain| < 1 gives a decaying tail, 1 an
// undamped one.
type Feedback struct {
	delayMs    float64
	sampleRate float64
	decayGain  float64
	lines      [frame.Channels]*delay.Line
}

// NewFeedback builds the feedback network. decayGain magnitudes above 1
// are rejected with ErrUnstableDecay.
func NewFeedback(delayMs, decayGain, sampleRate float64) (*Feedback, error) {
	if !core.IsPositive(delayMs) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidDelay, delayMs)
	}

	if !core.IsPositive(sampleRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	if err := validateDecayGain(decayGain); err != nil {
		return nil, err
	}

	f := &Feedback{
		delayMs:    delayMs,
		sampleRate: sampleRate,
		decayGain:  decayGain,
	}

	base := delayMs * 0.001 * sampleRate
	for c := range f.lines {
		stagger := math.Pow(2, float64(c)/frame.Channels)
		l, err := delay.New(int(stagger*base) + 1)
		if err != nil {
			return nil, fmt.Errorf("reverb: feedback channel %d: %w", c, err)
		}
		f.lines[c] = l
	}

	return f, nil
}

// Process returns the delayed frame and feeds input plus the mixed, decayed
// delayed frame back into the delay lines. Input becomes audible after the
// channel's delay length.
func (f *Feedback) Process(in frame.Frame) frame.Frame {
	var delayed frame.Frame
	for c, l := range f.lines {
		delayed[c] = l.Read()
	}

	mixed := delayed
	mix.Householder(&mixed)

	for c, l := range f.lines {
		l.Write(core.FlushDenormals(in[c] + mixed[c]*f.decayGain))
	}

	return delayed
}

// Reset clears all delay buffers.
func (f *Feedback) Reset() {
	for _, l := range f.lines {
		l.Reset()
	}
}

// SetDecayGain changes the loop gain without touching the buffers.
func (f *Feedback) SetDecayGain(g float64) error {
	if err := validateDecayGain(g); err != nil {
		return err
	}

	f.decayGain = g

	return nil
}

// DecayGain returns the per-pass loop gain.
func (f *Feedback) DecayGain() float64 { return f.decayGain }

// DelayMs returns the base delay in milliseconds.
func (f *Feedback) DelayMs() float64 { return f.delayMs }

// Lengths returns the per-channel delay lengths in samples.
func (f *Feedback) Lengths() [frame.Channels]int {
	var out [frame.Channels]int
	for c, l := range f.lines {
		out[c] = l.Len()
	}

	return out
}

// MaxDelay returns the longest channel delay in samples.
func (f *Feedback) MaxDelay() int {
	m := 0
	for _, l := range f.lines {
		m = max(m, l.Len())
	}

	return m
}

// Energy returns the sum of squares of every sample held in the loop.
// With silent input it never increases while |decayGain| <= 1.
func (f *Feedback) Energy() float64 {
	e := 0.0
	for _, l := range f.lines {
		e += l.Energy()
	}

	return e
}

func validateDecayGain(g float64) error {
	if !core.IsFinite(g) || math.Abs(g) > 1 {
		return fmt.Errorf("%w: %f", ErrUnstableDecay, g)
	}

	return nil
}
