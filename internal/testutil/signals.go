// Package testutil provides deterministic signals and tolerance assertions
// for the reverb tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-fdn/dsp/frame"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// NoiseFrames generates length frames of independent white noise per channel.
func NoiseFrames(seed int64, amplitude float64, length int) []frame.Frame {
	out := make([]frame.Frame, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		for c := range out[i] {
			out[i][c] = (rng.Float64()*2 - 1) * amplitude
		}
	}
	return out
}

// ImpulseFrames returns length frames that are silent except for a unit
// sample on channel ch of the first frame.
func ImpulseFrames(length, ch int) []frame.Frame {
	out := make([]frame.Frame, length)
	if length > 0 && ch >= 0 && ch < frame.Channels {
		out[0][ch] = 1
	}
	return out
}

// Channel extracts channel ch from a frame sequence.
func Channel(frames []frame.Frame, ch int) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = f[ch]
	}
	return out
}
