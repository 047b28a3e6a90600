package mix

import (
	"math"

	"github.com/cwbudde/algo-fdn/dsp/frame"
)

// The butterfly below needs a power-of-two channel count.
var _ = [1]struct{}{}[frame.Channels&(frame.Channels-1)]

var hadamardScale = 1 / math.Sqrt(frame.Channels)

// Hadamard applies the orthonormal Hadamard matrix to f in place using the
// fast Walsh–Hadamard butterfly. With the 1/sqrt(C) normalisation the
// transform is its own inverse.
func Hadamard(f *frame.Frame) {
	for h := 1; h < frame.Channels; h *= 2 {
		for i := 0; i < frame.Channels; i += 2 * h {
			for j := i; j < i+h; j++ {
				a, b := f[j], f[j+h]
				f[j], f[j+h] = a+b, a-b
			}
		}
	}

	frame.Scale(f, hadamardScale)
}
