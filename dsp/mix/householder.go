package mix

import "github.com/cwbudde/algo-fdn/dsp/frame"

// householderScale is 2/C: the reflection f - 2(f·v)v with v = 1/sqrt(C)
// reduces to subtracting (2/C)·sum(f) from every channel.
const householderScale = 2.0 / frame.Channels

// Householder replaces f with its reflection about the normalised all-ones
// vector. Applying it twice restores the input frame.
func Householder(f *frame.Frame) {
	d := frame.Sum(*f) * householderScale
	for c := range f {
		f[c] -= d
	}
}
