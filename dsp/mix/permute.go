package mix

import "github.com/cwbudde/algo-fdn/dsp/frame"

// Polarity is a per-channel sign pattern. A true entry inverts that channel.
type Polarity [frame.Channels]bool

// Permutation maps output channel c to input channel p[c].
type Permutation [frame.Channels]int

// FlipPolarity negates every channel selected by p.
func FlipPolarity(f *frame.Frame, p Polarity) {
	for c, flip := range p {
		if flip {
			f[c] = -f[c]
		}
	}
}

// Shuffle reorders f so that f[c] takes the previous value of f[p[c]].
// p must be a permutation of 0..C-1.
func Shuffle(f *frame.Frame, p Permutation) {
	src := *f
	for c, from := range p {
		f[c] = src[from]
	}
}

// Valid reports whether p is a permutation of 0..C-1.
func (p Permutation) Valid() bool {
	var seen [frame.Channels]bool
	for _, from := range p {
		if from < 0 || from >= frame.Channels || seen[from] {
			return false
		}
		seen[from] = true
	}

	return true
}
