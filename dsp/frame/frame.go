package frame

// Channels is the number of channels carried by every [Frame].
const Channels = 8

// Frame holds one time step of audio, one sample per channel.
type Frame [Channels]float64

// FromMono returns a frame with x copied into every channel.
func FromMono(x float64) Frame {
	var f Frame
	for c := range f {
		f[c] = x
	}

	return f
}

// FromStereo spreads a stereo pair over all channels: even channels carry
// left, odd channels carry right.
func FromStereo(left, right float64) Frame {
	var f Frame
	for c := range f {
		if c%2 == 0 {
			f[c] = left
		} else {
			f[c] = right
		}
	}

	return f
}

// Stereo folds the frame back to a stereo pair by averaging the even
// (left) and odd (right) channels. It is the inverse of [FromStereo].
func (f Frame) Stereo() (left, right float64) {
	for c, v := range f {
		if c%2 == 0 {
			left += v
		} else {
			right += v
		}
	}

	const half = Channels / 2

	return left / half, right / half
}

// Mono returns the mean of all channels.
func (f Frame) Mono() float64 {
	return Sum(f) / Channels
}

// Sum returns the sum of all channel samples.
func Sum(f Frame) float64 {
	s := 0.0
	for _, v := range f {
		s += v
	}

	return s
}

// Energy returns the sum of squared channel samples.
func Energy(f Frame) float64 {
	e := 0.0
	for _, v := range f {
		e += v * v
	}

	return e
}

// Scale multiplies every channel of f by g.
func Scale(f *Frame, g float64) {
	for c := range f {
		f[c] *= g
	}
}

// MulAdd writes ga*a + gb*b into dst, channel by channel.
// dst may alias a or b.
func MulAdd(dst *Frame, a Frame, ga float64, b Frame, gb float64) {
	for c := range dst {
		dst[c] = ga*a[c] + gb*b[c]
	}
}
