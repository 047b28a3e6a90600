package ir

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// MagnitudeResponse returns |H(k)| for bins 0..fftSize/2 of the impulse
// response. The response is truncated or zero-padded to fftSize samples and
// its last quarter is faded out with a half-Hann taper so the onset stays
// untouched.
func MagnitudeResponse(ir []float64, fftSize int) ([]float64, error) {
	re, im, err := halfSpectrum(ir, fftSize)
	if err != nil {
		return nil, err
	}

	mag := make([]float64, len(re))
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

// PowerResponse returns |H(k)|² for bins 0..fftSize/2 of the tapered
// impulse response, as MagnitudeResponse.
func PowerResponse(ir []float64, fftSize int) ([]float64, error) {
	re, im, err := halfSpectrum(ir, fftSize)
	if err != nil {
		return nil, err
	}

	pow := make([]float64, len(re))
	vecmath.Power(pow, re, im)

	return pow, nil
}

// SpectralFlatness returns the ratio of the geometric to the arithmetic
// mean of a power spectrum, in (0, 1]. Zero bins are skipped. A dense,
// smooth reverb tail scores high; isolated resonances score low.
func SpectralFlatness(power []float64) float64 {
	var logSum, sum float64

	n := 0
	for _, p := range power {
		if p <= 0 {
			continue
		}
		logSum += math.Log(p)
		sum += p
		n++
	}

	if n == 0 {
		return 0
	}

	return math.Exp(logSum/float64(n)) / (sum / float64(n))
}

func halfSpectrum(ir []float64, fftSize int) (re, im []float64, err error) {
	if len(ir) == 0 {
		return nil, nil, ErrEmptyIR
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	n := min(len(ir), fftSize)

	windowed := make([]float64, n)
	copy(windowed, ir[:n])
	vecmath.MulBlockInPlace(windowed, fadeOut(n))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("ir: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, fftSize)
	for i, v := range windowed {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, nil, fmt.Errorf("ir: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re = make([]float64, bins)
	im = make([]float64, bins)
	for k := range bins {
		re[k] = real(buf[k])
		im[k] = imag(buf[k])
	}

	return re, im, nil
}

// fadeOut returns a window of length n that is 1 over the first three
// quarters and falls to 0 along a half-Hann curve over the last quarter.
func fadeOut(n int) []float64 {
	w := make([]float64, n)
	taper := n / 4
	flat := n - taper

	for i := range w {
		if i < flat {
			w[i] = 1
			continue
		}
		x := float64(i-flat+1) / float64(taper)
		w[i] = 0.5 + 0.5*math.Cos(math.Pi*x)
	}

	return w
}
