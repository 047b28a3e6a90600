package ir

import "math"

// windowPowers returns the mean square of each complete window of size
// samples.
func windowPowers(ir []float64, size int) []float64 {
	out := make([]float64, 0, len(ir)/size)
	for start := 0; start+size <= len(ir); start += size {
		e := 0.0
		for _, v := range ir[start : start+size] {
			e += v * v
		}
		out = append(out, e/float64(size))
	}

	return out
}

// DecayCrossing returns the index of the first sample of the first window
// after the loudest one whose RMS level is below ratio times the loudest
// window's RMS. Windows are consecutive and windowSamples long; a trailing
// partial window is ignored. A ratio of 1e-3 measures the -60 dB point.
//
// ErrNoDecay is returned when no window falls below the threshold.
func (a *Analyzer) DecayCrossing(ir []float64, windowSamples int, ratio float64) (int, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	if windowSamples < 1 || windowSamples > len(ir) {
		return 0, ErrInvalidWindow
	}

	if !(ratio > 0 && ratio < 1) {
		return 0, ErrInvalidRatio
	}

	powers := windowPowers(ir, windowSamples)

	loudest := 0
	for k, p := range powers {
		if p > powers[loudest] {
			loudest = k
		}
	}

	threshold := powers[loudest] * ratio * ratio
	for k := loudest + 1; k < len(powers); k++ {
		if powers[k] < threshold {
			return k * windowSamples, nil
		}
	}

	return 0, ErrNoDecay
}

// DecayCrossingTime is DecayCrossing expressed in seconds.
func (a *Analyzer) DecayCrossingTime(ir []float64, windowSamples int, ratio float64) (float64, error) {
	idx, err := a.DecayCrossing(ir, windowSamples, ratio)
	if err != nil {
		return 0, err
	}

	return float64(idx) / a.SampleRate, nil
}

// EnvelopeDB returns the RMS level of each complete window in dB relative
// to full scale. Silent windows report -Inf.
func (a *Analyzer) EnvelopeDB(ir []float64, windowSamples int) ([]float64, error) {
	if err := a.check(ir); err != nil {
		return nil, err
	}

	if windowSamples < 1 || windowSamples > len(ir) {
		return nil, ErrInvalidWindow
	}

	env := windowPowers(ir, windowSamples)
	for k, p := range env {
		if p <= 0 {
			env[k] = math.Inf(-1)
			continue
		}
		env[k] = powerToDB(p)
	}

	return env, nil
}
