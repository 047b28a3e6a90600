package ir

import (
	"errors"
	"math"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidTime       = errors.New("ir: time must be positive")
	ErrInvalidWindow     = errors.New("ir: window must be at least one sample")
	ErrInvalidRatio      = errors.New("ir: ratio must be in (0, 1)")
	ErrInvalidFFTSize    = errors.New("ir: FFT size must be a power of two >= 2")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// schroederFloorDB is reported where the remaining energy is exactly zero.
const schroederFloorDB = -200.0

// Metrics holds impulse response analysis results.
type Metrics struct {
	RT60       float64 // reverberation time in seconds (T30, else T20)
	EDT        float64 // early decay time in seconds (0 to -10 dB)
	T20        float64 // RT from the -5 to -25 dB slope
	T30        float64 // RT from the -5 to -35 dB slope
	C50        float64 // clarity at 50 ms in dB
	C80        float64 // clarity at 80 ms in dB
	D50        float64 // definition at 50 ms (ratio 0-1)
	D80        float64 // definition at 80 ms (ratio 0-1)
	CenterTime float64 // energy centroid in seconds
	PeakIndex  int     // sample index of the absolute maximum
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}

	if !(a.SampleRate > 0) || math.IsInf(a.SampleRate, 0) {
		return ErrInvalidSampleRate
	}

	return nil
}

// Analyze computes all metrics. Everything except PeakIndex is measured
// from the absolute peak onwards, so leading silence is ignored.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	peak := peakIndex(ir)
	tail := ir[peak:]
	curve := schroeder(tail)

	m := Metrics{
		PeakIndex:  peak,
		EDT:        a.reverbTime(curve, 0, -10),
		T20:        a.reverbTime(curve, -5, -25),
		T30:        a.reverbTime(curve, -5, -35),
		CenterTime: a.centerTime(tail),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	m.D50, m.C50 = a.earlyLate(tail, 50)
	m.D80, m.C80 = a.earlyLate(tail, 80)

	return m, nil
}

// SchroederIntegral returns the backward-integrated energy decay curve in
// dB relative to the total energy:
//
//	S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return schroeder(ir), nil
}

// RT60 estimates the reverberation time from the T30 slope, or the T20
// slope when the response does not decay by 35 dB.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	curve := schroeder(ir)
	for _, span := range [][2]float64{{-5, -35}, {-5, -25}} {
		if rt := a.reverbTime(curve, span[0], span[1]); rt > 0 {
			return rt, nil
		}
	}

	return 0, ErrNoDecay
}

// Definition returns the fraction of energy arriving before timeMs.
func (a *Analyzer) Definition(ir []float64, timeMs float64) (float64, error) {
	if err := a.checkTimed(ir, timeMs); err != nil {
		return 0, err
	}

	d, _ := a.earlyLate(ir, timeMs)

	return d, nil
}

// Clarity returns the early-to-late energy ratio at timeMs in dB.
func (a *Analyzer) Clarity(ir []float64, timeMs float64) (float64, error) {
	if err := a.checkTimed(ir, timeMs); err != nil {
		return 0, err
	}

	_, c := a.earlyLate(ir, timeMs)

	return c, nil
}

// CenterTime returns the temporal energy centroid in seconds.
func (a *Analyzer) CenterTime(ir []float64) (float64, error) {
	if err := a.check(ir); err != nil {
		return 0, err
	}

	return a.centerTime(ir), nil
}

// FindImpulseStart returns the index of the first sample within 20 dB of
// the peak amplitude.
func (a *Analyzer) FindImpulseStart(ir []float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	threshold := 0.1 * math.Abs(ir[peakIndex(ir)])
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i, nil
		}
	}

	return 0, nil
}

func (a *Analyzer) checkTimed(ir []float64, timeMs float64) error {
	if err := a.check(ir); err != nil {
		return err
	}

	if !(timeMs > 0) {
		return ErrInvalidTime
	}

	return nil
}

func schroeder(ir []float64) []float64 {
	out := make([]float64, len(ir))

	acc := 0.0
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		out[i] = acc
	}

	total := out[0]
	if total <= 0 {
		return out
	}

	for i, e := range out {
		if e <= 0 {
			out[i] = schroederFloorDB
			continue
		}
		out[i] = 10 * math.Log10(e/total)
	}

	return out
}

// reverbTime fits a line to the Schroeder curve between startDB and endDB
// and extrapolates it to -60 dB. It returns 0 when the curve never spans
// the range or does not fall.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	first, last := -1, -1
	for i, v := range curve {
		if first < 0 && v <= startDB {
			first = i
		}
		if first >= 0 && v <= endDB {
			last = i
			break
		}
	}

	if first < 0 || last-first < 1 {
		return 0
	}

	slope := fitSlope(curve[first : last+1])
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

// fitSlope returns the least-squares slope of y against its index.
func fitSlope(y []float64) float64 {
	n := float64(len(y))

	var sx, sy, sxx, sxy float64
	for i, v := range y {
		x := float64(i)
		sx += x
		sy += v
		sxx += x * x
		sxy += x * v
	}

	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}

	return (n*sxy - sx*sy) / den
}

// earlyLate splits the energy at timeMs and returns the definition ratio
// and the clarity in dB.
func (a *Analyzer) earlyLate(ir []float64, timeMs float64) (definition, clarity float64) {
	boundary := int(math.Round(timeMs * 0.001 * a.SampleRate))
	boundary = max(0, min(boundary, len(ir)))

	var early, late float64
	for i, v := range ir {
		if i < boundary {
			early += v * v
		} else {
			late += v * v
		}
	}

	if total := early + late; total > 0 {
		definition = early / total
	}

	switch {
	case late == 0:
		clarity = math.Inf(1)
	case early == 0:
		clarity = math.Inf(-1)
	default:
		clarity = 10 * math.Log10(early/late)
	}

	return definition, clarity
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64
	for i, v := range ir {
		e := v * v
		num += float64(i) * e
		den += e
	}

	if den == 0 {
		return 0
	}

	return num / den / a.SampleRate
}

func peakIndex(ir []float64) int {
	idx, peak := 0, 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}

	return idx
}
