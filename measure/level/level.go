package level

import (
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
)

// FullScale is the largest magnitude that survives conversion to PCM.
const FullScale = 1.0

// Stats holds level statistics of one signal.
type Stats struct {
	Length        int
	RMS           float64
	RMSDB         float64
	Peak          float64 // max |x|
	PeakDB        float64
	PeakPos       int
	CrestFactor   float64 // peak / RMS
	CrestFactorDB float64
	Clipped       int // samples with |x| > FullScale
}

func emptyStats() Stats {
	return Stats{
		RMSDB:         math.Inf(-1),
		PeakDB:        math.Inf(-1),
		CrestFactorDB: math.Inf(-1),
	}
}

// Calculate meters a whole signal at once.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Update(signal)

	return m.Result()
}

// Meter accumulates level statistics over consecutive blocks.
// The zero value is ready to use.
type Meter struct {
	n       int
	sumSq   float64
	peak    float64
	peakPos int
	clipped int
}

// NewMeter returns an empty Meter.
func NewMeter() *Meter {
	return &Meter{}
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}

		if a > FullScale {
			m.clipped++
		}

		m.sumSq += x * x
		m.n++
	}
}

// Result returns the statistics of everything seen since the last Reset.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return emptyStats()
	}

	rms := math.Sqrt(m.sumSq / float64(m.n))

	var crest, crestDB float64
	if rms > 0 {
		crest = m.peak / rms
		crestDB = core.LinearToDB(crest)
	}

	return Stats{
		Length:        m.n,
		RMS:           rms,
		RMSDB:         core.LinearToDB(rms),
		Peak:          m.peak,
		PeakDB:        core.LinearToDB(m.peak),
		PeakPos:       m.peakPos,
		CrestFactor:   crest,
		CrestFactorDB: crestDB,
		Clipped:       m.clipped,
	}
}

// Reset clears the accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}

// NormalizeGain returns the gain that brings peak to targetDB. A silent
// signal gets unity gain.
func NormalizeGain(peak, targetDB float64) float64 {
	if !(peak > 0) {
		return 1
	}

	return core.DBToLinear(targetDB) / peak
}
