// Package ir analyses impulse responses rendered from the reverb.
//
// Decay metrics follow ISO 3382 and are read from the Schroeder backward
// integral of the squared response:
//
//   - RT60 (from T30, falling back to T20), EDT, T20, T30
//   - C50/C80 clarity, D50/D80 definition, centre time
//
// Besides the standard metrics the package measures the windowed-RMS
// -60 dB crossing of a tail ([Analyzer.DecayCrossing]), a dB decay envelope
// ([Analyzer.EnvelopeDB]) and the magnitude response of the tail
// ([MagnitudeResponse]), which exposes metallic colouration as sharp peaks.
//
// # Usage
//
//	analyzer := ir.NewAnalyzer(48000)
//	metrics, err := analyzer.Analyze(impulseResponse)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", metrics.RT60, metrics.C80)
//
// Building with the fastmath tag evaluates the decay envelope with the
// approximate logarithm from algo-approx.
package ir
