// Package level meters the peak and RMS level of rendered audio.
//
// A [Meter] accumulates blocks of samples and reports [Stats] in linear and
// dB form. Samples whose magnitude exceeds full scale (1.0) are counted as
// clipped, which is what a fixed-point WAV writer would saturate.
package level
