//go:build !fastmath

package ir

import "github.com/cwbudde/algo-fdn/dsp/core"

// powerToDB converts a positive power to dB using standard library math.
func powerToDB(p float64) float64 {
	return core.PowerToDB(p)
}
