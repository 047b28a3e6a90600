//go:build fastmath

package ir

import "github.com/meko-christian/algo-approx"

// ln10 is the natural logarithm of 10, used for log base conversions.
const ln10 = 2.302585092994045684017991454684

// powerToDB converts a positive power to dB using fast approximation.
// Uses the identity: log10(x) = ln(x) / ln(10)
func powerToDB(p float64) float64 {
	return 10 * approx.FastLog(p) / ln10
}
