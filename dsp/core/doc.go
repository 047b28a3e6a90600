// Package core holds small numeric helpers shared by the reverb stages and
// the measurement code.
package core
