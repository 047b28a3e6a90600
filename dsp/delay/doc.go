// Package delay provides the fixed-length integer delay line used by the
// reverb stages.
//
// A [Line] owns a circular buffer allocated once at construction. Reading
// and writing never allocate, block or fail.
package delay
