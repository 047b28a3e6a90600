package delay

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned when a delay line is requested with fewer
// than one sample of storage.
var ErrInvalidLength = errors.New("delay: length must be >= 1")

// Line is a circular buffer implementing a pure delay of Len() samples.
//
// Within one processing step call Read before Write: the value passed to the
// n-th Write is returned by the (n+Len())-th Read. Until the buffer has
// been filled once, Read returns silence.
type Line struct {
	buffer []float64
	pos    int
}

// New allocates a delay line holding length samples, initialised to zero.
func New(length int) (*Line, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	return &Line{buffer: make([]float64, length)}, nil
}

// Len returns the delay in samples.
func (l *Line) Len() int { return len(l.buffer) }

// Read returns the sample at the cursor without advancing it.
func (l *Line) Read() float64 {
	return l.buffer[l.pos]
}

// Write stores x at the cursor and advances the cursor.
func (l *Line) Write(x float64) {
	l.buffer[l.pos] = x

	l.pos++
	if l.pos == len(l.buffer) {
		l.pos = 0
	}
}

// Process reads the delayed sample, then writes x.
func (l *Line) Process(x float64) float64 {
	y := l.Read()
	l.Write(x)

	return y
}

// Energy returns the sum of squares of the samples currently stored.
func (l *Line) Energy() float64 {
	e := 0.0
	for _, v := range l.buffer {
		e += v * v
	}

	return e
}

// Reset clears the buffer to silence and rewinds the cursor.
func (l *Line) Reset() {
	clear(l.buffer)
	l.pos = 0
}
