package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fdn/dsp/frame"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFrameNearlyEqual fails t if any channel of got and want differs by
// more than eps. step identifies the frame in the failure message.
func RequireFrameNearlyEqual(t *testing.T, step int, got, want frame.Frame, eps float64) {
	t.Helper()
	for c := range got {
		if diff := math.Abs(got[c] - want[c]); diff > eps {
			t.Fatalf("frame %d channel %d: got %v, want %v (diff %v > eps %v)", step, c, got[c], want[c], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// WindowEnergies sums frame energy over consecutive windows of size
// samples starting at offset. A trailing partial window is dropped.
func WindowEnergies(frames []frame.Frame, offset, size int) []float64 {
	if size <= 0 || offset < 0 {
		return nil
	}
	var out []float64
	for start := offset; start+size <= len(frames); start += size {
		e := 0.0
		for _, f := range frames[start : start+size] {
			e += frame.Energy(f)
		}
		out = append(out, e)
	}
	return out
}
