package reverb

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-fdn/dsp/frame"
	"github.com/cwbudde/algo-fdn/internal/testutil"
)

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func TestNextPrime(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 2}, {0, 2}, {2, 2}, {3, 3}, {4, 5}, {14, 17}, {185, 191}, {7919, 7919},
	}
	for _, tt := range tests {
		if got := nextPrime(tt.in); got != tt.want {
			t.Fatalf("nextPrime(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDiffusionLengthsArePairwiseCoprime(t *testing.T) {
	for _, tc := range []struct {
		roomMs, sampleRate float64
	}{
		{50, 48000}, {100, 44100}, {3, 8000}, {0.01, 48000}, {250, 96000},
	} {
		d, err := NewDiffuser(tc.roomMs, tc.sampleRate)
		if err != nil {
			t.Fatalf("NewDiffuser(%v, %v): %v", tc.roomMs, tc.sampleRate, err)
		}

		lengths := d.Lengths(0)
		for i := 0; i < frame.Channels; i++ {
			if lengths[i] < 1 {
				t.Fatalf("room %v: channel %d length %d", tc.roomMs, i, lengths[i])
			}
			if i > 0 && lengths[i] <= lengths[i-1] {
				t.Fatalf("room %v: lengths not strictly increasing: %v", tc.roomMs, lengths)
			}
			for j := i + 1; j < frame.Channels; j++ {
				if g := gcd(lengths[i], lengths[j]); g != 1 {
					t.Fatalf("room %v: lengths %d and %d share factor %d", tc.roomMs, lengths[i], lengths[j], g)
				}
			}
		}

		span := tc.roomMs * 0.001 * tc.sampleRate
		if span > 64 && float64(lengths[frame.Channels-1]) > span*1.1 {
			t.Fatalf("room %v: longest length %d exceeds span %v", tc.roomMs, lengths[frame.Channels-1], span)
		}
	}
}

func TestDiffuserKnownLengths(t *testing.T) {
	d, err := NewDiffuser(50, 48000)
	if err != nil {
		t.Fatalf("NewDiffuser: %v", err)
	}

	want := [frame.Channels]int{191, 373, 857, 1049, 1229, 1721, 1901, 2383}
	if got := d.Lengths(0); got != want {
		t.Fatalf("Lengths(0) = %v, want %v", got, want)
	}
}

func TestDiffuserSingleStageDelaysEachChannel(t *testing.T) {
	d, err := NewDiffuser(10, 8000)
	if err != nil {
		t.Fatalf("NewDiffuser: %v", err)
	}

	lengths := d.Lengths(0)
	longest := lengths[frame.Channels-1]

	var in frame.Frame
	for c := range in {
		in[c] = float64(c + 1)
	}

	for n := 0; n <= longest; n++ {
		x := frame.Frame{}
		if n == 0 {
			x = in
		}
		out := d.Process(x)
		for c, v := range out {
			want := 0.0
			if n == lengths[c] {
				want = in[c]
			}
			if v != want {
				t.Fatalf("step %d channel %d = %v, want %v", n, c, v, want)
			}
		}
	}
}

func TestDiffuserStepsHalveSpan(t *testing.T) {
	d, err := NewDiffuserSteps(80, 48000, 4)
	if err != nil {
		t.Fatalf("NewDiffuserSteps: %v", err)
	}
	if d.Steps() != 4 {
		t.Fatalf("Steps() = %d, want 4", d.Steps())
	}
	if d.RoomSize() != 80 {
		t.Fatalf("RoomSize() = %v, want 80", d.RoomSize())
	}

	for i := 1; i < d.Steps(); i++ {
		prev := d.Lengths(i - 1)[frame.Channels-1]
		cur := d.Lengths(i)[frame.Channels-1]
		ratio := float64(prev) / float64(cur)
		if ratio < 1.8 || ratio > 2.2 {
			t.Fatalf("stage %d longest %d vs stage %d longest %d: ratio %v, want ~2", i-1, prev, i, cur, ratio)
		}
	}

	if got := d.Lengths(9); got != ([frame.Channels]int{}) {
		t.Fatalf("Lengths(out of range) = %v, want zeros", got)
	}
}

func TestDiffuserCascadeIsLossless(t *testing.T) {
	d, err := NewDiffuserSteps(20, 48000, 3)
	if err != nil {
		t.Fatalf("NewDiffuserSteps: %v", err)
	}

	total := 0
	for i := 0; i < d.Steps(); i++ {
		total += d.Lengths(i)[frame.Channels-1]
	}

	energy := 0.0
	spread := 0
	for n := 0; n <= total; n++ {
		x := frame.Frame{}
		if n == 0 {
			x[2] = 1
		}
		out := d.Process(x)
		e := frame.Energy(out)
		if e > 0 {
			spread++
		}
		energy += e
	}

	if math.Abs(energy-1) > 1e-9 {
		t.Fatalf("output energy = %v, want 1", energy)
	}
	if spread < 8 {
		t.Fatalf("impulse reached only %d output frames, want diffusion over many", spread)
	}
}

func TestDiffuserReset(t *testing.T) {
	d, err := NewDiffuserSteps(5, 48000, 2)
	if err != nil {
		t.Fatalf("NewDiffuserSteps: %v", err)
	}

	in := testutil.NoiseFrames(11, 1, 600)
	first := make([]frame.Frame, len(in))
	for i, f := range in {
		first[i] = d.Process(f)
	}

	d.Reset()
	for i, f := range in {
		if got := d.Process(f); got != first[i] {
			t.Fatalf("frame %d differs after Reset", i)
		}
	}
}

func TestNewDiffuserValidation(t *testing.T) {
	tests := []struct {
		name       string
		roomMs, sr float64
		steps      int
		want       error
	}{
		{name: "zero room", roomMs: 0, sr: 48000, steps: 1, want: ErrInvalidRoomSize},
		{name: "nan room", roomMs: math.NaN(), sr: 48000, steps: 1, want: ErrInvalidRoomSize},
		{name: "negative rate", roomMs: 10, sr: -1, steps: 1, want: ErrInvalidSampleRate},
		{name: "zero steps", roomMs: 10, sr: 48000, steps: 0, want: ErrInvalidSteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDiffuserSteps(tt.roomMs, tt.sr, tt.steps); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
