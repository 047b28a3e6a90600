package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestToPCM(t *testing.T) {
	tests := []struct {
		x     float64
		depth int
		want  int
	}{
		{0, 16, 0},
		{0.5, 16, 16384},
		{-1, 16, -32768},
		{1, 16, 32767},
		{2.5, 16, 32767},
		{-3, 24, -8388608},
		{math.NaN(), 24, 0},
		{0.25, 32, 1 << 29},
	}

	for _, tt := range tests {
		if got := toPCM(tt.x, tt.depth); got != tt.want {
			t.Errorf("toPCM(%v, %d) = %d, want %d", tt.x, tt.depth, got, tt.want)
		}
	}
}

func TestDeinterleave(t *testing.T) {
	ch := deinterleave([]int{16384, -32768, 0, 8192}, 2, 16)
	if len(ch) != 2 || len(ch[0]) != 2 {
		t.Fatalf("shape = %d×%d, want 2×2", len(ch), len(ch[0]))
	}
	if ch[0][0] != 0.5 || ch[1][0] != -1 || ch[0][1] != 0 || ch[1][1] != 0.25 {
		t.Fatalf("channels = %v", ch)
	}

	eight := deinterleave([]int{128, 192, 0}, 1, 8)
	if eight[0][0] != 0 || eight[0][1] != 0.5 || eight[0][2] != -1 {
		t.Fatalf("8-bit channel = %v", eight[0])
	}
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	left := []float64{0, 0.5, -0.25, 0.125, -1}
	right := []float64{0.75, -0.5, 0, 0.0625, 0.5}

	if err := writeWAV(path, 44100, 24, left, right); err != nil {
		t.Fatalf("writeWAV: %v", err)
	}

	src, err := readWAV(path)
	if err != nil {
		t.Fatalf("readWAV: %v", err)
	}

	if src.sampleRate != 44100 || src.bitDepth != 24 || len(src.channels) != 2 {
		t.Fatalf("format = %d Hz, %d bit, %d channels", src.sampleRate, src.bitDepth, len(src.channels))
	}
	if src.frames() != len(left) {
		t.Fatalf("frames = %d, want %d", src.frames(), len(left))
	}

	for i := range left {
		if src.channels[0][i] != left[i] || src.channels[1][i] != right[i] {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)",
				i, src.channels[0][i], src.channels[1][i], left[i], right[i])
		}
	}
}

func TestWriteWAVRejectsMismatchedChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := writeWAV(path, 48000, 16, []float64{0}, nil); !errors.Is(err, errChannelMismatch) {
		t.Fatalf("error = %v, want errChannelMismatch", err)
	}
}

func TestSourceUpmix(t *testing.T) {
	mono := &source{channels: [][]float64{{0.5}}}
	if f := mono.at(0); f.Mono() != 0.5 {
		t.Fatalf("mono upmix = %v", f)
	}

	stereo := &source{channels: [][]float64{{0.2}, {-0.4}}}
	l, r := stereo.at(0).Stereo()
	if l != 0.2 || r != -0.4 {
		t.Fatalf("stereo round trip = (%v, %v)", l, r)
	}

	if f := stereo.at(1); f.Mono() != 0 {
		t.Fatalf("past the end = %v, want silence", f)
	}
}

func TestSpectrumSize(t *testing.T) {
	for n, want := range map[int]int{1: 2, 3: 4, 1024: 1024, 1025: 2048, 1 << 20: maxSpectrumFFT} {
		if got := spectrumSize(n); got != want {
			t.Errorf("spectrumSize(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestRenderMeasuresRequestedDecay(t *testing.T) {
	c := &RenderCmd{
		ReverbFlags: ReverbFlags{RoomSize: 50, RT60: 1, Wet: 1, Steps: 1, Geometry: 1.5},
		SampleRate:  48000,
		Seconds:     1.6,
	}

	res, err := c.render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if res.crossing < 0.8 || res.crossing > 1.2 {
		t.Fatalf("-60 dB crossing = %.3f s, want ~1 s", res.crossing)
	}
	if res.metrics.RT60 < 0.75 || res.metrics.RT60 > 1.25 {
		t.Fatalf("RT60 = %.3f s, want ~1 s", res.metrics.RT60)
	}
	if res.levels[0].Length != 76800 {
		t.Fatalf("rendered %d frames, want 76800", res.levels[0].Length)
	}
}

func TestOutputDepth(t *testing.T) {
	for in, want := range map[int]int{8: 16, 12: 16, 16: 16, 20: 24, 24: 24, 32: 32} {
		if got := outputDepth(in); got != want {
			t.Errorf("outputDepth(%d) = %d, want %d", in, got, want)
		}
	}
}

// writeUnsigned8 writes a mono 8-bit WAV file; data holds unsigned samples.
func writeUnsigned8(t *testing.T, path string, sampleRate int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 8, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 8,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
}

func TestProcessEightBitInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	const sampleRate = 8000

	data := make([]int, 800)
	for i := range data {
		data[i] = 128
	}
	data[0] = 255

	writeUnsigned8(t, in, sampleRate, data)

	c := &ProcessCmd{
		ReverbFlags: ReverbFlags{RoomSize: 20, RT60: 0.3, Dry: 1, Wet: 0.5, Steps: 1, Geometry: 1.5},
		Tail:        0.5,
		Input:       in,
		Output:      out,
	}
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := readWAV(out)
	if err != nil {
		t.Fatalf("readWAV(output): %v", err)
	}

	if got.bitDepth != 16 || got.sampleRate != sampleRate || len(got.channels) != 2 {
		t.Fatalf("output format = %d bit, %d Hz, %d channels; want 16 bit, %d Hz, 2 channels",
			got.bitDepth, got.sampleRate, len(got.channels), sampleRate)
	}
	if want := len(data) + sampleRate/2; got.frames() != want {
		t.Fatalf("output frames = %d, want %d", got.frames(), want)
	}

	// The first output frame is the dry impulse: 127/128 on both sides.
	if want := 127.0 / 128; math.Abs(got.channels[0][0]-want) > 1e-4 || math.Abs(got.channels[1][0]-want) > 1e-4 {
		t.Fatalf("first frame = (%v, %v), want %v", got.channels[0][0], got.channels[1][0], want)
	}
}

func TestProcessKeepsSupportedInputDepth(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")

	left := []float64{0.5, 0, 0, 0}
	right := []float64{-0.5, 0, 0, 0}
	if err := writeWAV(in, 16000, 24, left, right); err != nil {
		t.Fatalf("writeWAV: %v", err)
	}

	c := &ProcessCmd{
		ReverbFlags: ReverbFlags{RoomSize: 5, RT60: 0.1, Dry: 1, Wet: 0, Steps: 1, Geometry: 1.5},
		Input:       in,
		Output:      out,
	}
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := readWAV(out)
	if err != nil {
		t.Fatalf("readWAV(output): %v", err)
	}
	if got.bitDepth != 24 || got.frames() != len(left) {
		t.Fatalf("output = %d bit, %d frames; want 24 bit, %d frames", got.bitDepth, got.frames(), len(left))
	}
	if got.channels[0][0] != 0.5 || got.channels[1][0] != -0.5 {
		t.Fatalf("dry-only first frame = (%v, %v), want (0.5, -0.5)", got.channels[0][0], got.channels[1][0])
	}
}
