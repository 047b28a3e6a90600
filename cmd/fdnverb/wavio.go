package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

var (
	errNotWAV          = errors.New("not a valid WAV file")
	errUnsupportedWAV  = errors.New("unsupported WAV format")
	errChannelMismatch = errors.New("left and right channels differ in length")
)

// source is a decoded input file with samples scaled to [-1, 1).
type source struct {
	sampleRate int
	bitDepth   int
	channels   [][]float64
}

func (s *source) frames() int {
	if len(s.channels) == 0 {
		return 0
	}

	return len(s.channels[0])
}

// readWAV decodes a mono or stereo integer PCM file.
func readWAV(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, errNotWAV)
	}

	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%s: %w: format tag %d, want integer PCM", path, errUnsupportedWAV, d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	numCh := buf.Format.NumChannels
	if numCh < 1 || numCh > 2 {
		return nil, fmt.Errorf("%s: %w: %d channels, want 1 or 2", path, errUnsupportedWAV, numCh)
	}

	depth := int(d.BitDepth)
	if depth < 8 || depth > 32 {
		return nil, fmt.Errorf("%s: %w: %d bits", path, errUnsupportedWAV, depth)
	}

	return &source{
		sampleRate: buf.Format.SampleRate,
		bitDepth:   depth,
		channels:   deinterleave(buf.Data, numCh, depth),
	}, nil
}

// deinterleave splits PCM integers into per-channel float slices.
// 8-bit WAV data is unsigned with a 128 offset.
func deinterleave(data []int, numCh, depth int) [][]float64 {
	n := len(data) / numCh
	scale := 1 / fullScale(depth)

	offset := 0
	if depth == 8 {
		offset = 128
	}

	out := make([][]float64, numCh)
	for ch := range out {
		out[ch] = make([]float64, n)
		for i := range n {
			out[ch][i] = float64(data[i*numCh+ch]-offset) * scale
		}
	}

	return out
}

// writeWAV encodes a stereo pair as integer PCM. Samples beyond full scale
// are clamped.
func writeWAV(path string, sampleRate, depth int, left, right []float64) (err error) {
	if len(left) != len(right) {
		return errChannelMismatch
	}

	if depth != 16 && depth != 24 && depth != 32 {
		return fmt.Errorf("%w: %d-bit output", errUnsupportedWAV, depth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	enc := wav.NewEncoder(f, sampleRate, depth, 2, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           interleave(left, right, depth),
		SourceBitDepth: depth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}

	return nil
}

// outputDepth maps an input bit depth to the nearest depth writeWAV
// supports that loses no resolution: 8 to 16 bits become 16, 17 to 24
// become 24, wider inputs become 32.
func outputDepth(inputDepth int) int {
	switch {
	case inputDepth <= 16:
		return 16
	case inputDepth <= 24:
		return 24
	default:
		return 32
	}
}

func interleave(left, right []float64, depth int) []int {
	out := make([]int, 2*len(left))
	for i := range left {
		out[2*i] = toPCM(left[i], depth)
		out[2*i+1] = toPCM(right[i], depth)
	}

	return out
}

// toPCM converts a sample in [-1, 1) to a signed integer of the given
// depth, rounding to nearest and clamping at the rails.
func toPCM(x float64, depth int) int {
	fs := fullScale(depth)

	v := math.Round(x * fs)
	switch {
	case math.IsNaN(v):
		return 0
	case v > fs-1:
		return int(fs - 1)
	case v < -fs:
		return int(-fs)
	}

	return int(v)
}

func fullScale(depth int) float64 {
	return float64(int64(1) << (depth - 1))
}
