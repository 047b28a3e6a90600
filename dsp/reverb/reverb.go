package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/frame"
)

const (
	// LoopGeometryFactor estimates one trip around the feedback loop as
	// this multiple of the room size. It is an empirical tuning constant.
	LoopGeometryFactor = 1.5

	// DecayDB is the attenuation that defines RT60.
	DecayDB = -60.0

	// dbToAmplitude turns dB into the exponent of 10 for an amplitude
	// ratio (1/20).
	dbToAmplitude = 0.05

	msToSeconds = 0.001
)

// DecayGainFor returns the per-loop gain that attenuates the signal by
// 60 dB after rt60 seconds, assuming one loop takes roomSizeMs·geometry
// milliseconds.
func DecayGainFor(roomSizeMs, rt60, geometry float64) float64 {
	typicalLoopMs := roomSizeMs * geometry
	loopsPerRT60 := rt60 / (typicalLoopMs * msToSeconds)
	dbPerCycle := DecayDB / loopsPerRT60

	return math.Pow(10, dbPerCycle*dbToAmplitude)
}

// Reverb is the complete effect: diffuser, feedback network and dry/wet
// blend. Output channel c is dry·in[c] + wet·tail[c].
type Reverb struct {
	roomSizeMs float64
	rt60       float64
	dry        float64
	wet        float64
	sampleRate float64
	geometry   float64

	diffuser *Diffuser
	feedback *Feedback
}

// New creates a reverb for the given room size (ms), RT60 (s), dry and wet
// gains and sample rate (Hz). Dry and wet need not sum to 1.
//
// Parameters that are not positive and finite, or that would yield a loop
// gain of magnitude >= 1, are rejected with a configuration error.
func New(roomSizeMs, rt60, dry, wet, sampleRate float64, opts ...Option) (*Reverb, error) {
	cfg := applyOptions(opts)

	if !core.IsPositive(roomSizeMs) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidRoomSize, roomSizeMs)
	}

	if !core.IsPositive(rt60) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidRT60, rt60)
	}

	if !core.IsPositive(sampleRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	if !core.IsFinite(dry) || !core.IsFinite(wet) {
		return nil, fmt.Errorf("%w: dry=%f wet=%f", ErrInvalidMix, dry, wet)
	}

	if !core.IsPositive(cfg.geometry) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidGeometry, cfg.geometry)
	}

	decayGain, err := stableDecayGain(roomSizeMs, rt60, cfg.geometry)
	if err != nil {
		return nil, err
	}

	diffuser, err := NewDiffuserSteps(roomSizeMs, sampleRate, cfg.diffusionSteps)
	if err != nil {
		return nil, err
	}

	feedback, err := NewFeedback(roomSizeMs, decayGain, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Reverb{
		roomSizeMs: roomSizeMs,
		rt60:       rt60,
		dry:        dry,
		wet:        wet,
		sampleRate: sampleRate,
		geometry:   cfg.geometry,
		diffuser:   diffuser,
		feedback:   feedback,
	}, nil
}

// Process runs one frame through the reverb.
func (r *Reverb) Process(in frame.Frame) frame.Frame {
	tail := r.feedback.Process(r.diffuser.Process(in))

	var out frame.Frame
	frame.MulAdd(&out, in, r.dry, tail, r.wet)

	return out
}

// ProcessFrames processes frames in place.
func (r *Reverb) ProcessFrames(frames []frame.Frame) {
	for i := range frames {
		frames[i] = r.Process(frames[i])
	}
}

// ProcessInterleaved processes interleaved audio in place, one frame per
// frame.Channels samples. If len(buf) is not a multiple of the channel
// count, buf is left untouched and ErrPartialFrame is returned.
func (r *Reverb) ProcessInterleaved(buf []float64) error {
	if len(buf)%frame.Channels != 0 {
		return fmt.Errorf("%w: %d samples", ErrPartialFrame, len(buf))
	}

	var in frame.Frame
	for off := 0; off < len(buf); off += frame.Channels {
		copy(in[:], buf[off:off+frame.Channels])
		out := r.Process(in)
		copy(buf[off:off+frame.Channels], out[:])
	}

	return nil
}

// Reset silences all internal buffers. The parameters are kept.
func (r *Reverb) Reset() {
	r.diffuser.Reset()
	r.feedback.Reset()
}

// SetDry sets the dry gain.
func (r *Reverb) SetDry(v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("%w: dry=%f", ErrInvalidMix, v)
	}

	r.dry = v

	return nil
}

// SetWet sets the wet gain.
func (r *Reverb) SetWet(v float64) error {
	if !core.IsFinite(v) {
		return fmt.Errorf("%w: wet=%f", ErrInvalidMix, v)
	}

	r.wet = v

	return nil
}

// SetRT60 changes the decay time. The delay buffers and their contents are
// kept; only the loop gain is recomputed.
func (r *Reverb) SetRT60(seconds float64) error {
	if !core.IsPositive(seconds) {
		return fmt.Errorf("%w: %f", ErrInvalidRT60, seconds)
	}

	g, err := stableDecayGain(r.roomSizeMs, seconds, r.geometry)
	if err != nil {
		return err
	}

	if err := r.feedback.SetDecayGain(g); err != nil {
		return err
	}

	r.rt60 = seconds

	return nil
}

// RoomSize returns the room size in milliseconds.
func (r *Reverb) RoomSize() float64 { return r.roomSizeMs }

// RT60 returns the decay time in seconds.
func (r *Reverb) RT60() float64 { return r.rt60 }

// Dry returns the dry gain.
func (r *Reverb) Dry() float64 { return r.dry }

// Wet returns the wet gain.
func (r *Reverb) Wet() float64 { return r.wet }

// SampleRate returns the sample rate in Hz.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// DecayGain returns the derived per-loop gain.
func (r *Reverb) DecayGain() float64 { return r.feedback.DecayGain() }

// DiffusionSteps returns the number of diffusion stages.
func (r *Reverb) DiffusionSteps() int { return r.diffuser.Steps() }

// TailLength returns the longest feedback delay in samples.
func (r *Reverb) TailLength() int { return r.feedback.MaxDelay() }

// stableDecayGain derives the loop gain and requires it to be strictly
// below 1, which extreme RT60 to room size ratios can violate through
// rounding.
func stableDecayGain(roomSizeMs, rt60, geometry float64) (float64, error) {
	g := DecayGainFor(roomSizeMs, rt60, geometry)
	if !core.IsFinite(g) || math.Abs(g) >= 1 {
		return 0, fmt.Errorf("%w: %f (room %f ms, rt60 %f s)", ErrUnstableDecay, g, roomSizeMs, rt60)
	}

	return g, nil
}
