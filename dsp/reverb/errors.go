package reverb

import "errors"

// Configuration errors returned by the constructors and setters.
// Returned errors wrap one of these together with the rejected value.
var (
	ErrInvalidRoomSize   = errors.New("reverb: room size must be a positive finite number of milliseconds")
	ErrInvalidRT60       = errors.New("reverb: RT60 must be a positive finite number of seconds")
	ErrInvalidSampleRate = errors.New("reverb: sample rate must be positive and finite")
	ErrInvalidDelay      = errors.New("reverb: delay must be a positive finite number of milliseconds")
	ErrInvalidMix        = errors.New("reverb: dry and wet gains must be finite")
	ErrInvalidSteps      = errors.New("reverb: diffusion step count must be >= 1")
	ErrInvalidGeometry   = errors.New("reverb: loop geometry factor must be positive and finite")
	ErrUnstableDecay     = errors.New("reverb: decay gain magnitude must not exceed 1")
	ErrPartialFrame      = errors.New("reverb: buffer length is not a multiple of the channel count")
)
