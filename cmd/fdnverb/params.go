package main

import (
	"github.com/cwbudde/algo-fdn/dsp/reverb"
)

// ReverbFlags are the reverb parameters shared by every subcommand.
type ReverbFlags struct {
	RoomSize float64 `name:"room-size" default:"100" help:"Room size in milliseconds"`
	RT60     float64 `name:"rt60" default:"1.5" help:"Decay time to -60 dB in seconds"`
	Dry      float64 `default:"0" help:"Dry gain"`
	Wet      float64 `default:"1" help:"Wet gain"`
	Steps    int     `default:"1" help:"Number of diffusion stages"`
	Geometry float64 `default:"1.5" help:"Loop period as a multiple of the room size"`
}

func (f ReverbFlags) build(sampleRate float64) (*reverb.Reverb, error) {
	return reverb.New(f.RoomSize, f.RT60, f.Dry, f.Wet, sampleRate,
		reverb.WithDiffusionSteps(f.Steps),
		reverb.WithLoopGeometryFactor(f.Geometry),
	)
}
