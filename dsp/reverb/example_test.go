package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/frame"
	"github.com/cwbudde/algo-fdn/dsp/reverb"
)

func ExampleNew() {
	r, err := reverb.New(50, 1.0, 1, 0.5, 48000)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("loop gain %.4f, longest delay %d samples\n", r.DecayGain(), r.TailLength())

	out := r.Process(frame.FromMono(1))
	fmt.Printf("%.2f\n", out.Mono())
	// Output:
	// loop gain 0.5957, longest delay 4402 samples
	// 1.00
}

func ExampleDecayGainFor() {
	fmt.Printf("%.4f\n", reverb.DecayGainFor(100, 2, reverb.LoopGeometryFactor))
	// Output: 0.5957
}
