package delay_test

import (
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/delay"
)

func ExampleLine() {
	l, err := delay.New(2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, x := range []float64{1, 2, 3, 4} {
		fmt.Print(l.Process(x), " ")
	}
	fmt.Println()
	// Output: 0 0 1 2
}
