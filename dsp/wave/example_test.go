package wave_test

import (
	"fmt"

	"github.com/cwbudde/algo-split/dsp/wave"
)

func ExampleRotate() {
	x, y := wave.Rotate([]float64{1, 0}, []float64{0, 1}, 45)

	fmt.Printf("%.3f %.3f\n", x[0], y[0])
	fmt.Printf("%.3f %.3f\n", x[1], y[1])
	// Output:
	// 0.707 -0.707
	// 0.707 0.707
}

func ExampleTimeToSampsEven() {
	fmt.Println(wave.TimeToSampsEven(1.2, 0.01))
	fmt.Println(wave.TimeToSampsEven(0.299, 0.01))
	// Output:
	// 120
	// 30
}

func ExampleWindow() {
	w, err := wave.NewWindow(41, 10, 0.2)
	if err != nil {
		panic(err)
	}

	fmt.Println(w.Start(101), w.Centre(101), w.End(101))
	// Output:
	// 40 60 80
}

func ExampleSynth() {
	p, err := wave.Synth(wave.SynthConfig{SrcPol: 30, Fast: -20, Lag: 10})
	if err != nil {
		panic(err)
	}

	fmt.Println(p.NumSamples(), p.Delta())
	// Output:
	// 491 1
}
