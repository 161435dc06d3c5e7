package testutil

import (
	"math"
	"math/rand"
)

// RickerPulse generates a Ricker wavelet of the given width parameter
// (in samples), centred on the trace.
func RickerPulse(length int, width float64) []float64 {
	amp := 2 / (math.Sqrt(3*width) * math.Pow(math.Pi, 0.25))

	out := make([]float64, length)
	for i := range out {
		t := float64(i - length/2)
		tsq := t * t / (width * width)
		out[i] = amp * (1 - tsq) * math.Exp(-tsq/2)
	}

	return out
}

// PolarizedPair generates a two-component trace carrying a Ricker pulse
// linearly polarized at the given angle (degrees) in the reference
// frame.
func PolarizedPair(length int, width, pol float64) ([]float64, []float64) {
	pulse := RickerPulse(length, width)
	ang := pol * math.Pi / 180
	cang, sang := math.Cos(ang), math.Sin(ang)

	x := make([]float64, length)
	y := make([]float64, length)

	for i, v := range pulse {
		x[i] = cang * v
		y[i] = sang * v
	}

	return x, y
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}
