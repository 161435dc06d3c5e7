package splitting_test

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-split/dsp/wave"
	"github.com/cwbudde/algo-split/measure/splitting"
)

func intensitySynth(t *testing.T, fast float64, lag float64) *wave.Pair {
	t.Helper()

	p, err := wave.Synth(wave.SynthConfig{SrcPol: 10, Fast: fast, Lag: lag})
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func TestSplittingIntensityNull(t *testing.T) {
	// No splitting: the transverse component is empty and the intensity
	// vanishes.
	p := intensitySynth(t, 0, 0)

	s, err := splitting.SplittingIntensity(p, 10)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(s) > 1e-9 {
		t.Fatalf("intensity = %v, want 0 for unsplit data", s)
	}
}

func TestSplittingIntensityFastAlignedIsNull(t *testing.T) {
	// Splitting along the polarization leaves no transverse energy.
	p := intensitySynth(t, 10, 6)

	s, err := splitting.SplittingIntensity(p, 10)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(s) > 1e-9 {
		t.Fatalf("intensity = %v, want 0 for fast-aligned splitting", s)
	}
}

func TestSplittingIntensityAntisymmetric(t *testing.T) {
	// Fast axes at +45 and -45 from the polarization produce opposite
	// intensities of equal size.
	plus := intensitySynth(t, 10+45, 6)
	minus := intensitySynth(t, 10-45, 6)

	sp, err := splitting.SplittingIntensity(plus, 10)
	if err != nil {
		t.Fatal(err)
	}

	sm, err := splitting.SplittingIntensity(minus, 10)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(sp) < 0.5 {
		t.Fatalf("intensity = %v, want strong coupling at 45 degrees", sp)
	}

	if math.Abs(sp+sm) > 0.01*math.Abs(sp) {
		t.Fatalf("intensities not antisymmetric: %v vs %v", sp, sm)
	}
}

func TestSplittingIntensityScalesWithLag(t *testing.T) {
	small, err := splitting.SplittingIntensity(intensitySynth(t, 55, 4), 10)
	if err != nil {
		t.Fatal(err)
	}

	large, err := splitting.SplittingIntensity(intensitySynth(t, 55, 8), 10)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(large) <= math.Abs(small) {
		t.Fatalf("intensity did not grow with lag: %v vs %v", small, large)
	}
}

func TestSplittingIntensityNilPair(t *testing.T) {
	if _, err := splitting.SplittingIntensity(nil, 0); !errors.Is(err, splitting.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}
