package wave_test

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-split/dsp/wave"
	"github.com/cwbudde/algo-split/internal/testutil"
)

func TestSynthDeterministic(t *testing.T) {
	cfg := wave.SynthConfig{SrcPol: 30, Fast: -20, Lag: 10, Noise: 0.02, Seed: 5}

	a, err := wave.Synth(cfg)
	if err != nil {
		t.Fatal(err)
	}

	b, err := wave.Synth(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if !a.Equal(b) {
		t.Fatal("same seed produced different synthetics")
	}

	cfg.Seed = 6

	c, err := wave.Synth(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if a.Equal(c) {
		t.Fatal("different seeds produced identical synthetics")
	}
}

func TestSynthDefaults(t *testing.T) {
	p, err := wave.Synth(wave.SynthConfig{SrcPol: 10, Noise: 0.01})
	if err != nil {
		t.Fatal(err)
	}

	if p.NumSamples() != 501 {
		t.Fatalf("length = %d, want 501", p.NumSamples())
	}

	if p.Delta() != 1 {
		t.Fatalf("delta = %v, want 1", p.Delta())
	}

	testutil.RequireFinite(t, p.X)
	testutil.RequireFinite(t, p.Y)
}

func TestSynthNoiseFreePolarization(t *testing.T) {
	for _, pol := range []float64{0, 30, -60} {
		p, err := wave.Synth(wave.SynthConfig{SrcPol: pol})
		if err != nil {
			t.Fatal(err)
		}

		got, err := p.EstimatePol()
		if err != nil {
			t.Fatal(err)
		}

		if diff := testutil.AngleDiff90(got, pol); diff > 1e-6 {
			t.Errorf("EstimatePol = %v, want %v", got, pol)
		}
	}
}

func TestSynthSplitTruncates(t *testing.T) {
	p, err := wave.Synth(wave.SynthConfig{SrcPol: 30, Fast: 0, Lag: 10})
	if err != nil {
		t.Fatal(err)
	}

	if p.NumSamples() != 491 {
		t.Fatalf("length = %d, want 491", p.NumSamples())
	}
}

func TestSynthRecoverableByUnsplit(t *testing.T) {
	split, err := wave.Synth(wave.SynthConfig{SrcPol: 20, Fast: -30, Lag: 12})
	if err != nil {
		t.Fatal(err)
	}

	if err := split.Unsplit(-30, 12); err != nil {
		t.Fatal(err)
	}

	// With the operator removed the motion is linear again at the
	// source polarization.
	got, err := split.EstimatePol()
	if err != nil {
		t.Fatal(err)
	}

	if diff := testutil.AngleDiff90(got, 20); diff > 1e-6 {
		t.Fatalf("polarization after unsplit = %v, want 20", got)
	}
}

func TestSynthValidation(t *testing.T) {
	if _, err := wave.Synth(wave.SynthConfig{Noise: -0.1}); !errors.Is(err, wave.ErrConfig) {
		t.Fatalf("negative noise: error = %v, want ErrConfig", err)
	}

	if _, err := wave.Synth(wave.SynthConfig{Lag: -1}); !errors.Is(err, wave.ErrConfig) {
		t.Fatalf("negative lag: error = %v, want ErrConfig", err)
	}
}

func TestSynthSmoothedNoiseNotWhite(t *testing.T) {
	p, err := wave.Synth(wave.SynthConfig{SrcPol: 0, Noise: 0.5, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}

	// Band-limited noise is positively correlated at one sample lag;
	// white noise would average near zero.
	y := p.Y

	var corr, power float64
	for i := 0; i+1 < len(y); i++ {
		corr += y[i] * y[i+1]
		power += y[i] * y[i]
	}

	if corr/power < 0.5 {
		t.Fatalf("lag-1 autocorrelation = %v, want smoothed (> 0.5)", corr/power)
	}
}
