package wave

import (
	"fmt"
	"math"
	"math/rand"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultSynthSamples = 501
	defaultSynthWidth   = 32.0
)

// SynthConfig holds parameters for synthetic split-pair generation.
type SynthConfig struct {
	// SrcPol is the source polarization in degrees.
	SrcPol float64
	// Fast and Lag define the splitting operator applied to the
	// synthetic; a zero Lag leaves the pair unsplit.
	Fast float64
	Lag  float64
	// Noise is the standard deviation of the additive noise relative to
	// the unit-amplitude wavelet.
	Noise float64
	// NSamps is the trace length (snapped up to odd; default 501).
	NSamps int
	// Width is the Ricker wavelet width parameter in samples (default 32).
	Width float64
	// Delta is the sampling interval (default 1).
	Delta float64
	// Seed makes the noise deterministic (default 1).
	Seed int64
}

func normalizeSynthConfig(cfg SynthConfig) SynthConfig {
	if cfg.NSamps <= 0 {
		cfg.NSamps = defaultSynthSamples
	}

	if cfg.NSamps%2 == 0 {
		cfg.NSamps++
	}

	if cfg.Width <= 0 {
		cfg.Width = defaultSynthWidth
	}

	if cfg.Delta <= 0 {
		cfg.Delta = 1
	}

	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	return cfg
}

// Synth generates a synthetic trace pair: a Ricker wavelet polarized
// along SrcPol plus band-limited noise on both components, passed through
// the splitting operator (Fast, Lag).
func Synth(cfg SynthConfig) (*Pair, error) {
	if cfg.Noise < 0 {
		return nil, fmt.Errorf("%w: noise amplitude must be >= 0: %f", ErrConfig, cfg.Noise)
	}

	if cfg.Lag < 0 {
		return nil, fmt.Errorf("%w: lag must be >= 0: %f", ErrConfig, cfg.Lag)
	}

	cfg = normalizeSynthConfig(cfg)

	rng := rand.New(rand.NewSource(cfg.Seed))
	smooth := cfg.Width / 4

	x := ricker(cfg.NSamps, cfg.Width)

	if cfg.Noise > 0 {
		nx, err := smoothedNoise(cfg.NSamps, cfg.Noise, smooth, rng)
		if err != nil {
			return nil, err
		}

		vecmath.AddBlockInPlace(x, nx)
	}

	y := make([]float64, cfg.NSamps)

	if cfg.Noise > 0 {
		var err error

		y, err = smoothedNoise(cfg.NSamps, cfg.Noise, smooth, rng)
		if err != nil {
			return nil, err
		}
	}

	// Express the wavelet, polarized along SrcPol, in the reference frame.
	x, y = Rotate(x, y, -cfg.SrcPol)

	if cfg.Lag > 0 {
		nsamps := TimeToSampsEven(cfg.Lag, cfg.Delta)

		var err error

		x, y, err = Split(x, y, cfg.Fast, nsamps)
		if err != nil {
			return nil, err
		}
	}

	return New(x, y, WithDelta(cfg.Delta))
}

// ricker returns a Ricker (Mexican hat) wavelet of n samples with width
// parameter a, centred on the trace.
func ricker(n int, a float64) []float64 {
	amp := 2 / (math.Sqrt(3*a) * math.Pow(math.Pi, 0.25))

	out := make([]float64, n)
	for i := range out {
		t := float64(i - n/2)
		tsq := t * t / (a * a)
		out[i] = amp * (1 - tsq) * math.Exp(-tsq/2)
	}

	return out
}

// smoothedNoise returns Gaussian white noise of standard deviation amp
// convolved with a unit-area Gaussian wavelet of the given width in
// samples. The convolution runs in the frequency domain.
func smoothedNoise(n int, amp, smooth float64, rng *rand.Rand) ([]float64, error) {
	white := make([]float64, n)
	for i := range white {
		white[i] = rng.NormFloat64() * amp
	}

	if smooth <= 0 {
		return white, nil
	}

	kernel := gaussianWavelet(smooth)

	full, err := fftConvolve(white, kernel)
	if err != nil {
		return nil, err
	}

	// Centre trim to the input length ("same" convolution).
	start := (len(kernel) - 1) / 2

	return full[start : start+n], nil
}

// gaussianWavelet returns a unit-area Gaussian kernel of standard
// deviation sigma samples, truncated at three sigma.
func gaussianWavelet(sigma float64) []float64 {
	half := int(math.Ceil(3 * sigma))
	norm := 1 / (sigma * math.Sqrt(2*math.Pi))

	out := make([]float64, 2*half+1)
	for i := range out {
		t := float64(i - half)
		out[i] = norm * math.Exp(-t*t/(2*sigma*sigma))
	}

	return out
}

// fftConvolve performs one-shot linear convolution via a power-of-two
// FFT, returning the full result of length len(a)+len(b)-1.
func fftConvolve(a, b []float64) ([]float64, error) {
	full := len(a) + len(b) - 1
	size := nextPowerOf2(full)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("wave: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, size)
	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}

	bPadded := make([]complex128, size)
	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, size)
	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("wave: forward FFT failed: %w", err)
	}

	bFreq := make([]complex128, size)
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("wave: forward FFT failed: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	resultTime := make([]complex128, size)
	if err := plan.Inverse(resultTime, aFreq); err != nil {
		return nil, fmt.Errorf("wave: inverse FFT failed: %w", err)
	}

	out := make([]float64, full)
	for i := range out {
		out[i] = real(resultTime[i])
	}

	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
