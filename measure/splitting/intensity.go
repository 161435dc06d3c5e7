package splitting

import (
	"fmt"

	"github.com/cwbudde/algo-split/dsp/wave"
	"github.com/cwbudde/algo-vecmath"
)

// SplittingIntensity computes the Chevrot (2000) splitting intensity of
// a trace pair at the given source polarization: the amplitude ratio of
// the transverse component to the time derivative of the radial
// component, projected over the analysis window,
//
//	s = -2 * trapz(trans * d(radial)) / trapz(d(radial)²)
//
// It is a linear estimator evaluated once per pair, not part of the
// angle/lag grid search. A pair with a flat radial component yields
// zero.
func SplittingIntensity(p *wave.Pair, pol float64) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: nil trace pair", ErrConfig)
	}

	c := p.Copy()
	c.RotateTo(pol)
	c.X = gradient(c.X)

	rdiff, trans, err := c.ChopData()
	if err != nil {
		return 0, err
	}

	cross := make([]float64, len(rdiff))
	vecmath.MulBlock(cross, trans, rdiff)

	sq := make([]float64, len(rdiff))
	vecmath.MulBlock(sq, rdiff, rdiff)

	den := trapezoid(sq)
	if den == 0 {
		return 0, nil
	}

	return -2 * trapezoid(cross) / den, nil
}

// gradient returns the numerical derivative at unit spacing: central
// differences inside, one-sided differences at the ends.
func gradient(x []float64) []float64 {
	n := len(x)

	out := make([]float64, n)
	if n < 2 {
		return out
	}

	out[0] = x[1] - x[0]
	out[n-1] = x[n-1] - x[n-2]

	for i := 1; i < n-1; i++ {
		out[i] = (x[i+1] - x[i-1]) / 2
	}

	return out
}

// trapezoid integrates at unit spacing.
func trapezoid(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	return vecmath.Sum(x) - (x[0]+x[len(x)-1])/2
}
