package splitting

import (
	"math"

	"github.com/cwbudde/algo-split/dsp/wave"
	"github.com/cwbudde/algo-split/stats/ftest"
	"github.com/cwbudde/algo-vecmath"
)

// Node holds the scores of a single grid node.
type Node struct {
	// Value is the objective's display score, the surface a best fit is
	// picked from.
	Value float64
	// Stat is the minimized test statistic the F-test runs on. For some
	// objectives it equals Value; for others it is a companion quantity
	// with known noise statistics.
	Stat float64
}

// Objective scores a windowed, corrected trace pair at one grid node.
// Implementations must be pure: no mutation of the input slices and
// identical output for identical input.
type Objective interface {
	// Name identifies the objective in reports.
	Name() string
	// Polarity declares whether Value peaks or dips at the optimum.
	Polarity() ftest.Polarity
	// NeedsPolarization reports whether the engine must rotate each
	// node's traces from the candidate frame into the radial/transverse
	// frame before scoring.
	NeedsPolarization() bool
	// Score evaluates one node.
	Score(x, y []float64) Node
}

// EigenRatio implements the eigenvalue method of Silver and Chan
// (1991): the ratio of the covariance eigenvalues peaks when a
// candidate correction linearizes the particle motion. The test
// statistic is the smaller eigenvalue.
type EigenRatio struct{}

// Name implements [Objective].
func (EigenRatio) Name() string { return "eigenratio" }

// Polarity implements [Objective].
func (EigenRatio) Polarity() ftest.Polarity { return ftest.PolarityMax }

// NeedsPolarization implements [Objective].
func (EigenRatio) NeedsPolarization() bool { return false }

// Score implements [Objective]. A zero-energy node scores zero on both
// surfaces.
func (EigenRatio) Score(x, y []float64) Node {
	lam1, lam2, _ := wave.EigenCov(x, y)
	if lam2 <= 0 {
		return Node{}
	}

	return Node{Value: lam1 / lam2, Stat: lam2}
}

// TransverseEnergy implements the minimum transverse energy method: for
// a known source polarization, the energy left on the transverse
// component dips to the noise level when the correct operator is
// removed. Requires a polarization in the measurement config.
type TransverseEnergy struct{}

// Name implements [Objective].
func (TransverseEnergy) Name() string { return "transenergy" }

// Polarity implements [Objective].
func (TransverseEnergy) Polarity() ftest.Polarity { return ftest.PolarityMin }

// NeedsPolarization implements [Objective].
func (TransverseEnergy) NeedsPolarization() bool { return true }

// Score implements [Objective]. x is the radial component, y the
// transverse.
func (TransverseEnergy) Score(_, y []float64) Node {
	e := wave.Energy(y)
	return Node{Value: e, Stat: e}
}

// CrossCorrelation scores the zero-lag normalized cross-correlation
// between the components in the candidate fast/slow frame; its
// magnitude peaks when the candidate operator aligns the two split
// pulses. The test statistic is one minus the magnitude.
type CrossCorrelation struct{}

// Name implements [Objective].
func (CrossCorrelation) Name() string { return "crosscorr" }

// Polarity implements [Objective].
func (CrossCorrelation) Polarity() ftest.Polarity { return ftest.PolarityMax }

// NeedsPolarization implements [Objective].
func (CrossCorrelation) NeedsPolarization() bool { return false }

// Score implements [Objective]. A zero-energy component scores zero
// correlation.
func (CrossCorrelation) Score(x, y []float64) Node {
	ex := vecmath.DotProduct(x, x)
	ey := vecmath.DotProduct(y, y)

	if ex == 0 || ey == 0 {
		return Node{Value: 0, Stat: 1}
	}

	r := math.Abs(vecmath.DotProduct(x, y)) / math.Sqrt(ex*ey)

	return Node{Value: r, Stat: 1 - r}
}
