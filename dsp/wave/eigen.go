package wave

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Energy returns the sum of squared samples.
func Energy(x []float64) float64 {
	return vecmath.DotProduct(x, x)
}

// EigenCov returns the eigenvalues of the 2x2 sample covariance matrix of
// a trace pair, largest first, together with the principal eigenvector.
// A zero-energy pair yields zero eigenvalues and a zero vector.
func EigenCov(x, y []float64) (lam1, lam2 float64, vec [2]float64) {
	n := len(x)
	if n < 2 {
		return 0, 0, [2]float64{}
	}

	nf := float64(n)
	mx := vecmath.Sum(x) / nf
	my := vecmath.Sum(y) / nf

	cxx := (vecmath.DotProduct(x, x) - nf*mx*mx) / (nf - 1)
	cyy := (vecmath.DotProduct(y, y) - nf*my*my) / (nf - 1)
	cxy := (vecmath.DotProduct(x, y) - nf*mx*my) / (nf - 1)

	if cxx == 0 && cyy == 0 && cxy == 0 {
		return 0, 0, [2]float64{}
	}

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(2, []float64{cxx, cxy, cxy, cyy}), true); !ok {
		return 0, 0, [2]float64{}
	}

	vals := es.Values(nil) // ascending

	var vecs mat.Dense
	es.VectorsTo(&vecs)

	return vals[1], vals[0], [2]float64{vecs.At(0, 1), vecs.At(1, 1)}
}

// EstimatePol estimates the source polarization (degrees) of the pair as
// the direction of the dominant covariance eigenvector of the windowed
// data in the reference frame.
func (p *Pair) EstimatePol() (float64, error) {
	c := p.Copy()
	c.RotateTo(0)

	x, y, err := c.ChopData()
	if err != nil {
		return 0, err
	}

	_, _, vec := EigenCov(x, y)

	return math.Atan2(vec[1], vec[0]) * 180 / math.Pi, nil
}
