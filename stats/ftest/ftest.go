// Package ftest provides the error-surface statistics used by splitting
// measurements: effective degrees of freedom of a noise trace, the
// F-test confidence threshold for a two-parameter grid search, and
// error-bar extraction from a confidence region with circular-angle
// handling.
package ftest

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mathext"
)

// Polarity declares whether larger or smaller surface values indicate a
// better fit.
type Polarity int

const (
	// PolarityMin marks surfaces minimized at the optimum (e.g. the
	// smaller covariance eigenvalue, transverse energy).
	PolarityMin Polarity = iota
	// PolarityMax marks surfaces maximized at the optimum.
	PolarityMax
)

// numParams is the number of free parameters of the grid search (fast
// angle and lag time).
const numParams = 2

// defaultAlpha is the significance level of the joint confidence region.
const defaultAlpha = 0.05

// ErrInsufficientNDF reports that the degrees of freedom are too small to
// form an F-test with two free parameters.
var ErrInsufficientNDF = errors.New("ftest: not enough degrees of freedom")

// DegreesOfFreedom estimates the effective number of degrees of freedom
// in a time series, accounting for serial correlation, using the
// spectral estimator of Walsh et al. (2013):
//
//	ndf = 2 * (2*E2²/E4 - 1)
//
// where E2 and E4 are the second and fourth moments of the amplitude
// spectrum with half-weighted end bins. Returns 0 for traces shorter
// than two samples or with no energy.
func DegreesOfFreedom(y []float64) float64 {
	n := len(y)
	if n < 2 {
		return 0
	}

	coeff := fourier.NewFFT(n).Coefficients(nil, y)

	// Expand the half spectrum to full length by Hermitian symmetry so
	// the end-bin weighting matches the full-spectrum estimator.
	re := make([]float64, n)
	im := make([]float64, n)

	for k, c := range coeff {
		re[k], im[k] = real(c), imag(c)
	}

	for k := len(coeff); k < n; k++ {
		c := coeff[n-k]
		re[k], im[k] = real(c), -imag(c)
	}

	power := make([]float64, n)
	vecmath.Power(power, re, im)

	var e2, e4 float64

	for k, p := range power {
		a := 1.0
		if k == 0 || k == n-1 {
			a = 0.5
		}

		e2 += a * p
		e4 += (4 * a * a / 3) * p * p
	}

	if e4 == 0 {
		return 0
	}

	return 2 * (2*e2*e2/e4 - 1)
}

// FQuantile returns the quantile function of the F-distribution with d1
// and d2 degrees of freedom evaluated at probability p, by inverting the
// regularized incomplete beta function.
func FQuantile(p, d1, d2 float64) float64 {
	z := mathext.InvRegIncBeta(d1/2, d2/2, p)
	return d2 * z / (d1 * (1 - z))
}

// ConfidenceLevel returns the surface value bounding the 95% joint
// confidence region around the optimum of an error surface:
//
//	best * (1 + p/(ndf-p) * F_crit(p, ndf-p, 0.05))
//
// with p = 2 free parameters, for minimizing surfaces; the bound is
// mirrored (divided) for maximizing ones.
func ConfidenceLevel(best, ndf float64, polarity Polarity) (float64, error) {
	return Level(best, ndf, numParams, defaultAlpha, polarity)
}

// Level is the general form of [ConfidenceLevel] with explicit parameter
// count and significance level.
func Level(best, ndf float64, k int, alpha float64, polarity Polarity) (float64, error) {
	kf := float64(k)
	if ndf <= kf {
		return 0, fmt.Errorf("%w: ndf %.2f with %d free parameters", ErrInsufficientNDF, ndf, k)
	}

	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("ftest: alpha must be in (0,1): %f", alpha)
	}

	fcrit := FQuantile(1-alpha, kf, ndf-kf)
	scale := 1 + kf/(ndf-kf)*fcrit

	if polarity == PolarityMax {
		return best / scale, nil
	}

	return best * scale, nil
}

// Mask returns the boolean grid of nodes inside the confidence region:
// at or below the level for minimizing surfaces, at or above it for
// maximizing ones.
func Mask(surface [][]float64, level float64, polarity Polarity) [][]bool {
	mask := make([][]bool, len(surface))

	for i, row := range surface {
		mask[i] = make([]bool, len(row))

		for j, v := range row {
			if polarity == PolarityMax {
				mask[i][j] = v >= level
			} else {
				mask[i][j] = v <= level
			}
		}
	}

	return mask
}

// ErrorBars extracts one-sigma error bars from a confidence mask indexed
// as mask[angle][lag]: a quarter of the 95% region span along each axis.
//
// The lag error spans the first to the last lag column containing any
// in-region node. The angle error accounts for the circular angle axis
// (the grid's first and last rows are adjacent): the shortest arc
// containing all in-region rows is found via the longest out-of-region
// run in a doubled copy of the row mask. An empty or full mask reports
// the full grid span on both axes.
func ErrorBars(mask [][]bool, degStep, lagStep float64) (dfast, dlag float64) {
	rows := len(mask)
	if rows == 0 {
		return 0, 0
	}

	cols := len(mask[0])

	anyDeg := make([]bool, rows)
	anyLag := make([]bool, cols)

	for i, row := range mask {
		for j, v := range row {
			if v {
				anyDeg[i] = true
				anyLag[j] = true
			}
		}
	}

	dlag = lagSpan(anyLag) * lagStep * 0.25
	dfast = angleSpan(anyDeg) * degStep * 0.25

	return dfast, dlag
}

// lagSpan returns the inclusive span between the first and last true
// entry, or the full length when none is set.
func lagSpan(any []bool) float64 {
	first, last := -1, -1

	for j, v := range any {
		if !v {
			continue
		}

		if first < 0 {
			first = j
		}

		last = j
	}

	if first < 0 {
		return float64(len(any))
	}

	return float64(last - first + 1)
}

// angleSpan returns the length of the shortest cyclic arc containing all
// true entries, or the full length when none (or all) is set.
func angleSpan(any []bool) float64 {
	n := len(any)

	// Longest false run between consecutive true entries across the
	// wrap, found on a doubled copy.
	longestFalse := 0
	prev := -1
	seen := false

	for i := 0; i < 2*n; i++ {
		if !any[i%n] {
			continue
		}

		if seen {
			if gap := i - prev - 1; gap > longestFalse {
				longestFalse = gap
			}
		}

		prev = i
		seen = true
	}

	if !seen {
		return float64(n)
	}

	if longestFalse > n {
		longestFalse = n
	}

	return float64(n - longestFalse)
}
