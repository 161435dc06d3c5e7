package wave

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Rotate rotates the component frame of a trace pair anticlockwise by the
// given angle in degrees and returns the samples expressed in the new
// frame. The transform is orthonormal, so total power is preserved, and
// composition-consistent: rotating by a then b equals rotating by a+b.
func Rotate(x, y []float64, degrees float64) ([]float64, []float64) {
	ang := degrees * math.Pi / 180
	cang := math.Cos(ang)
	sang := math.Sin(ang)

	rx := make([]float64, len(x))
	ry := make([]float64, len(y))

	for i := range x {
		rx[i] = cang*x[i] + sang*y[i]
		ry[i] = -sang*x[i] + cang*y[i]
	}

	return rx, ry
}

// Lag advances x by nsamps/2 and delays y by nsamps/2 around the trace
// centre. nsamps must be even so centrality is preserved; the traces are
// truncated by nsamps samples, keeping their common length odd. Negative
// nsamps shifts in the opposite direction; Lag with -nsamps composed with
// Lag with +nsamps restores the overlapping region exactly.
//
// The returned slices are views into the input backing arrays; callers
// that mutate the result must copy first (Chop and ChopRange do).
func Lag(x, y []float64, nsamps int) ([]float64, []float64, error) {
	if nsamps == 0 {
		return x, y, nil
	}

	if nsamps%2 != 0 {
		return nil, nil, fmt.Errorf("%w: lag must be an even number of samples: %d", ErrConfig, nsamps)
	}

	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: x and y must be the same length: %d != %d", ErrConfig, len(x), len(y))
	}

	abs := nsamps
	if abs < 0 {
		abs = -abs
	}

	if abs >= len(x) {
		return nil, nil, fmt.Errorf("%w: lag of %d samples exceeds trace of %d samples", ErrConfig, nsamps, len(x))
	}

	if nsamps > 0 {
		return x[nsamps:], y[:len(y)-nsamps], nil
	}

	return x[:len(x)-abs], y[abs:], nil
}

// Chop extracts the window range from a trace pair, applying the
// window's Tukey taper if one is set. The returned slices are fresh
// copies.
func Chop(x, y []float64, w Window) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: x and y must be the same length: %d != %d", ErrConfig, len(x), len(y))
	}

	if err := w.Validate(len(x)); err != nil {
		return nil, nil, err
	}

	s, e := w.Start(len(x)), w.End(len(x))

	cx := append([]float64(nil), x[s:e+1]...)
	cy := append([]float64(nil), y[s:e+1]...)

	if w.Taper > 0 {
		coeffs := w.Coefficients()
		vecmath.MulBlockInPlace(cx, coeffs)
		vecmath.MulBlockInPlace(cy, coeffs)
	}

	return cx, cy, nil
}

// ChopRange extracts the inclusive sample range [start, end] from a trace
// pair without tapering. The returned slices are fresh copies.
func ChopRange(x, y []float64, start, end int) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: x and y must be the same length: %d != %d", ErrConfig, len(x), len(y))
	}

	if start < 0 || end >= len(x) || start > end {
		return nil, nil, fmt.Errorf("%w: [%d, %d] outside trace of %d samples", ErrWindowOutOfRange, start, end, len(x))
	}

	cx := append([]float64(nil), x[start:end+1]...)
	cy := append([]float64(nil), y[start:end+1]...)

	return cx, cy, nil
}

// Split applies the splitting operator for a medium with the given fast
// direction (degrees) and delay (even samples): rotate into the fast/slow
// frame, delay the slow component, rotate back. The traces shorten by
// nsamps samples.
func Split(x, y []float64, fast float64, nsamps int) ([]float64, []float64, error) {
	if nsamps == 0 {
		return x, y, nil
	}

	rx, ry := Rotate(x, y, fast)

	lx, ly, err := Lag(rx, ry, nsamps)
	if err != nil {
		return nil, nil, err
	}

	ox, oy := Rotate(lx, ly, -fast)

	return ox, oy, nil
}

// Unsplit reverses the splitting operator for the same fast direction and
// delay; it is the exact algebraic inverse of Split on the overlapping
// region.
func Unsplit(x, y []float64, fast float64, nsamps int) ([]float64, []float64, error) {
	return Split(x, y, fast, -nsamps)
}

// TimeToSamps converts a time offset to a sample count at the given
// sampling interval, rounding to nearest.
func TimeToSamps(t, delta float64) int {
	return int(math.Round(t / delta))
}

// TimeToSampsEven converts a time offset to the nearest even sample
// count. Even counts can be removed symmetrically fore and aft of a
// window centre.
func TimeToSampsEven(t, delta float64) int {
	return 2 * int(math.Round(t/delta/2))
}

// SampsToTime converts a sample count back to a time offset.
func SampsToTime(nsamps int, delta float64) float64 {
	return float64(nsamps) * delta
}
