package wave

import (
	"fmt"

	dspwindow "github.com/cwbudde/algo-dsp/dsp/window"
)

// Window is a symmetric analysis window defined relative to the centre
// sample of a trace of flexible (odd) length.
//
// Width is the window length in samples and must be odd so the window has
// a definite centre. Offset shifts the window centre away from the trace
// centre (positive moves right). Taper is the Tukey (cosine taper)
// fraction in [0, 1]; zero means no taper.
type Window struct {
	Width  int
	Offset int
	Taper  float64
}

// NewWindow creates a Window after validating its parameters.
func NewWindow(width, offset int, taper float64) (Window, error) {
	if width <= 0 || width%2 != 1 {
		return Window{}, fmt.Errorf("%w: window width must be a positive odd integer: %d", ErrConfig, width)
	}

	if taper < 0 || taper > 1 {
		return Window{}, fmt.Errorf("%w: window taper must be in [0,1]: %f", ErrConfig, taper)
	}

	return Window{Width: width, Offset: offset, Taper: taper}, nil
}

// defaultWindow returns the default analysis window for a trace of nsamps
// samples: roughly one third of the trace, rounded up to odd, centred.
func defaultWindow(nsamps int) Window {
	w := nsamps / 3
	if w%2 == 0 {
		w++
	}

	return Window{Width: w}
}

// Start returns the first sample of the window on a trace of nsamps
// (odd) samples.
func (w Window) Start(nsamps int) int {
	return nsamps/2 + w.Offset - w.Width/2
}

// End returns the last sample of the window on a trace of nsamps (odd)
// samples.
func (w Window) End(nsamps int) int {
	return nsamps/2 + w.Offset + w.Width/2
}

// Centre returns the centre sample of the window on a trace of nsamps
// (odd) samples.
func (w Window) Centre(nsamps int) int {
	return nsamps/2 + w.Offset
}

// Validate checks that the window lies fully within a trace of nsamps
// samples. The trace length must be odd so it has a definite centre.
func (w Window) Validate(nsamps int) error {
	if nsamps%2 != 1 {
		return fmt.Errorf("%w: trace length must be odd to have a definite centre: %d", ErrConfig, nsamps)
	}

	if w.Width <= 0 || w.Width%2 != 1 {
		return fmt.Errorf("%w: window width must be a positive odd integer: %d", ErrConfig, w.Width)
	}

	if w.Start(nsamps) < 0 || w.End(nsamps) > nsamps-1 {
		return fmt.Errorf("%w: [%d, %d] outside trace of %d samples",
			ErrWindowOutOfRange, w.Start(nsamps), w.End(nsamps), nsamps)
	}

	return nil
}

// Coefficients returns the taper coefficients of the window, one per
// window sample. With a zero Taper all coefficients are one.
func (w Window) Coefficients() []float64 {
	return dspwindow.Generate(dspwindow.TypeTukey, w.Width, dspwindow.WithAlpha(w.Taper))
}

// Shifted returns a copy of the window moved n samples to the right.
func (w Window) Shifted(n int) Window {
	w.Offset += n
	return w
}

// Resized returns a copy of the window widened by n samples. n is snapped
// to even so the width stays odd.
func (w Window) Resized(n int) Window {
	w.Width += 2 * (n / 2)
	return w
}

// WithTaper returns a copy of the window with the given Tukey fraction.
func (w Window) WithTaper(taper float64) Window {
	w.Taper = taper
	return w
}

// Equal reports whether two windows have identical parameters.
func (w Window) Equal(other Window) bool {
	return w == other
}
