package wave

import (
	"fmt"
	"math"
)

// Geometry identifies the physical frame the component vectors refer to.
type Geometry int

const (
	// GeomGeo is the geographic frame (North, East).
	GeomGeo Geometry = iota
	// GeomRay is the ray frame (SV, SH).
	GeomRay
	// GeomCart is a plain cartesian frame (X, Y).
	GeomCart
)

func (g Geometry) valid() bool {
	switch g {
	case GeomGeo, GeomRay, GeomCart:
		return true
	default:
		return false
	}
}

// labels returns the component names for a pair aligned with the frame.
func (g Geometry) labels() (string, string) {
	switch g {
	case GeomRay:
		return "SV", "SH"
	case GeomCart:
		return "X", "Y"
	default:
		return "North", "East"
	}
}

// Pair holds a two-component trace: equal-length, odd-length sample
// sequences with a fixed sampling interval, the orientation of the
// components, and an active analysis window.
type Pair struct {
	// X and Y are the component samples expressed in the current frame.
	X, Y []float64

	delta  float64
	window Window
	geom   Geometry

	// orientation basis, column-major: the unit vectors of the physical
	// directions currently represented by X and Y.
	cmp [4]float64
}

// Option configures pair construction.
type Option func(*Pair) error

// WithDelta sets the sampling interval (time units per sample).
func WithDelta(delta float64) Option {
	return func(p *Pair) error {
		if delta <= 0 {
			return fmt.Errorf("%w: delta must be positive: %f", ErrConfig, delta)
		}

		p.delta = delta

		return nil
	}
}

// WithWindow sets an explicit analysis window instead of the default.
func WithWindow(w Window) Option {
	return func(p *Pair) error {
		p.window = w
		return nil
	}
}

// WithGeometry sets the physical frame tag.
func WithGeometry(g Geometry) Option {
	return func(p *Pair) error {
		if !g.valid() {
			return fmt.Errorf("%w: unknown geometry tag: %d", ErrConfig, int(g))
		}

		p.geom = g

		return nil
	}
}

// New creates a Pair from two raw sample sequences. The samples are
// copied. The default sampling interval is 1 and the default window spans
// roughly a third of the trace.
func New(x, y []float64, opts ...Option) (*Pair, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: x and y must be the same length: %d != %d", ErrConfig, len(x), len(y))
	}

	if len(x)%2 != 1 {
		return nil, fmt.Errorf("%w: traces must have an odd number of samples: %d", ErrConfig, len(x))
	}

	p := &Pair{
		X:      append([]float64(nil), x...),
		Y:      append([]float64(nil), y...),
		delta:  1,
		window: defaultWindow(len(x)),
		geom:   GeomGeo,
		cmp:    [4]float64{1, 0, 0, 1},
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if err := p.window.Validate(len(p.X)); err != nil {
		return nil, err
	}

	return p, nil
}

// NumSamples returns the trace length in samples.
func (p *Pair) NumSamples() int {
	return len(p.X)
}

// Delta returns the sampling interval.
func (p *Pair) Delta() float64 {
	return p.delta
}

// SetDelta replaces the sampling interval.
func (p *Pair) SetDelta(delta float64) error {
	if delta <= 0 {
		return fmt.Errorf("%w: delta must be positive: %f", ErrConfig, delta)
	}

	p.delta = delta

	return nil
}

// Geometry returns the physical frame tag.
func (p *Pair) Geometry() Geometry {
	return p.geom
}

// Window returns the active analysis window.
func (p *Pair) Window() Window {
	return p.window
}

// SetWindow replaces the active analysis window after validating it
// against the trace length.
func (p *Pair) SetWindow(w Window) error {
	if err := w.Validate(len(p.X)); err != nil {
		return err
	}

	p.window = w

	return nil
}

// ConstructWindow builds a window from explicit start and end times and
// installs it as the active window.
func (p *Pair) ConstructWindow(start, end, taper float64) error {
	if start >= end {
		return fmt.Errorf("%w: window start %f is not before end %f", ErrConfig, start, end)
	}

	centre := TimeToSamps((start+end)/2, p.delta)
	offset := centre - len(p.X)/2
	// A span of t time units needs an even sample count plus one.
	width := TimeToSampsEven(end-start, p.delta) + 1

	w, err := NewWindow(width, offset, taper)
	if err != nil {
		return err
	}

	return p.SetWindow(w)
}

// T returns the sample times of the trace.
func (p *Pair) T() []float64 {
	t := make([]float64, len(p.X))
	for i := range t {
		t[i] = float64(i) * p.delta
	}

	return t
}

// WindowStart returns the start time of the active window.
func (p *Pair) WindowStart() float64 {
	return float64(p.window.Start(len(p.X))) * p.delta
}

// WindowEnd returns the end time of the active window.
func (p *Pair) WindowEnd() float64 {
	return float64(p.window.End(len(p.X))) * p.delta
}

// WindowWidth returns the time span of the active window.
func (p *Pair) WindowWidth() float64 {
	return float64(p.window.Width-1) * p.delta
}

// WindowCentre returns the centre time of the active window.
func (p *Pair) WindowCentre() float64 {
	return float64(p.window.Centre(len(p.X))) * p.delta
}

// Labels returns display names for the two components: frame names when
// the pair is in its reference orientation, angle labels otherwise.
func (p *Pair) Labels() (string, string) {
	a1, a2 := p.CompAngles()
	if math.Abs(a1) < 1e-2 {
		return p.geom.labels()
	}

	return fmt.Sprintf("%.0f°", a1), fmt.Sprintf("%.0f°", a2)
}

// CompAngles returns the angles (degrees) of the two component vectors in
// the reference frame.
func (p *Pair) CompAngles() (float64, float64) {
	a1 := math.Atan2(p.cmp[1], p.cmp[0]) * 180 / math.Pi
	a2 := math.Atan2(p.cmp[3], p.cmp[2]) * 180 / math.Pi

	return a1, a2
}

// RotateTo rotates the pair so the first component lines up with the
// given angle (degrees) in the reference frame. Samples and orientation
// basis are updated together, leaving the physical signal unchanged.
func (p *Pair) RotateTo(degrees float64) {
	a1, _ := p.CompAngles()

	p.X, p.Y = Rotate(p.X, p.Y, degrees-a1)

	ang := degrees * math.Pi / 180
	p.cmp = [4]float64{math.Cos(ang), math.Sin(ang), -math.Sin(ang), math.Cos(ang)}
}

// Split applies a splitting operator with the given fast direction
// (degrees) and delay time. The delay is snapped to an even sample count;
// the trace shortens by that count.
func (p *Pair) Split(fast, lag float64) error {
	return p.applySplit(fast, TimeToSampsEven(lag, p.delta))
}

// Unsplit removes a splitting operator with the given fast direction
// (degrees) and delay time; the exact inverse of Split on the
// overlapping region.
func (p *Pair) Unsplit(fast, lag float64) error {
	return p.applySplit(fast, -TimeToSampsEven(lag, p.delta))
}

func (p *Pair) applySplit(fast float64, nsamps int) error {
	orig, _ := p.CompAngles()

	p.RotateTo(0)

	x, y, err := Split(p.X, p.Y, fast, nsamps)
	if err != nil {
		return err
	}

	p.X, p.Y = x, y
	p.RotateTo(orig)

	return nil
}

// Chop returns a copy of the pair restricted to the active window, with
// the taper applied and the window recentred on the new trace.
func (p *Pair) Chop() (*Pair, error) {
	x, y, err := Chop(p.X, p.Y, p.window)
	if err != nil {
		return nil, err
	}

	c := p.Copy()
	c.X, c.Y = x, y
	c.window = Window{Width: p.window.Width, Taper: p.window.Taper}

	return c, nil
}

// ChopData returns the windowed, tapered component samples without
// building a new pair.
func (p *Pair) ChopData() ([]float64, []float64, error) {
	return Chop(p.X, p.Y, p.window)
}

// Energy returns the total power of the pair summed over all samples.
func (p *Pair) Energy() float64 {
	return Energy(p.X) + Energy(p.Y)
}

// Copy returns a deep copy of the pair.
func (p *Pair) Copy() *Pair {
	return &Pair{
		X:      append([]float64(nil), p.X...),
		Y:      append([]float64(nil), p.Y...),
		delta:  p.delta,
		window: p.window,
		geom:   p.geom,
		cmp:    p.cmp,
	}
}

// Equal reports whether two pairs are element-wise identical in samples
// and metadata.
func (p *Pair) Equal(other *Pair) bool {
	if other == nil {
		return false
	}

	if p.delta != other.delta || p.window != other.window || p.geom != other.geom || p.cmp != other.cmp {
		return false
	}

	if len(p.X) != len(other.X) {
		return false
	}

	for i := range p.X {
		if p.X[i] != other.X[i] || p.Y[i] != other.Y[i] {
			return false
		}
	}

	return true
}
