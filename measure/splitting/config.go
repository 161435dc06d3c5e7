package splitting

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/cwbudde/algo-split/dsp/wave"
)

const (
	defaultNDegs = 90
	defaultNLags = 40

	minDeg = -90.0
	maxDeg = 90.0
)

// Correction is a fixed splitting operator removed from the data in
// addition to the candidate under test: receiver-side corrections are
// removed once before the search, source-side corrections per node
// relative to the candidate fast axis.
type Correction struct {
	// Fast is the correction fast direction in degrees.
	Fast float64
	// Lag is the correction delay time; must be non-negative. It is
	// snapped to an even sample count at the trace's sampling interval.
	Lag float64
}

// Config holds measurement parameters. The zero value selects the
// default grids: 90 fast angles across [-90, 90) and 40 lag times from
// zero to a quarter of the window width.
type Config struct {
	// Degs overrides the generated angle grid (degrees).
	Degs []float64
	// NDegs sets the density of the generated angle grid.
	NDegs int

	// Lags overrides the generated lag grid (time units).
	Lags []float64
	// MinLag, MaxLag and NLags parameterize the generated lag grid.
	// MaxLag defaults to a quarter of the analysis window width.
	MinLag float64
	MaxLag float64
	NLags  int

	// RcvCorr is an optional receiver-side correction, removed once
	// before the angle loop.
	RcvCorr *Correction
	// SrcCorr is an optional source-side correction. Source corrections
	// are defined relative to the unknown fast axis, so the engine
	// re-applies this per grid node at the candidate angle.
	SrcCorr *Correction

	// Window overrides the pair's active analysis window.
	Window *wave.Window

	// Pol fixes the source polarization in degrees. Required by
	// objectives that score in the radial/transverse frame; otherwise it
	// overrides the polarization estimated from the corrected data.
	Pol *float64

	// Name labels the measurement in reports.
	Name string

	// Workers caps the number of goroutines scoring angle rows in
	// parallel. Defaults to GOMAXPROCS.
	Workers int
}

func normalizeConfig(cfg Config) Config {
	if cfg.NDegs <= 0 {
		cfg.NDegs = defaultNDegs
	}

	if cfg.NLags <= 0 {
		cfg.NLags = defaultNLags
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	if cfg.Name == "" {
		cfg.Name = "untitled"
	}

	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.RcvCorr != nil && cfg.RcvCorr.Lag < 0 {
		return fmt.Errorf("%w: receiver correction lag must be >= 0: %f", ErrConfig, cfg.RcvCorr.Lag)
	}

	if cfg.SrcCorr != nil && cfg.SrcCorr.Lag < 0 {
		return fmt.Errorf("%w: source correction lag must be >= 0: %f", ErrConfig, cfg.SrcCorr.Lag)
	}

	if cfg.MinLag < 0 {
		return fmt.Errorf("%w: minimum lag must be >= 0: %f", ErrConfig, cfg.MinLag)
	}

	return nil
}

// Grid holds the deduplicated search axes: candidate fast angles, the
// even sample shifts actually searched, and the lag times recomputed
// from those shifts.
type Grid struct {
	// Degs are the candidate fast angles in degrees.
	Degs []float64
	// Lags are the reported lag times, recomputed from SLags so they
	// round-trip exactly through the sample grid.
	Lags []float64
	// SLags are the deduplicated even sample shifts, ascending.
	SLags []int
}

// DegStep returns the angle grid spacing, or zero for a single angle.
func (g Grid) DegStep() float64 {
	if len(g.Degs) < 2 {
		return 0
	}

	return g.Degs[1] - g.Degs[0]
}

// LagStep returns the lag grid spacing, or zero for a single lag.
func (g Grid) LagStep() float64 {
	if len(g.Lags) < 2 {
		return 0
	}

	return g.Lags[1] - g.Lags[0]
}

// buildGrid generates the search axes for a trace with the given
// sampling interval and analysis window width (time units). Requested
// lag times are snapped to even sample counts and deduplicated, so the
// same request always yields the same grid.
func buildGrid(cfg Config, delta, windowWidth float64) (Grid, error) {
	degs, err := buildDegs(cfg)
	if err != nil {
		return Grid{}, err
	}

	raw, err := buildLagTimes(cfg, windowWidth)
	if err != nil {
		return Grid{}, err
	}

	seen := make(map[int]struct{}, len(raw))
	slags := make([]int, 0, len(raw))

	for _, t := range raw {
		if t < 0 {
			return Grid{}, fmt.Errorf("%w: lag times must be >= 0: %f", ErrConfig, t)
		}

		s := wave.TimeToSampsEven(t, delta)
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}

		slags = append(slags, s)
	}

	sort.Ints(slags)

	lags := make([]float64, len(slags))
	for i, s := range slags {
		lags[i] = wave.SampsToTime(s, delta)
	}

	return Grid{Degs: degs, Lags: lags, SLags: slags}, nil
}

func buildDegs(cfg Config) ([]float64, error) {
	if len(cfg.Degs) > 0 {
		return append([]float64(nil), cfg.Degs...), nil
	}

	step := (maxDeg - minDeg) / float64(cfg.NDegs)

	degs := make([]float64, cfg.NDegs)
	for i := range degs {
		degs[i] = minDeg + step*float64(i)
	}

	return degs, nil
}

func buildLagTimes(cfg Config, windowWidth float64) ([]float64, error) {
	if len(cfg.Lags) > 0 {
		return append([]float64(nil), cfg.Lags...), nil
	}

	maxLag := cfg.MaxLag
	if maxLag <= 0 {
		maxLag = windowWidth / 4
	}

	if maxLag <= cfg.MinLag {
		return nil, fmt.Errorf("%w: maximum lag %f must exceed minimum lag %f", ErrConfig, maxLag, cfg.MinLag)
	}

	if cfg.NLags < 2 {
		return nil, fmt.Errorf("%w: lag grid needs at least 2 points: %d", ErrConfig, cfg.NLags)
	}

	step := (maxLag - cfg.MinLag) / float64(cfg.NLags-1)

	lags := make([]float64, cfg.NLags)
	for i := range lags {
		lags[i] = cfg.MinLag + step*float64(i)
	}

	return lags, nil
}
