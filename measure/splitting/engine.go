package splitting

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-split/dsp/wave"
)

// Measure grid-searches candidate splitting operators over p, scoring
// each (fast angle, lag) node with obj, and returns the scored
// measurement. The input pair is not modified.
//
// All configuration problems, including a window too wide to survive
// the worst-case lag removal, are detected before any node is scored;
// the search itself is all-or-nothing.
func Measure(p *wave.Pair, obj Objective, cfg Config) (*Measurement, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil trace pair", ErrConfig)
	}

	if obj == nil {
		return nil, fmt.Errorf("%w: nil objective", ErrConfig)
	}

	cfg = normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if obj.NeedsPolarization() && cfg.Pol == nil {
		return nil, fmt.Errorf("%w: objective %q requires a source polarization", ErrConfig, obj.Name())
	}

	data := p.Copy()
	if cfg.Window != nil {
		if err := data.SetWindow(*cfg.Window); err != nil {
			return nil, err
		}
	}

	grid, err := buildGrid(cfg, data.Delta(), data.WindowWidth())
	if err != nil {
		return nil, err
	}

	// Canonical orientation: the whole search runs with the first
	// component at angle 0.
	canon := data.Copy()
	canon.RotateTo(0)

	x, y := canon.X, canon.Y

	if cfg.RcvCorr != nil {
		rcvS := wave.TimeToSampsEven(cfg.RcvCorr.Lag, data.Delta())

		x, y, err = wave.Unsplit(x, y, cfg.RcvCorr.Fast, rcvS)
		if err != nil {
			return nil, err
		}
	}

	// The source correction strategy is fixed before the loops: either a
	// pass-through or the unsplit at the correction fast axis expressed
	// relative to the candidate angle.
	srcS := 0
	srcCorrect := func(x, y []float64, ang float64) ([]float64, []float64, error) {
		return x, y, nil
	}

	if cfg.SrcCorr != nil {
		srcS = wave.TimeToSampsEven(cfg.SrcCorr.Lag, data.Delta())
		srcFast := cfg.SrcCorr.Fast
		srcCorrect = func(x, y []float64, ang float64) ([]float64, []float64, error) {
			return wave.Unsplit(x, y, srcFast-ang, srcS)
		}
	}

	// The window must survive the worst-case truncation. Smaller lags
	// leave longer traces, so validating the shortest one covers every
	// node.
	maxS := grid.SLags[len(grid.SLags)-1]
	win := data.Window()

	if err := win.Validate(len(x) - maxS - srcS); err != nil {
		return nil, fmt.Errorf("splitting: window too wide for maximum lag: %w", err)
	}

	value := make([][]float64, len(grid.Degs))
	stat := make([][]float64, len(grid.Degs))

	for i := range value {
		value[i] = make([]float64, len(grid.SLags))
		stat[i] = make([]float64, len(grid.SLags))
	}

	workers := cfg.Workers
	if workers > len(grid.Degs) {
		workers = len(grid.Degs)
	}

	// Each worker owns disjoint angle rows, so the surfaces need no
	// locking.
	var wg sync.WaitGroup

	errs := make([]error, workers)

	for w := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := w; i < len(grid.Degs); i += workers {
				if err := scoreRow(x, y, grid, i, obj, cfg, win, srcCorrect, value[i], stat[i]); err != nil {
					errs[w] = err
					return
				}
			}
		}()
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return newMeasurement(data, obj, cfg, grid, value, stat)
}

// scoreRow evaluates every lag for one candidate angle. The rotation to
// the candidate frame happens once per row; each node then removes its
// candidate lag, applies the per-node source correction, chops to the
// recentred window and scores.
func scoreRow(x, y []float64, grid Grid, i int, obj Objective, cfg Config, win wave.Window, srcCorrect func(x, y []float64, ang float64) ([]float64, []float64, error), valueRow, statRow []float64) error {
	ang := grid.Degs[i]
	rx, ry := wave.Rotate(x, y, ang)

	for j, shift := range grid.SLags {
		lx, ly, err := wave.Lag(rx, ry, -shift)
		if err != nil {
			return err
		}

		lx, ly, err = srcCorrect(lx, ly, ang)
		if err != nil {
			return err
		}

		// The window bounds derive from the truncated trace length, so
		// the compared segment stays aligned in absolute time.
		cx, cy, err := wave.Chop(lx, ly, win)
		if err != nil {
			return err
		}

		if obj.NeedsPolarization() {
			cx, cy = wave.Rotate(cx, cy, *cfg.Pol-ang)
		}

		node := obj.Score(cx, cy)
		valueRow[j] = node.Value
		statRow[j] = node.Stat
	}

	return nil
}
