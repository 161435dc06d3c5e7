package splitting

import (
	"math"

	timestats "github.com/cwbudde/algo-dsp/stats/time"
	"github.com/cwbudde/algo-split/dsp/wave"
	"github.com/cwbudde/algo-split/stats/ftest"
)

// Measurement is the read-only snapshot produced by [Measure]: grid
// axes, error surfaces, the best-fit splitting parameters with their
// one-sigma errors, and the derived statistics. Plotting and reporting
// code consumes it without recomputation.
type Measurement struct {
	// Name is the measurement label from the config.
	Name string
	// Objective names the scoring function used.
	Objective string

	// Degs and Lags are the grid axes; SLags are the even sample shifts
	// the lag axis was snapped to.
	Degs  []float64
	Lags  []float64
	SLags []int

	// Value is the display surface indexed [angle][lag]; the best fit
	// is its optimum. Stat is the minimized surface the F-test runs on.
	Value [][]float64
	Stat  [][]float64

	// Fast and Lag are the best-fit splitting parameters, DFast and
	// DLag their one-sigma errors (quarter of the 95% region width).
	Fast  float64
	Lag   float64
	DFast float64
	DLag  float64

	// SrcPol is the source polarization in degrees: taken from the
	// config when fixed, estimated from the corrected data otherwise.
	SrcPol float64
	// SNR is the Restivo and Helffrich (1999) signal to noise ratio of
	// the windowed corrected data in the polarization frame.
	SNR float64
	// NDF is the effective degrees of freedom of the windowed noise.
	NDF float64
	// Level bounds the 95% confidence region on the Stat surface; NaN
	// when NDF is too small for the F-test (the error bars then span
	// the full grid).
	Level float64

	// FastProfile and LagProfile are the Value surface summed onto the
	// angle and lag axes.
	FastProfile []float64
	LagProfile  []float64
	// NI measures self-similarity of the fast profile under a 90 degree
	// shift; values near zero indicate a null measurement.
	NI float64

	polarity ftest.Polarity
	data     *wave.Pair
	rcvCorr  *Correction
	srcCorr  *Correction
}

func newMeasurement(data *wave.Pair, obj Objective, cfg Config, grid Grid, value, stat [][]float64) (*Measurement, error) {
	bestI, bestJ := locateBest(value, obj.Polarity())

	m := &Measurement{
		Name:      cfg.Name,
		Objective: obj.Name(),
		Degs:      grid.Degs,
		Lags:      grid.Lags,
		SLags:     grid.SLags,
		Value:     value,
		Stat:      stat,
		Fast:      grid.Degs[bestI],
		Lag:       grid.Lags[bestJ],
		polarity:  obj.Polarity(),
		data:      data,
		rcvCorr:   cfg.RcvCorr,
		srcCorr:   cfg.SrcCorr,
	}

	m.FastProfile, m.LagProfile = profiles(value)
	m.NI = nullIntensity(m.FastProfile)

	if cfg.Pol != nil {
		m.SrcPol = *cfg.Pol
	} else {
		corr, err := m.DataCorr()
		if err != nil {
			return nil, err
		}

		pol, err := corr.EstimatePol()
		if err != nil {
			return nil, err
		}

		m.SrcPol = pol
	}

	spc, err := m.SrcPolDataCorr()
	if err != nil {
		return nil, err
	}

	radial, trans, err := spc.ChopData()
	if err != nil {
		return nil, err
	}

	m.NDF = ftest.DegreesOfFreedom(trans)
	m.SNR = snrRH(radial, trans)

	statBest := stat[0][0]
	for _, row := range stat {
		for _, v := range row {
			if v < statBest {
				statBest = v
			}
		}
	}

	m.Level, err = ftest.ConfidenceLevel(statBest, m.NDF, ftest.PolarityMin)
	if err != nil {
		// Too few degrees of freedom to bound the region; the NaN level
		// yields an empty mask and full-grid error bars below.
		m.Level = math.NaN()
	}

	m.DFast, m.DLag = ftest.ErrorBars(m.ConfidenceMask(), grid.DegStep(), grid.LagStep())

	return m, nil
}

// locateBest returns the surface optimum: the maximum for peaking
// objectives, the minimum for dipping ones.
func locateBest(value [][]float64, polarity ftest.Polarity) (int, int) {
	bi, bj := 0, 0
	best := value[0][0]

	for i, row := range value {
		for j, v := range row {
			better := v < best
			if polarity == ftest.PolarityMax {
				better = v > best
			}

			if better {
				best, bi, bj = v, i, j
			}
		}
	}

	return bi, bj
}

func profiles(value [][]float64) (fast, lag []float64) {
	fast = make([]float64, len(value))
	lag = make([]float64, len(value[0]))

	for i, row := range value {
		for j, v := range row {
			fast[i] += v
			lag[j] += v
		}
	}

	return fast, lag
}

// nullIntensity compares the fast profile against itself shifted by 90
// degrees: for a null measurement the two are near-identical and the
// normalized squared difference collapses towards zero.
func nullIntensity(fastProfile []float64) float64 {
	n := len(fastProfile)
	if n == 0 {
		return 0
	}

	half := n / 2

	var sumDiffSq, sumMult float64

	for i, v := range fastProfile {
		rolled := fastProfile[(i+half)%n]
		d := v - rolled
		sumDiffSq += d * d
		sumMult += v * rolled
	}

	if sumMult == 0 {
		return 0
	}

	return sumDiffSq / sumMult
}

// snrRH is the Restivo and Helffrich (1999) signal to noise ratio: peak
// signal amplitude over twice the noise standard deviation.
func snrRH(signal, noise []float64) float64 {
	sig := timestats.Calculate(signal)
	nse := timestats.Calculate(noise)

	return sig.Max / (2 * math.Sqrt(nse.Variance))
}

// Data returns a copy of the measured input pair.
func (m *Measurement) Data() *wave.Pair {
	return m.data.Copy()
}

// DataCorr returns the input pair with all corrections removed:
// receiver-side correction first, then the best-fit splitting operator,
// then the source-side correction.
func (m *Measurement) DataCorr() (*wave.Pair, error) {
	corr := m.data.Copy()

	if m.rcvCorr != nil {
		if err := corr.Unsplit(m.rcvCorr.Fast, m.rcvCorr.Lag); err != nil {
			return nil, err
		}
	}

	if err := corr.Unsplit(m.Fast, m.Lag); err != nil {
		return nil, err
	}

	if m.srcCorr != nil {
		if err := corr.Unsplit(m.srcCorr.Fast, m.srcCorr.Lag); err != nil {
			return nil, err
		}
	}

	return corr, nil
}

// SrcPolData returns the input pair rotated into the source
// polarization frame (radial, transverse).
func (m *Measurement) SrcPolData() *wave.Pair {
	d := m.data.Copy()
	d.RotateTo(m.SrcPol)

	return d
}

// SrcPolDataCorr returns the corrected pair rotated into the source
// polarization frame.
func (m *Measurement) SrcPolDataCorr() (*wave.Pair, error) {
	corr, err := m.DataCorr()
	if err != nil {
		return nil, err
	}

	corr.RotateTo(m.SrcPol)

	return corr, nil
}

// FastData returns the input pair rotated into the best-fit fast/slow
// frame.
func (m *Measurement) FastData() *wave.Pair {
	d := m.data.Copy()
	d.RotateTo(m.Fast)

	return d
}

// FastDataCorr returns the corrected pair rotated into the best-fit
// fast/slow frame.
func (m *Measurement) FastDataCorr() (*wave.Pair, error) {
	corr, err := m.DataCorr()
	if err != nil {
		return nil, err
	}

	corr.RotateTo(m.Fast)

	return corr, nil
}

// ConfidenceMask returns the grid nodes inside the 95% confidence
// region of the Stat surface.
func (m *Measurement) ConfidenceMask() [][]bool {
	return ftest.Mask(m.Stat, m.Level, ftest.PolarityMin)
}

// Equal reports whether two measurements are element-wise identical in
// axes, surfaces, derived statistics and input data.
func (m *Measurement) Equal(other *Measurement) bool {
	if other == nil {
		return false
	}

	if m.Name != other.Name || m.Objective != other.Objective || m.polarity != other.polarity {
		return false
	}

	scalars := [][2]float64{
		{m.Fast, other.Fast}, {m.Lag, other.Lag},
		{m.DFast, other.DFast}, {m.DLag, other.DLag},
		{m.SrcPol, other.SrcPol}, {m.SNR, other.SNR},
		{m.NDF, other.NDF}, {m.Level, other.Level},
		{m.NI, other.NI},
	}

	for _, s := range scalars {
		if !floatEqual(s[0], s[1]) {
			return false
		}
	}

	if !floatsEqual(m.Degs, other.Degs) || !floatsEqual(m.Lags, other.Lags) || !intsEqual(m.SLags, other.SLags) {
		return false
	}

	if !surfaceEqual(m.Value, other.Value) || !surfaceEqual(m.Stat, other.Stat) {
		return false
	}

	if !floatsEqual(m.FastProfile, other.FastProfile) || !floatsEqual(m.LagProfile, other.LagProfile) {
		return false
	}

	return m.data.Equal(other.data)
}

func floatEqual(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !floatEqual(a[i], b[i]) {
			return false
		}
	}

	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func surfaceEqual(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !floatsEqual(a[i], b[i]) {
			return false
		}
	}

	return true
}
