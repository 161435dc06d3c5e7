package wave_test

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-split/dsp/wave"
	"github.com/cwbudde/algo-split/internal/testutil"
)

func noisyPair(t *testing.T, n int) ([]float64, []float64) {
	t.Helper()

	x, y := testutil.PolarizedPair(n, 16, 25)
	nx := testutil.DeterministicNoise(7, 0.05, n)
	ny := testutil.DeterministicNoise(8, 0.05, n)

	for i := range x {
		x[i] += nx[i]
		y[i] += ny[i]
	}

	return x, y
}

func TestRotateComposition(t *testing.T) {
	x, y := noisyPair(t, 201)

	cases := []struct{ a, b float64 }{
		{30, 40},
		{-90, 45},
		{123.4, -67.8},
		{0, 180},
		{-179.9, 179.9},
	}

	for _, tc := range cases {
		x1, y1 := wave.Rotate(x, y, tc.a)
		x1, y1 = wave.Rotate(x1, y1, tc.b)

		x2, y2 := wave.Rotate(x, y, tc.a+tc.b)

		testutil.RequireSliceNearlyEqual(t, x1, x2, 1e-9)
		testutil.RequireSliceNearlyEqual(t, y1, y2, 1e-9)
	}
}

func TestRotateEnergyConservation(t *testing.T) {
	x, y := noisyPair(t, 201)
	before := wave.Energy(x) + wave.Energy(y)

	for _, ang := range []float64{-90, -31.5, 12, 45, 89, 144} {
		rx, ry := wave.Rotate(x, y, ang)

		after := wave.Energy(rx) + wave.Energy(ry)
		testutil.RequireNear(t, "total power", after, before, 1e-9*before)
	}
}

func TestLagTruncatesToCommonRegion(t *testing.T) {
	x, y := noisyPair(t, 101)

	lx, ly, err := wave.Lag(x, y, 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(lx) != 97 || len(ly) != 97 {
		t.Fatalf("lengths = %d, %d, want 97", len(lx), len(ly))
	}

	// Composing with the opposite shift recovers the central region.
	bx, by, err := wave.Lag(lx, ly, -4)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, bx, x[4:97], 0)
	testutil.RequireSliceNearlyEqual(t, by, y[4:97], 0)
}

func TestLagValidation(t *testing.T) {
	x, y := noisyPair(t, 101)

	if _, _, err := wave.Lag(x, y, 3); !errors.Is(err, wave.ErrConfig) {
		t.Fatalf("odd lag: error = %v, want ErrConfig", err)
	}

	if _, _, err := wave.Lag(x, y, 102); !errors.Is(err, wave.ErrConfig) {
		t.Fatalf("oversized lag: error = %v, want ErrConfig", err)
	}

	if _, _, err := wave.Lag(x, y[:100], 2); !errors.Is(err, wave.ErrConfig) {
		t.Fatalf("length mismatch: error = %v, want ErrConfig", err)
	}

	lx, ly, err := wave.Lag(x, y, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lx) != 101 || len(ly) != 101 {
		t.Fatalf("zero lag changed lengths: %d, %d", len(lx), len(ly))
	}
}

func TestSplitUnsplitInvertibility(t *testing.T) {
	x, y := noisyPair(t, 201)

	for _, tc := range []struct {
		fast float64
		lag  int
	}{
		{30, 8},
		{-60, 4},
		{89, 20},
		{0, 2},
	} {
		sx, sy, err := wave.Split(x, y, tc.fast, tc.lag)
		if err != nil {
			t.Fatal(err)
		}

		ux, uy, err := wave.Unsplit(sx, sy, tc.fast, tc.lag)
		if err != nil {
			t.Fatal(err)
		}

		// Each pass truncates by lag samples, so the recovered region is
		// the original minus lag samples at each end.
		testutil.RequireSliceNearlyEqual(t, ux, x[tc.lag:201-tc.lag], 1e-9)
		testutil.RequireSliceNearlyEqual(t, uy, y[tc.lag:201-tc.lag], 1e-9)
	}
}

func TestChop(t *testing.T) {
	x, y := noisyPair(t, 101)

	w := wave.Window{Width: 51}

	cx, cy, err := wave.Chop(x, y, w)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, cx, x[25:76], 0)
	testutil.RequireSliceNearlyEqual(t, cy, y[25:76], 0)
}

func TestChopTaperPinsEnds(t *testing.T) {
	x, y := noisyPair(t, 101)

	cx, cy, err := wave.Chop(x, y, wave.Window{Width: 51, Taper: 1})
	if err != nil {
		t.Fatal(err)
	}

	if cx[0] != 0 || cx[50] != 0 || cy[0] != 0 || cy[50] != 0 {
		t.Fatalf("tapered window ends not zero: %v %v %v %v", cx[0], cx[50], cy[0], cy[50])
	}
}

func TestChopOutOfRange(t *testing.T) {
	x, y := noisyPair(t, 101)

	if _, _, err := wave.Chop(x, y, wave.Window{Width: 103}); !errors.Is(err, wave.ErrWindowOutOfRange) {
		t.Fatalf("error = %v, want ErrWindowOutOfRange", err)
	}
}

func TestChopRange(t *testing.T) {
	x, y := noisyPair(t, 101)

	cx, cy, err := wave.ChopRange(x, y, 10, 20)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, cx, x[10:21], 0)
	testutil.RequireSliceNearlyEqual(t, cy, y[10:21], 0)

	if _, _, err := wave.ChopRange(x, y, -1, 20); !errors.Is(err, wave.ErrWindowOutOfRange) {
		t.Fatalf("error = %v, want ErrWindowOutOfRange", err)
	}

	if _, _, err := wave.ChopRange(x, y, 50, 101); !errors.Is(err, wave.ErrWindowOutOfRange) {
		t.Fatalf("error = %v, want ErrWindowOutOfRange", err)
	}
}

func TestTimeToSamps(t *testing.T) {
	cases := []struct {
		t, delta float64
		want     int
	}{
		{1.2, 0.01, 120},
		{0.0, 0.01, 0},
		{0.304, 0.01, 30},
	}

	for _, tc := range cases {
		if got := wave.TimeToSamps(tc.t, tc.delta); got != tc.want {
			t.Errorf("TimeToSamps(%v, %v) = %d, want %d", tc.t, tc.delta, got, tc.want)
		}
	}
}

func TestTimeToSampsEven(t *testing.T) {
	cases := []struct {
		t, delta float64
		want     int
	}{
		{1.2, 0.01, 120},
		{0.299, 0.01, 30},
		{0.011, 0.01, 2},
		{0.004, 0.01, 0},
	}

	for _, tc := range cases {
		got := wave.TimeToSampsEven(tc.t, tc.delta)
		if got != tc.want {
			t.Errorf("TimeToSampsEven(%v, %v) = %d, want %d", tc.t, tc.delta, got, tc.want)
		}
		if got%2 != 0 {
			t.Errorf("TimeToSampsEven(%v, %v) = %d, want even", tc.t, tc.delta, got)
		}
	}
}

func TestSampsToTimeRoundTrip(t *testing.T) {
	for _, s := range []int{0, 2, 40, 120} {
		tt := wave.SampsToTime(s, 0.01)
		if got := wave.TimeToSampsEven(tt, 0.01); got != s {
			t.Errorf("round trip of %d samples via %v = %d", s, tt, got)
		}
	}
}
