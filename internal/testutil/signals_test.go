package testutil

import (
	"math"
	"testing"
)

func TestRickerPulse(t *testing.T) {
	p := RickerPulse(101, 8)
	if len(p) != 101 {
		t.Fatalf("len = %d, want 101", len(p))
	}
	// Peak at the centre sample.
	for i, v := range p {
		if v > p[50] {
			t.Fatalf("p[%d] = %v exceeds centre value %v", i, v, p[50])
		}
	}
	if p[50] <= 0 {
		t.Fatalf("centre value = %v, want > 0", p[50])
	}
	// Symmetric about the centre.
	for i := 0; i < 50; i++ {
		if math.Abs(p[i]-p[100-i]) > 1e-12 {
			t.Fatalf("asymmetry at index %d: %v vs %v", i, p[i], p[100-i])
		}
	}
}

func TestPolarizedPair(t *testing.T) {
	x, y := PolarizedPair(101, 8, 30)
	if len(x) != 101 || len(y) != 101 {
		t.Fatalf("lengths = %d, %d, want 101", len(x), len(y))
	}
	// Particle motion is a straight line at 30 degrees.
	want := math.Tan(30 * math.Pi / 180)
	for i := range x {
		if x[i] == 0 {
			continue
		}
		if math.Abs(y[i]/x[i]-want) > 1e-12 {
			t.Fatalf("index %d: y/x = %v, want %v", i, y[i]/x[i], want)
		}
	}
}

func TestPolarizedPairAtZero(t *testing.T) {
	x, y := PolarizedPair(51, 4, 0)
	pulse := RickerPulse(51, 4)
	RequireSliceNearlyEqual(t, x, pulse, 1e-15)
	for i, v := range y {
		if v != 0 {
			t.Fatalf("y[%d] = %v, want 0", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	if len(imp) != 8 {
		t.Fatalf("len = %d, want 8", len(imp))
	}
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1.0
		}
		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}
}
