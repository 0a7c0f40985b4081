package particle

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := RandomInRange(rng, -2, 3)
		if v < -2 || v > 3 {
			t.Fatalf("RandomInRange(-2, 3) = %v, out of range", v)
		}
	}

	// min >= max 返回 min
	if v := RandomInRange(rng, 5, 5); v != 5 {
		t.Errorf("RandomInRange(5, 5) = %v, want 5", v)
	}
	if v := RandomInRange(nil, 7, 1); v != 7 {
		t.Errorf("RandomInRange(7, 1) = %v, want 7", v)
	}
}

func TestJitter(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		v := Jitter(rng, 0.4, 0.3)
		if v < 0.25-1e-9 || v > 0.55+1e-9 {
			t.Fatalf("Jitter(0.4, 0.3) = %v, want within [0.25, 0.55]", v)
		}
	}
	if v := Jitter(rng, math.Pi, 0); v != math.Pi {
		t.Errorf("Jitter with zero span = %v, want base", v)
	}
}

func TestSurfaceAnchor(t *testing.T) {
	ax, ay, rx, ry := SurfaceAnchor(400, 300)
	if ax != 200 || ay != 150 {
		t.Errorf("anchor = (%v, %v), want (200, 150)", ax, ay)
	}
	if rx != 100 || ry != 30 {
		t.Errorf("position range = (%v, %v), want (100, 30)", rx, ry)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0.5, 0, 1, 0.5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
