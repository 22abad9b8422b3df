package detection

import (
	"errors"
	"math"
	"testing"
)

func TestRayleighTail(t *testing.T) {
	if v := RayleighTail(0); v != 1 {
		t.Fatalf("RayleighTail(0) = %v", v)
	}
	if v := RayleighTail(-2); v != 1 {
		t.Fatalf("RayleighTail(-2) = %v", v)
	}
	if v, want := RayleighTail(2), math.Exp(-4); v != want {
		t.Fatalf("RayleighTail(2) = %v, want %v", v, want)
	}
}

func TestThresholdForPfa(t *testing.T) {
	for _, pfa := range []float64{1, 0.1, 1e-6, 1e-12} {
		th, err := ThresholdForPfa(pfa)
		if err != nil {
			t.Fatalf("ThresholdForPfa(%g): %v", pfa, err)
		}
		if back := RayleighTail(th); math.Abs(back-pfa)/pfa > 1e-12 {
			t.Fatalf("ThresholdForPfa(%g) = %v, tail %g", pfa, th, back)
		}
	}
	for _, bad := range []float64{0, -0.1, 1.5, math.NaN()} {
		if _, err := ThresholdForPfa(bad); !errors.Is(err, ErrInvalidProbability) {
			t.Fatalf("ThresholdForPfa(%v) expected ErrInvalidProbability, got %v", bad, err)
		}
	}
}

func TestTailIntegral(t *testing.T) {
	noise := func(x, _ float64) float64 { return RayleighNoise(x) }
	got := TailIntegral(noise, 0, 1, 10, 100)
	if want := math.Exp(-1); math.Abs(got-want) > 1e-10 {
		t.Fatalf("rayleigh tail from 1 = %v, want %v", got, want)
	}

	// Lower bound below zero integrates from the origin.
	if got := TailIntegral(noise, 0, -5, 10, 100); math.Abs(got-1) > 1e-10 {
		t.Fatalf("full rayleigh mass = %v", got)
	}

	snr := 3.0
	got = TailIntegral(Swerling1Signal, snr, 2, 30, 200)
	if want := math.Exp(-4 / (1 + snr)); math.Abs(got-want) > 1e-10 {
		t.Fatalf("swerling1 tail = %v, want %v", got, want)
	}

	if v := TailIntegral(noise, 0, 5, 5, 10); v != 0 {
		t.Fatalf("empty range = %v", v)
	}
}
