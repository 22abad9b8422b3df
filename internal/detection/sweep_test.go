package detection

import (
	"errors"
	"math"
	"testing"
)

func TestThresholds(t *testing.T) {
	ths, err := Thresholds(0, 10, 101)
	if err != nil {
		t.Fatalf("thresholds: %v", err)
	}
	if len(ths) != 101 || ths[0] != 0 || ths[100] != 10 {
		t.Fatalf("unexpected grid: len=%d first=%v last=%v", len(ths), ths[0], ths[len(ths)-1])
	}
	if math.Abs(ths[45]-4.5) > 1e-12 {
		t.Fatalf("ths[45] = %v", ths[45])
	}

	for _, n := range []int{0, 1} {
		if _, err := Thresholds(0, 10, n); !errors.Is(err, ErrInvalidSweep) {
			t.Fatalf("n=%d: expected ErrInvalidSweep, got %v", n, err)
		}
	}
	if _, err := Thresholds(math.NaN(), 1, 5); !errors.Is(err, ErrInvalidSweep) {
		t.Fatalf("expected ErrInvalidSweep for NaN bound, got %v", err)
	}
}

func TestSweepMatchesCompute(t *testing.T) {
	ths, _ := Thresholds(0, 10, 41)
	for _, rule := range []IntegrationRule{RuleLeftRectangle, RuleTrapezoidal} {
		params := DefaultParameters(13, math.NaN(), Swerling3)
		params.Rule = rule
		points, err := Sweep(params, ths)
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if len(points) != len(ths) {
			t.Fatalf("expected %d points, got %d", len(ths), len(points))
		}
		for i, p := range points {
			params.Threshold = ths[i]
			res, err := Compute(params)
			if err != nil {
				t.Fatalf("compute: %v", err)
			}
			if p.Threshold != ths[i] || p.Pd != res.Pd || p.Pfa != res.Pfa {
				t.Fatalf("%s point %d = %+v, compute gave pd=%v pfa=%v", rule, i, p, res.Pd, res.Pfa)
			}
		}
	}
}

func TestSweepMonotonic(t *testing.T) {
	ths, _ := Thresholds(0, 10, 201)
	for _, model := range Models() {
		points, err := Sweep(DefaultParameters(20, 0, model), ths)
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		for i := 1; i < len(points); i++ {
			if points[i].Pd > points[i-1].Pd || points[i].Pfa > points[i-1].Pfa {
				t.Fatalf("%s: not monotonic at %v", model, points[i].Threshold)
			}
		}
	}
}

func TestSweepErrors(t *testing.T) {
	params := DefaultParameters(13, 0, NonFluctuating)
	if _, err := Sweep(params, []float64{1, math.NaN()}); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
	params.NumPoints = 0
	if _, err := Sweep(params, []float64{1}); !errors.Is(err, ErrInvalidNumPoints) {
		t.Fatalf("expected ErrInvalidNumPoints, got %v", err)
	}
}
