package detection

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidSweep is returned for threshold grids with fewer than two points
// or non-finite bounds.
var ErrInvalidSweep = errors.New("threshold sweep needs at least two points and finite bounds")

// OperatingPoint is one (threshold, Pd, Pfa) triple of a receiver operating
// characteristic.
type OperatingPoint struct {
	Threshold float64 `json:"threshold"`
	Pd        float64 `json:"pd"`
	Pfa       float64 `json:"pfa"`
}

// Thresholds returns n evenly spaced thresholds from lo to hi inclusive.
func Thresholds(lo, hi float64, n int) ([]float64, error) {
	if n < 2 || math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, ErrInvalidSweep
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}

// Sweep evaluates Pd and Pfa for every threshold on one shared sample grid.
// params.Threshold is ignored.
func Sweep(params CalculationParameters, thresholds []float64) ([]OperatingPoint, error) {
	params.Threshold = 0
	if err := params.Validate(); err != nil {
		return nil, err
	}
	samples, dx := sampleGrid(params)
	out := make([]OperatingPoint, 0, len(thresholds))
	for _, th := range thresholds {
		if math.IsNaN(th) {
			return nil, ErrInvalidThreshold
		}
		pd, pfa := tail(samples, dx, th, params.Rule)
		out = append(out, OperatingPoint{
			Threshold: th,
			Pd:        clampProbability(pd),
			Pfa:       clampProbability(pfa),
		})
	}
	return out, nil
}
