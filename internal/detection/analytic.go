package detection

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// ErrInvalidProbability is returned for probabilities outside (0, 1].
var ErrInvalidProbability = errors.New("probability must be in (0, 1]")

// RayleighTail is the closed-form false alarm probability of the noise
// envelope at the given threshold.
func RayleighTail(threshold float64) float64 {
	if threshold <= 0 {
		return 1
	}
	return math.Exp(-threshold * threshold)
}

// ThresholdForPfa inverts RayleighTail.
func ThresholdForPfa(pfa float64) (float64, error) {
	if !(pfa > 0 && pfa <= 1) {
		return 0, fmt.Errorf("%w: got %g", ErrInvalidProbability, pfa)
	}
	return math.Sqrt(-math.Log(pfa)), nil
}

// TailIntegral integrates pdf over [lower, upper] with an n-point
// Gauss-Legendre rule. Densities are zero below the origin so lower is
// clamped to 0.
func TailIntegral(pdf PDF, snr, lower, upper float64, n int) float64 {
	if n <= 0 {
		n = 1
	}
	lower = math.Max(lower, 0)
	if lower >= upper {
		return 0
	}
	f := func(x float64) float64 { return pdf(x, snr) }
	return quad.Fixed(f, lower, upper, n, nil, 0)
}
