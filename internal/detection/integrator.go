package detection

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/integrate"
)

const (
	DefaultNumPoints = 500
	DefaultXMax      = 10.0
)

var (
	ErrInvalidNumPoints = errors.New("number of points must be positive")
	ErrInvalidXMax      = errors.New("amplitude range must be positive and finite")
	ErrInvalidSNR       = errors.New("snr must be finite")
	ErrInvalidThreshold = errors.New("threshold must not be NaN")
)

// IntegrationRule selects how the tail beyond the threshold is summed.
type IntegrationRule int

const (
	// RuleLeftRectangle adds density*dx for every sample at or above the
	// threshold.
	RuleLeftRectangle IntegrationRule = iota
	// RuleTrapezoidal applies the trapezoid rule to the samples at or above
	// the threshold.
	RuleTrapezoidal
)

func (r IntegrationRule) String() string {
	switch r {
	case RuleLeftRectangle:
		return "left"
	case RuleTrapezoidal:
		return "trapezoidal"
	default:
		return "unknown"
	}
}

// ParseRule converts a string to an IntegrationRule.
func ParseRule(s string) (IntegrationRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "rectangle", "riemann", "":
		return RuleLeftRectangle, nil
	case "trapezoidal", "trapezoid", "trap":
		return RuleTrapezoidal, nil
	default:
		return RuleLeftRectangle, fmt.Errorf("unsupported integration rule %q", s)
	}
}

// CalculationParameters is the full input of one detection computation.
type CalculationParameters struct {
	SNRdB     float64
	Threshold float64
	Model     ModelKind
	NumPoints int
	XMax      float64
	Rule      IntegrationRule
}

// DefaultParameters fills the sampling grid with the default resolution.
func DefaultParameters(snrDB, threshold float64, model ModelKind) CalculationParameters {
	return CalculationParameters{
		SNRdB:     snrDB,
		Threshold: threshold,
		Model:     model,
		NumPoints: DefaultNumPoints,
		XMax:      DefaultXMax,
	}
}

// Validate checks the preconditions of Compute. A negative threshold is
// allowed and makes every sample count toward the tail.
func (p CalculationParameters) Validate() error {
	if p.NumPoints <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidNumPoints, p.NumPoints)
	}
	if !(p.XMax > 0) || math.IsInf(p.XMax, 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidXMax, p.XMax)
	}
	if math.IsNaN(p.SNRdB) || math.IsInf(p.SNRdB, 0) || math.IsInf(DBToLinear(p.SNRdB), 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidSNR, p.SNRdB)
	}
	if math.IsNaN(p.Threshold) {
		return ErrInvalidThreshold
	}
	return nil
}

// AmplitudeSample is one point of the sampled density grid.
type AmplitudeSample struct {
	X             float64 `json:"x"`
	NoiseDensity  float64 `json:"noise"`
	SignalDensity float64 `json:"signal"`
}

// DetectionResult holds the detection probabilities and the sampled curves
// they were integrated from.
type DetectionResult struct {
	Pd      float64           `json:"pd"`
	Pfa     float64           `json:"pfa"`
	Samples []AmplitudeSample `json:"samples"`
}

// Noise returns the sampled noise density as (x, y) points.
func (r DetectionResult) Noise() []Point {
	pts := make([]Point, len(r.Samples))
	for i, s := range r.Samples {
		pts[i] = Point{X: s.X, Y: s.NoiseDensity}
	}
	return pts
}

// Signal returns the sampled signal density as (x, y) points.
func (r DetectionResult) Signal() []Point {
	pts := make([]Point, len(r.Samples))
	for i, s := range r.Samples {
		pts[i] = Point{X: s.X, Y: s.SignalDensity}
	}
	return pts
}

// Point is one plot coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Compute samples the noise and selected signal densities on
// [0, XMax] with NumPoints+1 points and integrates both tails at or above
// the threshold. Pd and Pfa are clamped to [0, 1].
func Compute(params CalculationParameters) (DetectionResult, error) {
	if err := params.Validate(); err != nil {
		return DetectionResult{}, err
	}
	samples, dx := sampleGrid(params)
	pd, pfa := tail(samples, dx, params.Threshold, params.Rule)
	return DetectionResult{
		Pd:      clampProbability(pd),
		Pfa:     clampProbability(pfa),
		Samples: samples,
	}, nil
}

func sampleGrid(params CalculationParameters) ([]AmplitudeSample, float64) {
	snr := DBToLinear(params.SNRdB)
	signalPDF := SignalPDF(params.Model)
	dx := params.XMax / float64(params.NumPoints)

	samples := make([]AmplitudeSample, params.NumPoints+1)
	for i := range samples {
		x := float64(i) * dx
		samples[i] = AmplitudeSample{
			X:             x,
			NoiseDensity:  RayleighNoise(x),
			SignalDensity: signalPDF(x, snr),
		}
	}
	// i*dx can land one ulp past XMax; pin the last point to the range end.
	last := params.NumPoints
	samples[last] = AmplitudeSample{
		X:             params.XMax,
		NoiseDensity:  RayleighNoise(params.XMax),
		SignalDensity: signalPDF(params.XMax, snr),
	}
	return samples, dx
}

// tail returns the unclamped (pd, pfa) integrals over samples with
// X >= threshold. samples must be sorted by X.
func tail(samples []AmplitudeSample, dx, threshold float64, rule IntegrationRule) (pd, pfa float64) {
	start := sort.Search(len(samples), func(i int) bool { return samples[i].X >= threshold })
	above := samples[start:]

	if rule == RuleTrapezoidal {
		if len(above) < 2 {
			return 0, 0
		}
		xs := make([]float64, len(above))
		noise := make([]float64, len(above))
		signal := make([]float64, len(above))
		for i, s := range above {
			xs[i] = s.X
			noise[i] = s.NoiseDensity
			signal[i] = s.SignalDensity
		}
		return integrate.Trapezoidal(xs, signal), integrate.Trapezoidal(xs, noise)
	}

	for _, s := range above {
		pfa += s.NoiseDensity * dx
		pd += s.SignalDensity * dx
	}
	return pd, pfa
}

// clampProbability limits p to [0, 1]. NaN maps to 0.
func clampProbability(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return max(min(p, 1), 0)
}
