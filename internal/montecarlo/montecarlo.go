// Package montecarlo estimates detection probabilities by drawing envelope
// samples directly, as a cross-check of the integrated densities.
package montecarlo

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rjboer/swerling/internal/detection"
)

var (
	ErrUnsupportedModel = errors.New("model has no normalised envelope to simulate")
	ErrInvalidTrials    = errors.New("trial count must be positive")
)

// noiseSigma is the per-channel deviation for unit total noise power.
var noiseSigma = math.Sqrt(0.5)

// Config describes one simulation run.
type Config struct {
	SNRdB     float64
	Threshold float64
	Model     detection.ModelKind
	Trials    int
	Seed      uint64
}

// Result holds crossing fractions and their binomial standard errors.
type Result struct {
	Trials    int     `json:"trials"`
	Pd        float64 `json:"pd"`
	Pfa       float64 `json:"pfa"`
	PdStdErr  float64 `json:"pdStdErr"`
	PfaStdErr float64 `json:"pfaStdErr"`
}

// Supported reports whether the model's density is a normalised envelope
// density that sampling can reproduce. Swerling III/IV are not.
func Supported(model detection.ModelKind) bool {
	switch model {
	case detection.NonFluctuating, detection.Swerling1, detection.Swerling2:
		return true
	default:
		return false
	}
}

// Run draws cfg.Trials noise-only and signal-plus-noise envelopes and counts
// how many reach the threshold. Identical configs give identical results.
func Run(cfg Config) (Result, error) {
	if cfg.Trials <= 0 {
		return Result{}, ErrInvalidTrials
	}
	if !Supported(cfg.Model) {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedModel, cfg.Model)
	}
	if math.IsNaN(cfg.SNRdB) || math.IsInf(cfg.SNRdB, 0) {
		return Result{}, detection.ErrInvalidSNR
	}
	if math.IsNaN(cfg.Threshold) {
		return Result{}, detection.ErrInvalidThreshold
	}

	snr := detection.DBToLinear(cfg.SNRdB)
	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	noise := distuv.Normal{Mu: 0, Sigma: noiseSigma, Src: src}
	draw := signalSampler(cfg.Model, snr, src)

	var noiseHits, signalHits int
	for i := 0; i < cfg.Trials; i++ {
		if math.Hypot(noise.Rand(), noise.Rand()) >= cfg.Threshold {
			noiseHits++
		}
		si, sq := draw()
		if math.Hypot(si+noise.Rand(), sq+noise.Rand()) >= cfg.Threshold {
			signalHits++
		}
	}

	n := float64(cfg.Trials)
	pd := float64(signalHits) / n
	pfa := float64(noiseHits) / n
	return Result{
		Trials:    cfg.Trials,
		Pd:        pd,
		Pfa:       pfa,
		PdStdErr:  math.Sqrt(pd * (1 - pd) / n),
		PfaStdErr: math.Sqrt(pfa * (1 - pfa) / n),
	}, nil
}

// signalSampler returns the in-phase and quadrature target return before
// noise. The steady target has amplitude sqrt(2*snr); Swerling I/II draw a
// complex Gaussian return with mean power snr.
func signalSampler(model detection.ModelKind, snr float64, src rand.Source) func() (float64, float64) {
	if model == detection.NonFluctuating {
		amp := math.Sqrt(2 * snr)
		return func() (float64, float64) { return amp, 0 }
	}
	if snr == 0 {
		return func() (float64, float64) { return 0, 0 }
	}
	target := distuv.Normal{Mu: 0, Sigma: math.Sqrt(snr / 2), Src: src}
	return func() (float64, float64) { return target.Rand(), target.Rand() }
}
