package detection

import "math"

// PDF is an envelope density evaluated at amplitude x for a linear SNR.
// Amplitudes are normalised so the noise power is 1 (sigma^2 = 0.5 per
// quadrature channel).
type PDF func(x, snr float64) float64

// RayleighNoise is the density of the noise-only envelope.
func RayleighNoise(x float64) float64 {
	if x < 0 {
		return 0
	}
	return 2 * x * math.Exp(-x*x)
}

// RicianSignal is the envelope density of a steady target in noise.
// Above the Bessel split the exponentials are combined into exp(-(x-s)^2)
// so high SNR does not produce 0*Inf.
func RicianSignal(x, snr float64) float64 {
	if x <= 0 {
		return 0
	}
	s := math.Sqrt(2 * snr)
	z := 2 * x * s
	if z < besselSplit {
		return 2 * x * math.Exp(-(x*x + s*s)) * I0(z)
	}
	d := x - s
	return 2 * x * math.Exp(-d*d) * i0e(z)
}

// Swerling1Signal is the envelope density for Swerling I and II targets.
func Swerling1Signal(x, snr float64) float64 {
	if x < 0 {
		return 0
	}
	avgPower := 1 + snr
	return (2 * x / avgPower) * math.Exp(-x*x/avgPower)
}

// Swerling3Signal is the envelope density for Swerling III and IV targets.
// It is not normalised to unit mass for small SNR.
func Swerling3Signal(x, snr float64) float64 {
	if x < 0 {
		return 0
	}
	half := snr / 2
	scale := 2 * x / ((1 + half) * (1 + half))
	shape := 1 + (2*x*x*half)/(1+2*half)
	return scale * shape * math.Exp(-(2*x*x)/(1+2*half))
}

// SignalPDF returns the signal density for the model. Unknown values fall
// back to the steady-target density.
func SignalPDF(model ModelKind) PDF {
	switch model {
	case NonFluctuating:
		return RicianSignal
	case Swerling1, Swerling2:
		return Swerling1Signal
	case Swerling3, Swerling4:
		return Swerling3Signal
	default:
		return RicianSignal
	}
}
