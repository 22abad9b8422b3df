package detection

import (
	"errors"
	"math"
)

// ErrInvalidPulseCount is returned when fewer than one pulse is integrated.
var ErrInvalidPulseCount = errors.New("pulse count must be at least 1")

// EffectiveSNRdB applies ideal pulse integration gain to a per-pulse SNR.
func EffectiveSNRdB(baseSNRdB float64, numPulses int) (float64, error) {
	if numPulses < 1 {
		return 0, ErrInvalidPulseCount
	}
	return baseSNRdB + 10*math.Log10(float64(numPulses)), nil
}

// DBToLinear converts a power ratio in decibels to a linear ratio.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinearToDB converts a linear power ratio to decibels.
func LinearToDB(lin float64) float64 {
	return 10 * math.Log10(lin)
}
