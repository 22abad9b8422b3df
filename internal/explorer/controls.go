package explorer

import (
	"fmt"
	"math"

	"github.com/rjboer/swerling/internal/detection"
)

// Controls are the four values a user adjusts while exploring.
type Controls struct {
	Threshold float64             `json:"threshold"`
	BaseSNRdB float64             `json:"baseSnrDb"`
	NumPulses int                 `json:"numPulses"`
	Model     detection.ModelKind `json:"model"`
}

const (
	DefaultThreshold = 4.5
	DefaultBaseSNRdB = 13.0
	DefaultNumPulses = 1
	DefaultModel     = detection.Swerling1
)

// DefaultControls returns the initial control state.
func DefaultControls() Controls {
	return Controls{
		Threshold: DefaultThreshold,
		BaseSNRdB: DefaultBaseSNRdB,
		NumPulses: DefaultNumPulses,
		Model:     DefaultModel,
	}
}

// Bounds limits the values accepted from the controls.
type Bounds struct {
	MinThreshold float64
	MaxThreshold float64
	MinBaseSNRdB float64
	MaxBaseSNRdB float64
	MinPulses    int
	MaxPulses    int
}

// DefaultBounds mirrors the slider ranges: threshold 0..10, base SNR
// 0..30 dB and 1..100 pulses.
func DefaultBounds() Bounds {
	return Bounds{
		MinThreshold: 0,
		MaxThreshold: 10,
		MinBaseSNRdB: 0,
		MaxBaseSNRdB: 30,
		MinPulses:    1,
		MaxPulses:    100,
	}
}

// Unbounded accepts any finite threshold and SNR and any pulse count of at
// least one.
func Unbounded() Bounds {
	return Bounds{
		MinThreshold: math.Inf(-1),
		MaxThreshold: math.Inf(1),
		MinBaseSNRdB: math.Inf(-1),
		MaxBaseSNRdB: math.Inf(1),
		MinPulses:    1,
		MaxPulses:    math.MaxInt,
	}
}

func (b Bounds) isZero() bool {
	return b == Bounds{}
}

// Validate reports the first control outside the bounds.
func (b Bounds) Validate(c Controls) error {
	if math.IsNaN(c.Threshold) || c.Threshold < b.MinThreshold || c.Threshold > b.MaxThreshold {
		return fmt.Errorf("threshold must be between %g and %g, got %g", b.MinThreshold, b.MaxThreshold, c.Threshold)
	}
	if math.IsNaN(c.BaseSNRdB) || math.IsInf(c.BaseSNRdB, 0) || c.BaseSNRdB < b.MinBaseSNRdB || c.BaseSNRdB > b.MaxBaseSNRdB {
		return fmt.Errorf("base SNR must be between %g and %g dB, got %g", b.MinBaseSNRdB, b.MaxBaseSNRdB, c.BaseSNRdB)
	}
	if c.NumPulses < b.MinPulses || c.NumPulses > b.MaxPulses {
		return fmt.Errorf("pulse count must be between %d and %d, got %d", b.MinPulses, b.MaxPulses, c.NumPulses)
	}
	if _, err := c.Model.MarshalText(); err != nil {
		return err
	}
	return nil
}
