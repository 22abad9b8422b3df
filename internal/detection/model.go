package detection

import (
	"fmt"
	"strings"
)

// ModelKind selects the target fluctuation model used for the signal density.
type ModelKind int

const (
	NonFluctuating ModelKind = iota
	Swerling1
	Swerling2
	Swerling3
	Swerling4
)

// Models returns every supported model in display order.
func Models() []ModelKind {
	return []ModelKind{NonFluctuating, Swerling1, Swerling2, Swerling3, Swerling4}
}

func (m ModelKind) String() string {
	switch m {
	case NonFluctuating:
		return "Swerling 0"
	case Swerling1:
		return "Swerling I"
	case Swerling2:
		return "Swerling II"
	case Swerling3:
		return "Swerling III"
	case Swerling4:
		return "Swerling IV"
	default:
		return fmt.Sprintf("ModelKind(%d)", int(m))
	}
}

// Fluctuating reports whether the target cross-section varies between looks.
func (m ModelKind) Fluctuating() bool {
	switch m {
	case Swerling1, Swerling2, Swerling3, Swerling4:
		return true
	default:
		return false
	}
}

// ParseModel converts a user supplied name to a ModelKind. It accepts the
// display labels ("Swerling III"), arabic or roman case numbers ("3", "iii",
// "swerling3") and the names "steady", "nonfluctuating" and "rician".
func ParseModel(s string) (ModelKind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	if trimmed := strings.TrimPrefix(key, "swerling"); trimmed != "" {
		key = trimmed
	}
	switch key {
	case "0", "steady", "nonfluctuating", "rician":
		return NonFluctuating, nil
	case "1", "i":
		return Swerling1, nil
	case "2", "ii":
		return Swerling2, nil
	case "3", "iii":
		return Swerling3, nil
	case "4", "iv":
		return Swerling4, nil
	default:
		return NonFluctuating, fmt.Errorf("unsupported target model %q", s)
	}
}

// MarshalText encodes the model as its display label.
func (m ModelKind) MarshalText() ([]byte, error) {
	switch m {
	case NonFluctuating, Swerling1, Swerling2, Swerling3, Swerling4:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("unsupported target model %d", int(m))
	}
}

// UnmarshalText accepts anything ParseModel does.
func (m *ModelKind) UnmarshalText(text []byte) error {
	parsed, err := ParseModel(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
