package proficiency

import (
	"fmt"
	"strings"
)

// Tier is a proficiency level. The zero value is the lowest tier and the
// integer order is the proficiency order.
type Tier int

const (
	TierNovice Tier = iota
	TierElementary
	TierIntermediate
	TierAdvanced
	TierProfessional
)

// AllTiers returns every tier from lowest to highest.
func AllTiers() []Tier {
	return []Tier{TierNovice, TierElementary, TierIntermediate, TierAdvanced, TierProfessional}
}

var tierNames = [...]string{"novice", "elementary", "intermediate", "advanced", "professional"}

func (t Tier) String() string {
	if t < TierNovice || t > TierProfessional {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// Valid reports whether t is one of the five defined tiers.
func (t Tier) Valid() bool {
	return t >= TierNovice && t <= TierProfessional
}

// ParseTier parses a tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Tier breakpoints on the 0-100 percentage scale, inclusive lower bounds.
const (
	ProfessionalThreshold = 80.0
	AdvancedThreshold     = 60.0
	IntermediateThreshold = 40.0
	ElementaryThreshold   = 20.0
)

// TierOf maps a percentage to its tier, checking breakpoints from the top down.
func TierOf(percentage float64) Tier {
	switch {
	case percentage >= ProfessionalThreshold:
		return TierProfessional
	case percentage >= AdvancedThreshold:
		return TierAdvanced
	case percentage >= IntermediateThreshold:
		return TierIntermediate
	case percentage >= ElementaryThreshold:
		return TierElementary
	default:
		return TierNovice
	}
}
