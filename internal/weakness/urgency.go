package weakness

import (
	"fmt"
	"strings"
)

// Urgency says how soon a concept should be reviewed. Larger is more urgent.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
)

var urgencyNames = [...]string{"low", "medium", "high"}

func (u Urgency) String() string {
	if u < UrgencyLow || u > UrgencyHigh {
		return fmt.Sprintf("urgency(%d)", int(u))
	}
	return urgencyNames[u]
}

// ParseUrgency parses "low", "medium" or "high".
func ParseUrgency(s string) (Urgency, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range urgencyNames {
		if n == name {
			return Urgency(i), nil
		}
	}
	return 0, fmt.Errorf("unknown urgency %q", s)
}

func (u Urgency) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Urgency) UnmarshalText(b []byte) error {
	parsed, err := ParseUrgency(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
