// Package habit holds the domain model shared by the store, the scoring
// engine, and the API surfaces: habits, target frequencies, and the
// day-index calendar arithmetic everything else is keyed on.
package habit

import "fmt"

// Kind distinguishes yes/no habits from measured ones.
type Kind string

const (
	// Boolean habits are tracked as done / not done per day.
	Boolean Kind = "boolean"
	// Numeric habits log a magnitude per day, compared against a target.
	Numeric Kind = "numeric"
)

// Comparison is how a numeric habit's logged total relates to its target.
type Comparison string

const (
	AtLeast Comparison = "at_least"
	AtMost  Comparison = "at_most"
)

// MagnitudeScale is the fixed-point scale for logged numeric values:
// the store keeps integer milli-units, so a logged "1.5 km" is 1500.
// The target value stays in natural units.
const MagnitudeScale = 1000

// Habit is a tracked recurring activity.
type Habit struct {
	ID          string
	Name        string
	Kind        Kind
	Comparison  Comparison // numeric habits only
	TargetValue float64    // numeric habits only, in natural units
	Frequency   Frequency
	Archived    bool
	CreatedAt   int64 // unix millis
	UpdatedAt   int64
}

// Validate checks the fields the scoring engine depends on.
func (h *Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name required")
	}
	switch h.Kind {
	case Boolean:
	case Numeric:
		if h.Comparison != AtLeast && h.Comparison != AtMost {
			return fmt.Errorf("numeric habit needs comparison at_least or at_most, got %q", h.Comparison)
		}
		if h.TargetValue < 0 {
			return fmt.Errorf("numeric habit target must be non-negative, got %g", h.TargetValue)
		}
	default:
		return fmt.Errorf("unknown habit kind %q", h.Kind)
	}
	if err := h.Frequency.Validate(); err != nil {
		return fmt.Errorf("habit %q: %w", h.Name, err)
	}
	return nil
}
