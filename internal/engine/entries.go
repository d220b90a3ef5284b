package engine

import (
	"fmt"

	"github.com/mcrawford/cadence/internal/habit"
)

// Entry is one day's activity as seen by the scoring walk.
// Values above zero are magnitudes: 1 for a done boolean day, or the
// logged milli-unit amount for numeric habits.
type Entry int64

const (
	// Skip marks a day excluded from scoring. Reserved for scheduled
	// rest days; BuildEntries never emits it today.
	Skip Entry = -1
	// NotDone is a day with no qualifying activity.
	NotDone Entry = 0
	// Done is the boolean completion value.
	Done Entry = 1
)

// LookupFunc fetches the raw logged value for one day from the store.
// ok is false when nothing was logged that day.
type LookupFunc func(day habit.Day) (value int64, ok bool, err error)

// BuildEntries materializes one Entry per day over [from, to], oldest
// first, pulling raw values through lookup. Days without a log row
// become NotDone. Boolean habits collapse any positive magnitude to
// Done; numeric habits keep the logged magnitude as-is.
func BuildEntries(h *habit.Habit, from, to habit.Day, lookup LookupFunc) ([]Entry, error) {
	if from.After(to) {
		return nil, fmt.Errorf("inverted interval: %s after %s", from, to)
	}

	n := int(to-from) + 1
	entries := make([]Entry, 0, n)
	for day := from; !day.After(to); day = day.Add(1) {
		value, ok, err := lookup(day)
		if err != nil {
			return nil, fmt.Errorf("lookup day %s: %w", day, err)
		}
		switch {
		case !ok:
			entries = append(entries, NotDone)
		case h.Kind == habit.Boolean:
			if value > 0 {
				entries = append(entries, Done)
			} else {
				entries = append(entries, NotDone)
			}
		default:
			entries = append(entries, Entry(value))
		}
	}
	return entries, nil
}
