// Package engine computes habit strength.
//
// Strength is an exponentially smoothed value in [0,1]: each day blends
// the previous day's strength with a completion ratio taken over a
// rolling window the width of the frequency denominator. The decay
// multiplier is 0.5^(sqrt(rate)/13), so a daily habit loses half its
// strength after 13 missed days and sparser habits decay more slowly.
// The constants are load-bearing: they keep strength curves stable
// against historical data, so they are not tunable.
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/mcrawford/cadence/internal/habit"
)

// Score is the strength of a habit on one day.
type Score struct {
	Day   habit.Day `json:"day"`
	Value float64   `json:"value"`
}

// Series holds the scores produced by one recompute pass. The zero
// Series is empty; queries for days it does not cover return 0.
type Series struct {
	scores map[habit.Day]float64
}

// Get returns the score for a day, defaulting to 0 for uncomputed days.
func (s Series) Get(day habit.Day) Score {
	return Score{Day: day, Value: s.scores[day]}
}

// Lookup distinguishes a computed 0 from a day the pass never touched.
func (s Series) Lookup(day habit.Day) (float64, bool) {
	v, ok := s.scores[day]
	return v, ok
}

// Len returns the number of computed days.
func (s Series) Len() int { return len(s.scores) }

// RangeDescending returns scores from to back to from, inclusive.
// An inverted range (from after to) yields an empty slice.
func (s Series) RangeDescending(from, to habit.Day) []Score {
	if from.After(to) {
		return []Score{}
	}
	out := make([]Score, 0, int(to-from)+1)
	for day := to; !day.Before(from); day = day.Sub(1) {
		out = append(out, s.Get(day))
	}
	return out
}

// RangeAscending returns scores from from up to to, inclusive, oldest
// first. An inverted range yields an empty slice.
func (s Series) RangeAscending(from, to habit.Day) []Score {
	if from.After(to) {
		return []Score{}
	}
	out := make([]Score, 0, int(to-from)+1)
	for day := from; !day.After(to); day = day.Add(1) {
		out = append(out, s.Get(day))
	}
	return out
}

// Days returns the computed days in ascending order.
func (s Series) Days() []habit.Day {
	days := make([]habit.Day, 0, len(s.scores))
	for d := range s.scores {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// ComputeSeries runs the strength recurrence over entries, where
// entries[0] is the value for day from. It returns a fresh Series
// covering every day of the walk; callers rebuild rather than patch.
func ComputeSeries(h *habit.Habit, from habit.Day, entries []Entry) (Series, error) {
	if err := h.Frequency.Validate(); err != nil {
		return Series{}, err
	}
	if len(entries) == 0 {
		return Series{}, fmt.Errorf("habit %q: no entries to score", h.Name)
	}

	num, den := h.Frequency.Num, h.Frequency.Den
	rate := h.Frequency.Rate()

	// Sub-daily boolean targets get a doubled window so a single miss
	// inside a sparse schedule doesn't crater the ratio. The decay
	// multiplier still uses the original rate.
	if h.Kind == habit.Boolean && rate < 1.0 {
		num *= 2
		den *= 2
	}

	multiplier := math.Pow(0.5, math.Sqrt(rate)/13.0)

	previous := 0.0
	if h.Kind == habit.Numeric && h.Comparison == habit.AtMost {
		previous = 1.0
	}

	scores := make(map[habit.Day]float64, len(entries))
	var windowSum float64
	for i, e := range entries {
		windowSum += contribution(h.Kind, e)
		if i >= den {
			windowSum -= contribution(h.Kind, entries[i-den])
		}

		if e != Skip {
			ratio := completionRatio(h, num, windowSum)
			previous = previous*multiplier + ratio*(1-multiplier)
		}
		scores[from.Add(i)] = previous
	}

	return Series{scores: scores}, nil
}

// contribution is an entry's weight in the rolling window sum.
func contribution(kind habit.Kind, e Entry) float64 {
	if kind == habit.Boolean {
		if e > 0 {
			return 1
		}
		return 0
	}
	if e < 0 {
		return 0
	}
	return float64(e)
}

// completionRatio maps the current window sum to [0,1]. num is the
// frequency numerator after any window doubling.
func completionRatio(h *habit.Habit, num int, windowSum float64) float64 {
	if h.Kind == habit.Boolean {
		return math.Min(1, windowSum/float64(num))
	}

	// Logged numeric magnitudes are fixed-point milli-units; the
	// target is in natural units.
	normalized := windowSum / habit.MagnitudeScale

	switch h.Comparison {
	case habit.AtMost:
		if h.TargetValue > 0 {
			return clamp01(1 - (normalized-h.TargetValue)/h.TargetValue)
		}
		if normalized == 0 {
			return 1
		}
		return 0
	default: // at_least
		if h.TargetValue > 0 {
			return math.Min(1, normalized/h.TargetValue)
		}
		return 1
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
