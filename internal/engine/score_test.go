package engine

import (
	"math"
	"testing"

	"github.com/mcrawford/cadence/internal/habit"
)

func boolHabit(f habit.Frequency) *habit.Habit {
	return &habit.Habit{Name: "read", Kind: habit.Boolean, Frequency: f}
}

func repeat(e Entry, n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = e
	}
	return out
}

func TestComputeSeriesAllZerosStaysAtZero(t *testing.T) {
	h := boolHabit(habit.Daily)
	series, err := ComputeSeries(h, 0, repeat(NotDone, 30))
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}
	for day := habit.Day(0); day < 30; day++ {
		if v := series.Get(day).Value; v != 0 {
			t.Errorf("day %d = %g, want 0", day, v)
		}
	}
}

func TestComputeSeriesDailyConvergesTowardOne(t *testing.T) {
	// Daily habit, 10 straight done days: ratio is 1.0 every day, so the
	// recurrence collapses to s_n = 1 - m^(n+1) with m = 0.5^(1/13).
	h := boolHabit(habit.Daily)
	series, err := ComputeSeries(h, 0, repeat(Done, 10))
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}

	m := math.Pow(0.5, 1.0/13.0)
	for day := habit.Day(0); day < 10; day++ {
		want := 1 - math.Pow(m, float64(day)+1)
		got := series.Get(day).Value
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("day %d = %.15f, want %.15f", day, got, want)
		}
	}

	last := series.Get(9).Value
	if last <= 0 || last >= 1 {
		t.Errorf("score after 10 done days = %g, want strictly inside (0,1)", last)
	}
}

func TestComputeSeriesIdempotent(t *testing.T) {
	h := boolHabit(habit.Frequency{Num: 3, Den: 7})
	entries := []Entry{Done, NotDone, Done, NotDone, NotDone, Done, Done, NotDone, Done, NotDone, NotDone, NotDone, Done, Done}

	a, err := ComputeSeries(h, 100, entries)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	b, err := ComputeSeries(h, 100, entries)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for _, day := range a.Days() {
		if a.Get(day).Value != b.Get(day).Value {
			t.Errorf("day %d differs between identical recomputes", day)
		}
	}
}

func TestComputeSeriesMonotonicInDoneDays(t *testing.T) {
	// Turning a miss into a done never lowers any day's score.
	h := boolHabit(habit.Frequency{Num: 3, Den: 7})
	base := repeat(NotDone, 21)
	for _, i := range []int{2, 9, 16} {
		base[i] = Done
	}
	more := make([]Entry, len(base))
	copy(more, base)
	more[10] = Done

	sa, err := ComputeSeries(h, 0, base)
	if err != nil {
		t.Fatalf("base series: %v", err)
	}
	sb, err := ComputeSeries(h, 0, more)
	if err != nil {
		t.Fatalf("augmented series: %v", err)
	}
	for day := habit.Day(0); day < 21; day++ {
		if sb.Get(day).Value < sa.Get(day).Value {
			t.Errorf("day %d: extra done day lowered score %g -> %g",
				day, sa.Get(day).Value, sb.Get(day).Value)
		}
	}
}

func TestComputeSeriesSkipCarriesForward(t *testing.T) {
	h := boolHabit(habit.Daily)
	entries := []Entry{Done, Done, Skip, Skip, Done}
	series, err := ComputeSeries(h, 0, entries)
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}

	// Skip days replicate the last computed value and still appear.
	d1 := series.Get(1).Value
	if v := series.Get(2).Value; v != d1 {
		t.Errorf("skip day 2 = %g, want carry-forward %g", v, d1)
	}
	if v := series.Get(3).Value; v != d1 {
		t.Errorf("skip day 3 = %g, want carry-forward %g", v, d1)
	}
	if _, ok := series.Lookup(3); !ok {
		t.Error("skip day missing from series")
	}
	if v := series.Get(4).Value; v <= d1 {
		t.Errorf("done day after skips should raise the score: %g <= %g", v, d1)
	}
}

func TestComputeSeriesSubDailyWindowDoubling(t *testing.T) {
	// For a 1-per-week boolean habit the window doubles to 14 days with
	// numerator 2, so one done day sustains a 0.5 ratio for two weeks.
	h := boolHabit(habit.Weekly)
	entries := repeat(NotDone, 15)
	entries[0] = Done
	series, err := ComputeSeries(h, 0, entries)
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}

	// While the done day is inside the window the score climbs toward
	// 0.5; once it slides out (day 14) the ratio hits 0 and the score
	// starts decaying.
	if series.Get(13).Value <= series.Get(12).Value {
		t.Error("score should still be rising on day 13")
	}
	if series.Get(14).Value >= series.Get(13).Value {
		t.Error("score should decay once the done day leaves the 14-day window")
	}
}

func TestComputeSeriesNumericAtMostIdleStaysAtOne(t *testing.T) {
	h := &habit.Habit{Name: "sugar", Kind: habit.Numeric, Comparison: habit.AtMost, TargetValue: 25, Frequency: habit.Daily}
	series, err := ComputeSeries(h, 0, repeat(NotDone, 30))
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}
	// Seed 1.0 and ratio 1.0 every idle day: the score holds at 1.0.
	for day := habit.Day(0); day < 30; day++ {
		if v := series.Get(day).Value; v != 1 {
			t.Errorf("day %d = %g, want 1.0", day, v)
		}
	}
}

func TestComputeSeriesNumericAtMostOverTarget(t *testing.T) {
	// Logging double the cap zeroes the ratio, so the score falls from 1.
	h := &habit.Habit{Name: "sugar", Kind: habit.Numeric, Comparison: habit.AtMost, TargetValue: 25, Frequency: habit.Daily}
	entries := []Entry{50000} // 50 in milli-units against a cap of 25
	series, err := ComputeSeries(h, 0, entries)
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}
	m := math.Pow(0.5, 1.0/13.0)
	if got := series.Get(0).Value; math.Abs(got-m) > 1e-12 {
		t.Errorf("day 0 = %g, want %g (seed decayed with ratio 0)", got, m)
	}
}

func TestComputeSeriesNumericAtLeast(t *testing.T) {
	// Target 2.0/day met exactly with 2000 milli-units: behaves like a
	// daily boolean habit with ratio 1.0.
	h := &habit.Habit{Name: "run", Kind: habit.Numeric, Comparison: habit.AtLeast, TargetValue: 2, Frequency: habit.Daily}
	series, err := ComputeSeries(h, 0, repeat(2000, 5))
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}
	m := math.Pow(0.5, 1.0/13.0)
	want := 1 - math.Pow(m, 5)
	if got := series.Get(4).Value; math.Abs(got-want) > 1e-12 {
		t.Errorf("day 4 = %.15f, want %.15f", got, want)
	}

	// Half the target halves the ratio.
	partial, err := ComputeSeries(h, 0, []Entry{1000})
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}
	wantPartial := 0.5 * (1 - m)
	if got := partial.Get(0).Value; math.Abs(got-wantPartial) > 1e-12 {
		t.Errorf("partial day 0 = %.15f, want %.15f", got, wantPartial)
	}
}

func TestComputeSeriesNumericZeroTarget(t *testing.T) {
	// at_least with target 0 is trivially satisfied.
	h := &habit.Habit{Name: "x", Kind: habit.Numeric, Comparison: habit.AtLeast, TargetValue: 0, Frequency: habit.Daily}
	series, err := ComputeSeries(h, 0, repeat(NotDone, 3))
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}
	if v := series.Get(2).Value; v <= 0 {
		t.Errorf("zero-target at_least should score up, got %g", v)
	}

	// at_most with target 0 fails on any activity.
	h2 := &habit.Habit{Name: "y", Kind: habit.Numeric, Comparison: habit.AtMost, TargetValue: 0, Frequency: habit.Daily}
	series2, err := ComputeSeries(h2, 0, []Entry{500})
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}
	m := math.Pow(0.5, 1.0/13.0)
	if got := series2.Get(0).Value; math.Abs(got-m) > 1e-12 {
		t.Errorf("zero-target at_most with activity = %g, want %g", got, m)
	}
}

func TestComputeSeriesRejectsBadInput(t *testing.T) {
	h := boolHabit(habit.Daily)
	if _, err := ComputeSeries(h, 0, nil); err == nil {
		t.Error("expected error for empty entries")
	}

	bad := boolHabit(habit.Frequency{Num: 1, Den: 0})
	if _, err := ComputeSeries(bad, 0, repeat(Done, 3)); err == nil {
		t.Error("expected error for zero denominator")
	}
}

func TestSeriesDefaultsAndRanges(t *testing.T) {
	h := boolHabit(habit.Daily)
	series, err := ComputeSeries(h, 10, repeat(Done, 3))
	if err != nil {
		t.Fatalf("ComputeSeries: %v", err)
	}

	// Absent day defaults to 0 via Get, distinguishable via Lookup.
	if v := series.Get(9).Value; v != 0 {
		t.Errorf("uncomputed day Get = %g, want 0", v)
	}
	if _, ok := series.Lookup(9); ok {
		t.Error("Lookup should report uncomputed day as absent")
	}
	if _, ok := series.Lookup(10); !ok {
		t.Error("Lookup should find computed day")
	}

	desc := series.RangeDescending(10, 12)
	if len(desc) != 3 {
		t.Fatalf("RangeDescending len = %d, want 3", len(desc))
	}
	if desc[0].Day != 12 || desc[2].Day != 10 {
		t.Errorf("RangeDescending order wrong: %+v", desc)
	}

	// Inverted range is empty, never an error.
	if got := series.RangeDescending(12, 10); len(got) != 0 {
		t.Errorf("inverted RangeDescending len = %d, want 0", len(got))
	}
	if got := series.RangeAscending(12, 10); len(got) != 0 {
		t.Errorf("inverted RangeAscending len = %d, want 0", len(got))
	}

	asc := series.RangeAscending(10, 12)
	if asc[0].Day != 10 || asc[2].Day != 12 {
		t.Errorf("RangeAscending order wrong: %+v", asc)
	}
}
