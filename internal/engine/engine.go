package engine

import (
	"fmt"
	"time"

	"github.com/mcrawford/cadence/internal/habit"
	"github.com/mcrawford/cadence/internal/store"
)

// Engine answers strength and chart queries against the live store.
type Engine struct {
	DB *store.DB

	// today anchors the trailing windows; overridable in tests so the
	// scoring paths stay deterministic.
	today func() habit.Day
}

// New creates an Engine over db.
func New(db *store.DB) *Engine {
	return &Engine{
		DB:    db,
		today: habit.Today,
	}
}

// ComputeScores rebuilds the strength series for the trailing
// windowDays ending today and returns it oldest first.
func (e *Engine) ComputeScores(h *habit.Habit, windowDays int) ([]Score, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("windowDays must be positive, got %d", windowDays)
	}

	to := e.today()
	from := to.Sub(windowDays - 1)

	entries, err := BuildEntries(h, from, to, func(day habit.Day) (int64, bool, error) {
		return e.DB.CompletionValue(h.ID, day)
	})
	if err != nil {
		return nil, fmt.Errorf("habit %q: build entries: %w", h.Name, err)
	}

	series, err := ComputeSeries(h, from, entries)
	if err != nil {
		return nil, err
	}
	return series.RangeAscending(from, to), nil
}

// ComputeMonthBuckets counts done days per calendar month for the
// trailing monthsBack months ending with the current month, oldest
// month first. Empty months are included with a zero count.
func (e *Engine) ComputeMonthBuckets(h *habit.Habit, monthsBack int) ([]MonthBucket, error) {
	if monthsBack <= 0 {
		return nil, fmt.Errorf("monthsBack must be positive, got %d", monthsBack)
	}

	lastMonth := monthStart(e.today().Time())
	firstMonth := lastMonth.AddDate(0, -(monthsBack - 1), 0)

	from := habit.DayFromTime(firstMonth)
	to := habit.DayFromTime(lastMonth.AddDate(0, 1, 0)).Sub(1)

	rows, err := e.DB.CompletionsInRange(h.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("habit %q: scan completions: %w", h.Name, err)
	}

	return monthBuckets(dailyTotals(h, rows), firstMonth, lastMonth), nil
}

// MonthLabel formats a bucket month for CLI and API output.
func MonthLabel(m time.Time) string {
	return m.Format("2006-01")
}
