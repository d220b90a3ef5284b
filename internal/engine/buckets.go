package engine

import (
	"time"

	"github.com/mcrawford/cadence/internal/habit"
	"github.com/mcrawford/cadence/internal/store"
)

// MonthBucket is the number of done days within one calendar month.
// Month is the UTC midnight of the month's first day.
type MonthBucket struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// dailyTotals folds raw completion rows into one value per day.
// Boolean habits record presence (1 for any positive magnitude);
// numeric habits sum magnitudes logged on the same day.
func dailyTotals(h *habit.Habit, rows []store.Completion) map[habit.Day]int64 {
	totals := make(map[habit.Day]int64, len(rows))
	for _, row := range rows {
		if h.Kind == habit.Boolean {
			if row.Value > 0 {
				totals[row.Day] = 1
			}
			continue
		}
		totals[row.Day] += row.Value
	}
	return totals
}

// monthStart truncates t to the first day of its month, UTC.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthBuckets counts done days per calendar month over
// [firstMonth, lastMonth], oldest first. Months with no activity still
// appear with a zero count so charts keep a continuous axis. A day is
// done when its folded value is nonzero; numeric targets are not
// compared here, only presence.
func monthBuckets(totals map[habit.Day]int64, firstMonth, lastMonth time.Time) []MonthBucket {
	counts := make(map[time.Time]int)
	for day, value := range totals {
		if value == 0 {
			continue
		}
		m := monthStart(day.Time())
		if m.Before(firstMonth) || m.After(lastMonth) {
			continue
		}
		counts[m]++
	}

	var buckets []MonthBucket
	for m := firstMonth; !m.After(lastMonth); m = m.AddDate(0, 1, 0) {
		buckets = append(buckets, MonthBucket{Month: m, Count: counts[m]})
	}
	return buckets
}
