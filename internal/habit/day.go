package habit

import "time"

const secondsPerDay = 86400

// Day is a calendar day expressed as whole days since the Unix epoch,
// aligned to UTC midnight. Comparison is plain integer comparison.
type Day int

// DayFromSeconds converts an epoch-seconds timestamp to its Day,
// flooring toward the epoch so pre-1970 timestamps land on the right day.
func DayFromSeconds(sec int64) Day {
	d := sec / secondsPerDay
	if sec < 0 && sec%secondsPerDay != 0 {
		d--
	}
	return Day(d)
}

// DayFromTime converts a time.Time to the Day containing it, in UTC.
func DayFromTime(t time.Time) Day {
	return DayFromSeconds(t.Unix())
}

// DayFromDate builds a Day from a calendar date.
func DayFromDate(year int, month time.Month, day int) Day {
	return DayFromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today returns the current Day.
func Today() Day {
	return DayFromTime(time.Now())
}

// Add returns the day n days later. Negative n goes backward.
func (d Day) Add(n int) Day { return d + Day(n) }

// Sub returns the day n days earlier.
func (d Day) Sub(n int) Day { return d - Day(n) }

// After reports whether d falls after other.
func (d Day) After(other Day) bool { return d > other }

// Before reports whether d falls before other.
func (d Day) Before(other Day) bool { return d < other }

// Time returns the UTC midnight instant that starts the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// String formats the day as an ISO date.
func (d Day) String() string {
	return d.Time().Format("2006-01-02")
}

// ParseDay parses an ISO date (2006-01-02) into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, err
	}
	return DayFromTime(t), nil
}
