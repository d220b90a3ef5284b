package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mcrawford/cadence/internal/habit"
)

// Completion is one logged day of activity for a habit. Value is 1 for
// boolean habits; numeric habits store milli-unit magnitudes.
type Completion struct {
	HabitID string
	Day     habit.Day
	Value   int64
}

// SetCompletion upserts the logged value for one day.
func (db *DB) SetCompletion(habitID string, day habit.Day, value int64) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO completions (habit_id, day, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, day) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, habitID, int64(day), value, now, now)
	if err != nil {
		return fmt.Errorf("set completion: %w", err)
	}
	return nil
}

// ClearCompletion removes the log row for one day, if any.
func (db *DB) ClearCompletion(habitID string, day habit.Day) error {
	_, err := db.Exec(`DELETE FROM completions WHERE habit_id = ? AND day = ?`, habitID, int64(day))
	if err != nil {
		return fmt.Errorf("clear completion: %w", err)
	}
	return nil
}

// CompletionValue returns the logged value for one day. ok is false
// when nothing was logged.
func (db *DB) CompletionValue(habitID string, day habit.Day) (int64, bool, error) {
	var value int64
	err := db.QueryRow(`
		SELECT value FROM completions WHERE habit_id = ? AND day = ?
	`, habitID, int64(day)).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("completion value: %w", err)
	}
	return value, true, nil
}

// CompletionsInRange returns all log rows with from <= day <= to,
// ordered by day ascending.
func (db *DB) CompletionsInRange(habitID string, from, to habit.Day) ([]Completion, error) {
	rows, err := db.Query(`
		SELECT habit_id, day, value FROM completions
		WHERE habit_id = ? AND day >= ? AND day <= ?
		ORDER BY day
	`, habitID, int64(from), int64(to))
	if err != nil {
		return nil, fmt.Errorf("completions in range: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var day int64
		if err := rows.Scan(&c.HabitID, &day, &c.Value); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		c.Day = habit.Day(day)
		out = append(out, c)
	}
	return out, rows.Err()
}

// CompletionCount returns the total number of logged days for a habit.
func (db *DB) CompletionCount(habitID string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM completions WHERE habit_id = ?`, habitID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}
