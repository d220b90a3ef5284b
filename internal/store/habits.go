package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcrawford/cadence/internal/habit"
)

// CreateHabit validates and inserts a new habit, assigning its ID.
func (db *DB) CreateHabit(h *habit.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	h.ID = uuid.NewString()
	h.CreatedAt = now
	h.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO habits (id, name, kind, comparison, target_value, freq_num, freq_den, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, h.ID, h.Name, string(h.Kind), string(h.Comparison), h.TargetValue,
		h.Frequency.Num, h.Frequency.Den, boolToInt(h.Archived), h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}
	return nil
}

// GetHabit returns a habit by ID, or nil if it does not exist.
func (db *DB) GetHabit(id string) (*habit.Habit, error) {
	h, err := db.scanHabit(db.QueryRow(`
		SELECT id, name, kind, comparison, target_value, freq_num, freq_den, archived, created_at, updated_at
		FROM habits WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}

// FindHabitByName returns the first habit matching name exactly, or nil.
func (db *DB) FindHabitByName(name string) (*habit.Habit, error) {
	h, err := db.scanHabit(db.QueryRow(`
		SELECT id, name, kind, comparison, target_value, freq_num, freq_den, archived, created_at, updated_at
		FROM habits WHERE name = ? ORDER BY created_at LIMIT 1
	`, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find habit by name: %w", err)
	}
	return h, nil
}

// ListHabits returns all habits ordered by creation time. Archived
// habits are excluded unless includeArchived is set.
func (db *DB) ListHabits(includeArchived bool) ([]habit.Habit, error) {
	query := `
		SELECT id, name, kind, comparison, target_value, freq_num, freq_den, archived, created_at, updated_at
		FROM habits`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY created_at`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []habit.Habit
	for rows.Next() {
		h, err := db.scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// UpdateHabit rewrites a habit's mutable fields.
func (db *DB) UpdateHabit(h *habit.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}

	h.UpdatedAt = time.Now().UnixMilli()
	res, err := db.Exec(`
		UPDATE habits
		SET name = ?, kind = ?, comparison = ?, target_value = ?, freq_num = ?, freq_den = ?, archived = ?, updated_at = ?
		WHERE id = ?
	`, h.Name, string(h.Kind), string(h.Comparison), h.TargetValue,
		h.Frequency.Num, h.Frequency.Den, boolToInt(h.Archived), h.UpdatedAt, h.ID)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("habit %s not found", h.ID)
	}
	return nil
}

// DeleteHabit removes a habit and, via cascade, its completion log.
func (db *DB) DeleteHabit(id string) error {
	res, err := db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("habit %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (db *DB) scanHabit(row rowScanner) (*habit.Habit, error) {
	var h habit.Habit
	var kind, comparison string
	var archived int
	err := row.Scan(&h.ID, &h.Name, &kind, &comparison, &h.TargetValue,
		&h.Frequency.Num, &h.Frequency.Den, &archived, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	h.Kind = habit.Kind(kind)
	h.Comparison = habit.Comparison(comparison)
	h.Archived = archived != 0
	return &h, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
