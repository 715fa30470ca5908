package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Habit is a tracked habit with an optional daily reminder time ("HH:MM",
// interpreted in the user's local timezone).
type Habit struct {
	ID           string
	UserID       int64
	Name         string
	ReminderTime string
	CreatedAt    int64
	LogCount     int
}

// HabitReminderCandidate is a habit with a reminder set, joined with the
// owner's timezone for due-checking. Timezone is empty when the user has no
// profile or no zone set.
type HabitReminderCandidate struct {
	ID           string
	UserID       int64
	Name         string
	ReminderTime string
	Timezone     string
}

// AddHabit creates a new tracked habit. reminderTime may be empty for a habit
// without reminders. Fails if the user already tracks a habit with this name.
func (db *DB) AddHabit(userID int64, name, reminderTime string) (*Habit, error) {
	h := &Habit{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		ReminderTime: reminderTime,
		CreatedAt:    time.Now().UnixMilli(),
	}
	_, err := db.Exec(`
		INSERT INTO habits (id, user_id, name, reminder_time, created_at)
		VALUES (?, ?, ?, NULLIF(?, ''), ?)
	`, h.ID, h.UserID, h.Name, h.ReminderTime, h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}
	return h, nil
}

// GetHabitByName returns a user's habit by name, or nil if not found.
func (db *DB) GetHabitByName(userID int64, name string) (*Habit, error) {
	var h Habit
	var reminder sql.NullString
	err := db.QueryRow(`
		SELECT h.id, h.user_id, h.name, h.reminder_time, h.created_at,
			(SELECT COUNT(*) FROM habit_logs WHERE habit_id = h.id)
		FROM habits h WHERE h.user_id = ? AND h.name = ?
	`, userID, name).Scan(&h.ID, &h.UserID, &h.Name, &reminder, &h.CreatedAt, &h.LogCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get habit by name: %w", err)
	}
	h.ReminderTime = reminder.String
	return &h, nil
}

// ListHabits returns a user's habits in insertion order, with log counts.
func (db *DB) ListHabits(userID int64) ([]Habit, error) {
	rows, err := db.Query(`
		SELECT h.id, h.user_id, h.name, h.reminder_time, h.created_at,
			(SELECT COUNT(*) FROM habit_logs WHERE habit_id = h.id)
		FROM habits h WHERE h.user_id = ?
		ORDER BY h.created_at, h.rowid
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var out []Habit
	for rows.Next() {
		var h Habit
		var reminder sql.NullString
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &reminder, &h.CreatedAt, &h.LogCount); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		h.ReminderTime = reminder.String
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListHabitReminderCandidates returns every habit with a reminder time set,
// joined with the owner's timezone. Users without a profile appear with an
// empty timezone (resolved as UTC by the caller).
func (db *DB) ListHabitReminderCandidates() ([]HabitReminderCandidate, error) {
	rows, err := db.Query(`
		SELECT h.id, h.user_id, h.name, h.reminder_time, COALESCE(p.timezone, '')
		FROM habits h
		LEFT JOIN profiles p ON p.user_id = h.user_id
		WHERE h.reminder_time IS NOT NULL
		ORDER BY h.user_id, h.rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("list habit reminder candidates: %w", err)
	}
	defer rows.Close()

	var out []HabitReminderCandidate
	for rows.Next() {
		var c HabitReminderCandidate
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.ReminderTime, &c.Timezone); err != nil {
			return nil, fmt.Errorf("scan habit candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// LogHabit records a log entry for the habit on the given date ("YYYY-MM-DD").
// Returns false if the habit was already logged that day — the same-day dedup
// is re-checked here, at the write, not just by the caller.
func (db *DB) LogHabit(habitID, date string) (bool, error) {
	result, err := db.Exec(`
		INSERT OR IGNORE INTO habit_logs (habit_id, log_date) VALUES (?, ?)
	`, habitID, date)
	if err != nil {
		return false, fmt.Errorf("log habit: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// HasHabitLog reports whether the habit was logged on the given date.
func (db *DB) HasHabitLog(habitID, date string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM habit_logs WHERE habit_id = ? AND log_date = ?",
		habitID, date,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check habit log: %w", err)
	}
	return count > 0, nil
}

// ClearHabits deletes all of a user's habits (and their logs, via cascade).
// Returns the number of habits removed.
func (db *DB) ClearHabits(userID int64) (int, error) {
	result, err := db.Exec("DELETE FROM habits WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("clear habits: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
