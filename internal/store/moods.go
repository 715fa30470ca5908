package store

import (
	"fmt"
)

// MoodEntry is one logged mood. LoggedAt is a user-local timestamp string
// ("YYYY-MM-DD HH:MM:SS") — moods are displayed in the timezone they were
// logged in, so the wall-clock string is stored as-is.
type MoodEntry struct {
	ID       int64
	UserID   int64
	Mood     string
	LoggedAt string
}

// LogMood appends a mood entry for the user.
func (db *DB) LogMood(userID int64, mood, loggedAt string) error {
	_, err := db.Exec(
		"INSERT INTO mood_entries (user_id, mood, logged_at) VALUES (?, ?, ?)",
		userID, mood, loggedAt,
	)
	if err != nil {
		return fmt.Errorf("log mood: %w", err)
	}
	return nil
}

// ListMoods returns the user's mood log in insertion order.
func (db *DB) ListMoods(userID int64) ([]MoodEntry, error) {
	rows, err := db.Query(
		"SELECT id, user_id, mood, logged_at FROM mood_entries WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	defer rows.Close()

	var out []MoodEntry
	for rows.Next() {
		var m MoodEntry
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.LoggedAt); err != nil {
			return nil, fmt.Errorf("scan mood: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
