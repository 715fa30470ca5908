package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Profile is the per-user record: identity, timezone, point balance, and the
// optional daily mood reminder. Timezone and MoodReminderTime are empty when
// unset; an empty timezone means UTC.
type Profile struct {
	UserID           int64
	Username         string
	Timezone         string
	Points           int
	MoodReminderTime string
	CreatedAt        int64
	UpdatedAt        int64
}

// EnsureProfile creates a profile row for the user if one doesn't exist and
// returns it. The username is recorded on first contact only; an existing
// profile is returned unchanged.
func (db *DB) EnsureProfile(userID int64, username string) (*Profile, error) {
	existing, err := db.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UnixMilli()
	_, err = db.Exec(`
		INSERT INTO profiles (user_id, username, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, userID, username, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return &Profile{
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetProfile returns a user's profile, or nil if not found.
func (db *DB) GetProfile(userID int64) (*Profile, error) {
	var p Profile
	var tz, moodTime sql.NullString
	err := db.QueryRow(`
		SELECT user_id, username, timezone, points, mood_reminder_time, created_at, updated_at
		FROM profiles WHERE user_id = ?
	`, userID).Scan(&p.UserID, &p.Username, &tz, &p.Points, &moodTime, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.Timezone = tz.String
	p.MoodReminderTime = moodTime.String
	return &p, nil
}

// SetTimezone updates the user's stored timezone identifier.
func (db *DB) SetTimezone(userID int64, zone string) error {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE profiles SET timezone = ?, updated_at = ? WHERE user_id = ?
	`, zone, now, userID)
	if err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no profile for user %d", userID)
	}
	return nil
}

// SetMoodReminder sets the user's daily mood reminder time ("HH:MM" local).
func (db *DB) SetMoodReminder(userID int64, hhmm string) error {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE profiles SET mood_reminder_time = ?, updated_at = ? WHERE user_id = ?
	`, hhmm, now, userID)
	if err != nil {
		return fmt.Errorf("set mood reminder: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no profile for user %d", userID)
	}
	return nil
}

// ClearMoodReminder disables the user's daily mood reminder.
func (db *DB) ClearMoodReminder(userID int64) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		UPDATE profiles SET mood_reminder_time = NULL, updated_at = ? WHERE user_id = ?
	`, now, userID)
	if err != nil {
		return fmt.Errorf("clear mood reminder: %w", err)
	}
	return nil
}

// ListMoodReminderProfiles returns all profiles with a mood reminder set.
func (db *DB) ListMoodReminderProfiles() ([]Profile, error) {
	rows, err := db.Query(`
		SELECT user_id, username, timezone, points, mood_reminder_time, created_at, updated_at
		FROM profiles WHERE mood_reminder_time IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("list mood reminder profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		var tz, moodTime sql.NullString
		if err := rows.Scan(&p.UserID, &p.Username, &tz, &p.Points, &moodTime, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		p.Timezone = tz.String
		p.MoodReminderTime = moodTime.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// Points returns the user's current point balance. Users without a profile
// have zero points.
func (db *DB) Points(userID int64) (int, error) {
	var points int
	err := db.QueryRow("SELECT points FROM profiles WHERE user_id = ?", userID).Scan(&points)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get points: %w", err)
	}
	return points, nil
}
