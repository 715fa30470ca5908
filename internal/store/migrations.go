package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "profiles: per-user identity, timezone, points, mood reminder",
		SQL: `
CREATE TABLE profiles (
    user_id            INTEGER PRIMARY KEY,
    username           TEXT NOT NULL DEFAULT '',
    timezone           TEXT,
    points             INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
    mood_reminder_time TEXT,
    created_at         INTEGER NOT NULL,
    updated_at         INTEGER NOT NULL
);
`,
	},
	{
		Version:     2,
		Description: "habits: tracked habits and daily log dates",
		SQL: `
CREATE TABLE habits (
    id            TEXT PRIMARY KEY,
    user_id       INTEGER NOT NULL,
    name          TEXT NOT NULL,
    reminder_time TEXT,
    created_at    INTEGER NOT NULL,

    UNIQUE (user_id, name)
);

CREATE INDEX idx_habits_user     ON habits(user_id);
CREATE INDEX idx_habits_reminder ON habits(reminder_time) WHERE reminder_time IS NOT NULL;

CREATE TABLE habit_logs (
    habit_id TEXT NOT NULL,
    log_date TEXT NOT NULL,

    UNIQUE (habit_id, log_date),
    FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
);
`,
	},
	{
		Version:     3,
		Description: "goals: tracked goals, progress dates, deadline dedup flag",
		SQL: `
CREATE TABLE goals (
    id               TEXT PRIMARY KEY,
    user_id          INTEGER NOT NULL,
    name             TEXT NOT NULL,
    deadline         TEXT,
    reminded         INTEGER NOT NULL DEFAULT 0,
    completed        INTEGER NOT NULL DEFAULT 0,
    last_update_date TEXT,
    created_at       INTEGER NOT NULL,

    UNIQUE (user_id, name)
);

CREATE INDEX idx_goals_user ON goals(user_id);

CREATE TABLE goal_progress (
    goal_id       TEXT NOT NULL,
    progress_date TEXT NOT NULL,

    UNIQUE (goal_id, progress_date),
    FOREIGN KEY (goal_id) REFERENCES goals(id) ON DELETE CASCADE
);
`,
	},
	{
		Version:     4,
		Description: "mood_entries: mood log history",
		SQL: `
CREATE TABLE mood_entries (
    id        INTEGER PRIMARY KEY,
    user_id   INTEGER NOT NULL,
    mood      TEXT NOT NULL,
    logged_at TEXT NOT NULL
);

CREATE INDEX idx_moods_user ON mood_entries(user_id);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
