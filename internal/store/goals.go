package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProgressPoints is awarded for the first progress log of the day on a goal.
const ProgressPoints = 5

// Goal is a tracked goal with an optional deadline ("YYYY-MM-DD"). Reminded
// flips true exactly once per deadline and never resets except by deletion.
type Goal struct {
	ID             string
	UserID         int64
	Name           string
	Deadline       string
	Reminded       bool
	Completed      bool
	LastUpdateDate string
	CreatedAt      int64
	ProgressCount  int
}

// AddGoal creates a new tracked goal. deadline may be empty for a goal
// without one. Fails if the user already tracks a goal with this name.
func (db *DB) AddGoal(userID int64, name, deadline string) (*Goal, error) {
	g := &Goal{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Deadline:  deadline,
		CreatedAt: time.Now().UnixMilli(),
	}
	_, err := db.Exec(`
		INSERT INTO goals (id, user_id, name, deadline, created_at)
		VALUES (?, ?, ?, NULLIF(?, ''), ?)
	`, g.ID, g.UserID, g.Name, g.Deadline, g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return g, nil
}

func scanGoal(row interface{ Scan(...any) error }) (*Goal, error) {
	var g Goal
	var deadline, lastUpdate sql.NullString
	var reminded, completed int
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &deadline, &reminded, &completed,
		&lastUpdate, &g.CreatedAt, &g.ProgressCount)
	if err != nil {
		return nil, err
	}
	g.Deadline = deadline.String
	g.LastUpdateDate = lastUpdate.String
	g.Reminded = reminded != 0
	g.Completed = completed != 0
	return &g, nil
}

const goalColumns = `g.id, g.user_id, g.name, g.deadline, g.reminded, g.completed,
	g.last_update_date, g.created_at,
	(SELECT COUNT(*) FROM goal_progress WHERE goal_id = g.id)`

// GetGoalByName returns a user's goal by name, or nil if not found.
func (db *DB) GetGoalByName(userID int64, name string) (*Goal, error) {
	g, err := scanGoal(db.QueryRow(
		"SELECT "+goalColumns+" FROM goals g WHERE g.user_id = ? AND g.name = ?",
		userID, name,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get goal by name: %w", err)
	}
	return g, nil
}

// ListGoals returns a user's goals in insertion order, with progress counts.
func (db *DB) ListGoals(userID int64) ([]Goal, error) {
	rows, err := db.Query(
		"SELECT "+goalColumns+" FROM goals g WHERE g.user_id = ? ORDER BY g.created_at, g.rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// ListGoalUserIDs returns the ids of every user with at least one goal.
func (db *DB) ListGoalUserIDs() ([]int64, error) {
	rows, err := db.Query("SELECT DISTINCT user_id FROM goals ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("list goal users: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan goal user: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// LogGoalProgress records today's progress on a goal, advances the goal's
// last_update_date, and awards points — all in one transaction. Returns
// awarded=false (and no state change) when progress was already logged for
// that date. The returned points are the user's balance after the award.
func (db *DB) LogGoalProgress(goalID string, userID int64, date string) (awarded bool, points int, err error) {
	tx, err := db.Begin()
	if err != nil {
		return false, 0, fmt.Errorf("begin progress log: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"INSERT OR IGNORE INTO goal_progress (goal_id, progress_date) VALUES (?, ?)",
		goalID, date,
	)
	if err != nil {
		return false, 0, fmt.Errorf("insert progress: %w", err)
	}
	inserted, _ := result.RowsAffected()
	if inserted == 0 {
		err = tx.QueryRow("SELECT points FROM profiles WHERE user_id = ?", userID).Scan(&points)
		if err != nil && err != sql.ErrNoRows {
			return false, 0, fmt.Errorf("read points: %w", err)
		}
		return false, points, nil
	}

	if _, err := tx.Exec(
		"UPDATE goals SET last_update_date = ? WHERE id = ?",
		date, goalID,
	); err != nil {
		return false, 0, fmt.Errorf("update last_update_date: %w", err)
	}

	if err := tx.QueryRow(
		"SELECT points FROM profiles WHERE user_id = ?", userID,
	).Scan(&points); err != nil {
		return false, 0, fmt.Errorf("read points: %w", err)
	}
	points = Award(points, ProgressPoints)

	if _, err := tx.Exec(
		"UPDATE profiles SET points = ? WHERE user_id = ?",
		points, userID,
	); err != nil {
		return false, 0, fmt.Errorf("award points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit progress log: %w", err)
	}
	return true, points, nil
}

// ApplyGoalTick persists one slow-tick evaluation for a user as a single
// batched write: reminded flags for the listed goals and the accumulated
// decay, floored at zero. Either the whole update lands or none of it does —
// a failed tick leaves the state due for re-evaluation next tick.
func (db *DB) ApplyGoalTick(userID int64, remindedGoalIDs []string, decay int) error {
	if len(remindedGoalIDs) == 0 && decay == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin goal tick: %w", err)
	}
	defer tx.Rollback()

	for _, id := range remindedGoalIDs {
		if _, err := tx.Exec("UPDATE goals SET reminded = 1 WHERE id = ?", id); err != nil {
			return fmt.Errorf("set reminded flag: %w", err)
		}
	}

	if decay > 0 {
		var balance int
		err := tx.QueryRow("SELECT points FROM profiles WHERE user_id = ?", userID).Scan(&balance)
		switch {
		case err == sql.ErrNoRows:
			// Goals without a profile row have no balance to decay.
		case err != nil:
			return fmt.Errorf("read points: %w", err)
		default:
			if _, err := tx.Exec(
				"UPDATE profiles SET points = ? WHERE user_id = ?",
				Award(balance, -decay), userID,
			); err != nil {
				return fmt.Errorf("apply decay: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit goal tick: %w", err)
	}
	return nil
}

// CompleteGoal marks a user's goal as completed. Returns false if no goal by
// that name exists.
func (db *DB) CompleteGoal(userID int64, name string) (bool, error) {
	result, err := db.Exec(
		"UPDATE goals SET completed = 1 WHERE user_id = ? AND name = ?",
		userID, name,
	)
	if err != nil {
		return false, fmt.Errorf("complete goal: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteGoal removes a user's goal by name. Returns false if not found.
func (db *DB) DeleteGoal(userID int64, name string) (bool, error) {
	result, err := db.Exec(
		"DELETE FROM goals WHERE user_id = ? AND name = ?",
		userID, name,
	)
	if err != nil {
		return false, fmt.Errorf("delete goal: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ClearCompletedGoals removes all of a user's completed goals. Returns the
// number removed.
func (db *DB) ClearCompletedGoals(userID int64) (int, error) {
	result, err := db.Exec(
		"DELETE FROM goals WHERE user_id = ? AND completed = 1",
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("clear completed goals: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
