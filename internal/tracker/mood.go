package tracker

import "time"

// MoodDue reports whether the mood reminder fires: exact-minute match between
// the configured "HH:MM" and the user's local clock. The fast loop runs once
// a minute, so a stall across a minute boundary means a missed reminder for
// the day — there is no catch-up and no per-day dedup.
func MoodDue(reminderTime string, localNow time.Time) bool {
	if reminderTime == "" {
		return false
	}
	return localNow.Format(ClockLayout) == reminderTime
}
