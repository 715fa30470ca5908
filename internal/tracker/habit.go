package tracker

import (
	"fmt"
	"time"
)

// HabitState is the per-(user, habit, day) reminder state.
type HabitState int

const (
	// HabitNotDue: the reminder time hasn't arrived yet, or the habit has
	// no reminder configured.
	HabitNotDue HabitState = iota
	// HabitDue: the reminder time has passed and the habit is unlogged
	// today. A due habit re-notifies on every fast tick until logged; the
	// only dedup is the log itself.
	HabitDue
	// HabitSatisfied: the habit is already logged today.
	HabitSatisfied
)

// EvaluateHabit decides the reminder state for one habit given the user's
// local clock. loggedToday is the same-day dedup check against the habit's
// log dates.
func EvaluateHabit(reminderTime string, loggedToday bool, localNow time.Time) (HabitState, error) {
	if loggedToday {
		return HabitSatisfied, nil
	}
	if reminderTime == "" {
		return HabitNotDue, nil
	}

	due, err := time.Parse(ClockLayout, reminderTime)
	if err != nil {
		return HabitNotDue, fmt.Errorf("parse reminder time %q: %w", reminderTime, err)
	}

	nowMinutes := localNow.Hour()*60 + localNow.Minute()
	dueMinutes := due.Hour()*60 + due.Minute()
	if nowMinutes >= dueMinutes {
		return HabitDue, nil
	}
	return HabitNotDue, nil
}
