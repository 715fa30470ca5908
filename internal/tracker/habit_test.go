package tracker

import (
	"testing"
	"time"
)

func localClock(hhmm string) time.Time {
	parsed, _ := time.Parse(ClockLayout, hhmm)
	return time.Date(2024, 6, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func TestEvaluateHabit(t *testing.T) {
	cases := []struct {
		name        string
		reminder    string
		loggedToday bool
		now         string
		want        HabitState
	}{
		{"before reminder time", "08:00", false, "07:59", HabitNotDue},
		{"at reminder time", "08:00", false, "08:00", HabitDue},
		{"after reminder time", "08:00", false, "21:30", HabitDue},
		{"logged before time", "08:00", true, "07:00", HabitSatisfied},
		{"logged after time", "08:00", true, "09:00", HabitSatisfied},
		{"no reminder configured", "", false, "12:00", HabitNotDue},
		{"no reminder but logged", "", true, "12:00", HabitSatisfied},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := EvaluateHabit(c.reminder, c.loggedToday, localClock(c.now))
			if err != nil {
				t.Fatalf("EvaluateHabit: %v", err)
			}
			if got != c.want {
				t.Errorf("state = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEvaluateHabitMalformedTime(t *testing.T) {
	_, err := EvaluateHabit("25:99", false, localClock("12:00"))
	if err == nil {
		t.Error("expected error for malformed reminder time")
	}
}

// Re-evaluating a still-due habit stays due: the reminder re-fires each tick
// until the habit is logged, and logging alone resolves it.
func TestEvaluateHabitIdempotentWhileDue(t *testing.T) {
	for i := 0; i < 3; i++ {
		got, err := EvaluateHabit("08:00", false, localClock("09:00"))
		if err != nil {
			t.Fatalf("EvaluateHabit: %v", err)
		}
		if got != HabitDue {
			t.Fatalf("pass %d: state = %v, want HabitDue", i, got)
		}
	}

	got, _ := EvaluateHabit("08:00", true, localClock("09:00"))
	if got != HabitSatisfied {
		t.Errorf("after logging: state = %v, want HabitSatisfied", got)
	}
}
