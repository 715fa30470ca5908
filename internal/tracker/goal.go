package tracker

import (
	"fmt"
	"time"
)

// DeadlineDue reports whether a deadline warning should fire: the local date
// has reached deadline minus one day and the goal hasn't been reminded yet.
// The reminded flag fires once per deadline and never resets.
func DeadlineDue(deadline string, reminded bool, localDate string) (bool, error) {
	if deadline == "" || reminded {
		return false, nil
	}

	d, err := time.Parse(DateLayout, deadline)
	if err != nil {
		return false, fmt.Errorf("parse deadline %q: %w", deadline, err)
	}
	today, err := time.Parse(DateLayout, localDate)
	if err != nil {
		return false, fmt.Errorf("parse local date %q: %w", localDate, err)
	}

	return !today.Before(d.AddDate(0, 0, -1)), nil
}

// DecayApplies reports whether the inactivity decay hits this tick: the goal
// has a last progress date and it's at least one calendar day old. The check
// is cadence-driven, not day-boundary-driven — a goal left idle loses a point
// on every slow tick, and each idle goal contributes its own hit.
func DecayApplies(lastUpdateDate string, localDate string) (bool, error) {
	if lastUpdateDate == "" {
		return false, nil
	}

	last, err := time.Parse(DateLayout, lastUpdateDate)
	if err != nil {
		return false, fmt.Errorf("parse last update date %q: %w", lastUpdateDate, err)
	}
	today, err := time.Parse(DateLayout, localDate)
	if err != nil {
		return false, fmt.Errorf("parse local date %q: %w", localDate, err)
	}

	return today.Sub(last) >= 24*time.Hour, nil
}
