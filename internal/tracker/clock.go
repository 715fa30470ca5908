package tracker

import (
	"fmt"
	"time"

	// Embedded zone database so per-user zone names resolve even on hosts
	// without system zoneinfo (containers, scratch images).
	_ "time/tzdata"
)

// Date and clock layouts shared by the evaluators and the command layer.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Localize converts a UTC instant to the user's wall clock. An empty zone
// means UTC. A malformed zone name is a recoverable per-user error — the
// caller logs it and skips the user for the tick.
func Localize(now time.Time, zone string) (time.Time, error) {
	if zone == "" {
		return now.UTC(), nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load zone %q: %w", zone, err)
	}
	return now.In(loc), nil
}

// ValidZone reports whether the zone name resolves.
func ValidZone(zone string) bool {
	if zone == "" {
		return false
	}
	_, err := time.LoadLocation(zone)
	return err == nil
}
