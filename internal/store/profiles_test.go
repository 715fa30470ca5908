package store

import (
	"testing"
)

func TestEnsureProfile(t *testing.T) {
	db := testDB(t)

	p, err := db.EnsureProfile(42, "ana")
	if err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}
	if p.UserID != 42 || p.Username != "ana" {
		t.Errorf("profile = %+v", p)
	}
	if p.Points != 0 {
		t.Errorf("points = %d, want 0", p.Points)
	}

	// Second call returns the existing row and ignores the new username.
	again, err := db.EnsureProfile(42, "other")
	if err != nil {
		t.Fatalf("EnsureProfile again: %v", err)
	}
	if again.Username != "ana" {
		t.Errorf("username = %q, want ana", again.Username)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	db := testDB(t)

	p, err := db.GetProfile(999)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing profile, got %+v", p)
	}
}

func TestSetTimezone(t *testing.T) {
	db := testDB(t)

	if err := db.SetTimezone(1, "US/Pacific"); err == nil {
		t.Error("expected error setting timezone without profile")
	}

	db.EnsureProfile(1, "ana")
	if err := db.SetTimezone(1, "US/Pacific"); err != nil {
		t.Fatalf("SetTimezone: %v", err)
	}

	p, _ := db.GetProfile(1)
	if p.Timezone != "US/Pacific" {
		t.Errorf("timezone = %q, want US/Pacific", p.Timezone)
	}
}

func TestMoodReminderLifecycle(t *testing.T) {
	db := testDB(t)
	db.EnsureProfile(1, "ana")
	db.EnsureProfile(2, "ben")

	if err := db.SetMoodReminder(1, "09:00"); err != nil {
		t.Fatalf("SetMoodReminder: %v", err)
	}

	reminders, err := db.ListMoodReminderProfiles()
	if err != nil {
		t.Fatalf("ListMoodReminderProfiles: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("got %d reminder profiles, want 1", len(reminders))
	}
	if reminders[0].UserID != 1 || reminders[0].MoodReminderTime != "09:00" {
		t.Errorf("reminder profile = %+v", reminders[0])
	}

	if err := db.ClearMoodReminder(1); err != nil {
		t.Fatalf("ClearMoodReminder: %v", err)
	}
	reminders, _ = db.ListMoodReminderProfiles()
	if len(reminders) != 0 {
		t.Errorf("got %d reminder profiles after clear, want 0", len(reminders))
	}
}

func TestPointsWithoutProfile(t *testing.T) {
	db := testDB(t)

	points, err := db.Points(7)
	if err != nil {
		t.Fatalf("Points: %v", err)
	}
	if points != 0 {
		t.Errorf("points = %d, want 0", points)
	}
}
