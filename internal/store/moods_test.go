package store

import (
	"testing"
)

func TestLogAndListMoods(t *testing.T) {
	db := testDB(t)

	moods, err := db.ListMoods(1)
	if err != nil {
		t.Fatalf("ListMoods: %v", err)
	}
	if len(moods) != 0 {
		t.Errorf("got %d moods, want 0", len(moods))
	}

	if err := db.LogMood(1, "happy", "2024-06-01 09:15:00"); err != nil {
		t.Fatalf("LogMood: %v", err)
	}
	if err := db.LogMood(1, "tired", "2024-06-01 22:40:00"); err != nil {
		t.Fatalf("LogMood: %v", err)
	}
	db.LogMood(2, "calm", "2024-06-01 10:00:00")

	moods, err = db.ListMoods(1)
	if err != nil {
		t.Fatalf("ListMoods: %v", err)
	}
	if len(moods) != 2 {
		t.Fatalf("got %d moods, want 2", len(moods))
	}
	if moods[0].Mood != "happy" || moods[1].Mood != "tired" {
		t.Errorf("moods = %v", moods)
	}
	if moods[0].LoggedAt != "2024-06-01 09:15:00" {
		t.Errorf("logged_at = %q", moods[0].LoggedAt)
	}
}
