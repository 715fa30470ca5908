package tracker

import (
	"testing"
)

func TestDeadlineDue(t *testing.T) {
	cases := []struct {
		name      string
		deadline  string
		reminded  bool
		localDate string
		want      bool
	}{
		{"two days out", "2024-06-10", false, "2024-06-08", false},
		{"one day out", "2024-06-10", false, "2024-06-09", true},
		{"deadline day", "2024-06-10", false, "2024-06-10", true},
		{"past deadline", "2024-06-10", false, "2024-06-15", true},
		{"already reminded", "2024-06-10", true, "2024-06-09", false},
		{"no deadline", "", false, "2024-06-09", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DeadlineDue(c.deadline, c.reminded, c.localDate)
			if err != nil {
				t.Fatalf("DeadlineDue: %v", err)
			}
			if got != c.want {
				t.Errorf("due = %v, want %v", got, c.want)
			}
		})
	}
}

// Once reminded flips, the warning never fires again for the goal — even on
// the same day it first fired.
func TestDeadlineFiresOnce(t *testing.T) {
	due, err := DeadlineDue("2024-06-10", false, "2024-06-09")
	if err != nil {
		t.Fatalf("DeadlineDue: %v", err)
	}
	if !due {
		t.Fatal("expected first evaluation to be due")
	}

	for _, date := range []string{"2024-06-09", "2024-06-10", "2024-06-20"} {
		due, err := DeadlineDue("2024-06-10", true, date)
		if err != nil {
			t.Fatalf("DeadlineDue(%s): %v", date, err)
		}
		if due {
			t.Errorf("date %s: due = true after reminded, want false", date)
		}
	}
}

func TestDecayApplies(t *testing.T) {
	cases := []struct {
		name       string
		lastUpdate string
		localDate  string
		want       bool
	}{
		{"updated today", "2024-06-01", "2024-06-01", false},
		{"updated yesterday", "2024-05-31", "2024-06-01", true},
		{"updated last week", "2024-05-25", "2024-06-01", true},
		{"never updated", "", "2024-06-01", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := DecayApplies(c.lastUpdate, c.localDate)
			if err != nil {
				t.Fatalf("DecayApplies: %v", err)
			}
			if got != c.want {
				t.Errorf("decay = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDeadlineDueMalformed(t *testing.T) {
	if _, err := DeadlineDue("06/10/2024", false, "2024-06-09"); err == nil {
		t.Error("expected error for malformed deadline")
	}
	if _, err := DecayApplies("yesterday", "2024-06-01"); err == nil {
		t.Error("expected error for malformed last update date")
	}
}
