package tracker

import (
	"testing"
	"time"
)

func TestLocalizePacific(t *testing.T) {
	utc := time.Date(2024, 6, 1, 7, 5, 0, 0, time.UTC)

	local, err := Localize(utc, "US/Pacific")
	if err != nil {
		t.Fatalf("Localize: %v", err)
	}
	// UTC-7 during daylight time.
	if got := local.Format("2006-01-02 15:04"); got != "2024-06-01 00:05" {
		t.Errorf("local = %q, want 2024-06-01 00:05", got)
	}
}

func TestLocalizeEmptyZoneIsUTC(t *testing.T) {
	utc := time.Date(2024, 6, 1, 7, 5, 0, 0, time.UTC)

	local, err := Localize(utc, "")
	if err != nil {
		t.Fatalf("Localize: %v", err)
	}
	if !local.Equal(utc) || local.Location() != time.UTC {
		t.Errorf("local = %v (%v), want unchanged UTC", local, local.Location())
	}
}

func TestLocalizeInvalidZone(t *testing.T) {
	_, err := Localize(time.Now(), "Not/AZone")
	if err == nil {
		t.Error("expected error for invalid zone")
	}
}

func TestValidZone(t *testing.T) {
	cases := []struct {
		zone string
		want bool
	}{
		{"US/Pacific", true},
		{"Europe/Berlin", true},
		{"UTC", true},
		{"", false},
		{"Not/AZone", false},
	}
	for _, c := range cases {
		if got := ValidZone(c.zone); got != c.want {
			t.Errorf("ValidZone(%q) = %v, want %v", c.zone, got, c.want)
		}
	}
}
