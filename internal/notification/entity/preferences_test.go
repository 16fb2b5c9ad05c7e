package entity

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {

	t.Run("Valid", func(t *testing.T) {
		// Arrange & Act
		tod, err := ParseTimeOfDay("22:30")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tod != 22*60+30 {
			t.Fatalf("expected 1350 minutes, got %d", tod)
		}
		if tod.String() != "22:30" {
			t.Fatalf("expected round trip to 22:30, got %q", tod.String())
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, raw := range []string{"25:00", "12:61", "noon", ""} {
			if _, err := ParseTimeOfDay(raw); err == nil {
				t.Fatalf("expected error for %q", raw)
			}
		}
	})
}

func TestPreferencesInQuietHours(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2026, 8, 15, hour, minute, 0, 0, time.UTC)
	}

	t.Run("WrappingWindow", func(t *testing.T) {
		// Arrange: 22:00 to 06:00, wrapping past midnight.
		prefs := Preferences{QuietHoursEnabled: true, QuietHoursStart: 22 * 60, QuietHoursEnd: 6 * 60}

		// Act & Assert
		if !prefs.InQuietHours(at(23, 0)) {
			t.Fatalf("expected 23:00 inside wrapping window")
		}
		if !prefs.InQuietHours(at(2, 0)) {
			t.Fatalf("expected 02:00 inside wrapping window")
		}
		if prefs.InQuietHours(at(12, 0)) {
			t.Fatalf("expected 12:00 outside wrapping window")
		}
		if !prefs.InQuietHours(at(22, 0)) {
			t.Fatalf("expected start boundary inside window")
		}
		if prefs.InQuietHours(at(6, 0)) {
			t.Fatalf("expected end boundary outside window")
		}
	})

	t.Run("SameDayWindow", func(t *testing.T) {
		// Arrange: 09:00 to 17:00.
		prefs := Preferences{QuietHoursEnabled: true, QuietHoursStart: 9 * 60, QuietHoursEnd: 17 * 60}

		// Act & Assert
		if !prefs.InQuietHours(at(12, 0)) {
			t.Fatalf("expected 12:00 inside window")
		}
		if prefs.InQuietHours(at(8, 59)) {
			t.Fatalf("expected 08:59 outside window")
		}
		if prefs.InQuietHours(at(17, 0)) {
			t.Fatalf("expected 17:00 outside window")
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		// Arrange
		prefs := Preferences{QuietHoursEnabled: false, QuietHoursStart: 0, QuietHoursEnd: 24*60 - 1}

		// Act & Assert
		if prefs.InQuietHours(at(12, 0)) {
			t.Fatalf("expected disabled window to never match")
		}
	})

	t.Run("ZeroWidthWindow", func(t *testing.T) {
		// Arrange
		prefs := Preferences{QuietHoursEnabled: true, QuietHoursStart: 8 * 60, QuietHoursEnd: 8 * 60}

		// Act & Assert
		if prefs.InQuietHours(at(8, 0)) {
			t.Fatalf("expected equal start and end to never match")
		}
	})
}

func TestPreferencesPatchApply(t *testing.T) {
	// Arrange
	base := DefaultPreferences(11)
	off := false
	hourly := FrequencyHourly
	start := TimeOfDay(21 * 60)

	patch := PreferencesPatch{
		Push:            &off,
		Frequency:       &hourly,
		QuietHoursStart: &start,
	}

	// Act
	out := patch.Apply(base)

	// Assert
	if out.Push {
		t.Fatalf("expected push disabled")
	}
	if out.Frequency != FrequencyHourly {
		t.Fatalf("expected hourly frequency, got %v", out.Frequency)
	}
	if out.QuietHoursStart != start {
		t.Fatalf("expected quiet hours start 21:00, got %v", out.QuietHoursStart)
	}
	if !out.Email || !out.NewMessage || out.QuietHoursEnd != base.QuietHoursEnd {
		t.Fatalf("expected untouched fields to keep base values")
	}
	if base.Push != true {
		t.Fatalf("expected base left unmodified")
	}
}
