package usecase

import (
	"testing"
	"time"

	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

func TestPreferencesGet(t *testing.T) {
	noon := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("DefaultsWhenUnset", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, newFakeRepo(), &fakeDispatcher{}, noon)

		// Act
		prefs, err := uc.PreferencesGet(authCtx(11, "client"), PreferencesGetInput{UserID: 11})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !prefs.NewMessage || !prefs.Push || prefs.Frequency != entity.FrequencyImmediate {
			t.Fatalf("expected default preferences, got %+v", prefs)
		}
		if prefs.QuietHoursEnabled {
			t.Fatalf("expected quiet hours disabled by default")
		}
	})

	t.Run("OtherUserForbidden", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, newFakeRepo(), &fakeDispatcher{}, noon)

		// Act
		_, err := uc.PreferencesGet(authCtx(11, "client"), PreferencesGetInput{UserID: 42})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})
}

func TestPreferencesUpdate(t *testing.T) {
	noon := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	off := false
	hourly := "hourly"
	start := "21:00"
	end := "07:30"

	t.Run("PartialPatch", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		uc := newTestUsecase(t, repo, &fakeDispatcher{}, noon)

		// Act
		prefs, err := uc.PreferencesUpdate(authCtx(11, "client"), PreferencesUpdateInput{
			UserID:          11,
			Push:            &off,
			Frequency:       &hourly,
			QuietHoursStart: &start,
			QuietHoursEnd:   &end,
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prefs.Push {
			t.Fatalf("expected push disabled")
		}
		if prefs.Frequency != entity.FrequencyHourly {
			t.Fatalf("expected hourly frequency, got %v", prefs.Frequency)
		}
		if prefs.QuietHoursStart.String() != "21:00" || prefs.QuietHoursEnd.String() != "07:30" {
			t.Fatalf("unexpected quiet window %s-%s", prefs.QuietHoursStart, prefs.QuietHoursEnd)
		}
		if !prefs.Email || !prefs.NewMessage {
			t.Fatalf("expected untouched toggles to keep defaults")
		}

		stored, ok := repo.preferences[11]
		if !ok || stored.Push {
			t.Fatalf("expected patched row materialized")
		}
	})

	t.Run("InvalidQuietHours", func(t *testing.T) {
		// Arrange
		bad := "25:99"
		uc := newTestUsecase(t, newFakeRepo(), &fakeDispatcher{}, noon)

		// Act
		_, err := uc.PreferencesUpdate(authCtx(11, "client"), PreferencesUpdateInput{
			UserID:          11,
			QuietHoursStart: &bad,
		})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("AdminUpdatesOther", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		uc := newTestUsecase(t, repo, &fakeDispatcher{}, noon)

		// Act
		_, err := uc.PreferencesUpdate(authCtx(42, "admin"), PreferencesUpdateInput{UserID: 11, Push: &off})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestPreferencesReset(t *testing.T) {
	noon := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	// Arrange
	repo := newFakeRepo()
	custom := entity.DefaultPreferences(11)
	custom.Push = false
	custom.Frequency = entity.FrequencyDaily
	repo.preferences[11] = custom
	uc := newTestUsecase(t, repo, &fakeDispatcher{}, noon)

	// Act
	prefs, err := uc.PreferencesReset(authCtx(11, "client"), PreferencesResetInput{UserID: 11})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !prefs.Push || prefs.Frequency != entity.FrequencyImmediate {
		t.Fatalf("expected defaults restored, got %+v", prefs)
	}
	if stored := repo.preferences[11]; !stored.Push {
		t.Fatalf("expected stored row reset")
	}
}
