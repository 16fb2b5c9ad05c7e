package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/servizo/servizo/internal/notification/entity"
)

func validMessageCreated() ConsumeMessageCreatedInput {
	return ConsumeMessageCreatedInput{
		ConversationID: 7,
		MessageID:      100,
		SenderID:       42,
		SenderRole:     "admin",
		RecipientID:    11,
		Priority:       "normal",
		Subject:        "Booking issue",
		Preview:        "We looked into your report",
	}
}

func TestConsumeMessageCreated(t *testing.T) {
	noon := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("InboxAlwaysAndOutOfBandGated", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		repo.users = []entity.AudienceUser{{ID: 11, Email: "user@example.com", Role: "client"}}
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		err := uc.ConsumeMessageCreated(context.Background(), validMessageCreated())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(disp.attempts) != 3 {
			t.Fatalf("expected in-app, push and email attempts, got %d", len(disp.attempts))
		}
		if disp.attempts[0].channel != entity.ChannelInApp {
			t.Fatalf("expected in-app first, got %v", disp.attempts[0].channel)
		}
	})

	t.Run("PushDisabledSkipsPushOnly", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		repo.users = []entity.AudienceUser{{ID: 11, Email: "user@example.com", Role: "client"}}
		prefs := entity.DefaultPreferences(11)
		prefs.Push = false
		repo.preferences[11] = prefs
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		err := uc.ConsumeMessageCreated(context.Background(), validMessageCreated())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, a := range disp.attempts {
			if a.channel == entity.ChannelPush {
				t.Fatalf("expected no push attempt")
			}
		}
		if len(disp.attempts) != 2 {
			t.Fatalf("expected in-app and email attempts, got %d", len(disp.attempts))
		}
	})

	t.Run("HourlyDefersOutOfBand", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		repo.users = []entity.AudienceUser{{ID: 11, Email: "user@example.com", Role: "client"}}
		prefs := entity.DefaultPreferences(11)
		prefs.Frequency = entity.FrequencyHourly
		repo.preferences[11] = prefs
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		err := uc.ConsumeMessageCreated(context.Background(), validMessageCreated())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(disp.attempts) != 1 || disp.attempts[0].channel != entity.ChannelInApp {
			t.Fatalf("expected only the in-app write, got %d attempts", len(disp.attempts))
		}
		if len(repo.deferred) != 2 {
			t.Fatalf("expected push and email deferred, got %d", len(repo.deferred))
		}
	})

	t.Run("UnknownRecipientDropped", func(t *testing.T) {
		// Arrange
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, newFakeRepo(), disp, noon)

		// Act
		err := uc.ConsumeMessageCreated(context.Background(), validMessageCreated())

		// Assert
		if err != nil {
			t.Fatalf("expected unknown recipient to be dropped silently, got %v", err)
		}
		if len(disp.attempts) != 0 {
			t.Fatalf("expected no attempts for unknown recipient")
		}
	})

	t.Run("MalformedEventAcked", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, newFakeRepo(), &fakeDispatcher{}, noon)

		// Act
		err := uc.ConsumeMessageCreated(context.Background(), ConsumeMessageCreatedInput{})

		// Assert
		if err != nil {
			t.Fatalf("expected malformed event to be acked, got %v", err)
		}
	})
}

func TestMessageKind(t *testing.T) {
	cases := []struct {
		priority string
		role     string
		want     entity.Kind
	}{
		{"high", "client", entity.KindPriorityMessage},
		{"urgent", "admin", entity.KindPriorityMessage},
		{"normal", "admin", entity.KindAdminResponse},
		{"normal", "super_admin", entity.KindAdminResponse},
		{"normal", "client", entity.KindNewMessage},
		{"low", "worker", entity.KindNewMessage},
	}

	for _, tc := range cases {
		if got := messageKind(tc.priority, tc.role); got != tc.want {
			t.Fatalf("messageKind(%q, %q) = %v, want %v", tc.priority, tc.role, got, tc.want)
		}
	}
}
