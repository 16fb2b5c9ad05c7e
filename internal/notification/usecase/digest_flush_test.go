package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/servizo/servizo/internal/notification/entity"
)

func TestFlushDeferred(t *testing.T) {
	noon := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	seedDeferred := func(repo *fakeRepo, id, userID int64, ch entity.Channel, due time.Time) {
		repo.deferred = append(repo.deferred, entity.DeferredNotification{
			ID:            id,
			UserID:        userID,
			Kind:          entity.KindNewMessage,
			Channel:       ch,
			Subject:       "New message",
			Content:       "hello",
			DeferredUntil: due,
		})
	}

	t.Run("GroupsPerUserAndChannel", func(t *testing.T) {
		// Arrange: three due rows for one user and channel become one digest.
		repo := newFakeRepo()
		repo.users = []entity.AudienceUser{{ID: 11, Email: "user@example.com"}}
		seedDeferred(repo, 1, 11, entity.ChannelEmail, noon.Add(-time.Hour))
		seedDeferred(repo, 2, 11, entity.ChannelEmail, noon.Add(-time.Hour))
		seedDeferred(repo, 3, 11, entity.ChannelEmail, noon.Add(-30*time.Minute))
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		err := uc.FlushDeferred(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(disp.attempts) != 1 {
			t.Fatalf("expected one digest send, got %d", len(disp.attempts))
		}
		for _, d := range repo.deferred {
			if d.FlushedAt == nil {
				t.Fatalf("expected row %d flushed", d.ID)
			}
		}
	})

	t.Run("NotDueRowsStay", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		repo.users = []entity.AudienceUser{{ID: 11, Email: "user@example.com"}}
		seedDeferred(repo, 1, 11, entity.ChannelEmail, noon.Add(time.Hour))
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		err := uc.FlushDeferred(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(disp.attempts) != 0 {
			t.Fatalf("expected nothing sent before the due time")
		}
		if repo.deferred[0].FlushedAt != nil {
			t.Fatalf("expected future row left unflushed")
		}
	})

	t.Run("QuietHoursSkipped", func(t *testing.T) {
		// Arrange: user is inside the quiet window at flush time.
		repo := newFakeRepo()
		repo.users = []entity.AudienceUser{{ID: 11, Email: "user@example.com"}}
		prefs := entity.DefaultPreferences(11)
		prefs.QuietHoursEnabled = true
		prefs.QuietHoursStart = 11 * 60
		prefs.QuietHoursEnd = 13 * 60
		repo.preferences[11] = prefs
		seedDeferred(repo, 1, 11, entity.ChannelEmail, noon.Add(-time.Hour))
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		err := uc.FlushDeferred(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(disp.attempts) != 0 {
			t.Fatalf("expected quiet hours to skip the digest")
		}
		if repo.deferred[0].FlushedAt != nil {
			t.Fatalf("expected skipped row left for a later run")
		}
	})

	t.Run("TransientFailureRetriesLater", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		repo.users = []entity.AudienceUser{{ID: 11, Email: "user@example.com"}}
		seedDeferred(repo, 1, 11, entity.ChannelEmail, noon.Add(-time.Hour))
		disp := &fakeDispatcher{failFor: map[sendAttempt]entity.FailureReason{
			{channel: entity.ChannelEmail, userID: 11}: entity.ReasonTransient,
		}}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		err := uc.FlushDeferred(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.deferred[0].FlushedAt != nil {
			t.Fatalf("expected transient failure to leave the row unflushed")
		}
	})

	t.Run("PermanentFailureFlushes", func(t *testing.T) {
		// Arrange: a permanently failing digest is not retried forever.
		repo := newFakeRepo()
		repo.users = []entity.AudienceUser{{ID: 11, Email: "user@example.com"}}
		seedDeferred(repo, 1, 11, entity.ChannelEmail, noon.Add(-time.Hour))
		disp := &fakeDispatcher{failFor: map[sendAttempt]entity.FailureReason{
			{channel: entity.ChannelEmail, userID: 11}: entity.ReasonPermanent,
		}}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		err := uc.FlushDeferred(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.deferred[0].FlushedAt == nil {
			t.Fatalf("expected permanently failed row stamped flushed")
		}
	})
}

func TestDigestPayload(t *testing.T) {

	t.Run("SingleItemPassthrough", func(t *testing.T) {
		// Arrange
		items := []entity.DeferredNotification{
			{Kind: entity.KindNewMessage, Subject: "New message", Content: "hi"},
		}

		// Act
		p := digestPayload(items)

		// Assert
		if p.Subject != "New message" || p.Content != "hi" {
			t.Fatalf("expected single item passed through, got %+v", p)
		}
	})

	t.Run("MultipleItemsJoined", func(t *testing.T) {
		// Arrange
		items := []entity.DeferredNotification{
			{Kind: entity.KindNewMessage, Subject: "A", Content: "first"},
			{Kind: entity.KindNewMessage, Subject: "B", Content: "second"},
			{Kind: entity.KindNewMessage, Content: "third"},
		}

		// Act
		p := digestPayload(items)

		// Assert
		if p.Subject != "You have 3 new notifications" {
			t.Fatalf("unexpected digest subject %q", p.Subject)
		}
		want := "A\nfirst\n\nB\nsecond\n\nthird"
		if p.Content != want {
			t.Fatalf("unexpected digest content %q", p.Content)
		}
	})
}
