package usecase

import (
	"testing"
	"time"

	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

func seedCampaign(repo *fakeRepo, id int64, channels []entity.Channel, subject string) {
	repo.campaigns[id] = &entity.BulkCampaign{
		ID:           id,
		CampaignName: "maintenance window",
		Channels:     channels,
		Subject:      subject,
		Content:      "Servizo will be briefly unavailable on Saturday night.",
		Status:       entity.CampaignStatusActive,
	}
}

func seedAudience(repo *fakeRepo, n int) {
	for i := 1; i <= n; i++ {
		repo.users = append(repo.users, entity.AudienceUser{
			ID:       int64(i),
			FullName: "User",
			Email:    "user@example.com",
			Phone:    "+620000000",
			Role:     "client",
			IsActive: true,
		})
	}
}

func TestCampaignDispatch(t *testing.T) {
	noon := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Accounting", func(t *testing.T) {
		// Arrange: 10 recipients, push and email. Two users opted out of
		// push and one of email, so 20 pairs shrink to 17 attempts. Two of
		// those attempts fail.
		repo := newFakeRepo()
		seedCampaign(repo, 1, []entity.Channel{entity.ChannelPush, entity.ChannelEmail}, "Heads up")
		seedAudience(repo, 10)

		pushOff := entity.DefaultPreferences(1)
		pushOff.Push = false
		repo.preferences[1] = pushOff
		pushOff2 := entity.DefaultPreferences(2)
		pushOff2.Push = false
		repo.preferences[2] = pushOff2
		emailOff := entity.DefaultPreferences(3)
		emailOff.Email = false
		repo.preferences[3] = emailOff

		disp := &fakeDispatcher{failFor: map[sendAttempt]entity.FailureReason{
			{channel: entity.ChannelPush, userID: 5}:  entity.ReasonTransient,
			{channel: entity.ChannelEmail, userID: 6}: entity.ReasonTransient,
		}}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		out, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{CampaignID: 1})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Result.TotalRecipients != 10 {
			t.Fatalf("expected 10 recipients, got %d", out.Result.TotalRecipients)
		}
		if len(disp.attempts) != 17 {
			t.Fatalf("expected 17 attempted pairs, got %d", len(disp.attempts))
		}
		if out.Result.SuccessfulDeliveries != 15 || out.Result.FailedDeliveries != 2 {
			t.Fatalf("expected 15 successes and 2 failures, got %d and %d",
				out.Result.SuccessfulDeliveries, out.Result.FailedDeliveries)
		}
		if repo.campaigns[1].Status != entity.CampaignStatusCompleted {
			t.Fatalf("expected campaign completed")
		}
		if got := repo.completedResults[1]; got != out.Result {
			t.Fatalf("expected persisted result %+v, got %+v", out.Result, got)
		}
	})

	t.Run("DeferredPairsCountNowhere", func(t *testing.T) {
		// Arrange: one recipient on an hourly digest.
		repo := newFakeRepo()
		seedCampaign(repo, 1, []entity.Channel{entity.ChannelPush}, "")
		seedAudience(repo, 1)

		hourly := entity.DefaultPreferences(1)
		hourly.Frequency = entity.FrequencyHourly
		repo.preferences[1] = hourly

		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		out, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{CampaignID: 1})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(disp.attempts) != 0 {
			t.Fatalf("expected no attempts, got %d", len(disp.attempts))
		}
		if out.Result.SuccessfulDeliveries != 0 || out.Result.FailedDeliveries != 0 {
			t.Fatalf("expected deferred pair in neither counter, got %+v", out.Result)
		}
		if len(repo.deferred) != 1 {
			t.Fatalf("expected one deferred row, got %d", len(repo.deferred))
		}
	})

	t.Run("EmailWithoutSubject", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		seedCampaign(repo, 1, []entity.Channel{entity.ChannelEmail}, "")
		seedAudience(repo, 3)
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		_, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{CampaignID: 1})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
		if len(disp.attempts) != 0 {
			t.Fatalf("expected validation to reject before any attempt")
		}
		if repo.campaigns[1].Status != entity.CampaignStatusActive {
			t.Fatalf("expected campaign left active")
		}
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		seedCampaign(repo, 1, []entity.Channel{entity.ChannelPush}, "")
		repo.campaigns[1].Status = entity.CampaignStatusCompleted
		uc := newTestUsecase(t, repo, &fakeDispatcher{}, noon)

		// Act
		_, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{CampaignID: 1})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("DuplicateDispatch", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		seedCampaign(repo, 1, []entity.Channel{entity.ChannelPush}, "")
		seedAudience(repo, 2)
		uc := newTestUsecase(t, repo, &fakeDispatcher{}, noon)

		if _, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{CampaignID: 1}); err != nil {
			t.Fatalf("unexpected error on first dispatch: %v", err)
		}
		// completion flips status, reset it to exercise the idempotency guard
		repo.campaigns[1].Status = entity.CampaignStatusActive

		// Act
		_, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{CampaignID: 1})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, newFakeRepo(), &fakeDispatcher{}, noon)

		// Act
		_, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{CampaignID: 404})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("NonAdmin", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, newFakeRepo(), &fakeDispatcher{}, noon)

		// Act
		_, err := uc.CampaignDispatch(authCtx(11, "client"), CampaignDispatchInput{CampaignID: 1})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("ChannelOverride", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		seedCampaign(repo, 1, []entity.Channel{entity.ChannelPush, entity.ChannelEmail}, "Heads up")
		seedAudience(repo, 2)
		disp := &fakeDispatcher{}
		uc := newTestUsecase(t, repo, disp, noon)

		// Act
		out, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{
			CampaignID:      1,
			MessageChannels: []string{"sms"},
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(disp.attempts) != 2 {
			t.Fatalf("expected 2 sms attempts, got %d", len(disp.attempts))
		}
		for _, a := range disp.attempts {
			if a.channel != entity.ChannelSMS {
				t.Fatalf("expected only sms attempts, got %v", a.channel)
			}
		}
		if out.Result.SuccessfulDeliveries != 2 {
			t.Fatalf("expected 2 successes, got %d", out.Result.SuccessfulDeliveries)
		}
	})

	t.Run("EmptyAudience", func(t *testing.T) {
		// Arrange
		repo := newFakeRepo()
		seedCampaign(repo, 1, []entity.Channel{entity.ChannelPush}, "")
		uc := newTestUsecase(t, repo, &fakeDispatcher{}, noon)

		// Act
		out, err := uc.CampaignDispatch(authCtx(42, "admin"), CampaignDispatchInput{CampaignID: 1})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Result.TotalRecipients != 0 {
			t.Fatalf("expected zero recipients, got %d", out.Result.TotalRecipients)
		}
		if repo.campaigns[1].Status != entity.CampaignStatusCompleted {
			t.Fatalf("expected empty campaign to still complete")
		}
	})
}
