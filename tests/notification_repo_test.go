package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/servizo/servizo/internal/notification/entity"
	notifdb "github.com/servizo/servizo/internal/notification/outbound/db"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }

func TestCampaignPersistence(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := notifdb.NewDB(pool, ins)

	const campaignID = int64(7001)

	if err := store.CreateCampaign(ctx, entity.CreateCampaign{
		ID:           campaignID,
		CampaignName: "verified worker promo",
		Channels:     []entity.Channel{entity.ChannelPush, entity.ChannelEmail},
		Subject:      "New jobs in your district",
		Content:      "Browse the latest verified listings.",
		TargetFilter: entity.AudienceFilter{
			Role:          strPtr("worker"),
			IsVerified:    boolPtr(true),
			LastLoginDays: intPtr(30),
		},
		CreatedBy: 42,
	}); err != nil {
		t.Fatalf("CreateCampaign() error = %v", err)
	}

	t.Run("ScanRoundTrip", func(t *testing.T) {
		// Act
		c, err := store.GetCampaign(ctx, campaignID)

		// Assert
		if err != nil {
			t.Fatalf("GetCampaign() error = %v", err)
		}
		if c.CampaignName != "verified worker promo" {
			t.Fatalf("GetCampaign() CampaignName = %q", c.CampaignName)
		}
		if len(c.Channels) != 2 || c.Channels[0] != entity.ChannelPush || c.Channels[1] != entity.ChannelEmail {
			t.Fatalf("GetCampaign() Channels = %v, want [push email]", c.Channels)
		}
		if c.TargetFilter.Role == nil || *c.TargetFilter.Role != "worker" {
			t.Fatalf("GetCampaign() TargetFilter.Role = %v, want worker", c.TargetFilter.Role)
		}
		if c.TargetFilter.IsVerified == nil || !*c.TargetFilter.IsVerified {
			t.Fatalf("GetCampaign() TargetFilter.IsVerified = %v, want true", c.TargetFilter.IsVerified)
		}
		if c.TargetFilter.LastLoginDays == nil || *c.TargetFilter.LastLoginDays != 30 {
			t.Fatalf("GetCampaign() TargetFilter.LastLoginDays = %v, want 30", c.TargetFilter.LastLoginDays)
		}
		if c.TargetFilter.District != nil {
			t.Fatalf("GetCampaign() TargetFilter.District = %v, want nil", c.TargetFilter.District)
		}
		if c.Status != entity.CampaignStatusActive {
			t.Fatalf("GetCampaign() Status = %v, want active", c.Status)
		}
		if c.CompletedAt != nil {
			t.Fatalf("GetCampaign() CompletedAt = %v, want nil", c.CompletedAt)
		}
	})

	t.Run("CompleteStampsAggregates", func(t *testing.T) {
		// Act
		err := store.CompleteCampaign(ctx, campaignID, entity.DeliveryResult{
			TotalRecipients:      10,
			SuccessfulDeliveries: 8,
			FailedDeliveries:     2,
		})

		// Assert
		if err != nil {
			t.Fatalf("CompleteCampaign() error = %v", err)
		}

		c, err := store.GetCampaign(ctx, campaignID)
		if err != nil {
			t.Fatalf("GetCampaign() error = %v", err)
		}
		if c.Status != entity.CampaignStatusCompleted {
			t.Fatalf("GetCampaign() Status = %v, want completed", c.Status)
		}
		if c.TotalRecipients != 10 || c.SuccessfulDeliveries != 8 || c.FailedDeliveries != 2 {
			t.Fatalf("GetCampaign() counters = %d/%d/%d, want 10/8/2",
				c.TotalRecipients, c.SuccessfulDeliveries, c.FailedDeliveries)
		}
		if c.CompletedAt == nil {
			t.Fatalf("GetCampaign() CompletedAt = nil, want set")
		}
	})

	t.Run("MissingCampaignIsNotFound", func(t *testing.T) {
		// Act
		_, err := store.GetCampaign(ctx, campaignID+999)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("GetCampaign() error = %v, want ErrNotFound", err)
		}
	})
}

func TestPreferencesUpsert(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := notifdb.NewDB(pool, ins)

	const userID = int64(8001)

	t.Run("MissingRowIsNotFound", func(t *testing.T) {
		// Act
		_, err := store.GetPreferences(ctx, userID)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("GetPreferences() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("InsertMaterializesRow", func(t *testing.T) {
		// Arrange
		prefs := entity.DefaultPreferences(userID)
		prefs.Push = false
		prefs.Frequency = entity.FrequencyHourly
		prefs.QuietHoursEnabled = true
		prefs.QuietHoursStart = entity.TimeOfDay(22 * 60)
		prefs.QuietHoursEnd = entity.TimeOfDay(6 * 60)

		// Act
		if err := store.UpsertPreferences(ctx, prefs); err != nil {
			t.Fatalf("UpsertPreferences() error = %v", err)
		}
		got, err := store.GetPreferences(ctx, userID)

		// Assert
		if err != nil {
			t.Fatalf("GetPreferences() error = %v", err)
		}
		if got.Push {
			t.Fatalf("GetPreferences() Push = true, want false")
		}
		if got.Frequency != entity.FrequencyHourly {
			t.Fatalf("GetPreferences() Frequency = %v, want hourly", got.Frequency)
		}
		if !got.QuietHoursEnabled || got.QuietHoursStart != entity.TimeOfDay(22*60) || got.QuietHoursEnd != entity.TimeOfDay(6*60) {
			t.Fatalf("GetPreferences() quiet hours = %t %d-%d, want enabled 1320-360",
				got.QuietHoursEnabled, got.QuietHoursStart, got.QuietHoursEnd)
		}
		if !got.NewMessage || !got.Email {
			t.Fatalf("GetPreferences() untouched defaults changed: NewMessage=%t Email=%t", got.NewMessage, got.Email)
		}
	})

	t.Run("ConflictUpdatesInPlace", func(t *testing.T) {
		// Arrange
		prefs := entity.DefaultPreferences(userID)
		prefs.Email = false
		prefs.Frequency = entity.FrequencyDaily

		// Act
		if err := store.UpsertPreferences(ctx, prefs); err != nil {
			t.Fatalf("UpsertPreferences() error = %v", err)
		}
		got, err := store.GetPreferences(ctx, userID)

		// Assert
		if err != nil {
			t.Fatalf("GetPreferences() error = %v", err)
		}
		if got.Email {
			t.Fatalf("GetPreferences() Email = true, want false")
		}
		if got.Frequency != entity.FrequencyDaily {
			t.Fatalf("GetPreferences() Frequency = %v, want daily", got.Frequency)
		}
		if !got.Push {
			t.Fatalf("GetPreferences() Push = false, want default true after overwrite")
		}
	})
}

const insertUserQuery = `
INSERT INTO users (id, full_name, email, phone, role, district, state, is_verified, is_active, last_login_at, deleted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), CASE WHEN $10 THEN now() END)`

func TestAudienceProjection(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := notifdb.NewDB(pool, ins)

	users := []struct {
		id      int64
		name    string
		role    string
		deleted bool
	}{
		{8101, "Asha Worker", "worker", false},
		{8102, "Gone Worker", "worker", true},
		{8103, "Ravi Client", "client", false},
	}
	for _, u := range users {
		_, err := pool.Exec(ctx, insertUserQuery,
			u.id, u.name, u.name+"@servizo.com", "+911234567890", u.role, "Pune", "MH", true, true, u.deleted)
		if err != nil {
			t.Fatalf("insert user %d: %v", u.id, err)
		}
	}

	t.Run("ListSkipsSoftDeletedUsers", func(t *testing.T) {
		// Act
		got, err := store.ListAudienceUsers(ctx)

		// Assert
		if err != nil {
			t.Fatalf("ListAudienceUsers() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("ListAudienceUsers() len = %d, want 2", len(got))
		}
		if got[0].ID != 8101 || got[1].ID != 8103 {
			t.Fatalf("ListAudienceUsers() ids = %d,%d, want 8101,8103", got[0].ID, got[1].ID)
		}
	})

	t.Run("GetDeletedUserIsNotFound", func(t *testing.T) {
		// Act
		_, err := store.GetAudienceUser(ctx, 8102)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("GetAudienceUser() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("GetLiveUser", func(t *testing.T) {
		// Act
		u, err := store.GetAudienceUser(ctx, 8101)

		// Assert
		if err != nil {
			t.Fatalf("GetAudienceUser() error = %v", err)
		}
		if u.FullName != "Asha Worker" || u.Role != "worker" || !u.IsVerified {
			t.Fatalf("GetAudienceUser() = %+v, want Asha Worker", u)
		}
	})
}
