package inbound

import (
	"time"

	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/notification/usecase"
	"github.com/servizo/servizo/internal/pkg/valueobject"
)

type PreferencesResponse struct {
	UserID int64 `json:"user_id"`

	NewMessage          bool `json:"new_message"`
	PriorityMessage     bool `json:"priority_message"`
	ConversationStarted bool `json:"conversation_started"`
	AdminResponse       bool `json:"admin_response"`

	Push    bool `json:"push"`
	Email   bool `json:"email"`
	Sound   bool `json:"sound"`
	Desktop bool `json:"desktop"`

	Frequency         string `json:"frequency"`
	QuietHoursEnabled bool   `json:"quiet_hours_enabled"`
	QuietHoursStart   string `json:"quiet_hours_start"`
	QuietHoursEnd     string `json:"quiet_hours_end"`
}

func toPreferencesResponse(p *entity.Preferences) PreferencesResponse {
	return PreferencesResponse{
		UserID:              p.UserID,
		NewMessage:          p.NewMessage,
		PriorityMessage:     p.PriorityMessage,
		ConversationStarted: p.ConversationStarted,
		AdminResponse:       p.AdminResponse,
		Push:                p.Push,
		Email:               p.Email,
		Sound:               p.Sound,
		Desktop:             p.Desktop,
		Frequency:           p.Frequency.String(),
		QuietHoursEnabled:   p.QuietHoursEnabled,
		QuietHoursStart:     p.QuietHoursStart.String(),
		QuietHoursEnd:       p.QuietHoursEnd.String(),
	}
}

type UpdatePreferencesRequest struct {
	NewMessage          *bool `json:"new_message"`
	PriorityMessage     *bool `json:"priority_message"`
	ConversationStarted *bool `json:"conversation_started"`
	AdminResponse       *bool `json:"admin_response"`

	Push    *bool `json:"push"`
	Email   *bool `json:"email"`
	Sound   *bool `json:"sound"`
	Desktop *bool `json:"desktop"`

	Frequency         *string `json:"frequency"`
	QuietHoursEnabled *bool   `json:"quiet_hours_enabled"`
	QuietHoursStart   *string `json:"quiet_hours_start"`
	QuietHoursEnd     *string `json:"quiet_hours_end"`
}

type AudienceFilterRequest struct {
	Role             *string `json:"role"`
	District         *string `json:"district"`
	State            *string `json:"state"`
	IsVerified       *bool   `json:"is_verified"`
	IsActive         *bool   `json:"is_active"`
	LastLoginDays    *int    `json:"last_login_days"`
	RegistrationDays *int    `json:"registration_days"`
}

func (r AudienceFilterRequest) toInput() usecase.AudiencePreviewInput {
	return usecase.AudiencePreviewInput{
		Role:             r.Role,
		District:         r.District,
		State:            r.State,
		IsVerified:       r.IsVerified,
		IsActive:         r.IsActive,
		LastLoginDays:    r.LastLoginDays,
		RegistrationDays: r.RegistrationDays,
	}
}

type CreateCampaignRequest struct {
	CampaignName string                `json:"campaign_name"`
	Channels     []string              `json:"channels"`
	Subject      string                `json:"subject"`
	Content      string                `json:"content"`
	ScheduledFor *time.Time            `json:"scheduled_for"`
	TargetFilter AudienceFilterRequest `json:"target_filter"`
}

type CampaignResponse struct {
	ID           int64      `json:"id"`
	CampaignName string     `json:"campaign_name"`
	Channels     []string   `json:"channels"`
	Subject      string     `json:"subject,omitempty"`
	Content      string     `json:"content"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toCampaignResponse(c *entity.BulkCampaign) CampaignResponse {
	channels := make([]string, 0, len(c.Channels))
	for _, ch := range c.Channels {
		channels = append(channels, ch.String())
	}

	return CampaignResponse{
		ID:           c.ID,
		CampaignName: c.CampaignName,
		Channels:     channels,
		Subject:      c.Subject,
		Content:      c.Content,
		ScheduledFor: c.ScheduledFor,
		Status:       c.Status.String(),
		CreatedAt:    c.CreatedAt,
	}
}

type SendBulkMessagesRequest struct {
	CampaignID      int64                  `json:"campaign_id"`
	MessageChannels []string               `json:"message_channels"`
	UserFilters     *AudienceFilterRequest `json:"user_filters"`
}

type DeliveryResultResponse struct {
	CampaignID           int64 `json:"campaign_id"`
	TotalRecipients      int32 `json:"total_recipients"`
	SuccessfulDeliveries int32 `json:"successful_deliveries"`
	FailedDeliveries     int32 `json:"failed_deliveries"`
}

type AudienceUserResponse struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	District   string `json:"district,omitempty"`
	State      string `json:"state,omitempty"`
	IsVerified bool   `json:"is_verified"`
	IsActive   bool   `json:"is_active"`
}

type AudiencePreviewResponse struct {
	Users []AudienceUserResponse `json:"users"`
	Total int                    `json:"total"`
}

type InboxItemResponse struct {
	ID        int64               `json:"id"`
	Kind      string              `json:"kind"`
	Title     string              `json:"title"`
	Body      string              `json:"body"`
	Data      valueobject.JSONMap `json:"data,omitempty" swaggertype:"object"`
	ReadAt    *time.Time          `json:"read_at,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type InboxResponse struct {
	Notifications []InboxItemResponse `json:"notifications"`
}

type InboxUnreadCountResponse struct {
	Count int64 `json:"count"`
}
