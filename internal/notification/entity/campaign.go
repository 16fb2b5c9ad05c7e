package entity

import (
	"time"
)

type BulkCampaign struct {
	ID           int64
	CampaignName string
	Channels     []Channel
	Subject      string
	Content      string
	TargetFilter AudienceFilter
	ScheduledFor *time.Time
	Status       CampaignStatus

	TotalRecipients      int32
	SuccessfulDeliveries int32
	FailedDeliveries     int32
	CompletedAt          *time.Time

	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasChannel reports whether ch is one of the campaign's selected channels.
func (c *BulkCampaign) HasChannel(ch Channel) bool {
	for _, have := range c.Channels {
		if have == ch {
			return true
		}
	}

	return false
}

type CreateCampaign struct {
	ID           int64
	CampaignName string
	Channels     []Channel
	Subject      string
	Content      string
	TargetFilter AudienceFilter
	ScheduledFor *time.Time
	CreatedBy    int64
}

// DeliveryResult is the aggregate outcome of one campaign dispatch.
//
// SuccessfulDeliveries + FailedDeliveries equals the number of
// (recipient, channel) pairs actually attempted; suppressed and deferred
// pairs contribute to neither counter.
type DeliveryResult struct {
	TotalRecipients      int32
	SuccessfulDeliveries int32
	FailedDeliveries     int32
}
