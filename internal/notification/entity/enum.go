package entity

import (
	"strings"
)

type Channel int16

const (
	ChannelUnknown Channel = 0
	ChannelInApp   Channel = 1
	ChannelEmail   Channel = 2
	ChannelSMS     Channel = 3
	ChannelPush    Channel = 4
)

func ChannelFromString(raw string) Channel {
	switch strings.TrimSpace(raw) {
	case "in_app":
		return ChannelInApp
	case "email":
		return ChannelEmail
	case "sms", "whatsapp":
		return ChannelSMS
	case "push", "desktop":
		return ChannelPush
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelInApp:
		return "in_app"
	case ChannelEmail:
		return "email"
	case ChannelSMS:
		return "sms"
	case ChannelPush:
		return "push"
	default:
		return "unknown"
	}
}

type Kind int16

const (
	KindUnknown             Kind = 0
	KindNewMessage          Kind = 1
	KindPriorityMessage     Kind = 2
	KindConversationStarted Kind = 3
	KindAdminResponse       Kind = 4
)

func KindFromString(raw string) Kind {
	switch strings.TrimSpace(raw) {
	case "new_message":
		return KindNewMessage
	case "priority_message":
		return KindPriorityMessage
	case "conversation_started":
		return KindConversationStarted
	case "admin_response":
		return KindAdminResponse
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindNewMessage:
		return "new_message"
	case KindPriorityMessage:
		return "priority_message"
	case KindConversationStarted:
		return "conversation_started"
	case KindAdminResponse:
		return "admin_response"
	default:
		return "unknown"
	}
}

type Frequency int16

const (
	FrequencyUnknown   Frequency = 0
	FrequencyImmediate Frequency = 1
	FrequencyHourly    Frequency = 2
	FrequencyDaily     Frequency = 3
)

func FrequencyFromString(raw string) Frequency {
	switch strings.TrimSpace(raw) {
	case "immediate":
		return FrequencyImmediate
	case "hourly":
		return FrequencyHourly
	case "daily":
		return FrequencyDaily
	default:
		return FrequencyUnknown
	}
}

func (f Frequency) String() string {
	switch f {
	case FrequencyImmediate:
		return "immediate"
	case FrequencyHourly:
		return "hourly"
	case FrequencyDaily:
		return "daily"
	default:
		return "unknown"
	}
}

// Decision is the per (user, kind, channel) verdict of the notification gate.
type Decision int16

const (
	DecisionUnknown  Decision = 0
	DecisionDeliver  Decision = 1
	DecisionSuppress Decision = 2
	DecisionDefer    Decision = 3
)

func (d Decision) String() string {
	switch d {
	case DecisionDeliver:
		return "deliver"
	case DecisionSuppress:
		return "suppress"
	case DecisionDefer:
		return "defer"
	default:
		return "unknown"
	}
}

type CampaignStatus int16

const (
	CampaignStatusUnknown   CampaignStatus = 0
	CampaignStatusActive    CampaignStatus = 1
	CampaignStatusCompleted CampaignStatus = 2
)

func CampaignStatusFromString(raw string) CampaignStatus {
	switch strings.TrimSpace(raw) {
	case "active":
		return CampaignStatusActive
	case "completed":
		return CampaignStatusCompleted
	default:
		return CampaignStatusUnknown
	}
}

func (s CampaignStatus) String() string {
	switch s {
	case CampaignStatusActive:
		return "active"
	case CampaignStatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// FailureReason classifies a failed delivery attempt.
type FailureReason int16

const (
	ReasonNone             FailureReason = 0
	ReasonInvalidRecipient FailureReason = 1
	ReasonContentRejected  FailureReason = 2
	ReasonTransient        FailureReason = 3
	ReasonPermanent        FailureReason = 4
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInvalidRecipient:
		return "invalid_recipient"
	case ReasonContentRejected:
		return "content_rejected"
	case ReasonTransient:
		return "transient"
	case ReasonPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}
