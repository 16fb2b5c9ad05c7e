package entity

import (
	"testing"
)

func TestChannelFromString(t *testing.T) {
	cases := map[string]Channel{
		"in_app":   ChannelInApp,
		"email":    ChannelEmail,
		"sms":      ChannelSMS,
		"whatsapp": ChannelSMS,
		"push":     ChannelPush,
		"desktop":  ChannelPush,
		"fax":      ChannelUnknown,
	}

	for raw, want := range cases {
		if got := ChannelFromString(raw); got != want {
			t.Fatalf("ChannelFromString(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestKindFromString(t *testing.T) {
	cases := map[string]Kind{
		"new_message":          KindNewMessage,
		"priority_message":     KindPriorityMessage,
		"conversation_started": KindConversationStarted,
		"admin_response":       KindAdminResponse,
		"newsletter":           KindUnknown,
	}

	for raw, want := range cases {
		if got := KindFromString(raw); got != want {
			t.Fatalf("KindFromString(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestFrequencyFromString(t *testing.T) {
	cases := map[string]Frequency{
		"immediate": FrequencyImmediate,
		"hourly":    FrequencyHourly,
		"daily":     FrequencyDaily,
		"weekly":    FrequencyUnknown,
	}

	for raw, want := range cases {
		if got := FrequencyFromString(raw); got != want {
			t.Fatalf("FrequencyFromString(%q) = %v, want %v", raw, got, want)
		}
	}
}
