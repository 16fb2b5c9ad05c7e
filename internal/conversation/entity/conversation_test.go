package entity

import (
	"testing"
)

func TestConversationHasParticipant(t *testing.T) {

	t.Run("Client", func(t *testing.T) {
		// Arrange
		conv := &Conversation{ClientID: 11}

		// Act & Assert
		if !conv.HasParticipant(11) {
			t.Fatalf("expected client to be a participant")
		}
	})

	t.Run("Admin", func(t *testing.T) {
		// Arrange
		adminID := int64(42)
		conv := &Conversation{ClientID: 11, AdminID: &adminID}

		// Act & Assert
		if !conv.HasParticipant(42) {
			t.Fatalf("expected admin to be a participant")
		}
	})

	t.Run("UnclaimedThread", func(t *testing.T) {
		// Arrange
		conv := &Conversation{ClientID: 11}

		// Act & Assert
		if conv.HasParticipant(42) {
			t.Fatalf("expected no admin participant on unclaimed thread")
		}
	})

	t.Run("Stranger", func(t *testing.T) {
		// Arrange
		adminID := int64(42)
		conv := &Conversation{ClientID: 11, AdminID: &adminID}

		// Act & Assert
		if conv.HasParticipant(99) {
			t.Fatalf("expected stranger not to be a participant")
		}
	})
}

func TestStatusFromString(t *testing.T) {
	cases := map[string]Status{
		"active":   StatusActive,
		"closed":   StatusClosed,
		"archived": StatusArchived,
		" active ": StatusActive,
		"deleted":  StatusUnknown,
	}

	for raw, want := range cases {
		if got := StatusFromString(raw); got != want {
			t.Fatalf("StatusFromString(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestPriorityFromString(t *testing.T) {
	cases := map[string]Priority{
		"low":      PriorityLow,
		"normal":   PriorityNormal,
		"high":     PriorityHigh,
		"urgent":   PriorityUrgent,
		"critical": PriorityUnknown,
	}

	for raw, want := range cases {
		if got := PriorityFromString(raw); got != want {
			t.Fatalf("PriorityFromString(%q) = %v, want %v", raw, got, want)
		}
	}
}
