package tests

import (
	"context"
	"testing"

	"github.com/servizo/servizo/internal/conversation/entity"
	convdb "github.com/servizo/servizo/internal/conversation/outbound/db"
)

func int64Ptr(v int64) *int64 { return &v }

func TestMessageReadTracking(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := convdb.NewDB(pool, ins)

	const (
		convID  = int64(9001)
		client  = int64(11)
		admin   = int64(42)
		baseMsg = int64(9100)
	)

	if _, err := store.CreateConversation(ctx, entity.CreateConversation{
		ID:       convID,
		ClientID: client,
		AdminID:  int64Ptr(admin),
		Subject:  "Plumbing job follow-up",
		Priority: entity.PriorityNormal,
	}); err != nil {
		t.Fatalf("CreateConversation() error = %v", err)
	}

	for i := int64(0); i < 3; i++ {
		if _, err := store.CreateMessage(ctx, entity.CreateMessage{
			ID:             baseMsg + i,
			ConversationID: convID,
			SenderID:       client,
			RecipientID:    admin,
			Content:        "message to admin",
			MessageType:    entity.MessageTypeText,
		}); err != nil {
			t.Fatalf("CreateMessage() error = %v", err)
		}
	}
	if _, err := store.CreateMessage(ctx, entity.CreateMessage{
		ID:             baseMsg + 3,
		ConversationID: convID,
		SenderID:       admin,
		RecipientID:    client,
		Content:        "reply to client",
		MessageType:    entity.MessageTypeText,
	}); err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	t.Run("CreateMessageBumpsLastMessageAt", func(t *testing.T) {
		// Act
		conv, err := store.GetConversation(ctx, convID)

		// Assert
		if err != nil {
			t.Fatalf("GetConversation() error = %v", err)
		}
		if conv.LastMessageAt == nil {
			t.Fatalf("GetConversation() LastMessageAt = nil, want set")
		}
	})

	t.Run("MarksOnlyViewersMessages", func(t *testing.T) {
		// Act
		updated, err := store.MarkMessagesRead(ctx, convID, admin)

		// Assert
		if err != nil {
			t.Fatalf("MarkMessagesRead() error = %v", err)
		}
		if updated != 3 {
			t.Fatalf("MarkMessagesRead() updated = %d, want 3", updated)
		}

		count, err := store.CountUnreadMessages(ctx, admin)
		if err != nil {
			t.Fatalf("CountUnreadMessages() error = %v", err)
		}
		if count != 0 {
			t.Fatalf("CountUnreadMessages(admin) = %d, want 0", count)
		}
	})

	t.Run("SecondPassIsIdempotent", func(t *testing.T) {
		// Act
		updated, err := store.MarkMessagesRead(ctx, convID, admin)

		// Assert
		if err != nil {
			t.Fatalf("MarkMessagesRead() error = %v", err)
		}
		if updated != 0 {
			t.Fatalf("MarkMessagesRead() updated = %d, want 0", updated)
		}
	})

	t.Run("OtherRecipientUntouched", func(t *testing.T) {
		// Act
		count, err := store.CountUnreadMessages(ctx, client)

		// Assert
		if err != nil {
			t.Fatalf("CountUnreadMessages() error = %v", err)
		}
		if count != 1 {
			t.Fatalf("CountUnreadMessages(client) = %d, want 1", count)
		}
	})

	t.Run("ReadStateVisibleInListing", func(t *testing.T) {
		// Act
		msgs, err := store.ListMessages(ctx, convID)

		// Assert
		if err != nil {
			t.Fatalf("ListMessages() error = %v", err)
		}
		if len(msgs) != 4 {
			t.Fatalf("ListMessages() len = %d, want 4", len(msgs))
		}
		for _, msg := range msgs {
			wantRead := msg.RecipientID == admin
			if msg.IsRead != wantRead {
				t.Fatalf("message %d IsRead = %t, want %t", msg.ID, msg.IsRead, wantRead)
			}
			if wantRead && msg.ReadAt == nil {
				t.Fatalf("message %d ReadAt = nil, want set", msg.ID)
			}
		}
	})
}
