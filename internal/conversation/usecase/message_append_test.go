package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/shared/event"
)

func activeConversation() *entity.Conversation {
	adminID := int64(42)
	return &entity.Conversation{
		ID:       7,
		ClientID: 11,
		AdminID:  &adminID,
		Subject:  "Booking issue",
		Status:   entity.StatusActive,
		Priority: entity.PriorityNormal,
	}
}

func TestMessageAppend(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo := &fakeRepo{
			getConversationFn: func(context.Context, int64) (*entity.Conversation, error) {
				return activeConversation(), nil
			},
			createMessageFn: func(_ context.Context, data entity.CreateMessage) (*entity.Message, error) {
				return &entity.Message{
					ID:             data.ID,
					ConversationID: data.ConversationID,
					SenderID:       data.SenderID,
					RecipientID:    data.RecipientID,
					Content:        data.Content,
					MessageType:    data.MessageType,
				}, nil
			},
		}
		pub := &fakePublisher{}
		uc := newTestUsecase(t, repo, pub)
		content := strings.Repeat("x", 200)

		// Act
		msg, err := uc.MessageAppend(authCtx(11, "client"), MessageAppendInput{
			ConversationID: 7,
			RecipientID:    42,
			Content:        content,
			MessageType:    "text",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if msg.SenderID != 11 || msg.RecipientID != 42 {
			t.Fatalf("unexpected message parties: sender=%d recipient=%d", msg.SenderID, msg.RecipientID)
		}
		if len(pub.published) != 1 {
			t.Fatalf("expected one published event, got %d", len(pub.published))
		}
		if pub.published[0].destination != event.MessageCreatedDestination {
			t.Fatalf("unexpected destination %q", pub.published[0].destination)
		}

		var evt event.MessageCreatedMessage
		if err := json.Unmarshal(pub.published[0].body, &evt); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		if len(evt.Preview) != 120 {
			t.Fatalf("expected preview truncated to 120 chars, got %d", len(evt.Preview))
		}
		if evt.SenderRole != "client" {
			t.Fatalf("unexpected sender role %q", evt.SenderRole)
		}
	})

	t.Run("SenderEqualsRecipient", func(t *testing.T) {
		// Arrange
		repo := &fakeRepo{}
		uc := newTestUsecase(t, repo, &fakePublisher{})

		// Act
		_, err := uc.MessageAppend(authCtx(11, "client"), MessageAppendInput{
			ConversationID: 7,
			RecipientID:    11,
			Content:        "hello",
			MessageType:    "text",
		})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
		if repo.createMessageCalls != 0 {
			t.Fatalf("expected no message persisted")
		}
	})

	t.Run("SenderNotParticipant", func(t *testing.T) {
		// Arrange
		repo := &fakeRepo{
			getConversationFn: func(context.Context, int64) (*entity.Conversation, error) {
				return activeConversation(), nil
			},
		}
		uc := newTestUsecase(t, repo, &fakePublisher{})

		// Act
		_, err := uc.MessageAppend(authCtx(99, "client"), MessageAppendInput{
			ConversationID: 7,
			RecipientID:    11,
			Content:        "hello",
			MessageType:    "text",
		})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("RecipientNotParticipant", func(t *testing.T) {
		// Arrange
		repo := &fakeRepo{
			getConversationFn: func(context.Context, int64) (*entity.Conversation, error) {
				return activeConversation(), nil
			},
		}
		uc := newTestUsecase(t, repo, &fakePublisher{})

		// Act
		_, err := uc.MessageAppend(authCtx(11, "client"), MessageAppendInput{
			ConversationID: 7,
			RecipientID:    99,
			Content:        "hello",
			MessageType:    "text",
		})

		// Assert
		assertCode(t, err, goerror.CodeForbidden)
	})

	t.Run("ClosedConversation", func(t *testing.T) {
		// Arrange
		repo := &fakeRepo{
			getConversationFn: func(context.Context, int64) (*entity.Conversation, error) {
				conv := activeConversation()
				conv.Status = entity.StatusClosed
				return conv, nil
			},
		}
		uc := newTestUsecase(t, repo, &fakePublisher{})

		// Act
		_, err := uc.MessageAppend(authCtx(11, "client"), MessageAppendInput{
			ConversationID: 7,
			RecipientID:    42,
			Content:        "hello",
			MessageType:    "text",
		})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
		if repo.createMessageCalls != 0 {
			t.Fatalf("expected no message persisted on closed conversation")
		}
	})

	t.Run("ConversationNotFound", func(t *testing.T) {
		// Arrange
		repo := &fakeRepo{
			getConversationFn: func(context.Context, int64) (*entity.Conversation, error) {
				return nil, goerror.ErrNotFound
			},
		}
		uc := newTestUsecase(t, repo, &fakePublisher{})

		// Act
		_, err := uc.MessageAppend(authCtx(11, "client"), MessageAppendInput{
			ConversationID: 404,
			RecipientID:    42,
			Content:        "hello",
			MessageType:    "text",
		})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		uc := newTestUsecase(t, &fakeRepo{}, &fakePublisher{})

		// Act
		_, err := uc.MessageAppend(context.Background(), MessageAppendInput{
			ConversationID: 7,
			RecipientID:    42,
			Content:        "hello",
			MessageType:    "text",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}
