package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/shared/event"
)

const previewLength = 120

type MessageAppendInput struct {
	ConversationID int64  `validate:"required,gt=0"`
	RecipientID    int64  `validate:"required,gt=0"`
	Content        string `validate:"required,min=1,max=5000"`
	MessageType    string `validate:"required,lowercase,oneof=text image file"`
	AttachmentURL  string `validate:"omitempty,url"`
}

func (s *Usecase) MessageAppend(ctx context.Context, in MessageAppendInput) (*entity.Message, error) {
	ctx, span := s.startSpan(ctx, "MessageAppend")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	senderID := clm.UserID
	if senderID == in.RecipientID {
		return nil, goerror.NewBusiness("sender and recipient must be different participants", goerror.CodeForbidden)
	}

	conv, err := s.requireParticipant(ctx, in.ConversationID, senderID)
	if err != nil {
		return nil, err
	}

	if !conv.HasParticipant(in.RecipientID) {
		return nil, goerror.NewBusiness("recipient is not a participant of this conversation", goerror.CodeForbidden)
	}

	if conv.Status != entity.StatusActive {
		return nil, goerror.NewBusiness("conversation is "+conv.Status.String()+", reopen it before sending", goerror.CodeConflict)
	}

	msg, err := s.repoDB.CreateMessage(ctx, entity.CreateMessage{
		ID:             s.uid.Generate(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		RecipientID:    in.RecipientID,
		Content:        in.Content,
		MessageType:    entity.MessageTypeFromString(in.MessageType),
		AttachmentURL:  in.AttachmentURL,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create message", "conversation_id", conv.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	preview := in.Content
	if len(preview) > previewLength {
		preview = preview[:previewLength]
	}

	s.publish(ctx, event.MessageCreatedDestination, event.MessageCreatedMessage{
		ConversationID: conv.ID,
		MessageID:      msg.ID,
		SenderID:       senderID,
		SenderRole:     clm.UserRole,
		RecipientID:    in.RecipientID,
		Priority:       conv.Priority.String(),
		Subject:        conv.Subject,
		Preview:        preview,
	})

	return msg, nil
}
