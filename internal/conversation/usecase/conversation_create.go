package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/shared/event"
)

type ConversationCreateInput struct {
	ClientID int64  `validate:"omitempty,gt=0"`
	AdminID  *int64 `validate:"omitempty,gt=0"`
	Subject  string `validate:"required,min=1,max=200"`
	Priority string `validate:"required,lowercase,oneof=low normal high urgent"`
}

func (s *Usecase) ConversationCreate(ctx context.Context, in ConversationCreateInput) (*entity.Conversation, error) {
	ctx, span := s.startSpan(ctx, "ConversationCreate")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	data := entity.CreateConversation{
		ID:       s.uid.Generate(),
		ClientID: in.ClientID,
		AdminID:  in.AdminID,
		Subject:  in.Subject,
		Priority: entity.PriorityFromString(in.Priority),
	}

	// An admin opening a thread addresses a user directly and claims the
	// admin side; anyone else always opens a thread for themselves.
	if clm.IsAdmin() {
		if in.ClientID <= 0 {
			return nil, goerror.NewInvalidInput(nil, "client_id", "client_id is required when an admin starts a conversation")
		}
		adminID := clm.UserID
		data.AdminID = &adminID
	} else {
		data.ClientID = clm.UserID
	}

	conv, err := s.repoDB.CreateConversation(ctx, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create conversation", "client_id", data.ClientID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publish(ctx, event.ConversationStartedDestination, event.ConversationStartedMessage{
		ConversationID: conv.ID,
		ClientID:       conv.ClientID,
		AdminID:        conv.AdminID,
		InitiatorID:    clm.UserID,
		Subject:        conv.Subject,
		Priority:       conv.Priority.String(),
	})

	return conv, nil
}
