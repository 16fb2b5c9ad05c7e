package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/pkg/goerror"
)

type MessageReadInput struct {
	ConversationID int64 `validate:"required,gt=0"`
	UserID         int64 `validate:"required,gt=0"`
}

type MessageReadOutput struct {
	Updated int64
}

// MessageRead marks everything addressed to the caller in a conversation as
// read. It is idempotent, re-reading an already read conversation updates
// nothing.
func (s *Usecase) MessageRead(ctx context.Context, in MessageReadInput) (*MessageReadOutput, error) {
	ctx, span := s.startSpan(ctx, "MessageRead")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if clm.UserID != in.UserID {
		return nil, goerror.NewBusiness("users can only mark their own messages as read", goerror.CodeForbidden)
	}

	if _, err := s.requireParticipant(ctx, in.ConversationID, clm.UserID); err != nil {
		return nil, err
	}

	updated, err := s.repoDB.MarkMessagesRead(ctx, in.ConversationID, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark messages read", "conversation_id", in.ConversationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MessageReadOutput{Updated: updated}, nil
}
