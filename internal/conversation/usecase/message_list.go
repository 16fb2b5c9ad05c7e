package usecase

import (
	"context"
	"log/slog"
	"slices"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

type MessageListInput struct {
	ConversationID int64 `validate:"required,gt=0"`
}

type MessageListOutput struct {
	Conversation *entity.Conversation
	Messages     []entity.Message
}

func (s *Usecase) MessageList(ctx context.Context, in MessageListInput) (*MessageListOutput, error) {
	ctx, span := s.startSpan(ctx, "MessageList")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	conv, err := s.requireParticipant(ctx, in.ConversationID, clm.UserID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.repoDB.ListMessages(ctx, conv.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list messages", "conversation_id", conv.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Chronological order, with the identifier as a tiebreaker for same-instant rows.
	slices.SortStableFunc(msgs, func(a, b entity.Message) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return &MessageListOutput{Conversation: conv, Messages: msgs}, nil
}
