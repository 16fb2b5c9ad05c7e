package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

type ConversationStatusInput struct {
	ConversationID int64  `validate:"required,gt=0"`
	Status         string `validate:"required,lowercase,oneof=active closed archived"`
}

// ConversationUpdateStatus transitions a conversation between active, closed
// and archived. Moving back to active is the explicit reopen path.
func (s *Usecase) ConversationUpdateStatus(ctx context.Context, in ConversationStatusInput) error {
	ctx, span := s.startSpan(ctx, "ConversationUpdateStatus")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	conv, err := s.requireParticipant(ctx, in.ConversationID, clm.UserID)
	if err != nil {
		return err
	}

	status := entity.StatusFromString(in.Status)
	if conv.Status == status {
		return nil
	}

	if err := s.repoDB.UpdateConversationStatus(ctx, conv.ID, status); err != nil {
		slog.ErrorContext(ctx, "failed to repo update conversation status",
			"conversation_id", conv.ID, "status", status.String(), "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
