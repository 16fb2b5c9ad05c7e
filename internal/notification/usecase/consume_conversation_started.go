package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/notification/entity"
)

type ConsumeConversationStartedInput struct {
	ConversationID int64  `validate:"required,gt=0"`
	ClientID       int64  `validate:"required,gt=0"`
	AdminID        *int64 `validate:"omitempty,gt=0"`
	InitiatorID    int64  `validate:"required,gt=0"`
	Subject        string `validate:"required"`
	Priority       string `validate:"required"`
}

// ConsumeConversationStarted notifies the counterpart of a freshly opened
// thread. When the client opened it and no admin has claimed it yet there is
// nobody to notify.
func (s *Usecase) ConsumeConversationStarted(ctx context.Context, in ConsumeConversationStartedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeConversationStarted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	var counterpart int64
	switch {
	case in.InitiatorID == in.ClientID && in.AdminID != nil:
		counterpart = *in.AdminID
	case in.InitiatorID != in.ClientID:
		counterpart = in.ClientID
	default:
		return nil
	}

	s.notifyUser(ctx, counterpart, entity.KindConversationStarted, in.Subject,
		"A new conversation has been opened: "+in.Subject)

	return nil
}
