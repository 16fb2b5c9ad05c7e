package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/pkg/goerror"
)

type UnreadCountInput struct {
	UserID int64 `validate:"required,gt=0"`
}

type UnreadCountOutput struct {
	Count int64
}

func (s *Usecase) UnreadCount(ctx context.Context, in UnreadCountInput) (*UnreadCountOutput, error) {
	ctx, span := s.startSpan(ctx, "UnreadCount")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if clm.UserID != in.UserID && !clm.IsAdmin() {
		return nil, goerror.NewBusiness("users can only read their own unread count", goerror.CodeForbidden)
	}

	count, err := s.repoDB.CountUnreadMessages(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count unread messages", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UnreadCountOutput{Count: count}, nil
}
