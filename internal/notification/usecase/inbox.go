package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

type InboxListInput struct {
	Limit  int32 `validate:"omitempty,gt=0,lte=100"`
	Offset int32 `validate:"omitempty,gte=0"`
}

func (s *Usecase) InboxList(ctx context.Context, in InboxListInput) ([]entity.Notification, error) {
	ctx, span := s.startSpan(ctx, "InboxList")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	limit := in.Limit
	if limit == 0 {
		limit = 20
	}

	items, err := s.repoDB.ListNotifications(ctx, clm.UserID, limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list notifications", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

type InboxMarkReadInput struct {
	NotificationID int64 `validate:"required,gt=0"`
}

func (s *Usecase) InboxMarkRead(ctx context.Context, in InboxMarkReadInput) error {
	ctx, span := s.startSpan(ctx, "InboxMarkRead")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.MarkNotificationRead(ctx, clm.UserID, in.NotificationID); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark notification read",
			"user_id", clm.UserID, "notification_id", in.NotificationID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) InboxMarkAllRead(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "InboxMarkAllRead")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return err
	}

	if _, err := s.repoDB.MarkAllNotificationsRead(ctx, clm.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark all notifications read", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type InboxUnreadCountOutput struct {
	Count int64
}

func (s *Usecase) InboxUnreadCount(ctx context.Context) (*InboxUnreadCountOutput, error) {
	ctx, span := s.startSpan(ctx, "InboxUnreadCount")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.repoDB.CountUnreadNotifications(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count unread notifications", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &InboxUnreadCountOutput{Count: count}, nil
}
