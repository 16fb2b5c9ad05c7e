package usecase

import (
	"context"
	"log/slog"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

type ConversationListInput struct {
	UserID int64
	Role   string
}

func (s *Usecase) ConversationList(ctx context.Context, in ConversationListInput) ([]entity.Conversation, error) {
	ctx, span := s.startSpan(ctx, "ConversationList")
	defer span.End()

	clm, err := s.requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	userID := in.UserID
	if userID == 0 {
		userID = clm.UserID
	}
	if userID != clm.UserID && !clm.IsAdmin() {
		return nil, goerror.NewBusiness("cannot list another user's conversations", goerror.CodeForbidden)
	}

	role := in.Role
	if role == "" {
		role = clm.UserRole
	}
	asAdmin := role == "admin" || role == "super_admin"

	items, err := s.repoDB.ListConversationsByParticipant(ctx, userID, asAdmin)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list conversations", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}
