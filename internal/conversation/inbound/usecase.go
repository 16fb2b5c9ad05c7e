package inbound

import (
	"context"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/conversation/usecase"
)

type uc interface {
	ConversationCreate(ctx context.Context, in usecase.ConversationCreateInput) (*entity.Conversation, error)
	ConversationList(ctx context.Context, in usecase.ConversationListInput) ([]entity.Conversation, error)
	ConversationUpdateStatus(ctx context.Context, in usecase.ConversationStatusInput) error
	MessageAppend(ctx context.Context, in usecase.MessageAppendInput) (*entity.Message, error)
	MessageList(ctx context.Context, in usecase.MessageListInput) (*usecase.MessageListOutput, error)
	MessageRead(ctx context.Context, in usecase.MessageReadInput) (*usecase.MessageReadOutput, error)
	UnreadCount(ctx context.Context, in usecase.UnreadCountInput) (*usecase.UnreadCountOutput, error)
}
