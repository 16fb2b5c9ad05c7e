package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/jwt"
	"github.com/servizo/servizo/internal/pkg/messaging"
	"github.com/servizo/servizo/internal/pkg/uid"
	"github.com/servizo/servizo/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateConversation(ctx context.Context, data entity.CreateConversation) (*entity.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*entity.Conversation, error)
	ListConversationsByParticipant(ctx context.Context, userID int64, asAdmin bool) ([]entity.Conversation, error)
	UpdateConversationStatus(ctx context.Context, id int64, status entity.Status) error

	CreateMessage(ctx context.Context, data entity.CreateMessage) (*entity.Message, error)
	ListMessages(ctx context.Context, conversationID int64) ([]entity.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID, viewerID int64) (int64, error)
	CountUnreadMessages(ctx context.Context, userID int64) (int64, error)
}

type Usecase struct {
	repoDB    repoDB
	uid       uid.NumberID
	validator validator.Validator
	publisher messaging.Publisher
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	UID        uid.NumberID
	Validator  validator.Validator
	Publisher  messaging.Publisher
	Instrument instrument.Instrumentation
}

func NewConversation(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		uid:       dep.UID,
		validator: dep.Validator,
		publisher: dep.Publisher,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("conversation.usecase").Start(ctx, name)
}

func (s *Usecase) requireAuth(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

// requireParticipant loads the conversation and rejects callers outside the two parties.
func (s *Usecase) requireParticipant(ctx context.Context, conversationID, userID int64) (*entity.Conversation, error) {
	conv, err := s.repoDB.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("conversation not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get conversation", "conversation_id", conversationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !conv.HasParticipant(userID) {
		return nil, goerror.NewBusiness("user is not a participant of this conversation", goerror.CodeForbidden)
	}

	return conv, nil
}

func (s *Usecase) publish(ctx context.Context, destination string, payload any) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal event payload", "destination", destination, "error", err)
		return
	}

	if _, err := s.publisher.Publish(ctx, destination, messaging.OutgoingMessage{Body: body}); err != nil {
		slog.ErrorContext(ctx, "failed to publish event", "destination", destination, "error", err)
	}
}
