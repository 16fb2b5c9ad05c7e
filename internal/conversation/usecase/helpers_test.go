package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/servizo/servizo/internal/conversation/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/jwt"
	"github.com/servizo/servizo/internal/pkg/messaging"
	"github.com/servizo/servizo/internal/pkg/validator"
)

type fakeRepo struct {
	createConversationFn func(ctx context.Context, data entity.CreateConversation) (*entity.Conversation, error)
	getConversationFn    func(ctx context.Context, id int64) (*entity.Conversation, error)
	listByParticipantFn  func(ctx context.Context, userID int64, asAdmin bool) ([]entity.Conversation, error)
	updateStatusFn       func(ctx context.Context, id int64, status entity.Status) error
	createMessageFn      func(ctx context.Context, data entity.CreateMessage) (*entity.Message, error)
	listMessagesFn       func(ctx context.Context, conversationID int64) ([]entity.Message, error)
	markMessagesReadFn   func(ctx context.Context, conversationID, viewerID int64) (int64, error)
	countUnreadFn        func(ctx context.Context, userID int64) (int64, error)

	createMessageCalls int
}

func (f *fakeRepo) CreateConversation(ctx context.Context, data entity.CreateConversation) (*entity.Conversation, error) {
	return f.createConversationFn(ctx, data)
}

func (f *fakeRepo) GetConversation(ctx context.Context, id int64) (*entity.Conversation, error) {
	return f.getConversationFn(ctx, id)
}

func (f *fakeRepo) ListConversationsByParticipant(ctx context.Context, userID int64, asAdmin bool) ([]entity.Conversation, error) {
	return f.listByParticipantFn(ctx, userID, asAdmin)
}

func (f *fakeRepo) UpdateConversationStatus(ctx context.Context, id int64, status entity.Status) error {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeRepo) CreateMessage(ctx context.Context, data entity.CreateMessage) (*entity.Message, error) {
	f.createMessageCalls++
	return f.createMessageFn(ctx, data)
}

func (f *fakeRepo) ListMessages(ctx context.Context, conversationID int64) ([]entity.Message, error) {
	return f.listMessagesFn(ctx, conversationID)
}

func (f *fakeRepo) MarkMessagesRead(ctx context.Context, conversationID, viewerID int64) (int64, error) {
	return f.markMessagesReadFn(ctx, conversationID, viewerID)
}

func (f *fakeRepo) CountUnreadMessages(ctx context.Context, userID int64) (int64, error) {
	return f.countUnreadFn(ctx, userID)
}

type fakeUID struct {
	next int64
}

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type publishedMessage struct {
	destination string
	body        []byte
}

type fakePublisher struct {
	published []publishedMessage
}

func (f *fakePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.published = append(f.published, publishedMessage{destination: destination, body: msg.Body})
	return messaging.PublishResult{}, nil
}

func newTestUsecase(t *testing.T, repo *fakeRepo, pub *fakePublisher) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	return NewConversation(Dependency{
		RepoDB:     repo,
		UID:        &fakeUID{},
		Validator:  v,
		Publisher:  pub,
		Instrument: instrument.NewNoop(),
	})
}

func authCtx(userID int64, role string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, UserRole: role})
}

func assertCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected structured error, got %v", err)
	}
	if gerr.Code() != code {
		t.Fatalf("expected error code %v, got %v (%v)", code, gerr.Code(), err)
	}
}
