package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/servizo/servizo/internal/notification/dispatch"
	"github.com/servizo/servizo/internal/notification/entity"
	"github.com/servizo/servizo/internal/pkg/goerror"
)

type ConsumeMessageCreatedInput struct {
	ConversationID int64  `validate:"required,gt=0"`
	MessageID      int64  `validate:"required,gt=0"`
	SenderID       int64  `validate:"required,gt=0"`
	SenderRole     string `validate:"required"`
	RecipientID    int64  `validate:"required,gt=0"`
	Priority       string `validate:"required"`
	Subject        string
	Preview        string `validate:"required"`
}

// outOfBandChannels are the channels a conversation event may reach a user on
// besides the conversation view itself.
var outOfBandChannels = []entity.Channel{entity.ChannelPush, entity.ChannelEmail}

// ConsumeMessageCreated turns a new conversation message into out-of-band
// notifications for the recipient, subject to the gate.
func (s *Usecase) ConsumeMessageCreated(ctx context.Context, in ConsumeMessageCreatedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeMessageCreated")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	kind := messageKind(in.Priority, in.SenderRole)
	subject := in.Subject
	if subject == "" {
		subject = "New message"
	}

	s.notifyUser(ctx, in.RecipientID, kind, subject, in.Preview)

	return nil
}

func messageKind(priority, senderRole string) entity.Kind {
	if priority == "high" || priority == "urgent" {
		return entity.KindPriorityMessage
	}
	if senderRole == "admin" || senderRole == "super_admin" {
		return entity.KindAdminResponse
	}

	return entity.KindNewMessage
}

// notifyUser runs the gate for each out-of-band channel and delivers or
// defers accordingly. An in-app inbox row is always written so the polling
// surfaces stay consistent regardless of gating.
func (s *Usecase) notifyUser(ctx context.Context, userID int64, kind entity.Kind, subject, content string) {
	rcpt, err := s.repoDB.GetAudienceUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get audience user", "user_id", userID, "error", err)
		}
		return
	}

	prefs := s.loadPreferences(ctx, userID)
	now := s.clock.Now()
	payload := dispatch.Payload{Kind: kind, Subject: subject, Content: content}

	s.dispatcher.Send(ctx, entity.ChannelInApp, *rcpt, payload)

	for _, ch := range outOfBandChannels {
		switch decide(prefs, kind, ch, now) {
		case entity.DecisionDeliver:
			s.dispatcher.Send(ctx, ch, *rcpt, payload)
		case entity.DecisionDefer:
			s.enqueueDeferred(ctx, prefs, userID, kind, ch, subject, content)
		}
	}
}
