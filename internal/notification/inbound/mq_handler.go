package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/servizo/servizo/internal/notification/usecase"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/messaging"
	"github.com/servizo/servizo/internal/pkg/uid"
	"github.com/servizo/servizo/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) MessageCreatedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "MessageCreatedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: message created notification", "msg_body", string(body))

	var payload event.MessageCreatedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of message created notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeMessageCreated(ctx, usecase.ConsumeMessageCreatedInput{
		ConversationID: payload.ConversationID,
		MessageID:      payload.MessageID,
		SenderID:       payload.SenderID,
		SenderRole:     payload.SenderRole,
		RecipientID:    payload.RecipientID,
		Priority:       payload.Priority,
		Subject:        payload.Subject,
		Preview:        payload.Preview,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume message created", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) ConversationStartedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "ConversationStartedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: conversation started notification", "msg_body", string(body))

	var payload event.ConversationStartedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of conversation started notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeConversationStarted(ctx, usecase.ConsumeConversationStartedInput{
		ConversationID: payload.ConversationID,
		ClientID:       payload.ClientID,
		AdminID:        payload.AdminID,
		InitiatorID:    payload.InitiatorID,
		Subject:        payload.Subject,
		Priority:       payload.Priority,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume conversation started", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
