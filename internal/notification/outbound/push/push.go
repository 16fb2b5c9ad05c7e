// Package push hands notifications to the external push gateway by publishing
// them on a broker topic; the gateway owns device tokens and actual delivery.
package push

import (
	"context"
	"encoding/json"

	"github.com/servizo/servizo/internal/notification/dispatch"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/messaging"
	"go.opentelemetry.io/otel/codes"
)

const DefaultTopic = "notification_push_outbound"

type payload struct {
	UserID int64  `json:"user_id"`
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type Push struct {
	publisher messaging.Publisher
	topic     string
	ins       instrument.Instrumentation
}

func New(publisher messaging.Publisher, topic string, ins instrument.Instrumentation) *Push {
	if topic == "" {
		topic = DefaultTopic
	}

	return &Push{publisher: publisher, topic: topic, ins: ins}
}

func (p *Push) Send(ctx context.Context, userID int64, pl dispatch.Payload) error {
	ctx, span := p.ins.Tracer("notification.outbound.push").Start(ctx, "Send")
	defer span.End()

	body, err := json.Marshal(payload{
		UserID: userID,
		Kind:   pl.Kind.String(),
		Title:  pl.Subject,
		Body:   pl.Content,
	})
	if err != nil {
		return err
	}

	if _, err := p.publisher.Publish(ctx, p.topic, messaging.OutgoingMessage{Body: body}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
