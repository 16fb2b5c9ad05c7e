package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/servizo/servizo/internal/pkg/config"
	"github.com/servizo/servizo/internal/pkg/goroutine"
	"github.com/servizo/servizo/internal/pkg/instrument"
	"github.com/servizo/servizo/internal/pkg/messaging"
	"github.com/servizo/servizo/internal/pkg/uid"
	"github.com/servizo/servizo/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHanlder := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name               string
		topic              string // destination where publisher sent message
		nsqConsumerName    string // for nsq
		natsConsumerName   string // for nats
		kafkaConsumerName  string // for kafka
		pubsubConsumerName string // for google pubusb
		handler            messaging.Handler
	}{
		{
			name:               event.MessageCreatedConsumerNotification,
			topic:              event.MessageCreatedDestination,
			nsqConsumerName:    event.MessageCreatedConsumerNotification,
			natsConsumerName:   event.MessageCreatedConsumerNotification,
			kafkaConsumerName:  event.MessageCreatedConsumerNotification,
			pubsubConsumerName: event.MessageCreatedConsumerNotification,
			handler:            mqHanlder.MessageCreatedNotification,
		},
		{
			name:               event.ConversationStartedConsumerNotification,
			topic:              event.ConversationStartedDestination,
			nsqConsumerName:    event.ConversationStartedConsumerNotification,
			natsConsumerName:   event.ConversationStartedConsumerNotification,
			kafkaConsumerName:  event.ConversationStartedConsumerNotification,
			pubsubConsumerName: event.ConversationStartedConsumerNotification,
			handler:            mqHanlder.ConversationStartedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.nsqConsumerName),
					messaging.WithQueueGroup(consumer.natsConsumerName),
					messaging.WithGroup(consumer.kafkaConsumerName),
					messaging.WithSubscription(consumer.pubsubConsumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
