package notifier

import (
	"context"
	"encoding/json"

	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/pubsub"
)

// Consumer drains skip notifications from the pubsub topic and hands them
// to the sink. Every failure is logged and the message acked anyway: a lost
// notification must never surface to the user or undo a committed skip.
type Consumer struct {
	subscriber pubsub.Subscriber
	sink       Sink
	topic      string
	logger     *logger.Logger
}

func NewConsumer(subscriber pubsub.Subscriber, sink Sink, topic string, logger *logger.Logger) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		sink:       sink,
		topic:      topic,
		logger:     logger,
	}
}

// Start begins consuming in a background goroutine. It returns once the
// subscription is established; consumption stops when ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var notification SkipNotification
			if err := json.Unmarshal(msg.Payload, &notification); err != nil {
				c.logger.Errorw("failed to decode skip notification",
					"message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}

			if err := c.sink.Deliver(ctx, notification); err != nil {
				c.logger.Errorw("failed to deliver skip notification to operations",
					"subscription_id", notification.SubscriptionID,
					"skipped_count", notification.SkippedCount,
					"error", err)
			}
			msg.Ack()
		}
	}()

	return nil
}
