package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/freshcrate/freshcrate/internal/pubsub"
)

// SkipNotification summarizes a committed skip batch for operations staff
// (admin and delivery roles). Delivery is fire-and-forget: persistence of
// the batch never waits on, or rolls back for, this notification.
type SkipNotification struct {
	SubscriptionID string `json:"subscription_id"`
	UserID         string `json:"user_id"`

	// BatchRef is the short reference quoted to users and operations
	// staff when discussing the batch.
	BatchRef string `json:"batch_ref"`

	SkippedDates []string  `json:"skipped_dates"`
	SkippedCount int       `json:"skipped_count"`
	Reason       string    `json:"reason,omitempty"`
	CommittedAt  time.Time `json:"committed_at"`
}

// Sink delivers a skip notification to operations staff.
type Sink interface {
	Deliver(ctx context.Context, notification SkipNotification) error
}

// PublishSkip publishes a skip notification to the given topic. The message
// hop decouples the commit path from delivery: a slow or failing sink never
// blocks the caller.
func PublishSkip(ctx context.Context, publisher pubsub.Publisher, topic string, notification SkipNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return publisher.Publish(ctx, topic, message.NewMessage(watermill.NewUUID(), payload))
}
