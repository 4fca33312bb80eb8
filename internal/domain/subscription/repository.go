package subscription

import (
	"context"
	"time"
)

// Repository provides access to subscription and skip day storage.
//
// CreateSkipDays persists every date of one confirmed skip batch in a single
// atomic insert: either the whole batch is stored or none of it is, so a
// failed commit leaves the caller free to retry with its working set intact.
// There is deliberately no delete for skip days; pauses are permanent facts.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*Subscription, error)

	CreateSkipDays(ctx context.Context, subscriptionID string, dates []time.Time, reason string) error
	ListSkipDays(ctx context.Context, subscriptionID string) ([]*SkipDay, error)
}
