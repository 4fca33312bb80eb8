package order

import (
	"context"
)

// Repository provides read access to order storage. The schedule and
// billing engines never mutate orders.
type Repository interface {
	Get(ctx context.Context, id string) (*Order, error)
	GetBySubscription(ctx context.Context, subscriptionID string) (*Order, error)
	ListItems(ctx context.Context, orderID string) ([]*OrderItem, error)
}
