package testutil

import (
	"context"
	"sync"

	"github.com/freshcrate/freshcrate/internal/domain/order"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
)

// InMemoryOrderStore is an in-memory implementation of order.Repository
// for tests. Orders and items are seeded directly; the repository itself
// is read-only like the real one.
type InMemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	items  map[string][]*order.OrderItem
}

func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		orders: make(map[string]*order.Order),
		items:  make(map[string][]*order.OrderItem),
	}
}

// AddOrder seeds an order for tests.
func (r *InMemoryOrderStore) AddOrder(ord *order.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[ord.ID] = ord
}

// AddItem seeds an order item for tests.
func (r *InMemoryOrderStore) AddItem(item *order.OrderItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.OrderID] = append(r.items[item.OrderID], item)
}

func (r *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ord, exists := r.orders[id]; exists {
		return ord, nil
	}
	return nil, ierr.NewError("order not found").
		WithHintf("Order %s does not exist", id).
		Mark(ierr.ErrNotFound)
}

func (r *InMemoryOrderStore) GetBySubscription(ctx context.Context, subscriptionID string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *order.Order
	for _, ord := range r.orders {
		if ord.SubscriptionID != subscriptionID {
			continue
		}
		if latest == nil || ord.CreatedAt.After(latest.CreatedAt) {
			latest = ord
		}
	}
	if latest == nil {
		return nil, ierr.NewError("order not found").
			WithHintf("No order found for subscription %s", subscriptionID).
			Mark(ierr.ErrNotFound)
	}
	return latest, nil
}

func (r *InMemoryOrderStore) ListItems(ctx context.Context, orderID string) ([]*order.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.items[orderID], nil
}

// Clear removes all stored orders and items.
func (r *InMemoryOrderStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[string]*order.Order)
	r.items = make(map[string][]*order.OrderItem)
}
