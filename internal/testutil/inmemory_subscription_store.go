package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/types"
)

// InMemorySubscriptionStore is an in-memory implementation of
// subscription.Repository for tests.
type InMemorySubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription.Subscription
	skipDays      map[string][]*subscription.SkipDay

	// forcedSkipErr, when set, makes CreateSkipDays fail without writing
	forcedSkipErr error
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subscriptions: make(map[string]*subscription.Subscription),
		skipDays:      make(map[string][]*subscription.SkipDay),
	}
}

// SetCreateSkipDaysError injects a failure into the next CreateSkipDays
// calls. Pass nil to clear.
func (r *InMemorySubscriptionStore) SetCreateSkipDaysError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forcedSkipErr = err
}

func (r *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subscriptions[sub.ID]; exists {
		return ierr.NewError("subscription already exists").
			WithHint("A subscription with this ID already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	r.subscriptions[sub.ID] = sub
	return nil
}

func (r *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if sub, exists := r.subscriptions[id]; exists {
		return sub, nil
	}
	return nil, ierr.NewError("subscription not found").
		WithHintf("Subscription %s does not exist", id).
		Mark(ierr.ErrNotFound)
}

func (r *InMemorySubscriptionStore) ListByUser(ctx context.Context, userID string) ([]*subscription.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*subscription.Subscription
	for _, sub := range r.subscriptions {
		if sub.UserID == userID {
			result = append(result, sub)
		}
	}
	return result, nil
}

func (r *InMemorySubscriptionStore) CreateSkipDays(ctx context.Context, subscriptionID string, dates []time.Time, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.forcedSkipErr != nil {
		return r.forcedSkipErr
	}

	if len(dates) == 0 {
		return ierr.NewError("empty skip batch").
			WithHint("Select at least one date to skip").
			Mark(ierr.ErrInvalidDateRange)
	}

	existing := make(map[string]bool)
	for _, sd := range r.skipDays[subscriptionID] {
		existing[types.FormatDateOnly(sd.PauseDate)] = true
	}

	for _, d := range dates {
		d = types.NormalizeDate(d)
		if existing[types.FormatDateOnly(d)] {
			continue
		}
		r.skipDays[subscriptionID] = append(r.skipDays[subscriptionID], &subscription.SkipDay{
			ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixSkipDay),
			SubscriptionID: subscriptionID,
			PauseDate:      d,
			Reason:         reason,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		})
	}
	return nil
}

func (r *InMemorySubscriptionStore) ListSkipDays(ctx context.Context, subscriptionID string) ([]*subscription.SkipDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.skipDays[subscriptionID], nil
}

// Clear removes all stored subscriptions and skip days.
func (r *InMemorySubscriptionStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscriptions = make(map[string]*subscription.Subscription)
	r.skipDays = make(map[string][]*subscription.SkipDay)
	r.forcedSkipErr = nil
}
