package repository

import (
	"context"
	"database/sql"

	"github.com/freshcrate/freshcrate/internal/domain/order"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/jmoiron/sqlx"
)

// orderRepository is the Postgres-backed read-only order store.
//
// Schema:
//
//	orders      (id, user_id, subscription_id, delivery_charge,
//	             status, created_at, updated_at, created_by, updated_by)
//	order_items (id, order_id, variant_label, variant_price, quantity)
type orderRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

func NewOrderRepository(db *sqlx.DB, logger *logger.Logger) order.Repository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var ord order.Order
	query := `SELECT * FROM orders WHERE id = $1 AND status != $2`
	err := r.db.GetContext(ctx, &ord, query, id, types.StatusDeleted)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("order not found").
			WithHintf("Order '%s' does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch order").
			Mark(ierr.ErrDatabase)
	}
	return &ord, nil
}

func (r *orderRepository) GetBySubscription(ctx context.Context, subscriptionID string) (*order.Order, error) {
	var ord order.Order
	query := `
		SELECT * FROM orders
		WHERE subscription_id = $1 AND status != $2
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.GetContext(ctx, &ord, query, subscriptionID, types.StatusDeleted)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("no order for subscription").
			WithHintf("Subscription '%s' has no order", subscriptionID).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch subscription order").
			Mark(ierr.ErrDatabase)
	}
	return &ord, nil
}

func (r *orderRepository) ListItems(ctx context.Context, orderID string) ([]*order.OrderItem, error) {
	items := make([]*order.OrderItem, 0)
	query := `SELECT * FROM order_items WHERE order_id = $1 ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list order items").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}
