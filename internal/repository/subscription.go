package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/jmoiron/sqlx"
)

// subscriptionRepository is the Postgres-backed subscription store.
//
// Schema:
//
//	subscriptions (id, user_id, plan_type, start_date, delivery_time,
//	               status, created_at, updated_at, created_by, updated_by)
//	skip_days     (id, subscription_id, pause_date, reason,
//	               status, created_at, updated_at, created_by, updated_by,
//	               UNIQUE (subscription_id, pause_date))
type subscriptionRepository struct {
	db     *sqlx.DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *sqlx.DB, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	r.logger.Debugw("creating subscription", "subscription_id", sub.ID, "user_id", sub.UserID)

	query := `
		INSERT INTO subscriptions (
			id, user_id, plan_type, start_date, delivery_time,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :user_id, :plan_type, :start_date, :delivery_time,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	query := `SELECT * FROM subscriptions WHERE id = $1 AND status != $2`
	err := r.db.GetContext(ctx, &sub, query, id, types.StatusDeleted)
	if err == sql.ErrNoRows {
		return nil, ierr.NewError("subscription not found").
			WithHintf("Subscription '%s' does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch subscription").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*subscription.Subscription, error) {
	subs := make([]*subscription.Subscription, 0)
	query := `
		SELECT * FROM subscriptions
		WHERE user_id = $1 AND status != $2
		ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &subs, query, userID, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}

// CreateSkipDays inserts the whole batch in one transaction so a confirmed
// skip either lands completely or not at all. The unique index on
// (subscription_id, pause_date) backstops the engine-level dedup.
func (r *subscriptionRepository) CreateSkipDays(ctx context.Context, subscriptionID string, dates []time.Time, reason string) error {
	if len(dates) == 0 {
		return ierr.NewError("skip batch is empty").
			Mark(ierr.ErrInvalidDateRange)
	}

	r.logger.Debugw("creating skip days",
		"subscription_id", subscriptionID, "count", len(dates))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to start skip batch").
			Mark(ierr.ErrDatabase)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO skip_days (
			id, subscription_id, pause_date, reason,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :subscription_id, :pause_date, :reason,
			:status, :created_at, :updated_at, :created_by, :updated_by
		) ON CONFLICT (subscription_id, pause_date) DO NOTHING`

	for _, date := range dates {
		day := &subscription.SkipDay{
			ID:             types.GenerateUUIDWithPrefix(types.UUIDPrefixSkipDay),
			SubscriptionID: subscriptionID,
			PauseDate:      types.NormalizeDate(date),
			Reason:         reason,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		}
		if _, err := tx.NamedExecContext(ctx, query, day); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to save skipped dates").
				Mark(ierr.ErrDatabase)
		}
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save skipped dates").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) ListSkipDays(ctx context.Context, subscriptionID string) ([]*subscription.SkipDay, error) {
	days := make([]*subscription.SkipDay, 0)
	query := `
		SELECT * FROM skip_days
		WHERE subscription_id = $1 AND status != $2
		ORDER BY pause_date ASC`
	if err := r.db.SelectContext(ctx, &days, query, subscriptionID, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list skipped dates").
			Mark(ierr.ErrDatabase)
	}
	return days, nil
}
