package dto

import (
	"context"
	"time"

	"github.com/freshcrate/freshcrate/internal/domain/schedule"
	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/freshcrate/freshcrate/internal/validator"
)

// CreateSubscriptionRequest creates a new delivery subscription.
type CreateSubscriptionRequest struct {
	UserID       string             `json:"user_id" validate:"required"`
	PlanType     types.PlanType     `json:"plan_type" validate:"required"`
	StartDate    string             `json:"start_date" validate:"required"`
	DeliveryTime types.DeliveryTime `json:"delivery_time" validate:"required"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.PlanType.Validate(); err != nil {
		return err
	}
	if err := r.DeliveryTime.Validate(); err != nil {
		return err
	}
	if _, err := types.ParseDateOnly(r.StartDate); err != nil {
		return err
	}
	return nil
}

// ToSubscription builds the domain model from the request.
func (r *CreateSubscriptionRequest) ToSubscription(ctx context.Context) (*subscription.Subscription, error) {
	start, err := types.ParseDateOnly(r.StartDate)
	if err != nil {
		return nil, err
	}
	return &subscription.Subscription{
		ID:           types.GenerateUUIDWithPrefix(types.UUIDPrefixSubscription),
		UserID:       r.UserID,
		PlanType:     r.PlanType,
		StartDate:    start,
		DeliveryTime: r.DeliveryTime,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}, nil
}

// SubscriptionResponse is a subscription with its derived schedule status.
type SubscriptionResponse struct {
	ID           string             `json:"id"`
	UserID       string             `json:"user_id"`
	PlanType     types.PlanType     `json:"plan_type"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	DeliveryTime types.DeliveryTime `json:"delivery_time"`
	CreatedAt    time.Time          `json:"created_at"`

	Status      schedule.ScheduleState `json:"status"`
	DaysLeft    int                    `json:"days_left"`
	StatusLabel string                 `json:"status_label"`
	AlertTier   schedule.AlertTier     `json:"alert_tier"`

	// StartDateLabel is the start date rendered relative to the reference
	// date: "Today", "Tomorrow", or "02 Jan 2006".
	StartDateLabel string `json:"start_date_label"`
}

// NewSubscriptionResponse renders a subscription against a reference date.
func NewSubscriptionResponse(today time.Time, sub *subscription.Subscription) (*SubscriptionResponse, error) {
	status, err := schedule.ComputeStatus(today, sub)
	if err != nil {
		return nil, err
	}

	return &SubscriptionResponse{
		ID:           sub.ID,
		UserID:       sub.UserID,
		PlanType:     sub.PlanType,
		StartDate:    types.FormatDateOnly(status.StartDate),
		EndDate:      types.FormatDateOnly(status.EndDate),
		DeliveryTime: sub.DeliveryTime,
		CreatedAt:    sub.CreatedAt,
		Status:       status.State,
		DaysLeft:     status.DaysLeft,
		StatusLabel:  status.Label(),
		AlertTier:    status.Tier(),

		StartDateLabel: types.FriendlyDate(today, status.StartDate),
	}, nil
}

// DeliveryScheduleResponse lists the concrete delivery dates of the window.
type DeliveryScheduleResponse struct {
	SubscriptionID string   `json:"subscription_id"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	DeliveryDates  []string `json:"delivery_dates"`
	SkippedDates   []string `json:"skipped_dates"`
}
