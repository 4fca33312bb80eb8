package subscription

import (
	"time"

	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/types"
)

// Subscription is a recurring delivery subscription. The window end date is
// always derived from the plan type and start date, never stored, so a plan
// semantics change can never leave stale end dates behind.
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// UserID is the identifier of the owning user
	UserID string `db:"user_id" json:"user_id"`

	// PlanType is the recurrence cadence of the subscription.
	// Immutable after creation.
	PlanType types.PlanType `db:"plan_type" json:"plan_type"`

	// StartDate is the first eligible delivery day. Normalized to midnight
	// UTC and never mutated after creation.
	StartDate time.Time `db:"start_date" json:"start_date"`

	// DeliveryTime is the preferred delivery slot. Informational only.
	DeliveryTime types.DeliveryTime `db:"delivery_time" json:"delivery_time"`

	types.BaseModel
}

// EndDate returns the derived last day of the current plan window.
func (s *Subscription) EndDate() (time.Time, error) {
	return s.PlanType.EndDate(s.StartDate)
}

// Window returns the inclusive [start, end] date range of the plan window.
func (s *Subscription) Window() (time.Time, time.Time, error) {
	end, err := s.EndDate()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return types.NormalizeDate(s.StartDate), end, nil
}

func (s *Subscription) Validate() error {
	if err := s.PlanType.Validate(); err != nil {
		return err
	}
	if err := s.DeliveryTime.Validate(); err != nil {
		return err
	}
	if s.UserID == "" {
		return ierr.NewError("user id is required").
			WithHint("Subscription must belong to a user").
			Mark(ierr.ErrValidation)
	}
	if s.StartDate.IsZero() {
		return ierr.NewError("start date is required").
			WithHint("Subscription must have a start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}
