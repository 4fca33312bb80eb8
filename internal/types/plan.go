package types

import (
	"time"

	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/samber/lo"
)

// PlanType is the recurrence cadence of a delivery subscription. Each plan
// has a fixed window length in days; there is no general recurrence rule
// support.
type PlanType string

const (
	PlanTypeDaily   PlanType = "daily"
	PlanTypeWeekly  PlanType = "weekly"
	PlanTypeMonthly PlanType = "monthly"
)

func (p PlanType) String() string {
	return string(p)
}

func (p PlanType) Validate() error {
	allowed := []PlanType{
		PlanTypeDaily,
		PlanTypeWeekly,
		PlanTypeMonthly,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid plan type").
			WithHintf("Plan type '%s' is not supported", p).
			WithReportableDetails(map[string]any{
				"plan_type":     p,
				"allowed_plans": allowed,
			}).
			Mark(ierr.ErrInvalidPlan)
	}
	return nil
}

// WindowDays returns the fixed window length of the plan in days.
// Unknown plan types fail with an invalid plan error; callers must never
// fall back to a default plan.
func (p PlanType) WindowDays() (int, error) {
	switch p {
	case PlanTypeDaily:
		return 1, nil
	case PlanTypeWeekly:
		return 7, nil
	case PlanTypeMonthly:
		return 30, nil
	default:
		return 0, ierr.NewError("invalid plan type").
			WithHintf("Plan type '%s' is not supported", p).
			Mark(ierr.ErrInvalidPlan)
	}
}

// EndDate returns the last day of the plan window starting at the given
// date: start + windowDays - 1, on normalized calendar dates.
func (p PlanType) EndDate(start time.Time) (time.Time, error) {
	days, err := p.WindowDays()
	if err != nil {
		return time.Time{}, err
	}
	return AddDays(start, days-1), nil
}

// IsRecurring reports whether the plan is billed through the prorated
// subscription path. Daily plans are billed like one-time orders.
func (p PlanType) IsRecurring() bool {
	return p == PlanTypeWeekly || p == PlanTypeMonthly
}

// DeliveryTime is the preferred slot for a subscription's deliveries.
// Informational only for the schedule engine.
type DeliveryTime string

const (
	DeliveryTimeMorning DeliveryTime = "morning"
	DeliveryTimeEvening DeliveryTime = "evening"
)

func (d DeliveryTime) String() string {
	return string(d)
}

func (d DeliveryTime) Validate() error {
	allowed := []DeliveryTime{
		DeliveryTimeMorning,
		DeliveryTimeEvening,
	}
	if !lo.Contains(allowed, d) {
		return ierr.NewError("invalid delivery time").
			WithHintf("Delivery time '%s' is not supported", d).
			WithReportableDetails(map[string]any{
				"delivery_time":  d,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
