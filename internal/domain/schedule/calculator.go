package schedule

import (
	"iter"
	"time"

	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/types"
)

// ComputeStatus derives the lifecycle status of a subscription for the given
// reference date. The reference date is an explicit parameter everywhere in
// this package so results are deterministic and testable without a clock.
//
// The window end date itself is still active with zero days left; expired
// begins strictly the day after.
func ComputeStatus(today time.Time, sub *subscription.Subscription) (*ScheduleStatus, error) {
	if sub == nil {
		return nil, ierr.NewError("subscription is required").
			Mark(ierr.ErrValidation)
	}

	start, end, err := sub.Window()
	if err != nil {
		return nil, err
	}
	today = types.NormalizeDate(today)

	status := &ScheduleStatus{
		StartDate: start,
		EndDate:   end,
	}

	switch {
	case today.Before(start):
		status.State = ScheduleStateUpcoming
		status.DaysLeft = types.DaysBetween(today, end)
	case today.After(end):
		status.State = ScheduleStateExpired
	default:
		status.State = ScheduleStateActive
		status.DaysLeft = types.DaysBetween(today, end)
	}

	return status, nil
}

// IsPausedOn reports whether the given calendar day is skipped, i.e.
// produces no delivery.
func IsPausedOn(date time.Time, skips subscription.SkipSet) bool {
	return skips.Contains(date)
}

// DeliveryDates returns the calendar dates in the subscription window that
// produce a delivery, excluding skipped dates. The sequence is lazy, finite
// (windows are at most 30 days) and restartable: it is a pure function of
// its immutable inputs, safe to recompute on every render.
func DeliveryDates(sub *subscription.Subscription, skips subscription.SkipSet) (iter.Seq[time.Time], error) {
	if sub == nil {
		return nil, ierr.NewError("subscription is required").
			Mark(ierr.ErrValidation)
	}

	start, end, err := sub.Window()
	if err != nil {
		return nil, err
	}

	return func(yield func(time.Time) bool) {
		for d := start; !d.After(end); d = types.AddDays(d, 1) {
			if skips.Contains(d) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}, nil
}

// DeliveryDateList materializes DeliveryDates into a slice.
func DeliveryDateList(sub *subscription.Subscription, skips subscription.SkipSet) ([]time.Time, error) {
	seq, err := DeliveryDates(sub, skips)
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for d := range seq {
		out = append(out, d)
	}
	return out, nil
}
