package schedule

import (
	"fmt"
	"time"

	"github.com/freshcrate/freshcrate/internal/types"
)

// ScheduleState is the lifecycle state of a subscription relative to a
// reference date. Exactly one state holds for any (today, subscription)
// pair.
type ScheduleState string

const (
	// ScheduleStateUpcoming means today precedes the window start
	ScheduleStateUpcoming ScheduleState = "upcoming"

	// ScheduleStateActive means today lies inside the window, end date
	// included
	ScheduleStateActive ScheduleState = "active"

	// ScheduleStateExpired means today is strictly after the window end
	ScheduleStateExpired ScheduleState = "expired"
)

func (s ScheduleState) String() string {
	return string(s)
}

// AlertTier is the visual urgency tier for an active subscription. It is a
// pure function of days left and never consults the skip set.
type AlertTier string

const (
	AlertTierNormal AlertTier = "normal"
	AlertTierUrgent AlertTier = "urgent"
)

// urgentDaysLeftThreshold is the days-left cutoff at or below which an
// active subscription renders in the urgent tier.
const urgentDaysLeftThreshold = 2

// ScheduleStatus is the derived lifecycle status of a subscription.
// DaysLeft is meaningful only when State is active; it is zero exactly when
// today is the window end date.
type ScheduleStatus struct {
	State    ScheduleState `json:"state"`
	DaysLeft int           `json:"days_left"`

	// StartDate and EndDate bound the window the status was computed
	// against.
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Tier returns the visual urgency tier for the status.
func (s *ScheduleStatus) Tier() AlertTier {
	if s.State == ScheduleStateActive && s.DaysLeft <= urgentDaysLeftThreshold {
		return AlertTierUrgent
	}
	return AlertTierNormal
}

// Label renders the status as a user-facing string.
func (s *ScheduleStatus) Label() string {
	switch s.State {
	case ScheduleStateUpcoming:
		return fmt.Sprintf("Starts on %s", s.StartDate.Format(types.FriendlyDateFormat))
	case ScheduleStateExpired:
		return "Expired"
	default:
		if s.DaysLeft == 1 {
			return "1 day left"
		}
		return fmt.Sprintf("%d days left", s.DaysLeft)
	}
}
