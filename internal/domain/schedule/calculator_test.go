package schedule

import (
	"testing"
	"time"

	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubscription(plan types.PlanType, start time.Time) *subscription.Subscription {
	return &subscription.Subscription{
		ID:           "subs_test",
		UserID:       "user_test",
		PlanType:     plan,
		StartDate:    start,
		DeliveryTime: types.DeliveryTimeMorning,
	}
}

func TestComputeStatus(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	sub := testSubscription(types.PlanTypeWeekly, start)

	tests := []struct {
		name         string
		today        time.Time
		wantState    ScheduleState
		wantDaysLeft int
	}{
		{
			name:         "before start is upcoming",
			today:        time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC),
			wantState:    ScheduleStateUpcoming,
			wantDaysLeft: 8,
		},
		{
			name:         "start day is active",
			today:        start,
			wantState:    ScheduleStateActive,
			wantDaysLeft: 6,
		},
		{
			name:         "mid window",
			today:        time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
			wantState:    ScheduleStateActive,
			wantDaysLeft: 3,
		},
		{
			name:         "end date still active with zero days left",
			today:        time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
			wantState:    ScheduleStateActive,
			wantDaysLeft: 0,
		},
		{
			name:      "day after end is expired",
			today:     time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
			wantState: ScheduleStateExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ComputeStatus(tt.today, sub)
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, status.State)
			assert.Equal(t, tt.wantDaysLeft, status.DaysLeft)
		})
	}
}

// Exactly one lifecycle state holds for every day around the window, and
// days left hits zero exactly on the end date.
func TestComputeStatusExhaustive(t *testing.T) {
	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	sub := testSubscription(types.PlanTypeMonthly, start)
	end, err := sub.EndDate()
	require.NoError(t, err)

	for offset := -5; offset <= 35; offset++ {
		today := types.AddDays(start, offset)
		status, err := ComputeStatus(today, sub)
		require.NoError(t, err)

		switch {
		case today.Before(start):
			assert.Equal(t, ScheduleStateUpcoming, status.State, "offset %d", offset)
		case today.After(end):
			assert.Equal(t, ScheduleStateExpired, status.State, "offset %d", offset)
		default:
			assert.Equal(t, ScheduleStateActive, status.State, "offset %d", offset)
			assert.GreaterOrEqual(t, status.DaysLeft, 0, "offset %d", offset)
			assert.Equal(t, today.Equal(end), status.DaysLeft == 0, "offset %d", offset)
		}
	}
}

func TestComputeStatusInvalidPlan(t *testing.T) {
	sub := testSubscription(types.PlanType("yearly"), time.Now())
	_, err := ComputeStatus(time.Now(), sub)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidPlan(err))
}

func TestAlertTier(t *testing.T) {
	tests := []struct {
		name     string
		status   ScheduleStatus
		wantTier AlertTier
	}{
		{"active with many days", ScheduleStatus{State: ScheduleStateActive, DaysLeft: 10}, AlertTierNormal},
		{"active at threshold", ScheduleStatus{State: ScheduleStateActive, DaysLeft: 2}, AlertTierUrgent},
		{"active last day", ScheduleStatus{State: ScheduleStateActive, DaysLeft: 0}, AlertTierUrgent},
		{"upcoming never urgent", ScheduleStatus{State: ScheduleStateUpcoming, DaysLeft: 1}, AlertTierNormal},
		{"expired never urgent", ScheduleStatus{State: ScheduleStateExpired}, AlertTierNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTier, tt.status.Tier())
		})
	}
}

func TestStatusLabel(t *testing.T) {
	start := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	upcoming := ScheduleStatus{State: ScheduleStateUpcoming, StartDate: start}
	assert.Equal(t, "Starts on 15 Jun 2024", upcoming.Label())

	active := ScheduleStatus{State: ScheduleStateActive, DaysLeft: 3}
	assert.Equal(t, "3 days left", active.Label())

	lastDay := ScheduleStatus{State: ScheduleStateActive, DaysLeft: 1}
	assert.Equal(t, "1 day left", lastDay.Label())

	expired := ScheduleStatus{State: ScheduleStateExpired}
	assert.Equal(t, "Expired", expired.Label())
}

func TestIsPausedOn(t *testing.T) {
	skipped := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	skips := subscription.NewSkipSetFromDates([]time.Time{skipped})

	assert.True(t, IsPausedOn(skipped, skips))
	assert.True(t, IsPausedOn(skipped.Add(9*time.Hour), skips), "time component must not matter")
	assert.False(t, IsPausedOn(types.AddDays(skipped, 1), skips))
}

func TestDeliveryDates(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	sub := testSubscription(types.PlanTypeWeekly, start)
	skips := subscription.NewSkipSetFromDates([]time.Time{
		time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
	})

	dates, err := DeliveryDateList(sub, skips)
	require.NoError(t, err)

	want := []string{
		"2024-03-01", "2024-03-02", "2024-03-04",
		"2024-03-05", "2024-03-06", "2024-03-07",
	}
	assert.Equal(t, want, types.FormatDateList(dates))
}

func TestDeliveryDatesRestartable(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	sub := testSubscription(types.PlanTypeWeekly, start)
	skips := subscription.NewSkipSet(nil)

	seq, err := DeliveryDates(sub, skips)
	require.NoError(t, err)

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	assert.Equal(t, 7, count())
	assert.Equal(t, 7, count(), "sequence must be restartable")

	// early break must not affect later iterations
	for range seq {
		break
	}
	assert.Equal(t, 7, count())
}
