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

func newTestSession(t *testing.T) (*SelectionSession, time.Time) {
	t.Helper()
	today := time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC)
	sub := testSubscription(types.PlanTypeMonthly, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	existing := subscription.NewSkipSetFromDates([]time.Time{
		time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
	})

	session, err := NewSelectionSession(today, sub, existing)
	require.NoError(t, err)
	return session, today
}

func TestIsSelectable(t *testing.T) {
	session, today := newTestSession(t)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"past date", types.AddDays(today, -1), false},
		{"today itself", today, false},
		{"tomorrow in window", types.AddDays(today, 1), true},
		{"already skipped", time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), false},
		{"window end date", time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), true},
		{"past window end", time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), false},
		{"before window start", time.Date(2024, time.March, 25, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.IsSelectable(tt.date))
		})
	}
}

func TestToggleSymmetry(t *testing.T) {
	session, today := newTestSession(t)
	date := types.AddDays(today, 3)

	assert.Equal(t, SelectionStateIdle, session.State())

	assert.True(t, session.Toggle(date))
	assert.Equal(t, SelectionStateSelecting, session.State())
	assert.True(t, session.IsSelected(date))

	assert.True(t, session.Toggle(date))
	assert.False(t, session.IsSelected(date))
	assert.Empty(t, session.WorkingDates())
	assert.Equal(t, SelectionStateIdle, session.State())
}

func TestToggleNonSelectableIsNoop(t *testing.T) {
	session, today := newTestSession(t)

	assert.False(t, session.Toggle(types.AddDays(today, -2)))
	assert.False(t, session.Toggle(today))
	assert.False(t, session.Toggle(time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, session.WorkingDates())
	assert.Equal(t, SelectionStateIdle, session.State())
}

func TestToggleNormalizesTimeComponent(t *testing.T) {
	session, today := newTestSession(t)
	date := types.AddDays(today, 5)

	assert.True(t, session.Toggle(date.Add(11*time.Hour)))
	assert.True(t, session.IsSelected(date))
	assert.True(t, session.Toggle(date.Add(23*time.Hour)))
	assert.Empty(t, session.WorkingDates())
}

func TestConfirmEmptyWorkingSetRejected(t *testing.T) {
	session, _ := newTestSession(t)

	err := session.RequestConfirm("trip")
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidDateRange(err))
	assert.Equal(t, SelectionStateIdle, session.State())
}

func TestConfirmAndApprove(t *testing.T) {
	session, today := newTestSession(t)
	first := types.AddDays(today, 2)
	second := types.AddDays(today, 4)

	require.True(t, session.Toggle(second))
	require.True(t, session.Toggle(first))

	require.NoError(t, session.RequestConfirm("out of town"))
	assert.Equal(t, SelectionStateConfirmPending, session.State())

	batch, reason, err := session.Approve()
	require.NoError(t, err)
	assert.Equal(t, "out of town", reason)
	assert.Equal(t, []string{
		types.FormatDateOnly(first),
		types.FormatDateOnly(second),
	}, types.FormatDateList(batch), "batch is sorted ascending")

	assert.Equal(t, SelectionStateCommitted, session.State())
	assert.Empty(t, session.WorkingDates())

	// committed sessions are terminal
	assert.False(t, session.Toggle(types.AddDays(today, 6)))
	_, _, err = session.Approve()
	assert.Error(t, err)
}

func TestApproveWithoutConfirm(t *testing.T) {
	session, today := newTestSession(t)
	session.Toggle(types.AddDays(today, 2))

	_, _, err := session.Approve()
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
	assert.Equal(t, SelectionStateSelecting, session.State())
}

func TestCancelClearsSession(t *testing.T) {
	session, today := newTestSession(t)
	session.Toggle(types.AddDays(today, 2))
	require.NoError(t, session.RequestConfirm("changed my mind"))

	session.Cancel()
	assert.Equal(t, SelectionStateIdle, session.State())
	assert.Empty(t, session.WorkingDates())

	// cancel after commit keeps the terminal state
	session.Toggle(types.AddDays(today, 3))
	require.NoError(t, session.RequestConfirm(""))
	_, _, err := session.Approve()
	require.NoError(t, err)
	session.Cancel()
	assert.Equal(t, SelectionStateCommitted, session.State())
}

func TestRenderPredicatesAreIndependent(t *testing.T) {
	session, today := newTestSession(t)
	selected := types.AddDays(today, 2)
	session.Toggle(selected)

	past := types.AddDays(today, -3)
	skipped := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, session.IsPast(past))
	assert.False(t, session.IsAlreadySkipped(past))
	assert.False(t, session.IsSelected(past))

	assert.False(t, session.IsPast(skipped))
	assert.True(t, session.IsAlreadySkipped(skipped))
	assert.False(t, session.IsSelected(skipped))

	assert.False(t, session.IsPast(selected))
	assert.False(t, session.IsAlreadySkipped(selected))
	assert.True(t, session.IsSelected(selected))
}
