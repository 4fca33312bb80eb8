package schedule

import (
	"sort"
	"time"

	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/types"
)

// SelectionState is the state of one skip-editing session.
type SelectionState string

const (
	// SelectionStateIdle means no dates are chosen
	SelectionStateIdle SelectionState = "idle"

	// SelectionStateSelecting means at least one date is in the working set
	SelectionStateSelecting SelectionState = "selecting"

	// SelectionStateConfirmPending means the user requested confirmation
	SelectionStateConfirmPending SelectionState = "confirm_pending"

	// SelectionStateCommitted is terminal; the batch has been handed off
	// for persistence
	SelectionStateCommitted SelectionState = "committed"
)

// SelectionSession drives one skip-editing session for a subscription. It
// holds a working set of toggled dates and enforces the calendar
// constraints: only future dates inside the plan window that are not
// already skipped are selectable.
//
// Sessions are not safe for concurrent use; each editing surface owns its
// own session. Two sessions for the same subscription on different devices
// race on commit (last committed wins); the batch read at session start is
// the dedup baseline.
type SelectionSession struct {
	today    time.Time
	start    time.Time
	end      time.Time
	existing subscription.SkipSet
	working  map[string]time.Time
	reason   string
	state    SelectionState
}

// NewSelectionSession opens an editing session against the subscription's
// current window and already-persisted skip set, relative to the given
// reference date.
func NewSelectionSession(today time.Time, sub *subscription.Subscription, existing subscription.SkipSet) (*SelectionSession, error) {
	if sub == nil {
		return nil, ierr.NewError("subscription is required").
			Mark(ierr.ErrValidation)
	}
	start, end, err := sub.Window()
	if err != nil {
		return nil, err
	}
	return &SelectionSession{
		today:    types.NormalizeDate(today),
		start:    start,
		end:      end,
		existing: existing,
		working:  make(map[string]time.Time),
		state:    SelectionStateIdle,
	}, nil
}

// State returns the current session state.
func (s *SelectionSession) State() SelectionState {
	return s.state
}

// IsPast reports whether the date is today or earlier relative to the
// session's reference date. Today itself is never selectable; the kitchen
// has already planned it.
func (s *SelectionSession) IsPast(d time.Time) bool {
	return !types.NormalizeDate(d).After(s.today)
}

// IsAlreadySkipped reports whether the date is in the persisted skip set.
func (s *SelectionSession) IsAlreadySkipped(d time.Time) bool {
	return s.existing.Contains(d)
}

// IsSelected reports whether the date is in the working set.
func (s *SelectionSession) IsSelected(d time.Time) bool {
	_, ok := s.working[types.FormatDateOnly(d)]
	return ok
}

// IsSelectable reports whether the date may be toggled into the working
// set: a future in-window date that is not already skipped.
func (s *SelectionSession) IsSelectable(d time.Time) bool {
	d = types.NormalizeDate(d)
	if s.IsPast(d) {
		return false
	}
	if d.Before(s.start) || d.After(s.end) {
		return false
	}
	return !s.existing.Contains(d)
}

// Toggle adds the date to the working set, or removes it if present.
// Toggling a non-selectable date is a no-op, not an error. The return
// value reports whether the working set changed.
func (s *SelectionSession) Toggle(d time.Time) bool {
	if s.state == SelectionStateCommitted {
		return false
	}

	d = types.NormalizeDate(d)
	key := types.FormatDateOnly(d)

	if _, ok := s.working[key]; ok {
		delete(s.working, key)
		if len(s.working) == 0 && s.state == SelectionStateSelecting {
			s.state = SelectionStateIdle
		}
		return true
	}

	if !s.IsSelectable(d) {
		return false
	}

	s.working[key] = d
	if s.state == SelectionStateIdle {
		s.state = SelectionStateSelecting
	}
	return true
}

// WorkingDates returns the working set in ascending order.
func (s *SelectionSession) WorkingDates() []time.Time {
	out := make([]time.Time, 0, len(s.working))
	for _, d := range s.working {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// RequestConfirm moves the session to confirm-pending with the shared
// optional reason. Confirming an empty working set is rejected and the
// session stays where it was.
func (s *SelectionSession) RequestConfirm(reason string) error {
	if s.state == SelectionStateCommitted {
		return ierr.NewError("session already committed").
			WithHint("Start a new skip session to select more dates").
			Mark(ierr.ErrInvalidOperation)
	}
	if len(s.working) == 0 {
		return ierr.NewError("no dates selected").
			WithHint("Select at least one date to skip").
			Mark(ierr.ErrInvalidDateRange)
	}
	s.reason = reason
	s.state = SelectionStateConfirmPending
	return nil
}

// Approve finalizes a confirm-pending session, returning the deduplicated
// batch of new skip dates and the shared reason for persistence. The
// session transitions to committed and the working set is cleared.
func (s *SelectionSession) Approve() ([]time.Time, string, error) {
	if s.state != SelectionStateConfirmPending {
		return nil, "", ierr.NewError("no confirmation pending").
			WithHint("Request confirmation before approving").
			Mark(ierr.ErrInvalidOperation)
	}

	batch := s.WorkingDates()
	reason := s.reason
	s.working = make(map[string]time.Time)
	s.reason = ""
	s.state = SelectionStateCommitted
	return batch, reason, nil
}

// Cancel discards unconfirmed selections and returns the session to idle.
// Closing the editing surface before confirmation is equivalent to Cancel;
// nothing is persisted before Approve.
func (s *SelectionSession) Cancel() {
	if s.state == SelectionStateCommitted {
		return
	}
	s.working = make(map[string]time.Time)
	s.reason = ""
	s.state = SelectionStateIdle
}
