package subscription

import (
	"sort"
	"time"

	"github.com/freshcrate/freshcrate/internal/types"
)

// SkipDay records a single calendar date on which delivery (and therefore
// billing) is suppressed for a subscription. Skip days are append-only
// facts: they are created by a confirmed skip batch, never updated, and
// there is no un-skip operation.
type SkipDay struct {
	// ID is the unique identifier for the skip day
	ID string `db:"id" json:"id"`

	// SubscriptionID is the owning subscription
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`

	// PauseDate is the calendar date being skipped, normalized to midnight
	// UTC. At most one skip day exists per (subscription, date).
	PauseDate time.Time `db:"pause_date" json:"pause_date"`

	// Reason is an optional free-text annotation shared by the batch
	Reason string `db:"reason" json:"reason"`

	types.BaseModel
}

// SkipSet is a set of skipped calendar dates keyed by their normalized
// YYYY-MM-DD form.
type SkipSet struct {
	dates map[string]time.Time
}

// NewSkipSet builds a skip set from persisted skip days, normalizing and
// deduplicating dates.
func NewSkipSet(days []*SkipDay) SkipSet {
	s := SkipSet{dates: make(map[string]time.Time, len(days))}
	for _, d := range days {
		if d == nil {
			continue
		}
		s.Add(d.PauseDate)
	}
	return s
}

// NewSkipSetFromDates builds a skip set from raw dates.
func NewSkipSetFromDates(dates []time.Time) SkipSet {
	s := SkipSet{dates: make(map[string]time.Time, len(dates))}
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add inserts a date into the set. Duplicate dates collapse to one entry.
func (s SkipSet) Add(d time.Time) {
	d = types.NormalizeDate(d)
	s.dates[types.FormatDateOnly(d)] = d
}

// Contains reports whether the normalized date is in the set.
func (s SkipSet) Contains(d time.Time) bool {
	_, ok := s.dates[types.FormatDateOnly(d)]
	return ok
}

// Len returns the number of distinct skipped dates.
func (s SkipSet) Len() int {
	return len(s.dates)
}

// Dates returns the skipped dates in ascending order.
func (s SkipSet) Dates() []time.Time {
	out := make([]time.Time, 0, len(s.dates))
	for _, d := range s.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// InWindow returns the subset of skipped dates falling inside the inclusive
// [start, end] range, in ascending order.
func (s SkipSet) InWindow(start, end time.Time) []time.Time {
	start = types.NormalizeDate(start)
	end = types.NormalizeDate(end)
	out := make([]time.Time, 0, len(s.dates))
	for _, d := range s.dates {
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
