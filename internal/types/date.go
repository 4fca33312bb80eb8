package types

import (
	"time"

	ierr "github.com/freshcrate/freshcrate/internal/errors"
)

// DateOnlyFormat is the wire format for calendar dates. Dates cross every
// boundary of this service as plain YYYY-MM-DD strings with no time-of-day
// and no timezone offset.
const DateOnlyFormat = "2006-01-02"

// FriendlyDateFormat is the human-readable rendering used by presentation
// helpers when a date is neither today nor tomorrow.
const FriendlyDateFormat = "02 Jan 2006"

// NormalizeDate truncates a timestamp to midnight UTC. All calendar-date
// arithmetic in the scheduling and billing engines operates on normalized
// dates so a day delta is always an exact multiple of 24h.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the normalized date n calendar days after t.
func AddDays(t time.Time, n int) time.Time {
	return NormalizeDate(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from `from` to `to`.
// Negative when `to` is before `from`.
func DaysBetween(from, to time.Time) int {
	from = NormalizeDate(from)
	to = NormalizeDate(to)
	return int(to.Sub(from).Hours() / 24)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// FormatDateOnly renders a date in the YYYY-MM-DD boundary format.
func FormatDateOnly(t time.Time) string {
	return NormalizeDate(t).Format(DateOnlyFormat)
}

// ParseDateOnly parses a YYYY-MM-DD string into a normalized date.
func ParseDateOnly(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateOnlyFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("invalid date '%s', expected format YYYY-MM-DD", s).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// FormatDateList renders a slice of dates in the boundary format,
// preserving order.
func FormatDateList(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = FormatDateOnly(d)
	}
	return out
}

// ParseDateList parses a slice of YYYY-MM-DD strings, failing on the first
// invalid entry.
func ParseDateList(values []string) ([]time.Time, error) {
	out := make([]time.Time, len(values))
	for i, v := range values {
		d, err := ParseDateOnly(v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// FriendlyDate renders a date relative to today: "Today", "Tomorrow", or
// the date itself as "02 Jan 2006".
func FriendlyDate(today, t time.Time) string {
	t = NormalizeDate(t)
	if SameDay(today, t) {
		return "Today"
	}
	if SameDay(AddDays(today, 1), t) {
		return "Tomorrow"
	}
	return t.Format(FriendlyDateFormat)
}
