package dto

import (
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/freshcrate/freshcrate/internal/validator"
)

// SkipCalendarResponse describes the date-picker constraints for a skip
// editing session. The three date lists are built from independent
// predicates (past, already skipped, selectable) and are composed by the
// client at render time.
type SkipCalendarResponse struct {
	SubscriptionID string `json:"subscription_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`

	// SelectableDates are in-window future dates not yet skipped
	SelectableDates []string `json:"selectable_dates"`

	// DisabledDates are in-window dates that lie in the past or are today
	DisabledDates []string `json:"disabled_dates"`

	// SkippedDates are dates already persisted as skipped
	SkippedDates []string `json:"skipped_dates"`
}

// ConfirmSkipRequest commits a batch of skip dates chosen in an editing
// session. Dates use the YYYY-MM-DD boundary format.
type ConfirmSkipRequest struct {
	SubscriptionID string   `json:"subscription_id" validate:"required"`
	Dates          []string `json:"dates" validate:"required,min=1"`
	Reason         string   `json:"reason,omitempty" validate:"omitempty,max=255"`
}

func (r *ConfirmSkipRequest) Validate() error {
	// empty selections are a date-range error, not a shape error
	if len(r.Dates) == 0 {
		return ierr.NewError("no dates selected").
			WithHint("Select at least one date to skip").
			Mark(ierr.ErrInvalidDateRange)
	}
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if _, err := types.ParseDateList(r.Dates); err != nil {
		return err
	}
	return nil
}

// ConfirmSkipResponse reports the committed batch. BatchRef is the short
// human-facing reference shared with operations staff, e.g. `SKPX1B2C3D`.
type ConfirmSkipResponse struct {
	SubscriptionID string   `json:"subscription_id"`
	BatchRef       string   `json:"batch_ref"`
	SkippedCount   int      `json:"skipped_count"`
	SkippedDates   []string `json:"skipped_dates"`
}
