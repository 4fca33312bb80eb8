package billing

import (
	"time"

	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/shopspring/decimal"
)

// BillParams are the inputs to the prorated subscription bill calculation.
type BillParams struct {
	// Plan is the subscription cadence; only weekly and monthly plans use
	// the prorated path. Daily plans bill like one-time orders.
	Plan types.PlanType

	// PerDeliveryTotal is the cost of one day's item basket.
	PerDeliveryTotal decimal.Decimal

	// DeliveryCharge is flat and applied once regardless of days.
	DeliveryCharge decimal.Decimal

	// SkippedDates is the subset of the skip set falling inside the plan
	// window. Duplicate dates are collapsed before counting.
	SkippedDates []time.Time
}

// BillBreakdown is the computed bill. All amounts stay in decimal form;
// rounding happens only in display helpers, never mid-computation.
//
// Invariant: ProratedTotal == SubscriptionItemsTotal - SkipCredit.
type BillBreakdown struct {
	PlanDays      int `json:"plan_days"`
	SkippedDays   int `json:"skipped_days"`
	EffectiveDays int `json:"effective_days"`

	SubscriptionItemsTotal decimal.Decimal `json:"subscription_items_total"`
	SkipCredit             decimal.Decimal `json:"skip_credit"`
	ProratedTotal          decimal.Decimal `json:"prorated_total"`
	DeliveryCharge         decimal.Decimal `json:"delivery_charge"`
	GrandTotal             decimal.Decimal `json:"grand_total"`

	AmountInWords string `json:"amount_in_words"`
}
