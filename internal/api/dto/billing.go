package dto

import (
	"github.com/freshcrate/freshcrate/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillResponse is the rendered bill breakdown for a subscription window or
// a one-time order.
type BillResponse struct {
	SubscriptionID string `json:"subscription_id,omitempty"`
	OrderID        string `json:"order_id,omitempty"`

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

// NewBillResponse renders a computed breakdown.
func NewBillResponse(breakdown *billing.BillBreakdown) *BillResponse {
	return &BillResponse{
		PlanDays:               breakdown.PlanDays,
		SkippedDays:            breakdown.SkippedDays,
		EffectiveDays:          breakdown.EffectiveDays,
		SubscriptionItemsTotal: breakdown.SubscriptionItemsTotal,
		SkipCredit:             breakdown.SkipCredit,
		ProratedTotal:          breakdown.ProratedTotal,
		DeliveryCharge:         breakdown.DeliveryCharge,
		GrandTotal:             breakdown.GrandTotal,
		AmountInWords:          breakdown.AmountInWords,
	}
}
