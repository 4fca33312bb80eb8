package billing

import (
	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/shopspring/decimal"
)

// Calculate computes a prorated subscription bill: the full window is
// charged at the per-delivery rate, skipped days earn an equal credit, and
// the flat delivery charge is added once at the end.
func Calculate(params BillParams) (*BillBreakdown, error) {
	if err := validateAmounts(params.PerDeliveryTotal, params.DeliveryCharge); err != nil {
		return nil, err
	}
	if err := params.Plan.Validate(); err != nil {
		return nil, err
	}
	if !params.Plan.IsRecurring() {
		return nil, ierr.NewError("plan is not billed through proration").
			WithHintf("Plan '%s' bills as a one-time order", params.Plan).
			Mark(ierr.ErrInvalidPlan)
	}

	days, err := params.Plan.WindowDays()
	if err != nil {
		return nil, err
	}

	// collapse duplicate dates so a double-reported skip never earns a
	// double credit
	skippedCount := subscription.NewSkipSetFromDates(params.SkippedDates).Len()

	effectiveDays := days - skippedCount
	if effectiveDays < 0 {
		effectiveDays = 0
		skippedCount = days
	}

	decimalDays := decimal.NewFromInt(int64(days))
	decimalSkipped := decimal.NewFromInt(int64(skippedCount))
	decimalEffective := decimal.NewFromInt(int64(effectiveDays))

	itemsTotal := params.PerDeliveryTotal.Mul(decimalDays)
	skipCredit := params.PerDeliveryTotal.Mul(decimalSkipped)
	proratedTotal := params.PerDeliveryTotal.Mul(decimalEffective)
	grandTotal := proratedTotal.Add(params.DeliveryCharge)

	words, err := AmountInWords(grandTotal)
	if err != nil {
		return nil, err
	}

	return &BillBreakdown{
		PlanDays:               days,
		SkippedDays:            skippedCount,
		EffectiveDays:          effectiveDays,
		SubscriptionItemsTotal: itemsTotal,
		SkipCredit:             skipCredit,
		ProratedTotal:          proratedTotal,
		DeliveryCharge:         params.DeliveryCharge,
		GrandTotal:             grandTotal,
		AmountInWords:          words,
	}, nil
}

// CalculateOneTime computes the bill for a one-time (or daily plan) order:
// the basket total plus the flat delivery charge, no proration.
func CalculateOneTime(perDeliveryTotal, deliveryCharge decimal.Decimal) (*BillBreakdown, error) {
	if err := validateAmounts(perDeliveryTotal, deliveryCharge); err != nil {
		return nil, err
	}

	grandTotal := perDeliveryTotal.Add(deliveryCharge)
	words, err := AmountInWords(grandTotal)
	if err != nil {
		return nil, err
	}

	return &BillBreakdown{
		PlanDays:               1,
		SkippedDays:            0,
		EffectiveDays:          1,
		SubscriptionItemsTotal: perDeliveryTotal,
		SkipCredit:             decimal.Zero,
		ProratedTotal:          perDeliveryTotal,
		DeliveryCharge:         deliveryCharge,
		GrandTotal:             grandTotal,
		AmountInWords:          words,
	}, nil
}

func validateAmounts(perDeliveryTotal, deliveryCharge decimal.Decimal) error {
	if perDeliveryTotal.IsNegative() {
		return ierr.NewError("per-delivery total cannot be negative").
			Mark(ierr.ErrValidation)
	}
	if deliveryCharge.IsNegative() {
		return ierr.NewError("delivery charge cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
