package billing

import (
	"testing"
	"time"

	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipDates(n int) []time.Time {
	base := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = types.AddDays(base, i)
	}
	return out
}

func TestCalculateMonthlyWithSkips(t *testing.T) {
	breakdown, err := Calculate(BillParams{
		Plan:             types.PlanTypeMonthly,
		PerDeliveryTotal: decimal.NewFromInt(100),
		DeliveryCharge:   decimal.Zero,
		SkippedDates:     skipDates(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, breakdown.PlanDays)
	assert.Equal(t, 3, breakdown.SkippedDays)
	assert.Equal(t, 27, breakdown.EffectiveDays)
	assert.True(t, breakdown.SubscriptionItemsTotal.Equal(decimal.NewFromInt(3000)))
	assert.True(t, breakdown.SkipCredit.Equal(decimal.NewFromInt(300)))
	assert.True(t, breakdown.ProratedTotal.Equal(decimal.NewFromInt(2700)))
	assert.True(t, breakdown.GrandTotal.Equal(decimal.NewFromInt(2700)))
}

func TestCalculateDeliveryChargeAppliedOnce(t *testing.T) {
	breakdown, err := Calculate(BillParams{
		Plan:             types.PlanTypeWeekly,
		PerDeliveryTotal: decimal.NewFromFloat(49.50),
		DeliveryCharge:   decimal.NewFromInt(30),
		SkippedDates:     skipDates(2),
	})
	require.NoError(t, err)

	assert.True(t, breakdown.ProratedTotal.Equal(decimal.NewFromFloat(247.50)))
	assert.True(t, breakdown.GrandTotal.Equal(decimal.NewFromFloat(277.50)))
}

// ProratedTotal must equal SubscriptionItemsTotal - SkipCredit for every
// valid input.
func TestCalculateReconciliationInvariant(t *testing.T) {
	rates := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(1),
		decimal.NewFromFloat(33.33),
		decimal.NewFromFloat(99.99),
		decimal.NewFromInt(2500),
	}

	for _, plan := range []types.PlanType{types.PlanTypeWeekly, types.PlanTypeMonthly} {
		days, err := plan.WindowDays()
		require.NoError(t, err)

		for _, rate := range rates {
			for skipped := 0; skipped <= days; skipped++ {
				breakdown, err := Calculate(BillParams{
					Plan:             plan,
					PerDeliveryTotal: rate,
					DeliveryCharge:   decimal.NewFromInt(20),
					SkippedDates:     skipDates(skipped),
				})
				require.NoError(t, err)

				want := breakdown.SubscriptionItemsTotal.Sub(breakdown.SkipCredit)
				assert.True(t, breakdown.ProratedTotal.Equal(want),
					"plan=%s rate=%s skipped=%d: prorated %s != items %s - credit %s",
					plan, rate, skipped,
					breakdown.ProratedTotal, breakdown.SubscriptionItemsTotal, breakdown.SkipCredit)
				assert.Equal(t, days-skipped, breakdown.EffectiveDays)
			}
		}
	}
}

func TestCalculateEffectiveDaysClampedAtZero(t *testing.T) {
	breakdown, err := Calculate(BillParams{
		Plan:             types.PlanTypeWeekly,
		PerDeliveryTotal: decimal.NewFromInt(80),
		DeliveryCharge:   decimal.NewFromInt(25),
		SkippedDates:     skipDates(12),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, breakdown.EffectiveDays)
	assert.Equal(t, 7, breakdown.SkippedDays)
	assert.True(t, breakdown.ProratedTotal.IsZero())
	assert.True(t, breakdown.GrandTotal.Equal(decimal.NewFromInt(25)))
	assert.True(t, breakdown.ProratedTotal.Equal(
		breakdown.SubscriptionItemsTotal.Sub(breakdown.SkipCredit)))
}

func TestCalculateDeduplicatesSkippedDates(t *testing.T) {
	date := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	breakdown, err := Calculate(BillParams{
		Plan:             types.PlanTypeWeekly,
		PerDeliveryTotal: decimal.NewFromInt(100),
		DeliveryCharge:   decimal.Zero,
		SkippedDates:     []time.Time{date, date, date.Add(6 * time.Hour)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, breakdown.SkippedDays)
	assert.Equal(t, 6, breakdown.EffectiveDays)
}

func TestCalculateNoFloatDrift(t *testing.T) {
	// 0.10 accumulated over 30 days is exactly 3.00 in decimal arithmetic
	breakdown, err := Calculate(BillParams{
		Plan:             types.PlanTypeMonthly,
		PerDeliveryTotal: decimal.NewFromFloat(0.10),
		DeliveryCharge:   decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, breakdown.GrandTotal.Equal(decimal.NewFromFloat(3.00)),
		"got %s", breakdown.GrandTotal)
}

func TestCalculateRejectsNonProratedPlans(t *testing.T) {
	_, err := Calculate(BillParams{
		Plan:             types.PlanTypeDaily,
		PerDeliveryTotal: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidPlan(err))

	_, err = Calculate(BillParams{
		Plan:             types.PlanType("yearly"),
		PerDeliveryTotal: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidPlan(err))
}

func TestCalculateRejectsNegativeAmounts(t *testing.T) {
	_, err := Calculate(BillParams{
		Plan:             types.PlanTypeWeekly,
		PerDeliveryTotal: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, err = Calculate(BillParams{
		Plan:             types.PlanTypeWeekly,
		PerDeliveryTotal: decimal.NewFromInt(10),
		DeliveryCharge:   decimal.NewFromInt(-5),
	})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCalculateOneTime(t *testing.T) {
	breakdown, err := CalculateOneTime(decimal.NewFromFloat(450.25), decimal.NewFromInt(40))
	require.NoError(t, err)

	assert.True(t, breakdown.GrandTotal.Equal(decimal.NewFromFloat(490.25)))
	assert.True(t, breakdown.SkipCredit.IsZero())
	assert.Equal(t, 1, breakdown.PlanDays)
	assert.Equal(t, 1, breakdown.EffectiveDays)
}
