package service

import (
	"testing"
	"time"

	"github.com/freshcrate/freshcrate/internal/api/dto"
	"github.com/freshcrate/freshcrate/internal/domain/order"
	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/testutil"
	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     BillingService
	skipService SkipService
	sub         *subscription.Subscription
	ord         *order.Order
	today       time.Time
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:    s.GetLogger(),
		Config:    s.GetConfig(),
		Cache:     s.GetCache(),
		SubRepo:   s.GetStores().SubscriptionRepo,
		OrderRepo: s.GetStores().OrderRepo,
		Publisher: s.GetPubSub(),
	}
	s.service = NewBillingService(params)
	s.skipService = NewSkipService(params)

	s.today = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	s.sub = &subscription.Subscription{
		ID:           "subs_bill_1",
		UserID:       "user_1",
		PlanType:     types.PlanTypeMonthly,
		StartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DeliveryTime: types.DeliveryTimeMorning,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), s.sub))

	// one basket worth 100 per delivery day, flat 50 delivery charge
	s.ord = &order.Order{
		ID:             "order_bill_1",
		UserID:         "user_1",
		SubscriptionID: s.sub.ID,
		DeliveryCharge: decimal.NewFromInt(50),
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.GetOrderStore().AddOrder(s.ord)
	s.GetOrderStore().AddItem(&order.OrderItem{
		ID:           "oitem_1",
		OrderID:      s.ord.ID,
		VariantLabel: "1 ltr",
		VariantPrice: decimal.NewFromInt(60),
		Quantity:     1,
	})
	s.GetOrderStore().AddItem(&order.OrderItem{
		ID:           "oitem_2",
		OrderID:      s.ord.ID,
		VariantLabel: "500 ml",
		VariantPrice: decimal.NewFromInt(20),
		Quantity:     2,
	})
}

func (s *BillingServiceSuite) TestSubscriptionBillWithSkips() {
	err := s.GetStores().SubscriptionRepo.CreateSkipDays(s.GetContext(), s.sub.ID, []time.Time{
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
	}, "")
	s.NoError(err)

	resp, err := s.service.GetSubscriptionBill(s.GetContext(), s.sub.ID)
	s.NoError(err)
	s.Equal(s.sub.ID, resp.SubscriptionID)
	s.Equal(s.ord.ID, resp.OrderID)
	s.Equal(30, resp.PlanDays)
	s.Equal(3, resp.SkippedDays)
	s.Equal(27, resp.EffectiveDays)
	s.True(resp.SubscriptionItemsTotal.Equal(decimal.NewFromInt(3000)))
	s.True(resp.SkipCredit.Equal(decimal.NewFromInt(300)))
	s.True(resp.ProratedTotal.Equal(decimal.NewFromInt(2700)))
	s.True(resp.DeliveryCharge.Equal(decimal.NewFromInt(50)))
	s.True(resp.GrandTotal.Equal(decimal.NewFromInt(2750)))
	s.Equal("Rupees Two Thousand Seven Hundred Fifty Only", resp.AmountInWords)
}

func (s *BillingServiceSuite) TestSubscriptionBillCached() {
	resp, err := s.service.GetSubscriptionBill(s.GetContext(), s.sub.ID)
	s.NoError(err)

	again, err := s.service.GetSubscriptionBill(s.GetContext(), s.sub.ID)
	s.NoError(err)
	s.Same(resp, again)
}

func (s *BillingServiceSuite) TestBillRecomputedAfterSkipCommit() {
	resp, err := s.service.GetSubscriptionBill(s.GetContext(), s.sub.ID)
	s.NoError(err)
	s.Equal(0, resp.SkippedDays)
	s.True(resp.GrandTotal.Equal(decimal.NewFromInt(3050)))

	_, err = s.skipService.ConfirmSkipDays(s.GetContext(), dto.ConfirmSkipRequest{
		SubscriptionID: s.sub.ID,
		Dates:          []string{"2024-03-10", "2024-03-11"},
	}, s.today)
	s.NoError(err)

	resp, err = s.service.GetSubscriptionBill(s.GetContext(), s.sub.ID)
	s.NoError(err)
	s.Equal(2, resp.SkippedDays)
	s.Equal(28, resp.EffectiveDays)
	s.True(resp.GrandTotal.Equal(decimal.NewFromInt(2850)))
}

func (s *BillingServiceSuite) TestDailySubscriptionBilledOneTime() {
	daily := &subscription.Subscription{
		ID:           "subs_daily_1",
		UserID:       "user_1",
		PlanType:     types.PlanTypeDaily,
		StartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DeliveryTime: types.DeliveryTimeEvening,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), daily))

	ord := &order.Order{
		ID:             "order_daily_1",
		UserID:         "user_1",
		SubscriptionID: daily.ID,
		DeliveryCharge: decimal.NewFromInt(20),
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.GetOrderStore().AddOrder(ord)
	s.GetOrderStore().AddItem(&order.OrderItem{
		ID:           "oitem_daily_1",
		OrderID:      ord.ID,
		VariantLabel: "1 ltr",
		VariantPrice: decimal.NewFromInt(60),
		Quantity:     1,
	})

	resp, err := s.service.GetSubscriptionBill(s.GetContext(), daily.ID)
	s.NoError(err)
	s.Equal(1, resp.PlanDays)
	s.Equal(0, resp.SkippedDays)
	s.True(resp.ProratedTotal.Equal(decimal.NewFromInt(60)))
	s.True(resp.GrandTotal.Equal(decimal.NewFromInt(80)))
}

func (s *BillingServiceSuite) TestOrderBillForSubscriptionOrder() {
	resp, err := s.service.GetOrderBill(s.GetContext(), s.ord.ID)
	s.NoError(err)
	s.Equal(s.sub.ID, resp.SubscriptionID)
	s.Equal(30, resp.PlanDays)
}

func (s *BillingServiceSuite) TestOrderBillForOneTimeOrder() {
	ord := &order.Order{
		ID:             "order_onetime_1",
		UserID:         "user_2",
		DeliveryCharge: decimal.NewFromInt(30),
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.GetOrderStore().AddOrder(ord)
	s.GetOrderStore().AddItem(&order.OrderItem{
		ID:           "oitem_onetime_1",
		OrderID:      ord.ID,
		VariantLabel: "2 kg",
		VariantPrice: decimal.NewFromFloat(120.50),
		Quantity:     1,
	})

	resp, err := s.service.GetOrderBill(s.GetContext(), ord.ID)
	s.NoError(err)
	s.Empty(resp.SubscriptionID)
	s.Equal(ord.ID, resp.OrderID)
	s.Equal(1, resp.PlanDays)
	s.True(resp.GrandTotal.Equal(decimal.NewFromFloat(150.50)))
	s.Equal("Rupees One Hundred Fifty and Fifty Paise Only", resp.AmountInWords)
}

func (s *BillingServiceSuite) TestBillUnknownSubscription() {
	_, err := s.service.GetSubscriptionBill(s.GetContext(), "subs_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
