package service

import (
	"context"

	"github.com/freshcrate/freshcrate/internal/api/dto"
	"github.com/freshcrate/freshcrate/internal/cache"
	"github.com/freshcrate/freshcrate/internal/domain/billing"
	"github.com/freshcrate/freshcrate/internal/domain/order"
	"github.com/freshcrate/freshcrate/internal/domain/subscription"
)

// BillingService computes bill breakdowns. Subscription bills are cached
// per subscription; a committed skip batch flushes the cached entry so the
// next read recomputes against the enlarged skip set.
type BillingService interface {
	GetSubscriptionBill(ctx context.Context, subscriptionID string) (*dto.BillResponse, error)
	GetOrderBill(ctx context.Context, orderID string) (*dto.BillResponse, error)
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) GetSubscriptionBill(ctx context.Context, subscriptionID string) (*dto.BillResponse, error) {
	cacheKey := cache.GenerateKey(cache.PrefixBill, subscriptionID)
	if cached, ok := s.Cache.Get(ctx, cacheKey); ok {
		if resp, ok := cached.(*dto.BillResponse); ok {
			return resp, nil
		}
	}

	sub, err := s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	ord, err := s.OrderRepo.GetBySubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	items, err := s.OrderRepo.ListItems(ctx, ord.ID)
	if err != nil {
		return nil, err
	}
	perDeliveryTotal := order.PerDeliveryTotal(items)

	var breakdown *billing.BillBreakdown
	if sub.PlanType.IsRecurring() {
		skipDays, err := s.SubRepo.ListSkipDays(ctx, subscriptionID)
		if err != nil {
			return nil, err
		}

		start, end, err := sub.Window()
		if err != nil {
			return nil, err
		}
		skippedInWindow := subscription.NewSkipSet(skipDays).InWindow(start, end)

		breakdown, err = billing.Calculate(billing.BillParams{
			Plan:             sub.PlanType,
			PerDeliveryTotal: perDeliveryTotal,
			DeliveryCharge:   ord.DeliveryCharge,
			SkippedDates:     skippedInWindow,
		})
		if err != nil {
			return nil, err
		}
	} else {
		// daily plans bill like one-time orders, no proration
		breakdown, err = billing.CalculateOneTime(perDeliveryTotal, ord.DeliveryCharge)
		if err != nil {
			return nil, err
		}
	}

	resp := dto.NewBillResponse(breakdown)
	resp.SubscriptionID = sub.ID
	resp.OrderID = ord.ID

	s.Cache.Set(ctx, cacheKey, resp, cache.DefaultExpiration)
	return resp, nil
}

func (s *billingService) GetOrderBill(ctx context.Context, orderID string) (*dto.BillResponse, error) {
	ord, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if ord.SubscriptionID != "" {
		return s.GetSubscriptionBill(ctx, ord.SubscriptionID)
	}

	items, err := s.OrderRepo.ListItems(ctx, ord.ID)
	if err != nil {
		return nil, err
	}

	breakdown, err := billing.CalculateOneTime(order.PerDeliveryTotal(items), ord.DeliveryCharge)
	if err != nil {
		return nil, err
	}

	resp := dto.NewBillResponse(breakdown)
	resp.OrderID = ord.ID
	return resp, nil
}
