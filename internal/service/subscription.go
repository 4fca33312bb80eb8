package service

import (
	"context"
	"time"

	"github.com/freshcrate/freshcrate/internal/api/dto"
	"github.com/freshcrate/freshcrate/internal/domain/schedule"
	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	"github.com/freshcrate/freshcrate/internal/types"
)

// SubscriptionService manages delivery subscriptions and their derived
// schedule. Every operation takes the reference date explicitly; callers at
// the HTTP boundary read the clock once and pass it down.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, today time.Time) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id string, today time.Time) (*dto.SubscriptionResponse, error)
	ListUserSubscriptions(ctx context.Context, userID string, today time.Time) ([]*dto.SubscriptionResponse, error)
	GetDeliverySchedule(ctx context.Context, id string) (*dto.DeliveryScheduleResponse, error)
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{
		ServiceParams: params,
	}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, today time.Time) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := req.ToSubscription(ctx)
	if err != nil {
		return nil, err
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	if err := s.SubRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription",
		"request_id", types.GetRequestID(ctx),
		"subscription_id", sub.ID,
		"user_id", sub.UserID,
		"plan_type", sub.PlanType)

	return dto.NewSubscriptionResponse(today, sub)
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string, today time.Time) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(today, sub)
}

func (s *subscriptionService) ListUserSubscriptions(ctx context.Context, userID string, today time.Time) ([]*dto.SubscriptionResponse, error) {
	subs, err := s.SubRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		resp, err := dto.NewSubscriptionResponse(today, sub)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *subscriptionService) GetDeliverySchedule(ctx context.Context, id string) (*dto.DeliveryScheduleResponse, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	skipDays, err := s.SubRepo.ListSkipDays(ctx, id)
	if err != nil {
		return nil, err
	}
	skips := subscription.NewSkipSet(skipDays)

	start, end, err := sub.Window()
	if err != nil {
		return nil, err
	}

	deliveries, err := schedule.DeliveryDateList(sub, skips)
	if err != nil {
		return nil, err
	}

	return &dto.DeliveryScheduleResponse{
		SubscriptionID: sub.ID,
		StartDate:      types.FormatDateOnly(start),
		EndDate:        types.FormatDateOnly(end),
		DeliveryDates:  types.FormatDateList(deliveries),
		SkippedDates:   types.FormatDateList(skips.InWindow(start, end)),
	}, nil
}
