package service

import (
	"context"
	"time"

	"github.com/freshcrate/freshcrate/internal/api/dto"
	"github.com/freshcrate/freshcrate/internal/cache"
	"github.com/freshcrate/freshcrate/internal/domain/schedule"
	"github.com/freshcrate/freshcrate/internal/domain/subscription"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/notifier"
	"github.com/freshcrate/freshcrate/internal/types"
)

// SkipService manages skip-day editing sessions: the calendar constraints
// a date picker needs, and the commit of a confirmed batch.
type SkipService interface {
	GetSkipCalendar(ctx context.Context, subscriptionID string, today time.Time) (*dto.SkipCalendarResponse, error)
	ConfirmSkipDays(ctx context.Context, req dto.ConfirmSkipRequest, today time.Time) (*dto.ConfirmSkipResponse, error)
}

type skipService struct {
	ServiceParams
}

func NewSkipService(params ServiceParams) SkipService {
	return &skipService{
		ServiceParams: params,
	}
}

// GetSkipCalendar classifies every window date through the session's three
// independent predicates so the picker can compose them at render time.
func (s *skipService) GetSkipCalendar(ctx context.Context, subscriptionID string, today time.Time) (*dto.SkipCalendarResponse, error) {
	sub, skips, err := s.loadSubscriptionWithSkips(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	session, err := schedule.NewSelectionSession(today, sub, skips)
	if err != nil {
		return nil, err
	}

	start, end, err := sub.Window()
	if err != nil {
		return nil, err
	}

	resp := &dto.SkipCalendarResponse{
		SubscriptionID:  sub.ID,
		StartDate:       types.FormatDateOnly(start),
		EndDate:         types.FormatDateOnly(end),
		SelectableDates: []string{},
		DisabledDates:   []string{},
		SkippedDates:    []string{},
	}

	for d := start; !d.After(end); d = types.AddDays(d, 1) {
		key := types.FormatDateOnly(d)
		switch {
		case session.IsAlreadySkipped(d):
			resp.SkippedDates = append(resp.SkippedDates, key)
		case session.IsPast(d):
			resp.DisabledDates = append(resp.DisabledDates, key)
		default:
			resp.SelectableDates = append(resp.SelectableDates, key)
		}
	}

	return resp, nil
}

// ConfirmSkipDays validates and persists one confirmed skip batch. Dates
// already skipped are dropped as duplicates; dates in the past or outside
// the window reject the whole batch and leave state unchanged. On success
// the operations notification is published fire-and-forget and the cached
// bill for the subscription is flushed.
func (s *skipService) ConfirmSkipDays(ctx context.Context, req dto.ConfirmSkipRequest, today time.Time) (*dto.ConfirmSkipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dates, err := types.ParseDateList(req.Dates)
	if err != nil {
		return nil, err
	}

	sub, skips, err := s.loadSubscriptionWithSkips(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	session, err := schedule.NewSelectionSession(today, sub, skips)
	if err != nil {
		return nil, err
	}

	for _, d := range dates {
		if session.IsAlreadySkipped(d) {
			// duplicate of a persisted skip; drop it before the store
			continue
		}
		if !session.IsSelectable(d) {
			return nil, ierr.NewError("date cannot be skipped").
				WithHintf("Date %s is outside the skippable range", types.FormatDateOnly(d)).
				WithReportableDetails(map[string]any{
					"date":       types.FormatDateOnly(d),
					"start_date": types.FormatDateOnly(sub.StartDate),
				}).
				Mark(ierr.ErrInvalidDateRange)
		}
		session.Toggle(d)
	}

	if err := session.RequestConfirm(req.Reason); err != nil {
		return nil, err
	}
	batch, reason, err := session.Approve()
	if err != nil {
		return nil, err
	}

	// single batch insert: all dates land or none do, so the caller's
	// working set survives a failure for retry
	if err := s.SubRepo.CreateSkipDays(ctx, sub.ID, batch, reason); err != nil {
		return nil, err
	}

	batchRef := types.GenerateShortIDWithPrefix(types.ShortIDPrefixSkipBatch)
	s.Logger.Infow("committed skip batch",
		"request_id", types.GetRequestID(ctx),
		"subscription_id", sub.ID,
		"batch_ref", batchRef,
		"skipped_count", len(batch))

	s.notifyOperations(ctx, sub, batchRef, batch, reason)

	// the cached bill is stale now that the skip set grew
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixBill, sub.ID))

	return &dto.ConfirmSkipResponse{
		SubscriptionID: sub.ID,
		BatchRef:       batchRef,
		SkippedCount:   len(batch),
		SkippedDates:   types.FormatDateList(batch),
	}, nil
}

// notifyOperations publishes the skip summary for operations staff.
// Publish failures are logged and swallowed; they must never fail or roll
// back the committed batch.
func (s *skipService) notifyOperations(ctx context.Context, sub *subscription.Subscription, batchRef string, batch []time.Time, reason string) {
	notification := notifier.SkipNotification{
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		BatchRef:       batchRef,
		SkippedDates:   types.FormatDateList(batch),
		SkippedCount:   len(batch),
		Reason:         reason,
		CommittedAt:    time.Now().UTC(),
	}

	if err := notifier.PublishSkip(ctx, s.Publisher, s.Config.Notification.Topic, notification); err != nil {
		s.Logger.Errorw("failed to publish skip notification",
			"subscription_id", sub.ID,
			"error", err)
	}
}

func (s *skipService) loadSubscriptionWithSkips(ctx context.Context, subscriptionID string) (*subscription.Subscription, subscription.SkipSet, error) {
	sub, err := s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, subscription.SkipSet{}, err
	}

	skipDays, err := s.SubRepo.ListSkipDays(ctx, subscriptionID)
	if err != nil {
		return nil, subscription.SkipSet{}, err
	}

	return sub, subscription.NewSkipSet(skipDays), nil
}
