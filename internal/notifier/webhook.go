package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/freshcrate/freshcrate/internal/config"
	ierr "github.com/freshcrate/freshcrate/internal/errors"
	"github.com/freshcrate/freshcrate/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// WebhookSink posts skip notifications to the operations webhook endpoint.
type WebhookSink struct {
	client *retryablehttp.Client
	url    string
	logger *logger.Logger
}

// NewWebhookSink creates a webhook-backed notification sink. An empty
// endpoint URL disables delivery; notifications are logged and dropped.
func NewWebhookSink(cfg *config.Configuration, logger *logger.Logger) Sink {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = cfg.Notification.Timeout
	client.Logger = nil

	return &WebhookSink{
		client: client,
		url:    cfg.Notification.OpsWebhookURL,
		logger: logger,
	}
}

func (s *WebhookSink) Deliver(ctx context.Context, notification SkipNotification) error {
	if s.url == "" {
		s.logger.Infow("ops webhook not configured, dropping skip notification",
			"subscription_id", notification.SubscriptionID,
			"skipped_count", notification.SkippedCount)
		return nil
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return ierr.NewError("ops webhook returned failure status").
			WithReportableDetails(map[string]any{
				"status_code": resp.StatusCode,
			}).
			Mark(ierr.ErrSystem)
	}
	return nil
}
