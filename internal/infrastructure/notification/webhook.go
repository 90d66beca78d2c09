package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sfgnexus/backend/internal/domain/shared"
)

const (
	// maxWebhookResponseSize limits the response body size to prevent memory exhaustion
	maxWebhookResponseSize = 1 * 1024 * 1024 // 1MB max response
	defaultTimeout         = 5 * time.Second
)

// WebhookNotifier posts alert messages to a configured webhook endpoint.
// Delivery is best-effort: callers treat failures as non-fatal and this
// notifier logs them instead of propagating transport details upward.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// webhookPayload is the JSON body sent to the webhook endpoint
type webhookPayload struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	SentAt  string `json:"sent_at"`
}

// NewWebhookNotifier creates a notifier targeting the given webhook URL
func NewWebhookNotifier(url string, timeout time.Duration, logger *zap.Logger) (*WebhookNotifier, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("webhook"),
	}, nil
}

// Notify posts the alert to the webhook endpoint
func (n *WebhookNotifier) Notify(ctx context.Context, subject, message string) error {
	payload := webhookPayload{
		Subject: subject,
		Message: message,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain the body so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxWebhookResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("webhook endpoint returned non-success status",
			zap.String("subject", subject),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	return nil
}

// NoopNotifier discards all notifications. Used when alerting is disabled.
type NoopNotifier struct{}

// Notify implements shared.Notifier and does nothing
func (NoopNotifier) Notify(ctx context.Context, subject, message string) error {
	return nil
}

// Ensure both notifiers implement the domain port
var (
	_ shared.Notifier = (*WebhookNotifier)(nil)
	_ shared.Notifier = NoopNotifier{}
)
