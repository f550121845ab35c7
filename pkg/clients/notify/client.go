package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mchuang3/dentms/internal/config"
)

// Event names pushed to the back-office webhook.
const (
	EventMonthLocked   = "month.locked"
	EventMonthUnlocked = "month.unlocked"
	EventSnapshotReady = "snapshot.ready"
)

// Event is the webhook notification payload.
type Event struct {
	Event    string `json:"event"`
	ClinicID string `json:"clinic_id"`
	Month    string `json:"month"`
	Actor    string `json:"actor,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Sender pushes back-office events to an external channel.
type Sender interface {
	Send(ctx context.Context, event Event) error
}

// WebhookClient is a resty-backed Sender posting events to a configured URL.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook client from the notify configuration.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// apiError represents a generic webhook error payload.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Send posts the event as JSON and fails on any non-2xx response.
func (c *WebhookClient) Send(ctx context.Context, event Event) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(event).
		SetError(apiErr).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send %s notification: %w", event.Event, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("webhook error: status=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}

// Nop is the Sender used when no webhook is configured.
type Nop struct{}

// Send discards the event.
func (Nop) Send(context.Context, Event) error { return nil }
