// Package calendly provides a thin client for the Calendly REST API.
package calendly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medportal_backend/platform/config"
)

// Client calls the Calendly API with a per-admin personal access token.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Calendly client.
func NewClient(cfg config.CalendlyConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.GetCalendlyBaseURL(), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type schedulingLinkRequest struct {
	MaxEventCount int    `json:"max_event_count"`
	Owner         string `json:"owner"`
	OwnerType     string `json:"owner_type"`
}

type schedulingLinkResponse struct {
	Resource struct {
		BookingURL string `json:"booking_url"`
		Owner      string `json:"owner"`
		OwnerType  string `json:"owner_type"`
	} `json:"resource"`
}

// CreateSchedulingLink requests a single-use booking link scoped to an event
// type. token is the acting admin's personal access token.
func (c *Client) CreateSchedulingLink(ctx context.Context, token, eventTypeURI string) (string, error) {
	payload := schedulingLinkRequest{
		MaxEventCount: 1,
		Owner:         eventTypeURI,
		OwnerType:     "EventType",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scheduling_links", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("calendly scheduling link failed: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed schedulingLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("calendly response decode: %w", err)
	}
	if parsed.Resource.BookingURL == "" {
		return "", fmt.Errorf("calendly response missing booking_url")
	}

	return parsed.Resource.BookingURL, nil
}

// Webhook event names delivered by Calendly.
const (
	WebhookInviteeCreated  = "invitee.created"
	WebhookInviteeCanceled = "invitee.canceled"
)

// WebhookPayload is the provider-shaped webhook body.
type WebhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		URI   string `json:"uri"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Event string `json:"event"` // scheduled event URI
		ScheduledEvent struct {
			URI       string     `json:"uri"`
			StartTime *time.Time `json:"start_time"`
		} `json:"scheduled_event"`
	} `json:"payload"`
}
