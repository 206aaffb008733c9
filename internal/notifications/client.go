package notifications

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"super_sheets/internal/recorder"

	"github.com/rs/zerolog/log"
)

// Client posts plain-text messages to an ntfy topic.
type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
	priority   string
}

type NotificationError struct {
	Type       string
	StatusCode int
	Underlying error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed [%s]: %v", e.Type, e.Underlying)
}

func (e *NotificationError) Unwrap() error {
	return e.Underlying
}

func NewClient(baseURL, topic string, enabled bool, priority string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		topic:    topic,
		enabled:  enabled,
		priority: priority,
	}
}

func (c *Client) SendNotification(ctx context.Context, message string) error {
	if !c.enabled {
		log.Debug().Msg("Notifications disabled, skipping")
		return nil
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)

	log.Debug().
		Str("url", url).
		Str("message", message).
		Msg("Sending notification")

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBufferString(message))
	if err != nil {
		return &NotificationError{Type: "client", Underlying: err}
	}

	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Title", "Super balances recorded")
	if c.priority != "" {
		req.Header.Set("Priority", c.priority)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NotificationError{Type: "network", Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &NotificationError{
			Type:       categorizeHTTPError(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Underlying: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	log.Debug().
		Int("status_code", resp.StatusCode).
		Msg("Notification sent successfully")
	return nil
}

// NotifyRecorded sends a summary of a recorded row. Failures are logged, not returned.
func (c *Client) NotifyRecorded(ctx context.Context, result *recorder.Result) {
	if !c.enabled || result == nil {
		return
	}

	if err := c.SendNotification(ctx, FormatResult(result)); err != nil {
		log.Warn().Err(err).Msg("Failed to send notification")
		return
	}
	log.Info().Str("topic", c.topic).Msg("Sent notification")
}

// FormatResult renders a recorded row for a notification body.
func FormatResult(result *recorder.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s total: %s\n", result.Date, result.Total))
	sb.WriteString(fmt.Sprintf("AustralianSuper: %s\n", result.AustralianSuper))
	sb.WriteString(fmt.Sprintf("Transaction: %s\n", result.Transaction))
	sb.WriteString(fmt.Sprintf("Shares: %s\n", result.Shares))
	sb.WriteString(fmt.Sprintf("High Growth: %s", result.HighGrowth))
	return sb.String()
}

func categorizeHTTPError(statusCode int) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "auth"
	case statusCode == 429:
		return "rate_limit"
	case statusCode >= 400 && statusCode < 500:
		return "client"
	case statusCode >= 500:
		return "server"
	default:
		return "unknown"
	}
}
