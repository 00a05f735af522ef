// Package relay calls the mail relay to tell the administrator about new
// registrations.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client implements ports.AdminNotifier over the relay's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type notifyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type notifyResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

// NotifyRegistration returns the relay's message id. A non-2xx answer is an
// error carrying the relay's message.
func (c *Client) NotifyRegistration(ctx context.Context, name, email string) (string, error) {
	body, err := json.Marshal(notifyRequest{Name: name, Email: email})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/notify-admin", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call relay: %w", err)
	}
	defer resp.Body.Close()

	var decoded notifyResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("relay answered %d with an unreadable body: %w", resp.StatusCode, err)
	}
	if resp.StatusCode/100 != 2 || !decoded.Success {
		return "", fmt.Errorf("relay answered %d: %s", resp.StatusCode, decoded.Error)
	}
	return decoded.MessageID, nil
}

// Disabled skips the notification. It stands in when no relay URL is set.
type Disabled struct{}

func (Disabled) NotifyRegistration(context.Context, string, string) (string, error) {
	return "", nil
}
