// Package telegram talks to the Telegram Bot API and runs the sequential
// delivery pipeline for a rendered digest.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/friendlyLight/daily-learning-bot/internal/logger"
)

const (
	defaultAPIBase = "https://api.telegram.org"

	// Telegram caps photo captions at 1024 code points.
	captionLimit = 1024
)

// StatusError reports a non-200 response from the Bot API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("telegram API error: status %d", e.Code)
}

// Sender is the messaging transport the delivery pipeline runs over.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
	SendPhoto(ctx context.Context, photoURL, caption string) error
}

// Client sends messages to a single chat with HTML formatting.
type Client struct {
	token   string
	chatID  string
	apiBase string
	client  *http.Client
}

// NewClient validates the chat configuration up front so the delivery loop
// never starts against a misconfigured transport.
func NewClient(token, chatID string, timeout time.Duration) (*Client, error) {
	if token == "" || chatID == "" {
		return nil, errors.New("telegram: bot token and chat id are required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		token:   token,
		chatID:  chatID,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// SendMessage posts one HTML-formatted text message.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	payload := map[string]interface{}{
		"chat_id":                  c.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	return c.post(ctx, "sendMessage", payload)
}

// SendPhoto posts a photo by URL with an optional HTML caption.
func (c *Client) SendPhoto(ctx context.Context, photoURL, caption string) error {
	runes := []rune(caption)
	if len(runes) > captionLimit {
		caption = string(runes[:captionLimit])
	}

	payload := map[string]interface{}{
		"chat_id":    c.chatID,
		"photo":      photoURL,
		"parse_mode": "HTML",
	}
	if caption != "" {
		payload["caption"] = caption
	}
	return c.post(ctx, "sendPhoto", payload)
}

func (c *Client) post(ctx context.Context, method string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
