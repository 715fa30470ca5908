package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Telegram delivers messages through the Telegram Bot API sendMessage call.
// User ids are Telegram chat ids.
type Telegram struct {
	client  *http.Client
	token   string
	apiBase string
}

// NewTelegram creates a Telegram notifier for the given bot token.
func NewTelegram(token string) *Telegram {
	return &Telegram{
		client:  &http.Client{Timeout: 8 * time.Second},
		token:   token,
		apiBase: defaultAPIBase,
	}
}

// NewTelegramWithBase creates a Telegram notifier pointed at a custom API
// base URL. Used by tests to target an httptest server.
func NewTelegramWithBase(token, apiBase string) *Telegram {
	t := NewTelegram(token)
	t.apiBase = strings.TrimRight(apiBase, "/")
	return t
}

// Notify implements Notifier.
func (t *Telegram) Notify(ctx context.Context, userID int64, text string) (Outcome, error) {
	values := url.Values{}
	values.Set("chat_id", strconv.FormatInt(userID, 10))
	values.Set("text", text)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return TransientError, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return TransientError, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusBadRequest {
		return Delivered, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	err = fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))

	// 403 means the user blocked the bot or never opened a chat with it;
	// 400 covers "chat not found". Everything else is worth logging as
	// transient (429, 5xx).
	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusBadRequest:
		return Unreachable, err
	default:
		return TransientError, err
	}
}
