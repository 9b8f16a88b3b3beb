package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	applog "kakei/internal/log"
)

// DefaultWebhookURL is used when no notification URL is configured.
const DefaultWebhookURL = "https://notify-api.line.me/api/notify"

var _ Notifier = (*Webhook)(nil)

// Webhook posts message=<text> as a form with a bearer token.
type Webhook struct {
	url   string
	token string
	http  *http.Client
}

// NewWebhook requires a token. An empty URL selects DefaultWebhookURL and
// a nil client uses one without a timeout.
func NewWebhook(endpoint, token string, httpClient *http.Client) (*Webhook, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("missing notification token")
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultWebhookURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Webhook{url: endpoint, token: token, http: httpClient}, nil
}

func (w *Webhook) Notify(ctx context.Context, message string) error {
	form := url.Values{"message": {message}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return rejected(resp.StatusCode, string(b))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	applog.ForComponent(ctx, applog.ComponentNotify).InfoContext(ctx, "Notification delivered", "channel", "webhook", "status_code", resp.StatusCode)
	return nil
}
